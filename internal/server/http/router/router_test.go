package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kahenya/duka/internal/server/http/dto"
	testhelpers "github.com/kahenya/duka/internal/test"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	engine := Setup(testhelpers.StoreFacadeStub{}, logger)

	// Staff registration issues a token.
	body, _ := json.Marshal(dto.AuthRequest{Login: "admin", Password: "secret"})
	req := httptest.NewRequest(http.MethodPost, "/api/staff/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") == "" {
		t.Fatalf("register: expected auth header")
	}

	// Public catalog needs no session or token.
	req = httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Accept-Encoding", "identity")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("products: expected 200, got %d", resp.Code)
	}

	// The cart group assigns a visitor session cookie on first contact.
	req = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Accept-Encoding", "identity")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("cart: expected 200, got %d", resp.Code)
	}
	result := resp.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	var sessionCookie *http.Cookie
	for _, c := range result.Cookies() {
		if c.Name == "duka_session" {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatalf("cart: expected session cookie")
	}

	// The provider callback is reachable without any cookie and always acks.
	payload := []byte(`{"Body":{"stkCallback":{"CheckoutRequestID":"ws_CO_1","ResultCode":1032,"ResultDesc":"Cancelled"}}}`)
	req = httptest.NewRequest(http.MethodPost, "/api/payments/callback", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Encoding", "identity")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("callback: expected 200, got %d", resp.Code)
	}
	var ack dto.CallbackAck
	if err := json.Unmarshal(resp.Body.Bytes(), &ack); err != nil {
		t.Fatalf("callback decode: %v", err)
	}
	if ack.ResultDesc != "Accepted" {
		t.Fatalf("callback: unexpected ack %+v", ack)
	}
}

func TestSetupGuardsStaffGroups(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	engine := Setup(testhelpers.StoreFacadeStub{}, logger)

	for _, path := range []string{"/api/admin/orders", "/api/admin/dashboard", "/api/finance/overview"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Accept-Encoding", "identity")
		resp := httptest.NewRecorder()
		engine.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 without token, got %d", path, resp.Code)
		}

		req = httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Accept-Encoding", "identity")
		req.Header.Set("Authorization", "Bearer token")
		resp = httptest.NewRecorder()
		engine.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 with token, got %d", path, resp.Code)
		}
	}
}
