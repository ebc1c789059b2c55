package daraja

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/kahenya/duka/internal/domain/errors"
)

const timestampLayout = "20060102150405"

// RejectedError carries the provider's reason for declining a push request.
type RejectedError struct {
	Description string
}

func (e RejectedError) Error() string {
	return fmt.Sprintf("push payment rejected: %s", e.Description)
}

// Client exposes the outbound push-payment operation.
type Client interface {
	// RequestPush asks the provider to prompt the customer's phone and
	// returns the provider-issued checkout request identifier.
	RequestPush(ctx context.Context, phone string, amount decimal.Decimal, reference string) (string, error)
}

// Credentials configures access to the payment gateway.
type Credentials struct {
	ConsumerKey    string
	ConsumerSecret string
	ShortCode      string
	Passkey        string
	CallbackURL    string
}

// HTTPClient implements Client against the gateway's HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	creds      Credentials
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

// NewHTTPClient creates a gateway client with a default timeout.
func NewHTTPClient(baseURL string, creds Credentials, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		creds:   creds,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		now: time.Now,
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

func (c *HTTPClient) accessToken(ctx context.Context) (string, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/oauth/v1/generate")
	endpoint.RawQuery = "grant_type=client_credentials"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", err
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.creds.ConsumerKey + ":" + c.creds.ConsumerSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domainErrors.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway token request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return "", fmt.Errorf("%w: token request returned %s", domainErrors.ErrGatewayUnavailable, resp.Status)
	}

	var data tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("%w: decode token: %v", domainErrors.ErrGatewayUnavailable, err)
	}
	if data.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", domainErrors.ErrGatewayUnavailable)
	}
	return data.AccessToken, nil
}

// password derives the API password: base64(shortcode + passkey + timestamp).
func (c *HTTPClient) password() (string, string) {
	timestamp := c.now().Format(timestampLayout)
	raw := c.creds.ShortCode + c.creds.Passkey + timestamp
	return base64.StdEncoding.EncodeToString([]byte(raw)), timestamp
}

type pushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

type pushResponse struct {
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
}

// RequestPush fetches an access token and dispatches the push prompt.
func (c *HTTPClient) RequestPush(ctx context.Context, phone string, amount decimal.Decimal, reference string) (string, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return "", err
	}

	password, timestamp := c.password()
	payload := pushRequest{
		BusinessShortCode: c.creds.ShortCode,
		Password:          password,
		Timestamp:         timestamp,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            amount.Round(0).IntPart(),
		PartyA:            phone,
		PartyB:            c.creds.ShortCode,
		PhoneNumber:       phone,
		CallBackURL:       c.creds.CallbackURL,
		AccountReference:  reference,
		TransactionDesc:   fmt.Sprintf("Payment %s", reference),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/mpesa/stkpush/v1/processrequest")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domainErrors.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("push request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return "", fmt.Errorf("%w: push request returned %s", domainErrors.ErrGatewayUnavailable, resp.Status)
	}

	var data pushResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("%w: decode push response: %v", domainErrors.ErrGatewayUnavailable, err)
	}

	if data.ResponseCode != "0" {
		desc := data.ResponseDescription
		if desc == "" {
			desc = "push request declined"
		}
		return "", RejectedError{Description: desc}
	}
	if data.CheckoutRequestID == "" {
		return "", fmt.Errorf("%w: missing checkout request id", domainErrors.ErrGatewayUnavailable)
	}
	return data.CheckoutRequestID, nil
}
