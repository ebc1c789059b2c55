package usecase_test

import (
	"errors"
	"testing"

	domainErrors "github.com/kahenya/duka/internal/domain/errors"
	"github.com/kahenya/duka/internal/usecase"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0712345678", "254712345678"},
		{"0112345678", "254112345678"},
		{"712345678", "254712345678"},
		{"254712345678", "254712345678"},
		{"+254712345678", "254712345678"},
		{"+254 712 345 678", "254712345678"},
		{"0712-345-678", "254712345678"},
	}

	for _, tc := range tests {
		got, err := usecase.NormalizePhone(tc.in)
		if err != nil {
			t.Errorf("usecase.NormalizePhone(%q) returned error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("usecase.NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizePhoneRejectsInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"071234567",
		"07123456789",
		"0812345678",
		"25571234567",
		"0712 345 67a",
		"254812345678",
	} {
		if _, err := usecase.NormalizePhone(in); !errors.Is(err, domainErrors.ErrInvalidPhoneNumber) {
			t.Errorf("usecase.NormalizePhone(%q) = %v, want ErrInvalidPhoneNumber", in, err)
		}
	}
}
