package usecase

import (
	"strings"

	domainErrors "github.com/kahenya/duka/internal/domain/errors"
)

// NormalizePhone canonicalizes a Kenyan phone number to 254XXXXXXXXX form.
// Accepted inputs: 07XXXXXXXX, 01XXXXXXXX, 7XXXXXXXX, 1XXXXXXXX,
// 2547XXXXXXXX, 2541XXXXXXXX, with an optional leading plus and embedded
// spaces or dashes.
func NormalizePhone(raw string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
	cleaned = strings.TrimPrefix(cleaned, "+")

	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return "", domainErrors.ErrInvalidPhoneNumber
		}
	}

	switch {
	case len(cleaned) == 10 && (strings.HasPrefix(cleaned, "07") || strings.HasPrefix(cleaned, "01")):
		cleaned = "254" + cleaned[1:]
	case len(cleaned) == 9 && (strings.HasPrefix(cleaned, "7") || strings.HasPrefix(cleaned, "1")):
		cleaned = "254" + cleaned
	}

	if len(cleaned) != 12 || !strings.HasPrefix(cleaned, "254") {
		return "", domainErrors.ErrInvalidPhoneNumber
	}
	next := cleaned[3]
	if next != '7' && next != '1' {
		return "", domainErrors.ErrInvalidPhoneNumber
	}
	return cleaned, nil
}
