package auth

import "time"

// Strategy issues and verifies staff session tokens.
type Strategy interface {
	IssueToken(staffID int64) (string, error)
	ParseToken(token string) (int64, error)
}

// Options tunes token issuance.
type Options struct {
	TTL time.Duration
}
