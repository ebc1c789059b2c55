package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/kahenya/duka/internal/domain/errors"
	"github.com/kahenya/duka/internal/domain/model"
	"github.com/kahenya/duka/internal/domain/repository"
	pkgAuth "github.com/kahenya/duka/internal/pkg/auth"
)

// StaffUseCase handles staff account lifecycle and token management.
type StaffUseCase struct {
	staff  repository.StaffRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewStaffUseCase constructs StaffUseCase.
func NewStaffUseCase(staff repository.StaffRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *StaffUseCase {
	return &StaffUseCase{staff: staff, hasher: hasher, tokens: strategy}
}

// Register creates a new staff account and returns an auth token.
func (u *StaffUseCase) Register(ctx context.Context, login, password string) (*model.StaffUser, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	user, err := u.staff.Create(ctx, login, hash)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Authenticate validates credentials and returns an auth token.
func (u *StaffUseCase) Authenticate(ctx context.Context, login, password string) (*model.StaffUser, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	user, err := u.staff.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// ParseToken extracts the staff user ID from a token.
func (u *StaffUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches a staff user by identifier.
func (u *StaffUseCase) GetByID(ctx context.Context, id int64) (*model.StaffUser, error) {
	return u.staff.GetByID(ctx, id)
}
