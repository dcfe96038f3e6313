package services

import (
	"context"

	"github.com/ledgerline/ledgerline_backend/internal/dto"
)

// AuthSvcFacade defines the admin authentication operations.
type AuthSvcFacade interface {
	// Login verifies the admin credentials and issues a signed JWT.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	// ValidateToken parses and verifies a JWT, returning the subject claim.
	ValidateToken(ctx context.Context, tokenString string) (string, error)
}
