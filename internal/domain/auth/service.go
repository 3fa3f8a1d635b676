package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Verify(ctx context.Context) (UserResponse, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
}
