package auth

import (
	"context"
	"fmt"
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Provider is the hosted identity service that owns accounts and credentials.
type Provider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*User, error)
	SignUp(ctx context.Context, email, password string) (*User, error)
	SendMagicLink(ctx context.Context, email, codeChallenge string) error
	ExchangeCode(ctx context.Context, code, verifier string) (*User, error)
	VerifyTokenHash(ctx context.Context, tokenHash, kind string) (*User, error)
}

// ProviderError carries the message the identity service returned so it can
// be shown inline on the login form.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("auth provider %d: %s", e.Status, e.Message)
}
