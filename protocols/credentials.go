package protocols

import (
	"context"
	"errors"
)

var ErrCredentialsNotFound = errors.New("credentials file not found")

type Credentials struct {
	Username string
	Password string
}

type CredentialsSource interface {
	Load(ctx context.Context) (Credentials, error)
}
