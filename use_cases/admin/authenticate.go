package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/giovaniif/cafeteria/domain/item"
	"github.com/giovaniif/cafeteria/protocols"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("cafeteria/admin")

var ErrAuthorizationDenied = errors.New("admin authorization denied")

const DefaultMaxAttempts = 3

const (
	passwordQuestion = "Please enter the secret password:"
	grantedMessage   = "You have successfully authorized the secret Woofin mode."
	deniedMessage    = "Password incorrect. Woofin mode access denied."
	missingMessage   = "Configuration file not found"
)

type MenuEditor interface {
	Edit(ctx context.Context, catalog item.Repository) (item.Repository, error)
}

type Authenticate struct {
	catalog     item.Repository
	credentials protocols.CredentialsSource
	prompter    protocols.Prompter
	editor      MenuEditor
	metrics     protocols.Metrics
	logger      *slog.Logger
	maxAttempts int
}

func NewAuthenticate(catalog item.Repository, credentials protocols.CredentialsSource, prompter protocols.Prompter, editor MenuEditor, metrics protocols.Metrics, logger *slog.Logger, maxAttempts int) *Authenticate {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Authenticate{
		catalog:     catalog,
		credentials: credentials,
		prompter:    prompter,
		editor:      editor,
		metrics:     metrics,
		logger:      logger,
		maxAttempts: maxAttempts,
	}
}

// Authenticate checks whether username is the configured admin and, if so,
// asks for the password. A granted session edits a copy of the catalog that
// is returned in Output.Catalog for the caller to commit. A username that
// is not the admin's is a silent non-admin result.
func (a *Authenticate) Authenticate(ctx context.Context, input Input) (Output, error) {
	ctx, span := tracer.Start(ctx, "admin.authenticate")
	defer span.End()

	credentials, err := a.credentials.Load(ctx)
	if errors.Is(err, protocols.ErrCredentialsNotFound) {
		a.prompter.Say(missingMessage)
		a.metrics.AdminAuthentication("config_missing")
		a.logger.WarnContext(ctx, "admin credentials missing", "error", err)
		return Output{}, nil
	}
	if err != nil {
		a.metrics.AdminAuthentication("config_invalid")
		return Output{}, fmt.Errorf("load admin credentials: %w", err)
	}

	if input.Username != credentials.Username {
		a.metrics.AdminAuthentication("not_admin")
		return Output{}, nil
	}

	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		password, err := a.prompter.Ask(ctx, passwordQuestion)
		if err != nil {
			return Output{}, fmt.Errorf("read password: %w", err)
		}
		if CheckPassword(credentials.Password, password) {
			span.SetAttributes(attribute.Int("admin.attempts", attempt))
			a.metrics.AdminAuthentication("granted")
			a.logger.InfoContext(ctx, "admin mode granted", "attempt", attempt)
			a.prompter.Say(grantedMessage)

			edited, err := a.editor.Edit(ctx, a.catalog.Clone())
			if err != nil {
				return Output{Authorized: true}, fmt.Errorf("edit menu: %w", err)
			}
			return Output{Authorized: true, Catalog: edited}, nil
		}

		left := a.maxAttempts - attempt
		if left > 0 {
			a.prompter.Say(fmt.Sprintf("%s You have %d attempts left", deniedMessage, left))
		} else {
			a.prompter.Say(deniedMessage)
		}
	}

	a.metrics.AdminAuthentication("denied")
	a.logger.WarnContext(ctx, "admin mode denied", "attempts", a.maxAttempts)
	return Output{}, ErrAuthorizationDenied
}

type Input struct {
	Username string
}

type Output struct {
	Authorized bool
	Catalog    item.Repository
}
