package mail

import (
	"context"

	"github.com/rs/zerolog"
)

type Mailer interface {
	SendPasswordReset(ctx context.Context, email, username, token string) error
}

// LogMailer writes outgoing mail to the log. Delivery is left to whatever relay replaces it.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, email, username, token string) error {
	m.log.Info().
		Str("to", email).
		Str("username", username).
		Str("reset_token", token).
		Msg("password reset email (log only)")
	return nil
}
