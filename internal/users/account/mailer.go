// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"
)

// Mailer delivers the verification link to a new user.
type Mailer interface {
	SendVerification(context context.Context, email, link string) error
}

// LogMailer writes the verification link to the log instead of sending mail.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a [LogMailer].
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// SendVerification implements [Mailer].
func (mailer *LogMailer) SendVerification(context context.Context, email, link string) error {
	mailer.logger.InfoContext(context, "verification_mail_queued",
		slog.String("email", email),
		slog.String("link", link),
	)
	return nil
}
