// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"
)

// ErrSinkDisabled is returned when no mail transport is configured.
var ErrSinkDisabled = errors.New("export: mail delivery is not configured")

// Sink delivers a rendered report.
type Sink interface {
	Send(ctx context.Context, report Report) error
}

// SMTPConfig holds the outbound mail settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// SMTPSink delivers reports through an SMTP relay.
type SMTPSink struct {
	client *mail.Client
	from   string
	to     string
}

// NewSMTPSink creates an [SMTPSink]. The sender defaults to the username.
func NewSMTPSink(cfg SMTPConfig) (*SMTPSink, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPSink{client: client, from: from, to: cfg.To}, nil
}

// Send implements [Sink].
func (sink *SMTPSink) Send(ctx context.Context, report Report) error {
	message := mail.NewMsg()
	if err := message.From(sink.from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := message.To(sink.to); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	message.Subject(report.Subject)
	message.SetBodyString(mail.TypeTextPlain, report.Body)

	err := message.AttachReader(report.Filename, bytes.NewReader(report.Attachment),
		mail.WithFileContentType(mail.ContentType("text/csv; charset=utf-8")),
	)
	if err != nil {
		return fmt.Errorf("mail attachment: %w", err)
	}

	if err := sink.client.DialAndSendWithContext(ctx, message); err != nil {
		return fmt.Errorf("mail send: %w", err)
	}
	return nil
}

// DisabledSink rejects every report. It stands in when SMTP is not configured.
type DisabledSink struct{}

// Send implements [Sink].
func (DisabledSink) Send(context.Context, Report) error {
	return ErrSinkDisabled
}
