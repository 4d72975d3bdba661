// Package mailjetgo provides a Go mailer with a Mailjet backend.
//
// It maps a structured email message and its delivery envelope onto the
// Mailjet v3.1 Send API, including the X-MJ-*/X-Mailjet-* header conventions
// for templates, campaigns and tracking, and exposes the result (provider
// message ID plus raw response) to the caller. An SMTP relay driver and a
// log driver are available for environments where the HTTP API is not wanted.
//
// Key subpackages:
//
//	github.com/pixelvide/mailjet-go/pkg/mail      - Message/Envelope model, Mailer interface, drivers
//	github.com/pixelvide/mailjet-go/pkg/config    - Configuration structs and env loading
//	github.com/pixelvide/mailjet-go/pkg/console   - CLI commands (mail:send)
//	github.com/pixelvide/mailjet-go/pkg/telemetry - Logging and tracing setup
//
// Example Usage:
//
//	package main
//
//	import (
//		"context"
//		"github.com/pixelvide/mailjet-go/pkg/config"
//		"github.com/pixelvide/mailjet-go/pkg/mail"
//	)
//
//	func main() {
//		cfg := config.MailConfig{
//			Mailer:           "mailjet",
//			MailjetAPIKey:    "pub",
//			MailjetSecretKey: "priv",
//		}
//		mailer, _ := mail.NewMailer(cfg)
//		msg := &mail.Message{Subject: "Hello", TextBody: "Hi!"}
//		env := &mail.Envelope{
//			Sender:     mail.Address{Email: "me@example.com"},
//			Recipients: []mail.Address{{Email: "you@example.com"}},
//		}
//		result, err := mailer.Send(context.Background(), msg, env)
//		_ = result
//		_ = err
//	}
package mailjetgo
