package console

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pixelvide/mailjet-go/pkg/config"
	"github.com/pixelvide/mailjet-go/pkg/mail"
	"github.com/pixelvide/mailjet-go/pkg/root"
	"github.com/pixelvide/mailjet-go/pkg/telemetry"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	sendTo          []string
	sendFrom        string
	sendFromName    string
	sendSubject     string
	sendText        string
	sendHTML        string
	sendReplyTo     []string
	sendHeaders     []string
	sendAttachments []string
	sendSandbox     bool
)

var sendCmd = &cobra.Command{
	Use:     "mail:send",
	Aliases: []string{"send"},
	Short:   "Send a single email",
	Run: func(cmd *cobra.Command, args []string) {
		// Initialize Telemetry
		telemetry.SetGlobalLogger()

		tp, err := telemetry.InitTracer("mailjet-cli")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize tracer")
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.Error().Err(err).Msg("Error shutting down tracer")
			}
		}()

		cfg, err := config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
		if sendSandbox {
			cfg.Mail.MailjetSandbox = true
		}

		mailer, err := mail.NewMailer(cfg.Mail)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create mailer")
		}

		msg, env, err := buildMessage(cfg.Mail)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid message")
		}

		tracer := tp.Tracer("mailer")
		ctx, span := tracer.Start(context.Background(), "mail.send")
		defer span.End()

		logger := log.With().Str("send_id", uuid.NewString()).Logger()
		ctx = logger.WithContext(ctx)

		if s, ok := mailer.(fmt.Stringer); ok {
			logger.Info().Str("transport", s.String()).Msg("Sending email")
		}

		result, err := mailer.Send(ctx, msg, env)
		if err != nil {
			span.RecordError(err)
			logger.Fatal().Err(err).Msg("Failed to send email")
		}

		logger.Info().Str("message_id", result.MessageID).Msg("Email sent")
	},
}

// buildMessage assembles the Message and Envelope from the command flags and
// the configured defaults.
func buildMessage(cfg config.MailConfig) (*mail.Message, *mail.Envelope, error) {
	msg := &mail.Message{
		Subject:  sendSubject,
		TextBody: sendText,
		HTMLBody: sendHTML,
	}

	for _, addr := range sendReplyTo {
		msg.ReplyTo = append(msg.ReplyTo, mail.Address{Email: addr})
	}

	for _, h := range sendHeaders {
		name, value, found := strings.Cut(h, ":")
		if !found {
			return nil, nil, fmt.Errorf("invalid header %q, expected \"Name: Value\"", h)
		}
		msg.AddHeader(strings.TrimSpace(name), strings.TrimSpace(value))
	}

	for _, path := range sendAttachments {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read attachment %s: %w", path, err)
		}
		contentType := mime.TypeByExtension(filepath.Ext(path))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		msg.Attachments = append(msg.Attachments, mail.Attachment{
			Filename:    filepath.Base(path),
			ContentType: contentType,
			Content:     content,
		})
	}

	from := mail.Address{Email: cfg.FromAddress, Name: cfg.FromName}
	if sendFrom != "" {
		from = mail.Address{Email: sendFrom, Name: sendFromName}
	}

	env := &mail.Envelope{Sender: from}
	for _, addr := range sendTo {
		env.Recipients = append(env.Recipients, mail.Address{Email: addr})
	}

	return msg, env, nil
}

func init() {
	sendCmd.Flags().StringSliceVar(&sendTo, "to", nil, "Recipient address (repeatable)")
	sendCmd.Flags().StringVar(&sendFrom, "from", "", "Sender address (defaults to MAIL_FROM_ADDRESS)")
	sendCmd.Flags().StringVar(&sendFromName, "from-name", "", "Sender display name")
	sendCmd.Flags().StringVar(&sendSubject, "subject", "", "Message subject")
	sendCmd.Flags().StringVar(&sendText, "text", "", "Plain text body")
	sendCmd.Flags().StringVar(&sendHTML, "html", "", "HTML body")
	sendCmd.Flags().StringSliceVar(&sendReplyTo, "reply-to", nil, "Reply-To address")
	sendCmd.Flags().StringSliceVar(&sendHeaders, "header", nil, "Custom header as \"Name: Value\" (repeatable)")
	sendCmd.Flags().StringSliceVar(&sendAttachments, "attach", nil, "Attachment file path (repeatable)")
	sendCmd.Flags().BoolVar(&sendSandbox, "sandbox", false, "Validate and simulate the send without delivery")
	_ = sendCmd.MarkFlagRequired("to")

	root.GetRoot().AddCommand(sendCmd)
}
