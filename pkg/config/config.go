package config

// MailConfig holds configuration for the mailer
type MailConfig struct {
	// Mailer selects the driver: "mailjet" (HTTP API), "mailjet+smtp"
	// (authenticated SMTP relay), or "log".
	Mailer string `env:"MAIL_MAILER" envDefault:"log"`

	// FromAddress and FromName are used when the caller does not supply a
	// sender on the envelope.
	FromAddress string `env:"MAIL_FROM_ADDRESS"`
	FromName    string `env:"MAIL_FROM_NAME"`

	// MailjetAPIKey is the public API key ("user" half of the credentials);
	// MailjetSecretKey is the private key ("password" half).
	MailjetAPIKey    string `env:"MAILJET_API_KEY"`
	MailjetSecretKey string `env:"MAILJET_SECRET_KEY"`

	// MailjetHost overrides the default API host (api.mailjet.com).
	MailjetHost string `env:"MAILJET_HOST"`

	// MailjetSandbox asks the API to validate and simulate the send without
	// actual delivery.
	MailjetSandbox bool `env:"MAILJET_SANDBOX" envDefault:"false"`
}

// Config is the root configuration populated from the environment
type Config struct {
	Mail MailConfig
}
