package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the credentials section. Tokens are
// expected to live in the environment rather than in the config file.
const (
	EnvWebhookToken = "TRIAGE_AUTH_TOKEN"
	EnvBotToken     = "TRIAGE_BOT_ACCESS_TOKEN"
)

type Logger struct {
	Level string `yaml:"level" json:"level"`
}

// Credentials holds the two secrets the bot lives on: the shared-secret
// token expected on every inbound webhook request and the bearer token
// used against the collaboration platform. Loaded once at startup and
// read-only afterwards; neither value is ever logged.
type Credentials struct {
	WebhookToken string `yaml:"webhook_token" json:"webhook_token"`
	BotToken     string `yaml:"bot_access_token" json:"bot_access_token"`
}

// Complete reports whether both secrets are present. An incomplete set
// rejects every inbound request instead of running unauthenticated.
func (c *Credentials) Complete() bool {
	return c.WebhookToken != "" && c.BotToken != ""
}

type Config struct {
	Timezone string `yaml:"timezone" json:"timezone"`

	Logger *Logger `yaml:"log" json:"log"`

	Server      *HttpServer  `yaml:"server" json:"server"`
	Credentials *Credentials `yaml:"credentials" json:"credentials"`
	Spark       *Spark       `yaml:"spark" json:"spark"`
	Teardown    *Teardown    `yaml:"teardown" json:"teardown"`
}

func New(filename string) (*Config, error) {
	var (
		server   = DefaultHttpServer
		spark    = DefaultSpark
		teardown = DefaultTeardown
	)

	cfg := &Config{
		Timezone:    "UTC",
		Logger:      &Logger{Level: "info"},
		Server:      &server,
		Credentials: &Credentials{},
		Spark:       &spark,
		Teardown:    &teardown,
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, err
	}

	if v := os.Getenv(EnvWebhookToken); v != "" {
		cfg.Credentials.WebhookToken = v
	}

	if v := os.Getenv(EnvBotToken); v != "" {
		cfg.Credentials.BotToken = v
	}

	return cfg, nil
}
