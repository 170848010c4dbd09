package config

import "os"

type Config struct {
	Port           string
	TourizioDBHost string
	TourizioDBPort string
	CacheHost      string
	CachePort      string
	JaegerAddress  string

	MailMode     string
	SMTPHost     string
	SMTPPort     string
	SMTPEmail    string
	SMTPPassword string
}

func NewConfig() *Config {
	return &Config{
		Port:           os.Getenv("TOURIZIO_SERVICE_PORT"),
		TourizioDBHost: os.Getenv("TOURIZIO_DB_HOST"),
		TourizioDBPort: os.Getenv("TOURIZIO_DB_PORT"),
		CacheHost:      os.Getenv("TOURIZIO_CACHE_HOST"),
		CachePort:      os.Getenv("TOURIZIO_CACHE_PORT"),
		JaegerAddress:  os.Getenv("JAEGER_ADDRESS"),

		MailMode:     os.Getenv("MAIL_MODE"),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     os.Getenv("SMTP_PORT"),
		SMTPEmail:    os.Getenv("SMTP_AUTH_MAIL"),
		SMTPPassword: os.Getenv("SMTP_AUTH_PASSWORD"),
	}
}
