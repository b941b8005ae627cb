package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port    string
	BaseURL string // public base URL used to build gateway callback/return URLs

	DBDSN string

	Chapa ChapaConfig
	SMTP  SMTPConfig

	EmailFrom     string
	EmailFromName string

	NotifyQueueSize int
	NotifyWorkers   int
}

type ChapaConfig struct {
	BaseURL   string
	SecretKey string
}

type SMTPConfig struct {
	Host          string
	Port          string
	User          string
	Pass          string
	TLSMode       string // "", "starttls", "tls"
	SkipVerifyTLS bool
}

// Load reads configuration from the environment. DB_DSN and the Chapa
// credentials are required; everything else has a development default.
func Load() (Config, error) {
	cfg := Config{
		Port:            getenv("PORT", "8080"),
		BaseURL:         getenv("BASE_URL", "http://localhost:8080"),
		DBDSN:           os.Getenv("DB_DSN"),
		EmailFrom:       getenv("EMAIL_FROM", "no-reply@alxtravel.local"),
		EmailFromName:   getenv("EMAIL_FROM_NAME", "ALX Travel"),
		NotifyQueueSize: getint("NOTIFY_QUEUE_SIZE", 256),
		NotifyWorkers:   getint("NOTIFY_WORKERS", 4),
		Chapa: ChapaConfig{
			BaseURL:   getenv("CHAPA_BASE_URL", "https://api.chapa.co/v1"),
			SecretKey: os.Getenv("CHAPA_SECRET_KEY"),
		},
		SMTP: SMTPConfig{
			Host:          getenv("SMTP_HOST", "localhost"),
			Port:          getenv("SMTP_PORT", "1025"),
			User:          os.Getenv("SMTP_USER"),
			Pass:          os.Getenv("SMTP_PASS"),
			TLSMode:       os.Getenv("SMTP_TLS_MODE"),
			SkipVerifyTLS: os.Getenv("SMTP_SKIP_VERIFY_TLS") == "true",
		},
	}

	if cfg.DBDSN == "" {
		return Config{}, fmt.Errorf("config: DB_DSN is required")
	}
	if cfg.Chapa.SecretKey == "" {
		return Config{}, fmt.Errorf("config: CHAPA_SECRET_KEY is required")
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}
