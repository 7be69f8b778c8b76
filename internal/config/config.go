package config

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"os"

	"github.com/joho/godotenv"

	"github.com/carevantage/staffing-service/internal/utils"
)

const (
	AppName     = "staffing-service"
	DefaultPort = "8084"
)

type Config struct {
	AppPort string

	// Database
	DBUrl string

	// Auth: this service only validates tokens issued elsewhere.
	RSAPublicKey *rsa.PublicKey

	// Notification channels; empty keys disable the channel.
	SendGridAPIKey   string
	TwilioAccountSID string
	TwilioAuthToken  string
	FromEmail        string
	FromPhone        string

	SeedTestData   bool
	RunExpirySweep bool
}

func LoadConfig() *Config {
	// .env is a local-dev convenience; absence is not an error.
	if err := godotenv.Load(); err == nil {
		utils.Logger.Info("Loaded environment from .env")
	}

	cfg := &Config{
		AppPort:          envOr("APP_PORT", DefaultPort),
		DBUrl:            os.Getenv("DATABASE_URL"),
		SendGridAPIKey:   os.Getenv("SENDGRID_API_KEY"),
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		FromEmail:        os.Getenv("NOTIFY_FROM_EMAIL"),
		FromPhone:        os.Getenv("NOTIFY_FROM_PHONE"),
		SeedTestData:     os.Getenv("SEED_TEST_DATA") == "true",
		RunExpirySweep:   os.Getenv("RUN_EXPIRY_SWEEP") != "false",
	}

	if cfg.DBUrl == "" {
		utils.Logger.Fatal("DATABASE_URL is required")
	}

	pub, err := parseRSAPublicKey(os.Getenv("JWT_PUBLIC_KEY"))
	if err != nil {
		utils.Logger.Fatal("Failed to parse JWT_PUBLIC_KEY: ", err)
	}
	cfg.RSAPublicKey = pub

	return cfg
}

// parseRSAPublicKey accepts a PEM block, optionally base64-wrapped for
// env-var friendliness.
func parseRSAPublicKey(raw string) (*rsa.PublicKey, error) {
	if raw == "" {
		return nil, errors.New("JWT_PUBLIC_KEY is required")
	}
	if decoded, err := base64.StdEncoding.DecodeString(raw); err == nil {
		raw = string(decoded)
	}
	block, _ := pem.Decode([]byte(raw))
	if block == nil {
		return nil, errors.New("no PEM block found")
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	pub, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("key is not RSA")
	}
	return pub, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
