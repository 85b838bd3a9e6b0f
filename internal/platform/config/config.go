package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StorageLocal = "local"
	StorageOSS   = "oss"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	MigrationsPath    string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Owner bootstrap
	OwnerUsername string
	OwnerPassword string
	OwnerName     string

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`

	CORSAllowedOrigins []string
	LoginRateLimit     string // ulule formatted rate, e.g. "5-M"

	// WhatsApp gateway
	WhatsAppAPIURL   string
	WhatsAppAPIToken string
	WhatsAppTimeout  time.Duration

	// File storage
	StorageDriver        string
	StorageLocalDir      string
	StoragePublicBaseURL string
	OSSEndpoint          string
	OSSAccessKeyID       string
	OSSAccessKeySecret   string
	OSSBucket            string

	PosthogAPIKey   string
	PosthogEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "velotrack")
	viper.SetDefault("OWNER_USERNAME", "owner")
	viper.SetDefault("OWNER_PASSWORD", "")
	viper.SetDefault("OWNER_NAME", "Owner")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "postmessage")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("WHATSAPP_API_URL", "https://api.fonnte.com/send")
	viper.SetDefault("WHATSAPP_API_TOKEN", "")
	viper.SetDefault("WHATSAPP_TIMEOUT", "30s")
	viper.SetDefault("STORAGE_DRIVER", StorageLocal)
	viper.SetDefault("STORAGE_LOCAL_DIR", "./storage")
	viper.SetDefault("STORAGE_PUBLIC_BASE_URL", "http://localhost:8080/files")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:          viper.GetString("PGSQL_URL"),
		Port:                 viper.GetString("PORT"),
		IsProduction:         viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:        viper.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:       viper.GetString("MIGRATIONS_PATH"),
		JWTSecret:            viper.GetString("JWT_SECRET"),
		JWTIssuer:            viper.GetString("JWT_ISSUER"),
		OwnerUsername:        viper.GetString("OWNER_USERNAME"),
		OwnerPassword:        viper.GetString("OWNER_PASSWORD"),
		OwnerName:            viper.GetString("OWNER_NAME"),
		GoogleClientID:       viper.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:   viper.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:    viper.GetString("GOOGLE_REDIRECT_URL"),
		FrontendBaseURL:      viper.GetString("FRONTEND_BASE_URL"),
		LoginRateLimit:       viper.GetString("LOGIN_RATE_LIMIT"),
		WhatsAppAPIURL:       viper.GetString("WHATSAPP_API_URL"),
		WhatsAppAPIToken:     viper.GetString("WHATSAPP_API_TOKEN"),
		StorageDriver:        strings.ToLower(viper.GetString("STORAGE_DRIVER")),
		StorageLocalDir:      viper.GetString("STORAGE_LOCAL_DIR"),
		StoragePublicBaseURL: strings.TrimRight(viper.GetString("STORAGE_PUBLIC_BASE_URL"), "/"),
		OSSEndpoint:          viper.GetString("OSS_ENDPOINT"),
		OSSAccessKeyID:       viper.GetString("OSS_ACCESS_KEY_ID"),
		OSSAccessKeySecret:   viper.GetString("OSS_ACCESS_KEY_SECRET"),
		OSSBucket:            viper.GetString("OSS_BUCKET"),
		PosthogAPIKey:        viper.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:      viper.GetString("POSTHOG_ENDPOINT"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = "velotrack-dev-secret-change-me"
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", 24*time.Hour)
	cfg.WhatsAppTimeout = durationOrDefault("WHATSAPP_TIMEOUT", 30*time.Second)

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{cfg.FrontendBaseURL}
	}

	switch cfg.StorageDriver {
	case StorageLocal:
	case StorageOSS:
		if cfg.OSSEndpoint == "" || cfg.OSSBucket == "" || cfg.OSSAccessKeyID == "" {
			return nil, fmt.Errorf("STORAGE_DRIVER=oss requires OSS_ENDPOINT, OSS_BUCKET and OSS credentials")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.OwnerPassword == "" {
		log.Println("Warning: OWNER_PASSWORD not set. The owner account can only sign in with Google.")
	}
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}
	if cfg.WhatsAppAPIToken == "" {
		log.Println("Warning: WHATSAPP_API_TOKEN not set. WhatsApp delivery will fail.")
	}

	return cfg, nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
}
