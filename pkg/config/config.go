package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/anonto42/community-connect/backend/pkg/logger"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port     string `yaml:"port"`
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level"`

	PostgresConnStr string `yaml:"postgres_conn_str"`
	MongoURI        string `yaml:"mongo_uri"`
	MongoDatabase   string `yaml:"mongo_database"`
	PostsBackend    string `yaml:"posts_backend"` // postgres or mongo
	AutoMigrate     bool   `yaml:"auto_migrate"`

	AuthProvider            string `yaml:"auth_provider"` // jwt or firebase
	JWTSecret               string `yaml:"jwt_secret"`
	FirebaseCredentialsPath string `yaml:"firebase_credentials_path"`

	StorageProvider string `yaml:"storage_provider"` // supabase or firebase
	SupabaseURL     string `yaml:"supabase_url"`
	SupabaseKey     string `yaml:"supabase_key"`
	MediaBucket     string `yaml:"media_bucket"`

	NotificationsMode string `yaml:"notifications_mode"` // rpc or table
	MetricsPort       string `yaml:"metrics_port"`
}

// Load reads an optional YAML file named by CONFIG_FILE, then lets the
// environment (and a .env file, if present) override it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file found, assuming environment variables are set.")
	}

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Env = getEnv("ENV", cfg.Env)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.PostgresConnStr = getEnv("POSTGRES_CONN_STR", cfg.PostgresConnStr)
	cfg.MongoURI = getEnv("MONGO_URI", cfg.MongoURI)
	cfg.MongoDatabase = getEnv("MONGO_DATABASE", cfg.MongoDatabase)
	cfg.PostsBackend = getEnv("POSTS_BACKEND", cfg.PostsBackend)
	cfg.AutoMigrate = getEnvBool("AUTO_MIGRATE", cfg.AutoMigrate)
	cfg.AuthProvider = getEnv("AUTH_PROVIDER", cfg.AuthProvider)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.FirebaseCredentialsPath = getEnv("FIREBASE_CREDENTIALS_PATH", cfg.FirebaseCredentialsPath)
	cfg.StorageProvider = getEnv("STORAGE_PROVIDER", cfg.StorageProvider)
	cfg.SupabaseURL = getEnv("SUPABASE_URL", cfg.SupabaseURL)
	cfg.SupabaseKey = getEnv("SUPABASE_KEY", cfg.SupabaseKey)
	cfg.MediaBucket = getEnv("MEDIA_BUCKET", cfg.MediaBucket)
	cfg.NotificationsMode = getEnv("NOTIFICATIONS_MODE", cfg.NotificationsMode)
	cfg.MetricsPort = getEnv("METRICS_PORT", cfg.MetricsPort)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Port:              "8080",
		Env:               "development",
		LogLevel:          "info",
		MongoDatabase:     "community",
		PostsBackend:      "postgres",
		AuthProvider:      "jwt",
		StorageProvider:   "supabase",
		MediaBucket:       "post-media",
		NotificationsMode: "rpc",
		MetricsPort:       "9090",
	}
}

// Validate checks that every selected backend has what it needs
func (c *Config) Validate() error {
	if c.PostgresConnStr == "" {
		return fmt.Errorf("POSTGRES_CONN_STR is required")
	}

	switch c.PostsBackend {
	case "postgres":
	case "mongo":
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when POSTS_BACKEND=mongo")
		}
	default:
		return fmt.Errorf("unknown POSTS_BACKEND %q", c.PostsBackend)
	}

	switch c.AuthProvider {
	case "jwt":
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_PROVIDER=jwt")
		}
	case "firebase":
		if c.FirebaseCredentialsPath == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required when AUTH_PROVIDER=firebase")
		}
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER %q", c.AuthProvider)
	}

	switch c.StorageProvider {
	case "supabase":
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_KEY are required when STORAGE_PROVIDER=supabase")
		}
	case "firebase":
		if c.FirebaseCredentialsPath == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required when STORAGE_PROVIDER=firebase")
		}
	default:
		return fmt.Errorf("unknown STORAGE_PROVIDER %q", c.StorageProvider)
	}

	if c.NotificationsMode != "rpc" && c.NotificationsMode != "table" {
		return fmt.Errorf("unknown NOTIFICATIONS_MODE %q", c.NotificationsMode)
	}
	return nil
}

// UsesFirebase reports whether any component needs the firebase app
func (c *Config) UsesFirebase() bool {
	return c.AuthProvider == "firebase" || c.StorageProvider == "firebase"
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
