package app

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Dee1911/Aspire.can/internal/observability"
	"github.com/Dee1911/Aspire.can/internal/platform/gemini"
	"github.com/Dee1911/Aspire.can/internal/platform/logger"
	"github.com/Dee1911/Aspire.can/internal/platform/openai"
)

const (
	StoreMemory    = "memory"
	StoreSQLite    = "sqlite"
	StorePostgres  = "postgres"
	StoreFirestore = "firestore"

	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	// ProviderNone leaves recommendation flows failing with a generation error.
	ProviderNone = "none"
)

const devJWTSecret = "aspire-dev-secret"

type Config struct {
	Port    string
	Env     string
	LogMode string

	JWTSecretKey   string
	JWTIssuer      string
	AccessTokenTTL time.Duration

	Store      StoreConfig
	Generation GenerationConfig

	// DefaultChecklist seeds new applications without tasks with the
	// default checklist.
	DefaultChecklist bool

	CORSAllowedOrigins []string
	MetricsEnabled     bool
	Otel               observability.OtelConfig

	ShutdownTimeout time.Duration
}

type StoreConfig struct {
	Driver     string
	SQLitePath string
	Postgres   PostgresConfig

	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirestoreDatabaseID      string
}

type PostgresConfig struct {
	DSN      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// URL returns DSN when set, otherwise a postgres:// URL built from the parts.
func (p PostgresConfig) URL() string {
	if strings.TrimSpace(p.DSN) != "" {
		return p.DSN
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     p.Host + ":" + p.Port,
		Path:     "/" + p.Name,
		RawQuery: "sslmode=" + p.SSLMode,
	}
	return u.String()
}

type GenerationConfig struct {
	Provider string
	OpenAI   openai.Config
	Gemini   gemini.Config
}

func (c Config) Production() bool {
	switch strings.ToLower(c.Env) {
	case "prod", "production":
		return true
	}
	return false
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_MODE", "development")
	v.SetDefault("JWT_ISSUER", "aspire")
	v.SetDefault("ACCESS_TOKEN_TTL", 86400)
	v.SetDefault("SHUTDOWN_TIMEOUT", 15)

	v.SetDefault("STORE_DRIVER", StoreMemory)
	v.SetDefault("SQLITE_PATH", "aspire.db")
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_NAME", "aspire")
	v.SetDefault("POSTGRES_SSLMODE", "disable")

	v.SetDefault("GENERATION_PROVIDER", ProviderOpenAI)
	v.SetDefault("OPENAI_BASE_URL", openai.DefaultBaseURL)
	v.SetDefault("OPENAI_MODEL", openai.DefaultModel)
	v.SetDefault("OPENAI_TIMEOUT_SECONDS", 60)
	v.SetDefault("OPENAI_MAX_RETRIES", 0)
	v.SetDefault("GEMINI_MODEL", gemini.DefaultModel)

	v.SetDefault("APPLICATION_DEFAULT_CHECKLIST", true)
	v.SetDefault("METRICS_ENABLED", true)

	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_SERVICE_NAME", "aspire")
	v.SetDefault("OTEL_SAMPLING_RATIO", 1.0)
	return v
}

// LoadConfig reads .env (if present), an optional ASPIRE_CONFIG_FILE and the
// process environment, in increasing precedence.
func LoadConfig(log *logger.Logger) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("Failed to load .env", "error", err)
	}

	v := newViper()
	if path := strings.TrimSpace(os.Getenv("ASPIRE_CONFIG_FILE")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
		log.Info("Loaded config file", "path", v.ConfigFileUsed())
	}
	return configFrom(v, log)
}

func configFrom(v *viper.Viper, log *logger.Logger) (Config, error) {
	cfg := Config{
		Port:           strings.TrimSpace(v.GetString("PORT")),
		Env:            strings.TrimSpace(v.GetString("ENV")),
		LogMode:        strings.TrimSpace(v.GetString("LOG_MODE")),
		JWTSecretKey:   strings.TrimSpace(v.GetString("JWT_SECRET_KEY")),
		JWTIssuer:      strings.TrimSpace(v.GetString("JWT_ISSUER")),
		AccessTokenTTL: seconds(v, "ACCESS_TOKEN_TTL"),
		Store: StoreConfig{
			Driver:     strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
			SQLitePath: strings.TrimSpace(v.GetString("SQLITE_PATH")),
			Postgres: PostgresConfig{
				DSN:      strings.TrimSpace(v.GetString("POSTGRES_DSN")),
				Host:     v.GetString("POSTGRES_HOST"),
				Port:     v.GetString("POSTGRES_PORT"),
				User:     v.GetString("POSTGRES_USER"),
				Password: v.GetString("POSTGRES_PASSWORD"),
				Name:     v.GetString("POSTGRES_NAME"),
				SSLMode:  v.GetString("POSTGRES_SSLMODE"),
			},
			FirestoreProjectID:       strings.TrimSpace(v.GetString("FIRESTORE_PROJECT_ID")),
			FirestoreCredentialsFile: strings.TrimSpace(v.GetString("FIRESTORE_CREDENTIALS_FILE")),
			FirestoreDatabaseID:      strings.TrimSpace(v.GetString("FIRESTORE_DATABASE_ID")),
		},
		Generation: GenerationConfig{
			Provider: strings.ToLower(strings.TrimSpace(v.GetString("GENERATION_PROVIDER"))),
			OpenAI: openai.Config{
				APIKey:     strings.TrimSpace(v.GetString("OPENAI_API_KEY")),
				BaseURL:    strings.TrimSpace(v.GetString("OPENAI_BASE_URL")),
				Model:      strings.TrimSpace(v.GetString("OPENAI_MODEL")),
				Timeout:    seconds(v, "OPENAI_TIMEOUT_SECONDS"),
				MaxRetries: v.GetInt("OPENAI_MAX_RETRIES"),
			},
			Gemini: gemini.Config{
				APIKey:  strings.TrimSpace(v.GetString("GEMINI_API_KEY")),
				Model:   strings.TrimSpace(v.GetString("GEMINI_MODEL")),
				BaseURL: strings.TrimSpace(v.GetString("GEMINI_BASE_URL")),
			},
		},
		DefaultChecklist:   v.GetBool("APPLICATION_DEFAULT_CHECKLIST"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		MetricsEnabled:     v.GetBool("METRICS_ENABLED"),
		Otel: observability.OtelConfig{
			Enabled:     v.GetBool("OTEL_ENABLED"),
			ServiceName: strings.TrimSpace(v.GetString("OTEL_SERVICE_NAME")),
			Environment: strings.TrimSpace(v.GetString("ENV")),
			Version:     strings.TrimSpace(v.GetString("OTEL_SERVICE_VERSION")),
			Endpoint:    strings.TrimSpace(v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT")),
			Headers:     v.GetString("OTEL_EXPORTER_OTLP_HEADERS"),
			Insecure:    v.GetBool("OTEL_EXPORTER_OTLP_INSECURE"),
			SampleRatio: v.GetFloat64("OTEL_SAMPLING_RATIO"),
		},
		ShutdownTimeout: seconds(v, "SHUTDOWN_TIMEOUT"),
	}

	if raw := strings.TrimSpace(v.GetString("OPENAI_TEMPERATURE")); raw != "" {
		t, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Config{}, fmt.Errorf("OPENAI_TEMPERATURE: %w", err)
		}
		cfg.Generation.OpenAI.Temperature = &t
	}

	switch cfg.Store.Driver {
	case StoreMemory, StoreSQLite, StorePostgres:
	case StoreFirestore:
		if cfg.Store.FirestoreProjectID == "" {
			return Config{}, fmt.Errorf("STORE_DRIVER=firestore requires FIRESTORE_PROJECT_ID")
		}
	default:
		return Config{}, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.Store.Driver)
	}

	switch cfg.Generation.Provider {
	case ProviderOpenAI, ProviderGemini, ProviderNone:
	default:
		return Config{}, fmt.Errorf("unsupported GENERATION_PROVIDER %q", cfg.Generation.Provider)
	}

	if cfg.JWTSecretKey == "" {
		if cfg.Production() {
			return Config{}, fmt.Errorf("JWT_SECRET_KEY is required in production")
		}
		log.Warn("JWT_SECRET_KEY not set; using development secret")
		cfg.JWTSecretKey = devJWTSecret
	}
	return cfg, nil
}

func seconds(v *viper.Viper, key string) time.Duration {
	n := v.GetInt(key)
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
