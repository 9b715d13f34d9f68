package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Firestore FirestoreConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Survey    SurveyConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// FirestoreConfig holds document-store connection values.
type FirestoreConfig struct {
	ProjectID    string
	Database     string
	EmulatorHost string

	UsersCollection         string
	EmailsCollection        string
	ConversationsCollection string
	ResponsesCollection     string
	ParticipantsCollection  string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// SurveyConfig bounds per-question rating values.
type SurveyConfig struct {
	RatingMin int
	RatingMax int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "survey-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Firestore: FirestoreConfig{
			ProjectID:               os.Getenv("GCP_PROJECT_ID"),
			Database:                getEnv("FIRESTORE_DATABASE", "(default)"),
			EmulatorHost:            os.Getenv("FIRESTORE_EMULATOR_HOST"),
			UsersCollection:         getEnv("FIRESTORE_USERS_COLLECTION", "users"),
			EmailsCollection:        getEnv("FIRESTORE_EMAILS_COLLECTION", "emails"),
			ConversationsCollection: getEnv("FIRESTORE_CONVERSATIONS_COLLECTION", "conversations"),
			ResponsesCollection:     getEnv("FIRESTORE_RESPONSES_COLLECTION", "survey_responses"),
			ParticipantsCollection:  getEnv("FIRESTORE_PARTICIPANTS_COLLECTION", "participants"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 30),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Survey: SurveyConfig{
			RatingMin: getEnvAsInt("SURVEY_RATING_MIN", 1),
			RatingMax: getEnvAsInt("SURVEY_RATING_MAX", 7),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
