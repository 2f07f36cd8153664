package config

import "os"

// Config holds the service settings, all sourced from the environment.
type Config struct {
	Addr       string
	SchemaURL  string
	CORSOrigin string
	// Snapshot storage. Redis is used when RedisURL is set; otherwise
	// DatabaseURL selects the Postgres backend.
	RedisURL    string
	DatabaseURL string
	// Meilisearch. Question search falls back to an in-memory scan when
	// unset or unreachable.
	MeiliURL       string
	MeiliMasterKey string
	// Version tag stamped on final response documents.
	SubmissionVersion string
}

func Load() Config {
	return Config{
		Addr:              getenv("API_ADDR", ":8788"),
		SchemaURL:         getenv("FORMWIZARD_SCHEMA_URL", "./questions.json"),
		CORSOrigin:        getenv("FORMWIZARD_CORS_ORIGIN", "*"),
		RedisURL:          getenv("REDIS_URL", "redis://localhost:6379/0"),
		DatabaseURL:       getenv("DATABASE_URL", ""),
		MeiliURL:          getenv("MEILI_URL", ""),
		MeiliMasterKey:    getenv("MEILI_MASTER_KEY", ""),
		SubmissionVersion: getenv("FORMWIZARD_SUBMISSION_VERSION", "v1.0"),
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
