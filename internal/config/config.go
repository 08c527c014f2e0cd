package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port            string
	Environment     string
	SupabaseURL     string
	SupabaseAnonKey string
	SupabaseKey     string // service role key, used by the admin client
	SupabaseDBURL   string
	SupabaseJWKSURL string // Constructed from SupabaseURL + /auth/v1/.well-known/jwks.json
	CORSOrigins     string
	TablePrefix     string
	// Render service
	RenderURL          string
	RenderPollInterval time.Duration
	RenderTimeout      time.Duration // 0 = poll until the job finishes or is cancelled
	ExportDir          string
	ExportRetention    time.Duration // finished exports and their files are dropped after this
	// Stock media
	JamendoClientID string
	PixabayAPIKey   string
	RedisURL        string
	MediaCacheTTL   time.Duration
	// Logging
	LogDir      string
	LogMaxFiles int
	Debug       bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	supabaseURL := strings.TrimRight(getEnv("SUPABASE_URL", ""), "/")

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     env,
		SupabaseURL:     supabaseURL,
		SupabaseAnonKey: getEnv("SUPABASE_ANON_KEY", ""),
		SupabaseKey:     getEnv("SUPABASE_KEY", ""),
		SupabaseDBURL:   getEnv("SUPABASE_DB_URL", ""),
		SupabaseJWKSURL: supabaseURL + "/auth/v1/.well-known/jwks.json",
		CORSOrigins:     getEnv("CORS_ORIGINS", "http://localhost:5173"),
		TablePrefix:     getTablePrefix(env),

		RenderURL:          strings.TrimRight(getEnv("RENDER_URL", "https://api.x-eight.xyz"), "/"),
		RenderPollInterval: getDuration("RENDER_POLL_INTERVAL", time.Second),
		RenderTimeout:      getDuration("RENDER_TIMEOUT", 0),
		ExportDir:          getEnv("EXPORT_DIR", os.TempDir()),
		ExportRetention:    getDuration("EXPORT_RETENTION", time.Hour),

		JamendoClientID: getEnv("JAMENDO_CLIENT_ID", ""),
		PixabayAPIKey:   getEnv("PIXABAY_API_KEY", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
		MediaCacheTTL:   getDuration("MEDIA_CACHE_TTL", 10*time.Minute),

		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: getInt("LOG_MAX_FILES", 10),
		Debug:       getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment.
// TABLE_PREFIX overrides it.
func getTablePrefix(env string) string {
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
