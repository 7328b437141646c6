package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvProduction = "production"
	EnvSandbox    = "sandbox"

	ProductionBaseURL = "https://www.bdvail.com/"
	SandboxBaseURL    = "http://localhost:8080/"

	defaultDSN = "root:@tcp(127.0.0.1:3306)/travel_app?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
)

type Env struct {
	// client
	Environment string
	BaseURL     string
	HTTPTimeout time.Duration
	PrefsPath   string
	ContactRule string
	RequireTime bool
	LogLevel    string
	LogFormat   string
	LogFile     string

	// sandbox
	AppAddr       string
	GinMode       string
	DBDSN         string
	CORSOrigins   []string
	SweepSchedule string
}

// LoadEnv reads the process environment, after an optional .env file in the
// working directory. A missing .env is not an error.
func LoadEnv() Env {
	_ = godotenv.Load()

	env := Env{
		Environment:   strings.ToLower(getenv("BDVAIL_ENV", EnvProduction)),
		BaseURL:       getenv("BDVAIL_BASE_URL", ""),
		HTTPTimeout:   getDuration("BDVAIL_HTTP_TIMEOUT", 30*time.Second),
		PrefsPath:     getenv("BDVAIL_PREFS_PATH", ""),
		ContactRule:   strings.ToLower(getenv("BDVAIL_CONTACT_RULE", "phone")),
		RequireTime:   getBool("BDVAIL_REQUIRE_TIME", true),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		LogFormat:     getenv("LOG_FORMAT", "text"),
		LogFile:       getenv("LOG_FILE", ""),
		AppAddr:       getenv("APP_ADDR", ":8080"),
		GinMode:       getenv("GIN_MODE", ""),
		DBDSN:         getenv("DB_DSN", defaultDSN),
		SweepSchedule: getenv("STATUS_SWEEP_SCHEDULE", "@every 15m"),
	}

	if env.BaseURL == "" {
		env.BaseURL = ProductionBaseURL
		if env.Environment == EnvSandbox {
			env.BaseURL = SandboxBaseURL
		}
	}
	if env.PrefsPath == "" {
		env.PrefsPath = defaultPrefsPath()
	}
	if raw := getenv("CORS_ALLOWED_ORIGINS", ""); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSOrigins = append(env.CORSOrigins, o)
			}
		}
	}

	return env
}

func defaultPrefsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		dir = "."
	}
	return filepath.Join(dir, "bdvail", "preferences.yaml")
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getBool(key string, def bool) bool {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
