package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"listing/internal/utils"
)

const (
	defaultAppAddr        = ":8080"
	defaultDataSource     = "data.json"
	defaultMySQLTable     = "users"
	defaultPageSize       = 20
	defaultMaxPageSize    = 200
	defaultRateLimitRPS   = 20
	defaultRateLimitBurst = 40
	defaultLogLevel       = "info"
	defaultLoadTimeout    = 30 * time.Second

	// DefaultProfileURLTemplate links a record id to its public profile page.
	DefaultProfileURLTemplate = "https://men-esthe.jp/therapist.php?id=%s"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

type Env struct {
	AppAddr            string
	GinMode            string
	DataSource         string
	MySQLDSN           string
	MySQLTable         string
	AWSRegion          string
	DefaultPageSize    int
	MaxPageSize        int
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
	ProfileURLTemplate string
	LogLevel           string
	PDFFontPath        string
	LoadTimeout        time.Duration
}

// LoadDotEnv loads variables from the given .env files (default ".env").
// A missing default file is not an error; existing variables win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}
	return godotenv.Load(paths...)
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = defaultAppAddr
	}

	origins := defaultCORSOrigins
	if env := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); env != "" {
		origins = utils.SplitList(env)
	}

	return Env{
		AppAddr:            appAddr,
		GinMode:            strings.TrimSpace(os.Getenv("GIN_MODE")),
		DataSource:         stringEnv("DATA_SOURCE", defaultDataSource),
		MySQLDSN:           strings.TrimSpace(os.Getenv("MYSQL_DSN")),
		MySQLTable:         stringEnv("MYSQL_TABLE", defaultMySQLTable),
		AWSRegion:          strings.TrimSpace(os.Getenv("AWS_REGION")),
		DefaultPageSize:    intEnv("DEFAULT_PAGE_SIZE", defaultPageSize),
		MaxPageSize:        intEnv("MAX_PAGE_SIZE", defaultMaxPageSize),
		CORSAllowedOrigins: origins,
		RateLimitRPS:       floatEnv("RATE_LIMIT_RPS", defaultRateLimitRPS),
		RateLimitBurst:     intEnv("RATE_LIMIT_BURST", defaultRateLimitBurst),
		ProfileURLTemplate: stringEnv("PROFILE_URL_TEMPLATE", DefaultProfileURLTemplate),
		LogLevel:           stringEnv("LOG_LEVEL", defaultLogLevel),
		PDFFontPath:        strings.TrimSpace(os.Getenv("PDF_FONT_PATH")),
		LoadTimeout:        durationEnv("LOAD_TIMEOUT", defaultLoadTimeout),
	}
}

func stringEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		utils.LogWarn("", "config", "parse_env", "invalid integer, using default", zap.String("key", key))
		return def
	}
	return n
}

func floatEnv(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		utils.LogWarn("", "config", "parse_env", "invalid number, using default", zap.String("key", key))
		return def
	}
	return f
}

func durationEnv(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		utils.LogWarn("", "config", "parse_env", "invalid duration, using default", zap.String("key", key))
		return def
	}
	return d
}
