package shared

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	RedisAddr   string // empty disables the discovery cache
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration

	OpenAIKey   string
	OpenAIBase  string
	OpenAIModel string

	AmadeusBase   string
	AmadeusID     string
	AmadeusSecret string
	AmadeusRPS    int

	OfferWorkers int
	AffiliateID  string
}

// Load reads the optional dotenv file (DOTENV_PATH, default .env) and then the environment.
// Variables already set in the environment win over the file.
func Load() Config {
	path := env("DOTENV_PATH", ".env")
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Str("path", path).Msg("dotenv file not loaded")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ""),
		RedisAddr:     env("REDIS_ADDR", ""),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		OpenAIKey:     env("OPENAI_API_KEY", ""),
		OpenAIBase:    env("OPENAI_BASE_URL", ""),
		OpenAIModel:   env("OPENAI_MODEL", "gpt-4o-mini"),
		AmadeusBase:   env("AMADEUS_BASE_URL", "https://test.api.amadeus.com"),
		AmadeusID:     env("AMADEUS_CLIENT_ID", ""),
		AmadeusSecret: env("AMADEUS_CLIENT_SECRET", ""),
		AmadeusRPS:    atoi("AMADEUS_RPS", 10),
		OfferWorkers:  atoi("OFFER_WORKERS", 4),
		AffiliateID:   env("BOOKING_AFFILIATE_ID", ""),
	}
	if c.OpenAIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is empty")
	}
	if c.AmadeusID == "" || c.AmadeusSecret == "" {
		log.Warn().Msg("AMADEUS_CLIENT_ID / AMADEUS_CLIENT_SECRET are empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
