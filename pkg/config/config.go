package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Redis
	Redis RedisConfig

	// External APIs
	MOLIT  MOLITConfig
	Market MarketConfig
	News   NewsConfig

	// Deals pipeline
	Deals DealsConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// MOLITConfig holds 국토교통부 실거래가 API configuration
type MOLITConfig struct {
	BaseURL    string
	ServiceKey string
	NumOfRows  int
	RatePerSec int // 로컬 요청 속도 제한
	DailyLimit int // 공공데이터포털 일일 트래픽 (Redis 사용 시)
}

// MarketConfig holds market indicator configuration
type MarketConfig struct {
	FXURL       string
	CacheTTL    time.Duration
	KoreaBase   float64 // 한국 기준금리
	KoreaSource string
	USBase      float64 // 미국 기준금리
	USSource    string
}

// NewsConfig holds RSS news configuration
type NewsConfig struct {
	CacheTTL    time.Duration
	Window      time.Duration
	MaxArticles int
}

// DealsConfig holds deal pipeline policy values
type DealsConfig struct {
	DefaultRegion        string
	DefaultPropertyType  string
	MaxAreaSqm           float64
	AreaTolerance        float64
	NeighborhoodKeywords []string
	CacheTTL             time.Duration
	MetadataFile         string // 단지 메타데이터 YAML (선택)
}

// DefaultNeighborhoodKeywords are the 운정신도시 keywords used when none are configured
var DefaultNeighborhoodKeywords = []string{
	"운정", "목동동", "야당동", "동패동", "와동동", "다율동", "당하동", "상지석동",
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit .env path (CLI --config)
func LoadFile(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else {
		loadEnvFile()
	}

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		MOLIT: MOLITConfig{
			BaseURL:    strings.TrimSuffix(getEnv("MOLIT_API_BASE", "https://api.odcloud.kr/api"), "/"),
			ServiceKey: getEnv("MOLIT_API_KEY", ""),
			NumOfRows:  getEnvAsInt("MOLIT_NUM_OF_ROWS", 50),
			RatePerSec: getEnvAsInt("MOLIT_RATE_PER_SEC", 5),
			DailyLimit: getEnvAsInt("MOLIT_DAILY_LIMIT", 1000),
		},

		Market: MarketConfig{
			FXURL:       getEnv("FX_API_URL", "https://api.exchangerate.host/latest?base=USD&symbols=KRW"),
			CacheTTL:    getEnvAsDuration("MARKET_CACHE_TTL", "1h"),
			KoreaBase:   getEnvAsFloat("KOREA_BASE_RATE", 3.5),
			KoreaSource: getEnv("KOREA_BASE_RATE_SOURCE", "한국은행 (2025-02 기준)"),
			USBase:      getEnvAsFloat("US_BASE_RATE", 5.25),
			USSource:    getEnv("US_BASE_RATE_SOURCE", "미 연준 (2025-03 FOMC)"),
		},

		News: NewsConfig{
			CacheTTL:    getEnvAsDuration("NEWS_CACHE_TTL", "30m"),
			Window:      getEnvAsDuration("NEWS_WINDOW", "168h"),
			MaxArticles: getEnvAsInt("NEWS_MAX_ARTICLES", 8),
		},

		Deals: DealsConfig{
			DefaultRegion:        getEnv("DEFAULT_REGION_CODE", "41480"),
			DefaultPropertyType:  getEnv("DEFAULT_PROPERTY_TYPE", "apartment"),
			MaxAreaSqm:           getEnvAsFloat("DEALS_MAX_AREA_SQM", 84),
			AreaTolerance:        getEnvAsFloat("DEALS_AREA_TOLERANCE", 0.5),
			NeighborhoodKeywords: getEnvAsList("DEALS_NEIGHBORHOOD_KEYWORDS", DefaultNeighborhoodKeywords),
			CacheTTL:             getEnvAsDuration("DEALS_CACHE_TTL", "10m"),
			MetadataFile:         getEnv("COMPLEX_METADATA_FILE", ""),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are usable
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	switch c.Deals.DefaultPropertyType {
	case "apartment", "officetel", "house":
	default:
		return fmt.Errorf("DEFAULT_PROPERTY_TYPE must be one of: apartment, officetel, house")
	}

	if c.Deals.AreaTolerance < 0 {
		return fmt.Errorf("DEALS_AREA_TOLERANCE must not be negative")
	}

	if c.Deals.CacheTTL <= 0 || c.Market.CacheTTL <= 0 || c.News.CacheTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}

	if c.MOLIT.NumOfRows <= 0 {
		return fmt.Errorf("MOLIT_NUM_OF_ROWS must be positive")
	}

	return nil
}

// HasMOLITKey reports whether live MOLIT calls are possible
func (c *Config) HasMOLITKey() bool {
	return c.MOLIT.ServiceKey != ""
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
		"backend/.env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

// getEnvAsList splits a comma separated value, dropping blanks
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return append([]string(nil), defaultValue...)
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), defaultValue...)
	}
	return out
}
