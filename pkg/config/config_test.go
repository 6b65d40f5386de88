package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.Port != "8080" {
		t.Errorf("Expected Port to be 8080, got %s", cfg.Port)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.Deals.DefaultRegion != "41480" {
		t.Errorf("Expected default region 41480, got %s", cfg.Deals.DefaultRegion)
	}

	if cfg.Deals.AreaTolerance != 0.5 {
		t.Errorf("Expected area tolerance 0.5, got %v", cfg.Deals.AreaTolerance)
	}

	if cfg.Deals.CacheTTL != 10*time.Minute {
		t.Errorf("Expected deals cache TTL 10m, got %v", cfg.Deals.CacheTTL)
	}

	if len(cfg.Deals.NeighborhoodKeywords) != len(DefaultNeighborhoodKeywords) {
		t.Errorf("Expected default keywords, got %v", cfg.Deals.NeighborhoodKeywords)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MOLIT_API_KEY", "secret")
	t.Setenv("MOLIT_API_BASE", "https://example.com/api/")
	t.Setenv("DEALS_MAX_AREA_SQM", "59")
	t.Setenv("DEALS_NEIGHBORHOOD_KEYWORDS", "운정, 야당동 ,,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected Port to be 9000, got %s", cfg.Port)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}

	if !cfg.HasMOLITKey() {
		t.Error("Expected MOLIT key to be set")
	}

	if cfg.MOLIT.BaseURL != "https://example.com/api" {
		t.Errorf("Expected trailing slash trimmed, got %s", cfg.MOLIT.BaseURL)
	}

	if cfg.Deals.MaxAreaSqm != 59 {
		t.Errorf("Expected MaxAreaSqm 59, got %v", cfg.Deals.MaxAreaSqm)
	}

	want := []string{"운정", "야당동"}
	if len(cfg.Deals.NeighborhoodKeywords) != len(want) {
		t.Fatalf("Expected keywords %v, got %v", want, cfg.Deals.NeighborhoodKeywords)
	}
	for i := range want {
		if cfg.Deals.NeighborhoodKeywords[i] != want[i] {
			t.Errorf("keyword[%d] = %q, want %q", i, cfg.Deals.NeighborhoodKeywords[i], want[i])
		}
	}
}

func TestValidateInvalidEnv(t *testing.T) {
	t.Setenv("ENV", "invalid")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when ENV is invalid, got nil")
	}
}

func TestValidateInvalidPropertyType(t *testing.T) {
	t.Setenv("DEFAULT_PROPERTY_TYPE", "castle")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when DEFAULT_PROPERTY_TYPE is invalid, got nil")
	}
}

func TestValidateNegativeTolerance(t *testing.T) {
	t.Setenv("DEALS_AREA_TOLERANCE", "-1")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when tolerance is negative, got nil")
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	os.Setenv("TEST_DURATION", "2h")
	defer os.Unsetenv("TEST_DURATION")

	duration := getEnvAsDuration("TEST_DURATION", "1h")
	expected := 2 * time.Hour

	if duration != expected {
		t.Errorf("Expected duration to be %v, got %v", expected, duration)
	}
}

func TestGetEnvAsDurationFallback(t *testing.T) {
	os.Setenv("TEST_DURATION", "soon")
	defer os.Unsetenv("TEST_DURATION")

	if got := getEnvAsDuration("TEST_DURATION", "1h"); got != time.Hour {
		t.Errorf("Expected fallback 1h, got %v", got)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	os.Setenv("TEST_INT", "100")
	defer os.Unsetenv("TEST_INT")

	value := getEnvAsInt("TEST_INT", 50)
	if value != 100 {
		t.Errorf("Expected value to be 100, got %d", value)
	}
}

func TestGetEnvAsFloat(t *testing.T) {
	os.Setenv("TEST_FLOAT", "3.25")
	defer os.Unsetenv("TEST_FLOAT")

	if got := getEnvAsFloat("TEST_FLOAT", 1); got != 3.25 {
		t.Errorf("Expected value to be 3.25, got %v", got)
	}
}

func TestGetEnvAsBool(t *testing.T) {
	os.Setenv("TEST_BOOL", "true")
	defer os.Unsetenv("TEST_BOOL")

	value := getEnvAsBool("TEST_BOOL", false)
	if value != true {
		t.Errorf("Expected value to be true, got %v", value)
	}
}

func TestLoadFile(t *testing.T) {
	path := t.TempDir() + "/test.env"
	if err := os.WriteFile(path, []byte("NEWS_MAX_ARTICLES=5\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("NEWS_MAX_ARTICLES") })

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.News.MaxArticles != 5 {
		t.Errorf("Expected MaxArticles 5 from env file, got %d", cfg.News.MaxArticles)
	}

	if _, err := LoadFile(path + ".missing"); err == nil {
		t.Error("Expected error for missing env file")
	}
}
