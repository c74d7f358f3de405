package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Redis keys
const BENEFITS_GEO_KEY_V1 = "benefits_geo_v1"
const BENEFITS_GEO_PLACE_MEMBER_FORMAT_V1 = "benefits_geo_place_v1:%s"

// Catalog refresher
const CATALOG_PAGE_SIZE_HINT = 50
const SHUTDOWN_TIMEOUT_SECONDS = 5

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const BENEFITS_CATALOG_RESOURCE = "benefits_catalog.json"
const BENEFIT_STATIC_RESOURCE = "benefit_static.json"

// Config holds every runtime setting. Values come from config.yaml, then
// the environment, then the defaults below.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	CatalogBaseURL        string `mapstructure:"CATALOG_BASE_URL"`
	CatalogAPIKey         string `mapstructure:"CATALOG_API_KEY"`
	CatalogRefreshMinutes int    `mapstructure:"CATALOG_REFRESH_MINUTES"`
	CatalogMaxPages       int    `mapstructure:"CATALOG_MAX_PAGES"`

	RateLimitPerMin int `mapstructure:"RATE_LIMIT_PER_MIN"`
	RateLimitBurst  int `mapstructure:"RATE_LIMIT_BURST"`
}

var AppConfig Config

var defaults = map[string]interface{}{
	"APP_PORT":                "8080",
	"ENV":                     "development",
	"LOG_LEVEL":               "info",
	"REDIS_ADDR":              "redis:6379",
	"REDIS_PASSWORD":          "",
	"REDIS_DB":                0,
	"CATALOG_BASE_URL":        "https://api.beneficios.example.com/v1",
	"CATALOG_API_KEY":         "",
	"CATALOG_REFRESH_MINUTES": 60,
	"CATALOG_MAX_PAGES":       20,
	"RATE_LIMIT_PER_MIN":      200,
	"RATE_LIMIT_BURST":        50,
}

// LoadConfig reads config.yaml from "." or "./config" and lets environment
// variables override it. The result is also stored in AppConfig.
func LoadConfig() Config {
	return load(viper.New())
}

func load(v *viper.Viper) Config {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
	return cfg
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsTest() bool {
	return c.Env == "test"
}

// BaseDir returns the project root: PROJECT_ROOT when set, otherwise the
// closest parent of the working directory holding a go.mod.
func BaseDir() string {
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	for dir := wd; ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		if parent := filepath.Dir(dir); parent == dir {
			return wd
		}
	}
}

func GetResourcePath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}
