// Package config loads blogsumm settings from defaults, an optional YAML
// file and environment variables, in that order of precedence.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fwojciec/blogsumm"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfigPath     = "BLOGSUMM_CONFIG"
	EnvEnvironment    = "BLOGSUMM_ENV"
	EnvAddr           = "BLOGSUMM_ADDR"
	EnvLogLevel       = "BLOGSUMM_LOG_LEVEL"
	EnvLogFormat      = "BLOGSUMM_LOG_FORMAT"
	EnvAllowedOrigins = "BLOGSUMM_ALLOWED_ORIGINS"
	EnvDocuments      = "BLOGSUMM_DOCUMENTS"
	EnvSummaries      = "BLOGSUMM_SUMMARIES"
	EnvSQLitePath     = "BLOGSUMM_SQLITE_PATH"
	EnvFSDir          = "BLOGSUMM_FS_DIR"
	EnvGeminiAPIKey   = "GEMINI_API_KEY"
	EnvGeminiModel    = "GEMINI_MODEL"
	EnvDatabaseURL    = "DATABASE_URL"
	EnvMongoURI       = "MONGODB_URI"
	EnvS3Bucket       = "S3_BUCKET"
	EnvS3Prefix       = "S3_PREFIX"
	EnvS3Endpoint     = "S3_ENDPOINT"
)

// Environments.
const (
	Development = "development"
	Production  = "production"
)

// Document store drivers.
const (
	DocumentsSQLite = "sqlite"
	DocumentsFS     = "fs"
	DocumentsS3     = "s3"
	DocumentsMongo  = "mongo"
	DocumentsNone   = "none"
)

// Summary store drivers.
const (
	SummariesSQLite   = "sqlite"
	SummariesPostgres = "postgres"
)

// Config holds all application settings.
type Config struct {
	Env         string            `yaml:"env"`
	Log         LogConfig         `yaml:"log"`
	HTTP        HTTPConfig        `yaml:"http"`
	Fetch       FetchConfig       `yaml:"fetch"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Retry       RetryConfig       `yaml:"retry"`
	Summary     SummaryConfig     `yaml:"summary"`
	Translation TranslationConfig `yaml:"translation"`
	Storage     StorageConfig     `yaml:"storage"`
}

// LogConfig selects the slog level and handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// HTTPConfig configures the API server.
type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	AllowedOrigins  []string      `yaml:"allowedOrigins"`
	MaxBodyBytes    int64         `yaml:"maxBodyBytes"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// FetchConfig configures article retrieval.
type FetchConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"userAgent"`
}

// GeminiConfig configures the generative service. An empty APIKey leaves
// the AI features unconfigured.
type GeminiConfig struct {
	APIKey    string  `yaml:"apiKey"`
	Model     string  `yaml:"model"`
	RateLimit float64 `yaml:"rateLimit"`
	Burst     int     `yaml:"burst"`
}

// RetryConfig configures backoff for generative calls.
type RetryConfig struct {
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseDelay   time.Duration `yaml:"baseDelay"`
}

// SummaryConfig tunes the summarizer.
type SummaryConfig struct {
	MaxInputChars int `yaml:"maxInputChars"`
	TargetWords   int `yaml:"targetWords"`
	MaxSentences  int `yaml:"maxSentences"`
	KeyPoints     int `yaml:"keyPoints"`
}

// TranslationConfig tunes the translator.
type TranslationConfig struct {
	Language string `yaml:"language"`
}

// StorageConfig selects and configures the stores.
type StorageConfig struct {
	Documents string `yaml:"documents"`
	Summaries string `yaml:"summaries"`

	SQLitePath  string      `yaml:"sqlitePath"`
	FSDir       string      `yaml:"fsDir"`
	PostgresDSN string      `yaml:"postgresDsn"`
	Mongo       MongoConfig `yaml:"mongo"`
	S3          S3Config    `yaml:"s3"`
}

// MongoConfig locates the MongoDB document collection.
type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// S3Config locates the S3 document bucket.
type S3Config struct {
	Bucket       string `yaml:"bucket"`
	Prefix       string `yaml:"prefix"`
	Region       string `yaml:"region"`
	Endpoint     string `yaml:"endpoint"`
	UsePathStyle bool   `yaml:"usePathStyle"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Env: Development,
		Log: LogConfig{Level: "info", Format: "text"},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			MaxBodyBytes:    1 << 20,
			ShutdownTimeout: 10 * time.Second,
		},
		Fetch:  FetchConfig{Timeout: 10 * time.Second},
		Gemini: GeminiConfig{Model: "gemini-2.5-flash", RateLimit: 1, Burst: 2},
		Retry:  RetryConfig{MaxAttempts: 3, BaseDelay: time.Second},
		Summary: SummaryConfig{
			MaxInputChars: 12000,
			TargetWords:   200,
			MaxSentences:  5,
			KeyPoints:     3,
		},
		Translation: TranslationConfig{Language: "Urdu"},
		Storage: StorageConfig{
			Documents:  DocumentsSQLite,
			Summaries:  SummariesSQLite,
			SQLitePath: "blogsumm.db",
			FSDir:      "archive",
			Mongo:      MongoConfig{Database: "blog_db", Collection: "blogs"},
			S3:         S3Config{Prefix: "documents"},
		},
	}
}

// Load builds the configuration. path names an optional YAML file; when
// empty, the BLOGSUMM_CONFIG variable is consulted. getenv is usually
// os.Getenv.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = getenv(EnvConfigPath)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		// Unmarshal onto the defaults so absent keys keep their values.
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv(getenv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	set(&c.Env, EnvEnvironment)
	set(&c.HTTP.Addr, EnvAddr)
	set(&c.Log.Level, EnvLogLevel)
	set(&c.Log.Format, EnvLogFormat)
	set(&c.Storage.Documents, EnvDocuments)
	set(&c.Storage.Summaries, EnvSummaries)
	set(&c.Storage.SQLitePath, EnvSQLitePath)
	set(&c.Storage.FSDir, EnvFSDir)
	set(&c.Gemini.APIKey, EnvGeminiAPIKey)
	set(&c.Gemini.Model, EnvGeminiModel)
	set(&c.Storage.PostgresDSN, EnvDatabaseURL)
	set(&c.Storage.Mongo.URI, EnvMongoURI)
	set(&c.Storage.S3.Bucket, EnvS3Bucket)
	set(&c.Storage.S3.Prefix, EnvS3Prefix)
	set(&c.Storage.S3.Endpoint, EnvS3Endpoint)

	if v := getenv(EnvAllowedOrigins); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.HTTP.AllowedOrigins = origins
	}
}

// Validate reports the first invalid setting as an EINVALID error.
func (c Config) Validate() error {
	if c.Env != Development && c.Env != Production {
		return blogsumm.Errorf(blogsumm.EINVALID, "unknown environment %q", c.Env)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return blogsumm.Errorf(blogsumm.EINVALID, "unknown log format %q", c.Log.Format)
	}

	switch c.Storage.Documents {
	case DocumentsSQLite, DocumentsNone:
	case DocumentsFS:
		if c.Storage.FSDir == "" {
			return blogsumm.Errorf(blogsumm.EINVALID, "fs document store requires a directory")
		}
	case DocumentsS3:
		if c.Storage.S3.Bucket == "" {
			return blogsumm.Errorf(blogsumm.EINVALID, "s3 document store requires a bucket")
		}
	case DocumentsMongo:
		if c.Storage.Mongo.URI == "" {
			return blogsumm.Errorf(blogsumm.EINVALID, "mongo document store requires a URI")
		}
	default:
		return blogsumm.Errorf(blogsumm.EINVALID, "unknown document store %q", c.Storage.Documents)
	}

	switch c.Storage.Summaries {
	case SummariesSQLite:
	case SummariesPostgres:
		if c.Storage.PostgresDSN == "" {
			return blogsumm.Errorf(blogsumm.EINVALID, "postgres summary store requires a DSN")
		}
	default:
		return blogsumm.Errorf(blogsumm.EINVALID, "unknown summary store %q", c.Storage.Summaries)
	}

	if c.usesSQLite() && c.Storage.SQLitePath == "" {
		return blogsumm.Errorf(blogsumm.EINVALID, "sqlite store requires a path")
	}
	if c.Retry.MaxAttempts < 1 {
		return blogsumm.Errorf(blogsumm.EINVALID, "retry attempts must be at least 1")
	}
	return nil
}

func (c Config) usesSQLite() bool {
	return c.Storage.Documents == DocumentsSQLite || c.Storage.Summaries == SummariesSQLite
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == Production
}

// AIConfigured reports whether a generative service key is present.
func (c Config) AIConfigured() bool {
	return c.Gemini.APIKey != ""
}

// SlogLevel parses the configured log level.
func (c Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, blogsumm.Errorf(blogsumm.EINVALID, "unknown log level %q", c.Log.Level)
	}
}
