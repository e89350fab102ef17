package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Storage    StorageConfig
	Extraction ExtractionConfig
	Log        LogConfig
	RateLimit  RateLimitConfig
	S3         S3Config
}

type ServerConfig struct {
	Port         string
	Env          string
	BodyLimit    int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type StorageConfig struct {
	ResumeDir   string
	MaxFileSize int64
}

type ExtractionConfig struct {
	// Mode is "lenient" or "strict".
	Mode string
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type RateLimitConfig struct {
	Max        int
	Expiration time.Duration
}

type S3Config struct {
	Bucket       string
	Prefix       string
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

// Enabled reports whether a bucket is configured.
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

type setting struct {
	key   string
	env   string
	value any
}

// Viper keys, the environment variables they read and their defaults.
var settings = []setting{
	{"server.port", "PORT", "3000"},
	{"server.env", "ENV", "development"},
	{"server.body-limit", "MAX_BODY_SIZE", 50 * 1024 * 1024},
	{"server.read-timeout", "READ_TIMEOUT", "30s"},
	{"server.write-timeout", "WRITE_TIMEOUT", "30s"},

	{"storage.resume-dir", "RESUME_DIR", "./resumes"},
	{"storage.max-file-size", "MAX_FILE_SIZE", 10485760},

	{"extraction.mode", "EXTRACTION_MODE", "lenient"},

	{"log.json", "LOG_JSON", false},
	{"log.debug", "LOG_DEBUG", false},

	{"rate-limit.max", "RATE_LIMIT_MAX", 30},
	{"rate-limit.expiration", "RATE_LIMIT_EXPIRATION", "1m"},

	{"s3.bucket", "S3_BUCKET", ""},
	{"s3.prefix", "S3_PREFIX", ""},
	{"s3.region", "S3_REGION", "auto"},
	{"s3.endpoint", "S3_ENDPOINT", ""},
	{"s3.access-key", "S3_ACCESS_KEY", ""},
	{"s3.secret-key", "S3_SECRET_KEY", ""},
	{"s3.use-path-style", "S3_USE_PATH_STYLE", false},
}

// NewViper returns a viper instance with defaults and environment bindings
// registered. Callers may bind flags on top before calling FromViper.
func NewViper() *viper.Viper {
	v := viper.New()
	for _, s := range settings {
		v.SetDefault(s.key, s.value)
		// BindEnv only fails when no key is given.
		_ = v.BindEnv(s.key, s.env)
	}
	return v
}

// Load reads an optional .env file and resolves the configuration from the
// environment.
func Load() (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}

	cfg := FromViper(NewViper())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads .env from the working directory. A missing file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

func FromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:         v.GetString("server.port"),
			Env:          v.GetString("server.env"),
			BodyLimit:    v.GetInt("server.body-limit"),
			ReadTimeout:  v.GetDuration("server.read-timeout"),
			WriteTimeout: v.GetDuration("server.write-timeout"),
		},
		Storage: StorageConfig{
			ResumeDir:   v.GetString("storage.resume-dir"),
			MaxFileSize: v.GetInt64("storage.max-file-size"),
		},
		Extraction: ExtractionConfig{
			Mode: v.GetString("extraction.mode"),
		},
		Log: LogConfig{
			JSON:  v.GetBool("log.json"),
			Debug: v.GetBool("log.debug"),
		},
		RateLimit: RateLimitConfig{
			Max:        v.GetInt("rate-limit.max"),
			Expiration: v.GetDuration("rate-limit.expiration"),
		},
		S3: S3Config{
			Bucket:       v.GetString("s3.bucket"),
			Prefix:       v.GetString("s3.prefix"),
			Region:       v.GetString("s3.region"),
			Endpoint:     v.GetString("s3.endpoint"),
			AccessKey:    v.GetString("s3.access-key"),
			SecretKey:    v.GetString("s3.secret-key"),
			UsePathStyle: v.GetBool("s3.use-path-style"),
		},
	}
}

func (c *Config) Validate() error {
	if c.Storage.MaxFileSize <= 0 {
		return fmt.Errorf("max file size must be positive, got %d", c.Storage.MaxFileSize)
	}
	if c.Server.BodyLimit <= 0 {
		return fmt.Errorf("body limit must be positive, got %d", c.Server.BodyLimit)
	}
	if c.RateLimit.Max < 0 {
		return fmt.Errorf("rate limit max must not be negative, got %d", c.RateLimit.Max)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}
