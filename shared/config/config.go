package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v2"
)

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Log             Log       `yaml:"log" envPrefix:"KOPDAR_LOG_"`
	Http            Http      `yaml:"http" envPrefix:"KOPDAR_HTTP_"`
	Storage         Storage   `yaml:"storage" envPrefix:"KOPDAR_STORAGE_"`
	RateLimit       RateLimit `yaml:"rate_limit"`
	VoteMaxAttempts int       `yaml:"vote_max_attempts" env:"KOPDAR_VOTE_MAX_ATTEMPTS"` // retries of a vote that lost a race
	SecureCookies   bool      `yaml:"secure_cookies" env:"KOPDAR_SECURE_COOKIES"`
}

type Log struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"` // text or json
}

type Http struct {
	Port           int           `yaml:"port" env:"PORT"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env:"IDLE_TIMEOUT"`
	ShutdownPeriod time.Duration `yaml:"shutdown_period" env:"SHUTDOWN_PERIOD"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`
}

type Storage struct {
	Driver     string `yaml:"driver" env:"DRIVER"`           // postgres or sqlite
	SqlitePath string `yaml:"sqlite_path" env:"SQLITE_PATH"` // file path or :memory:
}

// RateLimit values apply per authenticated user.
type RateLimit struct {
	VotesPerSecond   float64 `yaml:"votes_per_second"`
	CreatesPerMinute float64 `yaml:"creates_per_minute"`
}

type Pg struct {
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	Dbname   string `yaml:"dbname" env:"DBNAME"`
}

type Private struct {
	Pg     Pg     `yaml:"pg" envPrefix:"KOPDAR_PG_"`
	JwtKey string `yaml:"jwt_key" env:"KOPDAR_JWT_KEY"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (p *Public) applyDefaults() {
	if p.Log.Level == "" {
		p.Log.Level = "info"
	}
	if p.Log.Format == "" {
		p.Log.Format = "text"
	}
	if p.Http.Port == 0 {
		p.Http.Port = 8080
	}
	if p.Http.ReadTimeout == 0 {
		p.Http.ReadTimeout = 5 * time.Second
	}
	if p.Http.WriteTimeout == 0 {
		p.Http.WriteTimeout = 10 * time.Second
	}
	if p.Http.IdleTimeout == 0 {
		p.Http.IdleTimeout = time.Minute
	}
	if p.Http.ShutdownPeriod == 0 {
		p.Http.ShutdownPeriod = 30 * time.Second
	}
	if p.VoteMaxAttempts <= 0 {
		p.VoteMaxAttempts = 3
	}
	if p.RateLimit.VotesPerSecond <= 0 {
		p.RateLimit.VotesPerSecond = 5
	}
	if p.RateLimit.CreatesPerMinute <= 0 {
		p.RateLimit.CreatesPerMinute = 6
	}
}

func (c *Config) validate() error {
	if c.Private.JwtKey == "" {
		return fmt.Errorf("jwt_key is required")
	}
	switch c.Public.Storage.Driver {
	case DriverPostgres:
		pg := c.Private.Pg
		if pg.Host == "" || pg.Port == 0 || pg.User == "" || pg.Dbname == "" {
			return fmt.Errorf("pg host, port, user and dbname are required for the postgres driver")
		}
	case DriverSqlite:
		if c.Public.Storage.SqlitePath == "" {
			return fmt.Errorf("storage.sqlite_path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Public.Storage.Driver)
	}
	return nil
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err := yaml.UnmarshalStrict(configFile, output); err != nil {
		panic(fmt.Sprintf("can't unmarshal config file %s: %v", configPath, err))
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder, applies
// environment overrides and panics if the result is unusable.
func MustLoad(configFolder string) *Config {
	var cfg Config
	mustLoadPath(path.Join(configFolder, "public.yaml"), &cfg.Public)
	mustLoadPath(path.Join(configFolder, "private.yaml"), &cfg.Private)

	if err := env.Parse(&cfg); err != nil {
		panic(fmt.Sprintf("can't parse environment overrides: %v", err))
	}

	cfg.Public.applyDefaults()
	if err := cfg.validate(); err != nil {
		panic("invalid config: " + err.Error())
	}
	return &cfg
}
