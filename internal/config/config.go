package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// LedgerBackendRedis keeps guesses in Redis
	LedgerBackendRedis = "redis"

	// LedgerBackendMemory keeps guesses in process memory
	LedgerBackendMemory = "memory"

	// OracleBackendPostgres ranks guesses with the embeddings database
	OracleBackendPostgres = "postgres"

	// OracleBackendStatic ranks guesses from an in-memory table, for local runs
	OracleBackendStatic = "static"
)

var (
	// ErrMissingWordList is returned when no candidate word list is configured
	ErrMissingWordList = errors.New("game.word_list_path is required")

	// ErrUnknownLedgerBackend is returned for an unsupported ledger backend
	ErrUnknownLedgerBackend = errors.New("unknown ledger backend")

	// ErrUnknownOracleBackend is returned for an unsupported oracle backend
	ErrUnknownOracleBackend = errors.New("unknown oracle backend")
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Game     GameConfig     `yaml:"game"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Addr returns the listen address
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr         string        `yaml:"addr"`
	Password     string        `yaml:"password"`
	DB           int           `yaml:"db"`
	PoolSize     int           `yaml:"pool_size"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Database        string        `yaml:"database"`
	SSLMode         string        `yaml:"ssl_mode"`
	MaxConnections  int           `yaml:"max_connections"`
	MinConnections  int           `yaml:"min_connections"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"`
}

// ConnectionString returns the PostgreSQL connection string
func (c *PostgresConfig) ConnectionString() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, sslMode,
	)
}

// KafkaConfig holds Kafka producer configuration
type KafkaConfig struct {
	Enabled bool     `yaml:"enabled"`
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// GameConfig holds game rules and backends
type GameConfig struct {
	// WordListPath is the candidate secret list, one word per line
	WordListPath string `yaml:"word_list_path"`

	// TauntThreshold is how many guesses without progress are tolerated
	TauntThreshold int `yaml:"taunt_threshold"`

	// TauntFactor scales the taunt cut-off
	TauntFactor float64 `yaml:"taunt_factor"`

	// LedgerBackend is redis or memory
	LedgerBackend string `yaml:"ledger_backend"`

	// Oracle is postgres or static
	Oracle string `yaml:"oracle"`

	// SpellingVariants maps extra spellings to their canonical form
	SpellingVariants map[string]string `yaml:"spelling_variants"`

	// SummaryLimit is how many guesses a summary lists
	SummaryLimit int `yaml:"summary_limit"`

	// LedgerRetention is how long an ended game's guesses stay readable
	LedgerRetention time.Duration `yaml:"ledger_retention"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate reports settings that cannot work
func (c *Config) Validate() error {
	if c.Game.WordListPath == "" {
		return ErrMissingWordList
	}

	switch c.Game.LedgerBackend {
	case LedgerBackendRedis, LedgerBackendMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLedgerBackend, c.Game.LedgerBackend)
	}

	switch c.Game.Oracle {
	case OracleBackendPostgres, OracleBackendStatic:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOracleBackend, c.Game.Oracle)
	}

	return nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// Server defaults
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 5 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 120 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15 * time.Second
	}

	// Redis defaults
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 20
	}
	if c.Redis.DialTimeout == 0 {
		c.Redis.DialTimeout = 5 * time.Second
	}
	if c.Redis.ReadTimeout == 0 {
		c.Redis.ReadTimeout = 3 * time.Second
	}
	if c.Redis.WriteTimeout == 0 {
		c.Redis.WriteTimeout = 3 * time.Second
	}

	// PostgreSQL defaults
	if c.Postgres.Host == "" {
		c.Postgres.Host = "localhost"
	}
	if c.Postgres.Port == 0 {
		c.Postgres.Port = 5432
	}
	if c.Postgres.Database == "" {
		c.Postgres.Database = "similarium"
	}
	if c.Postgres.MaxConnections == 0 {
		c.Postgres.MaxConnections = 10
	}
	if c.Postgres.MinConnections == 0 {
		c.Postgres.MinConnections = 2
	}
	if c.Postgres.MaxConnLifetime == 0 {
		c.Postgres.MaxConnLifetime = 1 * time.Hour
	}

	// Kafka defaults
	if len(c.Kafka.Brokers) == 0 {
		c.Kafka.Brokers = []string{"localhost:9092"}
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "similarium-events"
	}

	// Game defaults
	if c.Game.TauntThreshold == 0 {
		c.Game.TauntThreshold = 40
	}
	if c.Game.TauntFactor == 0 {
		c.Game.TauntFactor = 1.1
	}
	if c.Game.LedgerBackend == "" {
		c.Game.LedgerBackend = LedgerBackendRedis
	}
	if c.Game.Oracle == "" {
		c.Game.Oracle = OracleBackendPostgres
	}
	if c.Game.SummaryLimit == 0 {
		c.Game.SummaryLimit = 15
	}
	if c.Game.LedgerRetention == 0 {
		c.Game.LedgerRetention = 7 * 24 * time.Hour
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// DefaultConfig returns a configuration with all defaults
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}
