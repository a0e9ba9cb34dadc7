package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	SinkMemory   = "memory"
	SinkRedis    = "redis"
	SinkKafka    = "kafka"
	SinkPostgres = "postgres"
	SinkMongo    = "mongo"
)

type Config struct {
	CredentialsPath  string
	OpsAddr          string
	PasswordAttempts int
	Receipts         ReceiptConfig
	Log              LogConfig
	OTLPEndpoint     string
}

type ReceiptConfig struct {
	Sink          string
	RedisAddr     string
	KafkaBrokers  []string
	KafkaTopic    string
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string
}

type LogConfig struct {
	Level   string
	Format  string
	LokiURL string
}

// GetEnv returns the environment value for key or fallback when unset.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// Load reads .env (when present), the environment, then args. Flags take
// precedence. flag.ErrHelp is returned for -help with usage written to
// usage.
func Load(args []string, usage io.Writer) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	attempts, err := strconv.Atoi(GetEnv("PASSWORD_ATTEMPTS", "3"))
	if err != nil {
		return Config{}, fmt.Errorf("PASSWORD_ATTEMPTS: %w", err)
	}

	cfg := Config{
		CredentialsPath:  GetEnv("CAFETERIA_CREDENTIALS", "creds.json"),
		OpsAddr:          GetEnv("OPS_ADDR", ""),
		PasswordAttempts: attempts,
		Receipts: ReceiptConfig{
			Sink:          GetEnv("RECEIPT_SINK", SinkMemory),
			RedisAddr:     GetEnv("REDIS_ADDR", ""),
			KafkaBrokers:  splitList(GetEnv("KAFKA_BROKERS", "")),
			KafkaTopic:    GetEnv("KAFKA_TOPIC", "cafeteria.receipts"),
			DatabaseURL:   GetEnv("DATABASE_URL", ""),
			MongoURI:      GetEnv("MONGO_URI", ""),
			MongoDatabase: GetEnv("MONGO_DATABASE", "cafeteria"),
		},
		Log: LogConfig{
			Level:   GetEnv("LOG_LEVEL", "warn"),
			Format:  GetEnv("LOG_FORMAT", "text"),
			LokiURL: GetEnv("LOKI_URL", ""),
		},
		OTLPEndpoint: GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	set := flag.NewFlagSet("cafeteria", flag.ContinueOnError)
	set.SetOutput(usage)
	set.StringVar(&cfg.CredentialsPath, "credentials", cfg.CredentialsPath, "Admin credentials file (.json, .yaml or .toml)")
	set.StringVar(&cfg.OpsAddr, "ops-addr", cfg.OpsAddr, "Address for the /health and /metrics server; empty disables it")
	set.StringVar(&cfg.Receipts.Sink, "receipt-sink", cfg.Receipts.Sink, "Where paid receipts go: memory, redis, kafka, postgres or mongo")
	set.IntVar(&cfg.PasswordAttempts, "password-attempts", cfg.PasswordAttempts, "Admin password attempts before access is denied")
	set.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Log level: debug, info, warn or error")
	set.StringVar(&cfg.Log.Format, "log-format", cfg.Log.Format, "Log format: text or json")

	if err := set.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.PasswordAttempts < 1 {
		return fmt.Errorf("password attempts must be at least 1, got %d", c.PasswordAttempts)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}

	r := c.Receipts
	switch r.Sink {
	case SinkMemory:
	case SinkRedis:
		if r.RedisAddr == "" {
			return errors.New("receipt sink redis needs REDIS_ADDR")
		}
	case SinkKafka:
		if len(r.KafkaBrokers) == 0 {
			return errors.New("receipt sink kafka needs KAFKA_BROKERS")
		}
	case SinkPostgres:
		if r.DatabaseURL == "" {
			return errors.New("receipt sink postgres needs DATABASE_URL")
		}
	case SinkMongo:
		if r.MongoURI == "" {
			return errors.New("receipt sink mongo needs MONGO_URI")
		}
	default:
		return fmt.Errorf("unknown receipt sink %q", r.Sink)
	}
	return nil
}

func splitList(raw string) []string {
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
