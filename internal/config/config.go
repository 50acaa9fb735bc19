package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	HTTPPort   string `envconfig:"APP_PORT" default:"8080"`
	Conversion ConversionConfig
	Rates      RatesConfig
	Storage    StorageConfig
	DB         DBConfig
	Kafka      KafkaConfig
	Admin      AdminConfig
	Log        LogConfig
}

type ConversionConfig struct {
	Fee               decimal.Decimal `envconfig:"CONVERSION_FEE" default:"0.01"`
	BaseCurrency      string          `envconfig:"BASE_CURRENCY" default:"EUR"`
	Workers           int             `envconfig:"CONVERSION_WORKERS" default:"5"`
	QueueSize         int             `envconfig:"CONVERSION_QUEUE_SIZE" default:"100"`
	CompletionTimeout time.Duration   `envconfig:"CONVERSION_COMPLETION_TIMEOUT" default:"30s"`
}

type RatesConfig struct {
	ECBURL          string        `envconfig:"RATES_ECB_URL" default:"https://www.ecb.europa.eu/stats/eurofxref/eurofxref-daily.xml"`
	FetchTimeout    time.Duration `envconfig:"RATES_FETCH_TIMEOUT" default:"10s"`
	RefreshInterval time.Duration `envconfig:"RATES_REFRESH_INTERVAL" default:"24h"`
	InsecureTLS     bool          `envconfig:"RATES_INSECURE_TLS" default:"false"`
}

type StorageConfig struct {
	Driver string `envconfig:"STORAGE_DRIVER" default:"postgres"`
}

type DBConfig struct {
	Host     string `envconfig:"POSTGRES_HOST"`
	Port     string `envconfig:"POSTGRES_PORT"     default:"5432"`
	User     string `envconfig:"POSTGRES_USER"`
	Password string `envconfig:"POSTGRES_PASSWORD"`
	DBName   string `envconfig:"POSTGRES_DB"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE"  default:"disable"`
}

type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	Topic   string   `envconfig:"KAFKA_TOPIC" default:"conversion-events"`
	Enabled bool     `envconfig:"KAFKA_ENABLED" default:"false"`
}

type AdminConfig struct {
	PasswordHash  string        `envconfig:"ADMIN_PASSWORD_HASH"`
	JWTSecret     string        `envconfig:"JWT_SECRET"`
	JWTExpiration time.Duration `envconfig:"JWT_EXPIRATION" default:"1h"`
}

type LogConfig struct {
	File  string `envconfig:"LOG_FILE" default:"converter.log"`
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

func NewConfig() (*Config, error) {
	envFile := "config.env"

	if err := godotenv.Load(envFile); err != nil {
		log.Printf("warning: не удалось загрузить файл %s, используются только системные переменные окружения: %v", envFile, err)
	}

	return Load()
}

// Load читает конфигурацию только из переменных окружения.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации: %w", err)
	}

	cfg.Conversion.BaseCurrency = strings.ToUpper(cfg.Conversion.BaseCurrency)
	cfg.Storage.Driver = strings.ToLower(cfg.Storage.Driver)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("некорректная конфигурация: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.Conversion.Fee.IsNegative() || c.Conversion.Fee.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		errs = append(errs, fmt.Errorf("CONVERSION_FEE must be in [0, 1), got %s", c.Conversion.Fee))
	}
	if c.Conversion.Workers <= 0 {
		errs = append(errs, fmt.Errorf("CONVERSION_WORKERS must be positive, got %d", c.Conversion.Workers))
	}
	if c.Conversion.QueueSize < 0 {
		errs = append(errs, fmt.Errorf("CONVERSION_QUEUE_SIZE must not be negative, got %d", c.Conversion.QueueSize))
	}
	if len(c.Conversion.BaseCurrency) != 3 {
		errs = append(errs, fmt.Errorf("BASE_CURRENCY must be a 3-letter code, got %q", c.Conversion.BaseCurrency))
	}

	switch c.Storage.Driver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if c.DB.Host == "" || c.DB.User == "" || c.DB.DBName == "" {
			errs = append(errs, errors.New("POSTGRES_HOST, POSTGRES_USER and POSTGRES_DB are required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver))
	}

	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		errs = append(errs, errors.New("KAFKA_BROKERS and KAFKA_TOPIC are required when kafka is enabled"))
	}

	return errors.Join(errs...)
}

// AdminEnabled сообщает, заданы ли пароль и секрет для админских маршрутов.
func (a AdminConfig) AdminEnabled() bool {
	return a.PasswordHash != "" && a.JWTSecret != ""
}

func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

func (d *DBConfig) MigrationURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}
