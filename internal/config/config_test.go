package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MemoryDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.True(t, cfg.Conversion.Fee.Equal(decimal.RequireFromString("0.01")))
	assert.Equal(t, "EUR", cfg.Conversion.BaseCurrency)
	assert.Equal(t, 5, cfg.Conversion.Workers)
	assert.Equal(t, 100, cfg.Conversion.QueueSize)
	assert.Equal(t, 30*time.Second, cfg.Conversion.CompletionTimeout)
	assert.Equal(t, 24*time.Hour, cfg.Rates.RefreshInterval)
	assert.Equal(t, 10*time.Second, cfg.Rates.FetchTimeout)
	assert.False(t, cfg.Rates.InsecureTLS)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, "conversion-events", cfg.Kafka.Topic)
	assert.Equal(t, time.Hour, cfg.Admin.JWTExpiration)
	assert.False(t, cfg.Admin.AdminEnabled())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_USER", "converter")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "conversions")
	t.Setenv("CONVERSION_FEE", "0.025")
	t.Setenv("BASE_CURRENCY", "usd")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abc")
	t.Setenv("JWT_SECRET", "jwt")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "USD", cfg.Conversion.BaseCurrency)
	assert.True(t, cfg.Conversion.Fee.Equal(decimal.RequireFromString("0.025")))
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Admin.AdminEnabled())
	assert.Equal(t, "host=db port=5432 user=converter password=secret dbname=conversions sslmode=disable", cfg.DB.DSN())
	assert.Equal(t, "postgres://converter:secret@db:5432/conversions?sslmode=disable", cfg.DB.MigrationURL())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "fee equal to one", env: map[string]string{"STORAGE_DRIVER": "memory", "CONVERSION_FEE": "1"}},
		{name: "negative fee", env: map[string]string{"STORAGE_DRIVER": "memory", "CONVERSION_FEE": "-0.1"}},
		{name: "fee not a number", env: map[string]string{"STORAGE_DRIVER": "memory", "CONVERSION_FEE": "abc"}},
		{name: "no workers", env: map[string]string{"STORAGE_DRIVER": "memory", "CONVERSION_WORKERS": "0"}},
		{name: "bad base currency", env: map[string]string{"STORAGE_DRIVER": "memory", "BASE_CURRENCY": "EURO"}},
		{name: "unknown driver", env: map[string]string{"STORAGE_DRIVER": "mongo"}},
		{name: "postgres without host", env: map[string]string{"STORAGE_DRIVER": "postgres"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
