package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_DefaultValues(t *testing.T) {
	// 環境変数をクリア
	envVars := []string{
		"PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
		"AMQP_URL", "AMQP_QUEUE", "JWT_SECRET", "SWEEP_INTERVAL",
	}
	for _, env := range envVars {
		os.Unsetenv(env)
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "vegnbio_reservation", cfg.Database.DBName)
	assert.Equal(t, "disable", cfg.Database.SSLMode)

	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, 0, cfg.Redis.DB)

	// AMQP は未設定なら通知無効
	assert.Equal(t, "", cfg.AMQP.URL)
	assert.Equal(t, "booking.status", cfg.AMQP.Queue)

	assert.Equal(t, 5*time.Minute, cfg.Worker.SweepInterval)
}

func TestLoad_CustomValues(t *testing.T) {
	os.Setenv("PORT", "9090")
	os.Setenv("DB_HOST", "db.example.com")
	os.Setenv("DB_SSLMODE", "require")
	os.Setenv("REDIS_DB", "2")
	os.Setenv("AMQP_URL", "amqp://guest:guest@mq:5672/")
	os.Setenv("JWT_SECRET", "super-secret")
	os.Setenv("SWEEP_INTERVAL", "1m")
	defer func() {
		for _, env := range []string{"PORT", "DB_HOST", "DB_SSLMODE", "REDIS_DB", "AMQP_URL", "JWT_SECRET", "SWEEP_INTERVAL"} {
			os.Unsetenv(env)
		}
	}()

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "db.example.com", cfg.Database.Host)
	assert.Contains(t, cfg.Database.DSN(), "sslmode=require")
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "amqp://guest:guest@mq:5672/", cfg.AMQP.URL)
	assert.Equal(t, "super-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, time.Minute, cfg.Worker.SweepInterval)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "localhost", Port: "5432", User: "postgres",
		Password: "postgres", DBName: "vegnbio_reservation", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=postgres dbname=vegnbio_reservation sslmode=disable",
		cfg.DSN(),
	)
}
