package main

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func writeTempConfig(t *testing.T, data string) string {
	t.Helper()

	tempFile, err := os.CreateTemp("", "config*.env")
	if err != nil {
		t.Fatalf("failed to create temporary config file: %v", err)
	}
	t.Cleanup(func() { os.Remove(tempFile.Name()) })

	if _, err := tempFile.WriteString(data); err != nil {
		t.Fatalf("failed to write test configuration: %v", err)
	}

	return tempFile.Name()
}

func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, `
PORT=:8080
ENVIRONMENT=development
VERSION=1.0.0
TRUSTED_ORIGINS="http://localhost:3000, http://localhost:3001"
POSTGRES_HOST=localhost
POSTGRES_PORT=5432
POSTGRES_USER=testuser
POSTGRES_PASSWORD=testpassword
POSTGRES_DB=testdb
JWT_SECRET=supersecret
JWT_EXPIRY=2h
`)

	config, err := loadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	assert.Equal(t, ":8080", config.Port)
	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "1.0.0", config.Version)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, config.TrustedOrigins)
	assert.Equal(t, "localhost", config.DB.Host)
	assert.Equal(t, "testuser", config.DB.User)
	assert.Equal(t, "testdb", config.DB.Name)
	assert.Equal(t, "supersecret", config.Auth.Secret)
	assert.Equal(t, 2*time.Hour, config.Auth.TokenTime)
}

func TestLoadConfigDefaultTokenTime(t *testing.T) {
	path := writeTempConfig(t, `
PORT=:8080
ENVIRONMENT=development
JWT_SECRET=supersecret
`)

	config, err := loadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	assert.Equal(t, time.Hour, config.Auth.TokenTime)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig("does-not-exist.env")
	assert.Error(t, err)
}
