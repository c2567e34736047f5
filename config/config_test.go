package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_PORT", "9090")
	assert.Equal(t, 9090, getEnvInt("TEST_PORT", 8080))

	t.Setenv("TEST_PORT", "not-a-number")
	assert.Equal(t, 8080, getEnvInt("TEST_PORT", 8080), "malformed value falls back to the default")

	assert.Equal(t, 8080, getEnvInt("TEST_PORT_UNSET", 8080))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_HOST", "db.internal")
	assert.Equal(t, "db.internal", getEnv("TEST_HOST", "localhost"))
	assert.Equal(t, "localhost", getEnv("TEST_HOST_UNSET", "localhost"))
}
