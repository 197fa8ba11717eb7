package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRedis_InvalidConfig(t *testing.T) {
	cfg := RedisConfig{
		Host:     "invalid-redis-host-xyz",
		Port:     "6379",
		Password: "",
		DB:       0,
	}

	client, err := NewRedis(cfg)

	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestRedisConfig_Fields(t *testing.T) {
	cfg := RedisConfig{
		Host:     "redis.example.com",
		Port:     "6380",
		Password: "redis-secret",
		DB:       1,
	}

	assert.Equal(t, "redis.example.com", cfg.Host)
	assert.Equal(t, "6380", cfg.Port)
	assert.Equal(t, "redis-secret", cfg.Password)
	assert.Equal(t, 1, cfg.DB)
}
