// Package config loads the table server configuration from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Table    TableConfig    `yaml:"table"`
	Security SecurityConfig `yaml:"security"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxConnections int    `yaml:"max_connections"`
}

// Addr returns host:port.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// TableConfig 牌桌配置
type TableConfig struct {
	IdleTimeout    int `yaml:"idle_timeout"`    // 空桌保留时长（分钟）
	SnapshotTTL    int `yaml:"snapshot_ttl"`    // Redis 快照过期（小时）
	LeaderboardTop int `yaml:"leaderboard_top"` // 排行榜默认条数
}

// IdleTimeoutDuration 返回空桌保留时长
func (c TableConfig) IdleTimeoutDuration() time.Duration {
	return time.Duration(c.IdleTimeout) * time.Minute
}

// SnapshotTTLDuration 返回快照过期时长
func (c TableConfig) SnapshotTTLDuration() time.Duration {
	return time.Duration(c.SnapshotTTL) * time.Hour
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	AllowedOrigins []string           `yaml:"allowed_origins"`
	RateLimit      RateLimitConfig    `yaml:"rate_limit"`
	MessageLimit   MessageLimitConfig `yaml:"message_limit"`
}

// RateLimitConfig 连接速率限制
type RateLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second"`
	MaxPerMinute int `yaml:"max_per_minute"`
	BanDuration  int `yaml:"ban_duration"` // 秒
}

// BanDurationTime 返回封禁时长
func (c RateLimitConfig) BanDurationTime() time.Duration {
	return time.Duration(c.BanDuration) * time.Second
}

// MessageLimitConfig 消息速率限制
type MessageLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second"`
}

// Load 加载配置文件，未设置的字段取默认值
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	def := func(v *int, d int) {
		if *v <= 0 {
			*v = d
		}
	}
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	def(&c.Server.Port, 1780)
	def(&c.Server.MaxConnections, 1000)
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	def(&c.Table.IdleTimeout, 10)
	def(&c.Table.SnapshotTTL, 2)
	def(&c.Table.LeaderboardTop, 10)
	if len(c.Security.AllowedOrigins) == 0 {
		c.Security.AllowedOrigins = []string{"*"}
	}
	def(&c.Security.RateLimit.MaxPerSecond, 10)
	def(&c.Security.RateLimit.MaxPerMinute, 60)
	def(&c.Security.RateLimit.BanDuration, 60)
	def(&c.Security.MessageLimit.MaxPerSecond, 20)
}
