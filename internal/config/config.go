package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server          ServerConfig          `yaml:"server"`
	Controller      ControllerConfig      `yaml:"controller"`
	History         HistoryConfig         `yaml:"history"`
	Database        DatabaseConfig        `yaml:"database"`
	RabbitMQ        RabbitMQConfig        `yaml:"rabbitmq"`
	Recommendations RecommendationsConfig `yaml:"recommendations"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// ControllerConfig addresses the physical dispensing controller. The
// timeouts bound a single relay attempt: ConnectTimeoutSec covers connection
// establishment, CallTimeoutSec the whole call including the connect phase.
type ControllerConfig struct {
	BaseURL           string `yaml:"base_url"`
	ConnectTimeoutSec int    `yaml:"connect_timeout_seconds"`
	CallTimeoutSec    int    `yaml:"call_timeout_seconds"`
}

// HistoryConfig selects the history backend: "file" (JSON array on disk) or
// "postgres" (append-only table).
type HistoryConfig struct {
	Backend  string `yaml:"backend"`
	FilePath string `yaml:"file_path"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type RabbitMQConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type RecommendationsConfig struct {
	Limit int `yaml:"limit"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()

	if cfg.Controller.BaseURL == "" {
		return nil, fmt.Errorf("controller.base_url is required")
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8013
	}
	if c.Controller.ConnectTimeoutSec == 0 {
		c.Controller.ConnectTimeoutSec = 3
	}
	if c.Controller.CallTimeoutSec == 0 {
		c.Controller.CallTimeoutSec = 8
	}
	if c.History.Backend == "" {
		c.History.Backend = "file"
	}
	if c.History.FilePath == "" {
		c.History.FilePath = "orders.json"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.RabbitMQ.Port == 0 {
		c.RabbitMQ.Port = 5672
	}
	if c.Recommendations.Limit == 0 {
		c.Recommendations.Limit = 3
	}
}
