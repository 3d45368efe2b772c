package pinglocal

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/pinglocal/pinglocal/pinglocal/database"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log     LogConfig         `toml:"log"`
	Server  ServerConfig      `toml:"server"`
	DB      database.DBConfig `toml:"db"`
	Push    PushConfig        `toml:"push"`
	Email   EmailConfig       `toml:"email"`
	Tracing TracingConfig     `toml:"tracing"`
}

type LogConfig struct {
	Level slog.Level `toml:"level"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

func (c ServerConfig) Addr() string {
	host := c.Host
	port := c.Port
	if port == 0 {
		port = 8080
	}
	return fmt.Sprintf("%s:%d", host, port)
}

type PushConfig struct {
	Endpoint string `toml:"endpoint"`
}

type EmailConfig struct {
	Endpoint string `toml:"endpoint"`
	APIKey   string `toml:"api_key"`
	From     string `toml:"from"`
}

type TracingConfig struct {
	Enabled     bool   `toml:"enabled"`
	Endpoint    string `toml:"endpoint"`
	ServiceName string `toml:"service_name"`
}
