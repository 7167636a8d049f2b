package config

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Host string
	Port int
}

// Load reads HOST and PORT from the environment, with an optional .env
// file. Defaults mirror a bare dev setup: all interfaces, port 3000.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Host: "0.0.0.0",
		Port: 3000,
	}

	if host := os.Getenv("HOST"); host != "" {
		cfg.Host = host
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
