package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr        string
	DBDSN           string
	WebSocketOrigin string
	Env             string
	StartingBalance string
	DefaultCurrency string
	ShutdownTimeout time.Duration
	RateLimitRPS    float64
}

func Load() (Config, error) {
	var c Config
	var missing []string
	c.HTTPAddr = os.Getenv("HTTP_ADDR")
	if c.HTTPAddr == "" {
		missing = append(missing, "HTTP_ADDR")
	}
	c.DBDSN = os.Getenv("DB_DSN")
	if c.DBDSN == "" {
		missing = append(missing, "DB_DSN")
	}
	c.WebSocketOrigin = os.Getenv("WS_ORIGIN")
	if c.WebSocketOrigin == "" {
		missing = append(missing, "WS_ORIGIN")
	}
	c.Env = strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV")))
	if c.Env == "" {
		c.Env = "development"
	}
	if c.Env != "development" && c.Env != "production" {
		return c, errors.New("invalid APP_ENV: use development or production")
	}
	c.StartingBalance = os.Getenv("STARTING_BALANCE")
	if c.StartingBalance == "" {
		c.StartingBalance = "10000.00"
	}
	c.DefaultCurrency = strings.ToUpper(strings.TrimSpace(os.Getenv("DEFAULT_CURRENCY")))
	if c.DefaultCurrency == "" {
		c.DefaultCurrency = "USD"
	}
	shutdown := os.Getenv("SHUTDOWN_TIMEOUT")
	if shutdown == "" {
		c.ShutdownTimeout = 10 * time.Second
	} else {
		d, err := time.ParseDuration(shutdown)
		if err != nil {
			return c, err
		}
		c.ShutdownTimeout = d
	}
	rps := os.Getenv("RATE_LIMIT_RPS")
	if rps == "" {
		c.RateLimitRPS = 50
	} else {
		v, err := strconv.ParseFloat(rps, 64)
		if err != nil {
			return c, err
		}
		c.RateLimitRPS = v
	}
	if len(missing) > 0 {
		return c, errors.New("missing required env: " + strings.Join(missing, ","))
	}
	return c, nil
}
