package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config 服务运行所需的全部配置，来源于环境变量（可由 .env 提供）
type Config struct {
	Port               string
	DatabaseURL        string
	JWTSecret          string
	JWTExpire          time.Duration
	CookieSecure       bool
	SessionSecret      string
	SiteURL            string
	ClientURL          string
	GoogleClientID     string
	GoogleClientSecret string
	LogLevel           string
	LogFormat          string
	GinMode            string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=vidshare port=5432 sslmode=disable")
	v.SetDefault("JWT_EXPIRE", "7d")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("SESSION_SECRET", "secret_key_change_me")
	v.SetDefault("SITE_URL", "http://localhost:8080")
	v.SetDefault("CLIENT_URL", "http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("GIN_MODE", "release")
}

// Load reads .env (if any) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, reading config from environment")
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// FromViper 从给定的 viper 实例构造配置，测试中可直接注入
func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	expire, err := ParseExpire(v.GetString("JWT_EXPIRE"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRE: %w", err)
	}

	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		logrus.Warn("JWT_SECRET not set, generating a random secret; issued tokens will not survive a restart")
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return nil, fmt.Errorf("generate JWT secret: %w", err)
		}
		secret = base64.URLEncoding.EncodeToString(b)
	}

	return &Config{
		Port:               v.GetString("PORT"),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		JWTSecret:          secret,
		JWTExpire:          expire,
		CookieSecure:       v.GetBool("COOKIE_SECURE"),
		SessionSecret:      v.GetString("SESSION_SECRET"),
		SiteURL:            strings.TrimSuffix(v.GetString("SITE_URL"), "/"),
		ClientURL:          strings.TrimSuffix(v.GetString("CLIENT_URL"), "/"),
		GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		LogFormat:          v.GetString("LOG_FORMAT"),
		GinMode:            v.GetString("GIN_MODE"),
	}, nil
}

// ParseExpire accepts Go durations ("36h") and day counts ("7d", "30d").
func ParseExpire(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("bad day count %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("expire must be positive, got %q", s)
	}
	return d, nil
}
