package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Config is the process configuration read from the environment.
type Config struct {
	Env            string
	Port           string
	MongoURI       string
	MongoDB        string
	APIKey         string
	JWTSecret      string
	JWTTTL         time.Duration
	AllowedOrigins []string
	Resend         ResendConfig
	Chat           ChatConfig
}

type ResendConfig struct {
	APIKey  string
	From    string
	Contact string
}

type ChatConfig struct {
	URL     string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// IsProduction reports whether cookies should be marked Secure.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads the configuration from the environment. Required values
// missing from the environment are reported together.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("MONGO_DB", "spi_smart_campus")
	v.SetDefault("JWT_TTL", 24*time.Hour)
	v.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	v.SetDefault("CHAT_API_URL", "https://api.openai.com/v1")
	v.SetDefault("CHAT_MODEL", "gpt-4o-mini")
	v.SetDefault("CHAT_TIMEOUT", 30*time.Second)
	v.AutomaticEnv()

	cfg := &Config{
		Env:            v.GetString("APP_ENV"),
		Port:           v.GetString("PORT"),
		MongoURI:       v.GetString("MONGO_URI"),
		MongoDB:        v.GetString("MONGO_DB"),
		APIKey:         v.GetString("API_KEY"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		AllowedOrigins: origins(v.GetStringSlice("ALLOWED_ORIGINS")),
		Resend: ResendConfig{
			APIKey:  v.GetString("RESEND_API_KEY"),
			From:    v.GetString("FROM_EMAIL"),
			Contact: v.GetString("CONTACT_EMAIL"),
		},
		Chat: ChatConfig{
			URL:    v.GetString("CHAT_API_URL"),
			APIKey: v.GetString("CHAT_API_KEY"),
			Model:  v.GetString("CHAT_MODEL"),
		},
	}

	// viper's GetDuration swallows parse errors.
	var err error
	if cfg.JWTTTL, err = cast.ToDurationE(v.Get("JWT_TTL")); err != nil {
		return nil, fmt.Errorf("JWT_TTL: %w", err)
	}
	if cfg.Chat.Timeout, err = cast.ToDurationE(v.Get("CHAT_TIMEOUT")); err != nil {
		return nil, fmt.Errorf("CHAT_TIMEOUT: %w", err)
	}

	var missing []string
	for _, key := range []string{"API_KEY", "JWT_SECRET", "MONGO_URI"} {
		if v.GetString(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, errors.New("missing environment variables: " + strings.Join(missing, ", "))
	}
	return cfg, nil
}

// origins accepts space or comma separated lists.
func origins(items []string) []string {
	var out []string
	for _, item := range items {
		for _, o := range strings.Split(item, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}
