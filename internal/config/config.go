package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/tenancy-backend/internal/logger"
	"github.com/yungbote/tenancy-backend/internal/utils"
)

type Identity struct {
	DiscoveryURL string   `yaml:"discovery_url"`
	Issuers      []string `yaml:"issuers"`
	Audience     string   `yaml:"audience"`
	Algorithms   []string `yaml:"algorithms"`
}

type Config struct {
	Port         string   `yaml:"port"`
	AllowOrigins []string `yaml:"allow_origins"`
	MediaRoot    string   `yaml:"media_root"`
	MediaBaseURL string   `yaml:"media_base_url"`
	Identity     Identity `yaml:"identity"`
	StripeKey    string   `yaml:"-"`
}

// Load builds the config from env defaults, then overlays the optional YAML
// file at CONFIG_PATH. Secrets only ever come from env.
func Load(log *logger.Logger) (Config, error) {
	cfg := Config{
		Port:         utils.GetEnv("PORT", "8080", log),
		MediaRoot:    utils.GetEnv("MEDIA_ROOT", "./media", log),
		MediaBaseURL: utils.GetEnv("MEDIA_BASE_URL", "/media", log),
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		},
		Identity: Identity{
			DiscoveryURL: utils.GetEnv("IDP_DISCOVERY_URL", "https://accounts.google.com/.well-known/openid-configuration", log),
			Issuers:      splitCSV(utils.GetEnv("IDP_ISSUERS", "accounts.google.com,https://accounts.google.com", log)),
			Audience:     utils.GetEnv("IDP_AUDIENCE", "", log),
			Algorithms:   splitCSV(utils.GetEnv("IDP_ALGORITHMS", "RS256", log)),
		},
		StripeKey: utils.GetEnv("STRIPE_SECRET_KEY", "", log),
	}

	path := strings.TrimSpace(os.Getenv("CONFIG_PATH"))
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	if log != nil {
		log.Info("Loaded config file overrides", "path", path)
	}
	return cfg, nil
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
