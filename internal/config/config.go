package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port        int              `json:"port"`
	JWTSecret   string           `json:"jwt_secret"`
	JWTTTLHours int              `json:"jwt_ttl_hours"`
	Database    DatabaseConfig   `json:"database"`
	LogConfig   logger.LogConfig `json:"log_config"`
	FileStore   FileStoreConfig  `json:"file_store"`
	AI          AIConfig         `json:"ai"`
	Mail        MailConfig       `json:"mail"`
	Extractor   ExtractorConfig  `json:"extractor"`
	Match       MatchConfig      `json:"match"`
	Resume      ResumeConfig     `json:"resume"`
	CORSOrigins []string         `json:"cors_origins"`
}

type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
	DSN      string `json:"dsn"`
}

type FileStoreConfig struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

type AIConfig struct {
	Provider       string                 `json:"provider"`
	Model          string                 `json:"model"`
	TimeoutSeconds int                    `json:"timeout_seconds"`
	Data           map[string]interface{} `json:"data"`
	Fallbacks      []AIProviderSpec       `json:"fallbacks"`
}

// AIProviderSpec names a secondary provider tried when the one before it
// fails.
type AIProviderSpec struct {
	Provider string                 `json:"provider"`
	Model    string                 `json:"model"`
	Data     map[string]interface{} `json:"data"`
}

type MailConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	From     string `json:"from"`
}

type ExtractorConfig struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

type MatchConfig struct {
	RebuildSpec  string `json:"rebuild_spec"`
	DefaultLimit int    `json:"default_limit"`
	WarmLoad     bool   `json:"warm_load"`
}

type ResumeConfig struct {
	MaxUploadBytes  int64 `json:"max_upload_bytes"`
	CacheSize       int   `json:"cache_size"`
	CacheTTLMinutes int   `json:"cache_ttl_minutes"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return nil, fmt.Errorf("database.host or database.dsn is required")
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.FileStore.Type == "" {
		cfg.FileStore.Type = "local"
	}
	if cfg.Extractor.Type == "" {
		cfg.Extractor.Type = "plain"
	}
	if cfg.AI.TimeoutSeconds == 0 {
		cfg.AI.TimeoutSeconds = 30
	}
	if cfg.Match.RebuildSpec == "" {
		cfg.Match.RebuildSpec = "*/30 * * * *"
	}
	if cfg.Match.DefaultLimit == 0 {
		cfg.Match.DefaultLimit = 10
	}
	if cfg.Resume.MaxUploadBytes == 0 {
		cfg.Resume.MaxUploadBytes = 5 * 1024 * 1024
	}
	if cfg.Resume.CacheSize == 0 {
		cfg.Resume.CacheSize = 256
	}
	if cfg.Resume.CacheTTLMinutes == 0 {
		cfg.Resume.CacheTTLMinutes = 60
	}
	return &cfg, nil
}
