package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	StoreSQLite = "sqlite"
	StoreMongo  = "mongo"

	SessionStoreMemory = "memory"
	SessionStoreCookie = "cookie"
)

var defaultCORSOrigins = []string{"https://rohan-keenoy.web.app", "http://localhost:3000"}

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr string `env:"LISTEN_ADDR"`
	Port       string `env:"PORT" envDefault:"5000"`
	GinMode    string `env:"GIN_MODE" envDefault:"release"`

	StoreDriver   string `env:"STORE_DRIVER" envDefault:"sqlite"`
	DatabasePath  string `env:"DATABASE_PATH" envDefault:"blog.db"`
	MongoURI      string `env:"MONGO_URI"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"blog"`

	SessionSecret string `env:"SESSION_SECRET"`
	SessionStore  string `env:"SESSION_STORE" envDefault:"memory"`

	UploadDir     string `env:"UPLOAD_DIR" envDefault:"uploads"`
	UploadURLPath string `env:"UPLOAD_URL_PATH" envDefault:"/uploads"`

	AdminEmail        string `env:"EMAIL"`
	AdminPassword     string `env:"PASSWORD"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`

	MailHost       string `env:"EMAIL_HOST"`
	MailPort       int    `env:"EMAIL_PORT" envDefault:"587"`
	MailUser       string `env:"EMAIL_USER"`
	MailPass       string `env:"EMAIL_PASS"`
	RecipientEmail string `env:"RECIPIENT_EMAIL"`

	CORSOrigins   []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"https://rohan-keenoy.web.app,http://localhost:3000"`
	DefaultAuthor string   `env:"DEFAULT_AUTHOR" envDefault:"Rohan"`

	// RequireAdminForPosts 为 true 时 POST /post 需要管理员会话。
	RequireAdminForPosts bool `env:"REQUIRE_ADMIN_FOR_POSTS" envDefault:"false"`
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() (AppConfig, error) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func (c *AppConfig) normalize() error {
	c.Port = strings.TrimSpace(c.Port)
	if c.Port == "" {
		c.Port = "5000"
	}

	c.ListenAddr = strings.TrimSpace(c.ListenAddr)
	if c.ListenAddr == "" {
		c.ListenAddr = fmt.Sprintf(":%s", c.Port)
	}

	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case "":
		c.StoreDriver = StoreSQLite
	case StoreSQLite:
	case StoreMongo:
		if strings.TrimSpace(c.MongoURI) == "" {
			return fmt.Errorf("MONGO_URI is required when STORE_DRIVER=%s", StoreMongo)
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}

	c.SessionStore = strings.ToLower(strings.TrimSpace(c.SessionStore))
	switch c.SessionStore {
	case "":
		c.SessionStore = SessionStoreMemory
	case SessionStoreMemory, SessionStoreCookie:
	default:
		return fmt.Errorf("unsupported SESSION_STORE %q", c.SessionStore)
	}

	// 未配置密钥时与进程同生命周期随机生成，重启后旧会话失效。
	if strings.TrimSpace(c.SessionSecret) == "" {
		secret, err := randomSecret()
		if err != nil {
			return fmt.Errorf("generating session secret: %w", err)
		}
		c.SessionSecret = secret
	}

	origins := make([]string, 0, len(c.CORSOrigins))
	for _, origin := range c.CORSOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		origins = append(origins, defaultCORSOrigins...)
	}
	c.CORSOrigins = origins

	if strings.TrimSpace(c.DefaultAuthor) == "" {
		c.DefaultAuthor = "Rohan"
	}
	if strings.TrimSpace(c.UploadURLPath) == "" {
		c.UploadURLPath = "/uploads"
	}
	if strings.TrimSpace(c.UploadDir) == "" {
		c.UploadDir = "uploads"
	}

	return nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
