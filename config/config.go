package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"equipment_borrow/api"
)

// LoadEnv 读取 .env（可选），已存在的环境变量优先
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Printf("config: no .env loaded (%v), using process environment", err)
	}
}

// ClientConfig borrowctl 的配置
type ClientConfig struct {
	APIURL      string `mapstructure:"api_url"`
	SessionFile string `mapstructure:"session_file"`

	// 开发用身份：StaticProvider 用它签发 ID token
	Email string `mapstructure:"email"`
	Name  string `mapstructure:"name"`

	TokenSecret     string `mapstructure:"token_secret"`
	TokenIssuer     string `mapstructure:"token_issuer"`
	TokenAudience   string `mapstructure:"token_audience"`
	AllowUnverified bool   `mapstructure:"allow_unverified"`

	Timezone string `mapstructure:"timezone"`
}

// LoadClient 顺序：默认值 < borrowctl.toml < BORROW_* 环境变量。
// path 为空时在当前目录和配置目录查找；找不到文件不算错误。
func LoadClient(path string) (ClientConfig, error) {
	v := viper.New()
	v.SetDefault("api_url", api.DefaultBaseURL)
	v.SetDefault("session_file", DefaultSessionFile())
	v.SetDefault("name", "")
	v.SetDefault("email", "")
	v.SetDefault("token_secret", "")
	v.SetDefault("token_issuer", "")
	v.SetDefault("token_audience", "")
	v.SetDefault("allow_unverified", false)
	v.SetDefault("timezone", "Asia/Ho_Chi_Minh")

	v.SetEnvPrefix("BORROW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("borrowctl")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "borrowctl"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return ClientConfig{}, fmt.Errorf("read client config: %w", err)
		}
		log.Printf("config: no borrowctl.toml found, using defaults and BORROW_* env")
	}

	var cfg ClientConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return ClientConfig{}, err
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.Email = strings.ToLower(strings.TrimSpace(cfg.Email))
	return cfg, nil
}

// DefaultSessionFile $XDG_CONFIG_HOME/borrowctl/session.json
func DefaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "session.json")
	}
	return filepath.Join(dir, "borrowctl", "session.json")
}
