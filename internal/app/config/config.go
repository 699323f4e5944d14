package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/xixiwenxuanhe/order-management/internal/app/domains/entity/etorder"
)

// Config 应用配置
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Lmstfy   LmstfyConfig   `mapstructure:"lmstfy"`
	Vendor   VendorConfig   `mapstructure:"vendor"`
	Statuses []StatusConfig `mapstructure:"statuses"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// DatabaseConfig 数据库配置，driver 支持 sqlite / mysql
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// RedisConfig Redis 配置（凭证刷新通道，可选）
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LmstfyConfig Lmstfy 配置（详情补抓任务队列，可选）
type LmstfyConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	Namespace   string `mapstructure:"namespace"`
	Token       string `mapstructure:"token"`
	DetailQueue string `mapstructure:"detail_queue"`
}

// VendorConfig 上游平台配置
type VendorConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	PageLimit         int           `mapstructure:"page_limit"`
	Timeout           time.Duration `mapstructure:"timeout"`
	StatusList        []string      `mapstructure:"status_list"`
	SignExpiredSubstr string        `mapstructure:"sign_expired_substr"`
}

// StatusConfig 状态表条目（key ↔ 名称 ↔ 规范含义）
type StatusConfig struct {
	Key     string `mapstructure:"key"`
	Name    string `mapstructure:"name"`
	Meaning string `mapstructure:"meaning"`
}

// Load 从配置文件加载配置
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config failed: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadDefault 加载默认配置文件路径
func LoadDefault() (*Config, error) {
	return Load("config/config.yaml")
}

// applyDefaults 填充缺省值
func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8000"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.DSN == "" && c.Database.Driver == "sqlite" {
		c.Database.DSN = "orders.db"
	}
	if c.Vendor.BaseURL == "" {
		c.Vendor.BaseURL = "https://api.qiandao.cn"
	}
	if c.Vendor.PageLimit <= 0 {
		c.Vendor.PageLimit = 30
	}
	if c.Vendor.Timeout <= 0 {
		c.Vendor.Timeout = 30 * time.Second
	}
	if c.Vendor.SignExpiredSubstr == "" {
		c.Vendor.SignExpiredSubstr = "验签失败"
	}
	if len(c.Vendor.StatusList) == 0 {
		c.Vendor.StatusList = defaultStatusList()
	}
}

// defaultStatusList 上游订单列表接口的默认状态过滤集合
func defaultStatusList() []string {
	return []string{
		"REFUNDING",
		"WAIT_SELLER_CONFIRM_ORDER",
		"WAIT_BUYER_PAY",
		"WAIT_SELLER_SEND_GOODS",
		"WAIT_BUYER_CONFIRM_GOODS",
		"BUYER_CONFIRM_GOODS",
		"WAIT_REFUND",
		"WAIT_RETURN_REFUND_APPROVE",
		"WAIT_RETURN_REFUND_CONFIRM",
		"WAIT_BUYER_RETURN_GOODS",
		"LOCKED",
	}
}

// Validate 验证配置完整性
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.Driver != "sqlite" && c.Database.Driver != "mysql" {
		return fmt.Errorf("database.driver must be sqlite or mysql, got %q", c.Database.Driver)
	}
	if c.Lmstfy.Host != "" && c.Lmstfy.DetailQueue == "" {
		return fmt.Errorf("lmstfy.detail_queue is required when lmstfy.host is set")
	}
	if c.Lmstfy.Host != "" && c.Lmstfy.Port == 0 {
		return fmt.Errorf("lmstfy.port is required when lmstfy.host is set")
	}
	return nil
}

// StatusTable 根据配置构建状态含义表
func (c *Config) StatusTable() *etorder.StatusTable {
	entries := make([]etorder.StatusEntry, 0, len(c.Statuses))
	for _, s := range c.Statuses {
		entries = append(entries, etorder.StatusEntry{
			Key:     s.Key,
			Name:    s.Name,
			Meaning: etorder.Meaning(s.Meaning),
		})
	}
	return etorder.NewStatusTable(entries)
}
