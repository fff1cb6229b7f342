package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyPortalURL      = "portal.url"
	KeyPortalPrefix   = "portal.export_prefix"
	KeyDataDir        = "data.dir"
	KeyWorkFile       = "data.work_file"
	KeyInspectionFile = "data.inspection_file"
	KeyEstimateFile   = "data.estimate_file"
	KeySyncRemote     = "sync.remote"
	KeySyncBranch     = "sync.branch"
	KeyServePort      = "serve.port"
)

type Config struct {
	Portal PortalConfig `mapstructure:"portal" validate:"required"`
	Data   DataConfig   `mapstructure:"data" validate:"required"`
	Sync   SyncConfig   `mapstructure:"sync"`
	Serve  ServeConfig  `mapstructure:"serve"`
}

type PortalConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
	// DownloadDir defaults to the OS download folder when empty.
	DownloadDir  string `mapstructure:"download_dir"`
	ExportPrefix string `mapstructure:"export_prefix" validate:"required"`
}

type DataConfig struct {
	Dir            string `mapstructure:"dir" validate:"required"`
	WorkFile       string `mapstructure:"work_file" validate:"required"`
	InspectionFile string `mapstructure:"inspection_file" validate:"required"`
	EstimateFile   string `mapstructure:"estimate_file" validate:"required"`
	RunDB          string `mapstructure:"run_db"`
}

type SyncConfig struct {
	Remote  string `mapstructure:"remote"`
	Branch  string `mapstructure:"branch"`
	Message string `mapstructure:"message"`
}

type ServeConfig struct {
	Port int `mapstructure:"port" validate:"gte=0,lte=65535"`
}

// WorkPath returns the durable work-hours CSV path.
func (c Config) WorkPath() string {
	return filepath.Join(c.Data.Dir, c.Data.WorkFile)
}

func (c Config) InspectionPath() string {
	return filepath.Join(c.Data.Dir, c.Data.InspectionFile)
}

func (c Config) EstimatePath() string {
	return filepath.Join(c.Data.Dir, c.Data.EstimateFile)
}

// RunDBPath returns the ingest-run audit database path.
func (c Config) RunDBPath() string {
	if strings.TrimSpace(c.Data.RunDB) != "" {
		return c.Data.RunDB
	}
	return filepath.Join(c.Data.Dir, "kousu-runs.db")
}

// SetDefaults sets default values if not provided.
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it.
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# kousu configuration
portal:
  url: "https://hnsslngqdn00197.rakurakuhanbai.jp/tr4pzta"
  # download_dir: ""  # defaults to the OS download folder
  export_prefix: "作業履歴：工数データ"

data:
  dir: ./data
  work_file: 工数データ.csv
  inspection_file: 点検データ.csv
  estimate_file: 見積データ.csv

sync:
  remote: origin
  branch: master
  message: 自動更新

serve:
  port: 8080
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyPortalURL, "https://hnsslngqdn00197.rakurakuhanbai.jp/tr4pzta")
	v.SetDefault(KeyPortalPrefix, "作業履歴：工数データ")
	v.SetDefault(KeyDataDir, "./data")
	v.SetDefault(KeyWorkFile, "工数データ.csv")
	v.SetDefault(KeyInspectionFile, "点検データ.csv")
	v.SetDefault(KeyEstimateFile, "見積データ.csv")
	v.SetDefault(KeySyncRemote, "origin")
	v.SetDefault(KeySyncBranch, "master")
	v.SetDefault("sync.message", "自動更新")
	v.SetDefault(KeyServePort, 8080)
}
