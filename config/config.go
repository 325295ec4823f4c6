package config

import (
	"os"
	"path"
	"strconv"

	"gopkg.in/yaml.v3"
)

type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	AdminKey  string `yaml:"admin_key"`
	PublicURL string `yaml:"public_url"`
}

type DBConfig struct {
	Type   string `yaml:"type"`
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	Name   string `yaml:"name"`
	User   string `yaml:"user"`
	Passwd string `yaml:"passwd"`
	Debug  bool   `yaml:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system" json:"system"`
	Web      WebConfig `yaml:"web" json:"web"`
	Database DBConfig  `yaml:"database" json:"database"`
	Logger   LogConfig `yaml:"logger" json:"logger"`
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

func (c *AppConfig) GetPdfDir() string {
	return path.Join(c.System.Workdir, "pdfs")
}

func (c *AppConfig) initDirs() {
	_ = os.MkdirAll(c.System.Workdir, 0o755)
	_ = os.MkdirAll(c.GetLogDir(), 0o755)
	_ = os.MkdirAll(c.GetDataDir(), 0o755)
	_ = os.MkdirAll(c.GetPdfDir(), 0o755)
}

func setEnvValue(name string, val *string) {
	if evalue, ok := os.LookupEnv(name); ok {
		*val = evalue
	}
}

func setEnvIntValue(name string, val *int) {
	if evalue, ok := os.LookupEnv(name); ok {
		if i, err := strconv.Atoi(evalue); err == nil {
			*val = i
		}
	}
}

func setEnvBoolValue(name string, val *bool) {
	if evalue, ok := os.LookupEnv(name); ok {
		*val = evalue == "true" || evalue == "1" || evalue == "on"
	}
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "shopd",
		Location: "Asia/Kolkata",
		Workdir:  "/var/shopd",
		Debug:    false,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      5000,
		AdminKey:  "",
		PublicURL: "",
	},
	Database: DBConfig{
		Type:   "postgres",
		Host:   "127.0.0.1",
		Port:   5432,
		Name:   "shopd",
		User:   "postgres",
		Passwd: "",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/shopd/logs/shopd.log",
	},
}

// LoadConfig reads the yaml config file and applies SHOPD_* environment
// overrides. A missing file yields the defaults.
func LoadConfig(cfile string) *AppConfig {
	appcfg := new(AppConfig)
	*appcfg = *DefaultAppConfig

	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, appcfg)
		}
	}

	setEnvValue("SHOPD_SYSTEM_WORKDIR", &appcfg.System.Workdir)
	setEnvBoolValue("SHOPD_SYSTEM_DEBUG", &appcfg.System.Debug)

	setEnvValue("SHOPD_WEB_HOST", &appcfg.Web.Host)
	setEnvIntValue("SHOPD_WEB_PORT", &appcfg.Web.Port)
	setEnvValue("SHOPD_ADMIN_KEY", &appcfg.Web.AdminKey)
	setEnvValue("SHOPD_WEB_PUBLIC_URL", &appcfg.Web.PublicURL)

	setEnvValue("SHOPD_DB_TYPE", &appcfg.Database.Type)
	setEnvValue("SHOPD_DB_HOST", &appcfg.Database.Host)
	setEnvIntValue("SHOPD_DB_PORT", &appcfg.Database.Port)
	setEnvValue("SHOPD_DB_NAME", &appcfg.Database.Name)
	setEnvValue("SHOPD_DB_USER", &appcfg.Database.User)
	setEnvValue("SHOPD_DB_PWD", &appcfg.Database.Passwd)

	setEnvValue("SHOPD_LOGGER_MODE", &appcfg.Logger.Mode)
	setEnvBoolValue("SHOPD_LOGGER_FILE_ENABLE", &appcfg.Logger.FileEnable)

	appcfg.initDirs()
	return appcfg
}
