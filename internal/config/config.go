package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"`
	// 端口被占用时最多尝试的递增次数
	PortRetry int `yaml:"port_retry"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	ExpireTime int    `yaml:"expire_time"`
}

type LogConfig struct {
	Level    string `yaml:"level"`     // 日志级别: debug, info, warn, error
	Format   string `yaml:"format"`    // 日志格式: json, text
	Output   string `yaml:"output"`    // 输出方式: console, file, both
	FilePath string `yaml:"file_path"` // 日志文件路径
}

type UploadConfig struct {
	Dir string `yaml:"dir"` // CSV上传文件的临时存放目录
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Log      LogConfig      `yaml:"log"`
	Upload   UploadConfig   `yaml:"upload"`
}

// Load 从配置文件加载配置
// 优先使用 CONFIG_PATH 环境变量指定的路径
func Load() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		workDir, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("获取工作目录失败: %v", err)
		}

		configPath = filepath.Join(workDir, "config", "config.yaml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = filepath.Join(workDir, "config.yaml")
		}
	}

	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败 %s: %v", configPath, err)
	}

	config := &Config{}
	err = yaml.Unmarshal(configFile, config)
	if err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %v", err)
	}

	applyDefaults(config)
	return config, nil
}

// applyDefaults 填充缺省配置
func applyDefaults(config *Config) {
	if config.Server.Port == "" {
		config.Server.Port = "5001"
	}
	if config.Server.Mode == "" {
		config.Server.Mode = "debug"
	}
	if config.Server.PortRetry == 0 {
		config.Server.PortRetry = 10
	}

	if config.Database.Driver == "" {
		config.Database.Driver = "mysql"
	}

	if config.JWT.ExpireTime == 0 {
		config.JWT.ExpireTime = 86400 // 默认24小时
	}

	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Format == "" {
		config.Log.Format = "text"
	}
	if config.Log.Output == "" {
		config.Log.Output = "console"
	}
	if config.Log.FilePath == "" {
		config.Log.FilePath = "logs/app.log"
	}

	if config.Upload.Dir == "" {
		config.Upload.Dir = "uploads"
	}
}
