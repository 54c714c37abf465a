package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DBUsername string `yaml:"db_username"`
	DBPassword string `yaml:"db_password"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBName     string `yaml:"db_name"`
	DisableTLS bool   `yaml:"disable_tls"`
	DebugSQL   bool   `yaml:"debug_sql"`

	RedisHost     string `yaml:"redis_host"`
	RedisPassword string `yaml:"redis_password"`

	BaseUrl string `yaml:"base_url"`
	JWTKey  string `yaml:"jwt_key"`

	// Validation rules that the product has not settled on yet. Both default
	// to the permissive behavior of the legacy system.
	LeaveOverlapCheck  bool `yaml:"leave_overlap_check"`
	EnforceSalaryTotal bool `yaml:"enforce_salary_total"`
}

func NewConfig() (*Config, error) {
	var c Config

	yamlFile, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(yamlFile, &c)
	if err != nil {
		return nil, err
	}

	// Environment overrides win over the file, so deployments can keep
	// secrets out of it.
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.DBPassword = v
	}
	if v := os.Getenv("JWT_KEY"); v != "" {
		c.JWTKey = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.RedisHost = v
	}

	if c.DBUsername == "" || c.DBPassword == "" || c.DBHost == "" || c.DBName == "" {
		return nil, errors.New("missing required database configuration")
	}
	if c.JWTKey == "" {
		return nil, errors.New("missing jwt key configuration")
	}

	return &c, nil
}
