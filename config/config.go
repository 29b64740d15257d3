/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package config resolves the database connection settings from the process
// environment, optionally pre-populated from a .env file and a local YAML
// configuration file. Environment variables always win.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/tomoncle/visiondb/database"
	"github.com/tomoncle/visiondb/utils"
)

const (
	defaultHost = "localhost"
	defaultPort = 5432
)

// Config holds the resolved connection settings. POSTGRES_DB, POSTGRES_USER,
// and POSTGRES_PASSWORD are required; host and port fall back to
// localhost:5432.
type Config struct {
	DBName   string `env:"POSTGRES_DB" yaml:"dbname"`
	Username string `env:"POSTGRES_USER" yaml:"username"`
	Password string `env:"POSTGRES_PASSWORD" yaml:"password"`
	Host     string `env:"POSTGRES_HOST" yaml:"host"`
	Port     int    `env:"POSTGRES_PORT" yaml:"port"`

	// File-only settings for non-default engines and TLS.
	Type    string `yaml:"type"`
	SSLMode string `yaml:"sslmode"`
}

// Load resolves the configuration: .env file, then the local YAML file if
// present, then the environment, then code defaults. The result is
// validated before it is returned.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := cfg.loadFile(DefaultConfigFile); err != nil {
		return nil, err
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = defaultHost
	}
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.Type == "" {
		c.Type = "postgres"
	}
}

// Validate checks the required credentials. It runs before any connection
// is attempted; a failure here means no network activity happened.
func (c *Config) Validate() error {
	if c.Type == "sqlite" || c.Type == "sqlite3" {
		if c.DBName == "" {
			return fmt.Errorf("dbname must be set for sqlite databases")
		}
		return nil
	}
	var missing []string
	if c.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if c.Username == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if c.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s must be set in environment variables", strings.Join(missing, ", "))
	}
	return nil
}

// ConnectionConfig maps the resolved settings onto the database package's
// connection configuration.
func (c *Config) ConnectionConfig() *database.ConnectionConfig {
	cc := database.DefaultConnectionConfig()
	cc.Type = c.Type
	cc.Host = c.Host
	cc.Port = c.Port
	cc.Username = c.Username
	cc.Password = c.Password
	cc.DBName = c.DBName
	cc.SSLMode = c.SSLMode
	cc.EnableQueryLog = utils.EnvDefaultBool("DB_ENABLE_QUERY_LOG", false)
	return cc
}
