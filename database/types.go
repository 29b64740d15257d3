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

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Manager defines the operations for opening, checking, and closing a single
// database connection.
type Manager interface {
	Connect(ctx context.Context) error
	Disconnect() error
	Ping(ctx context.Context) error
	GetDB() *bun.DB
	GetSQLDB() *sql.DB
	SetLogger(logger Logger)
}

// ConnectionConfig describes how to reach the target database.
type ConnectionConfig struct {
	Type           string        `json:"type"` // postgres, mysql, sqlite
	Host           string        `json:"host"`
	Port           int           `json:"port"`
	Username       string        `json:"username"`
	Password       string        `json:"password"`
	DBName         string        `json:"dbname"`
	SSLMode        string        `json:"sslmode"`
	ConnectTimeout time.Duration `json:"connect_timeout"`
	EnableQueryLog bool          `json:"enable_query_log"`
	SlowQueryTime  time.Duration `json:"slow_query_time"`
}

// DefaultConnectionConfig returns a connection config with sensible defaults.
func DefaultConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		Type:           "postgres",
		Host:           "localhost",
		Port:           5432,
		ConnectTimeout: time.Second * 10,
		SlowQueryTime:  time.Second * 2,
	}
}

// Validate checks that the credentials needed to open a connection are
// present. It is called before any network activity.
func (c *ConnectionConfig) Validate() error {
	if c.Type == "sqlite" || c.Type == "sqlite3" {
		if c.DBName == "" {
			return fmt.Errorf("dbname must be set for sqlite databases")
		}
		return nil
	}
	var missing []string
	if c.DBName == "" {
		missing = append(missing, "dbname")
	}
	if c.Username == "" {
		missing = append(missing, "username")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return fmt.Errorf("incomplete database configuration: %s must be set", strings.Join(missing, ", "))
	}
	return nil
}
