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

package database_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomoncle/visiondb/database"
	"github.com/uptrace/bun"
)

func sqliteConfig(t *testing.T) *database.ConnectionConfig {
	t.Helper()
	cfg := database.DefaultConnectionConfig()
	cfg.Type = "sqlite"
	cfg.DBName = filepath.Join(t.TempDir(), "visiondb-test")
	return cfg
}

func openTestDB(t *testing.T) *bun.DB {
	t.Helper()
	manager := database.NewDatabaseManager(sqliteConfig(t))
	if err := manager.Connect(context.Background()); err != nil {
		t.Fatalf("connect error: %v", err)
	}
	t.Cleanup(func() {
		_ = manager.Disconnect()
	})
	return manager.GetDB()
}

func TestManagerConnectDisconnect(t *testing.T) {
	ctx := context.Background()
	manager := database.NewDatabaseManager(sqliteConfig(t))

	if err := manager.Connect(ctx); err != nil {
		t.Fatalf("connect error: %v", err)
	}
	if manager.GetDB() == nil {
		t.Fatal("GetDB returned nil after connect")
	}
	if manager.GetSQLDB() == nil {
		t.Fatal("GetSQLDB returned nil after connect")
	}
	if err := manager.Ping(ctx); err != nil {
		t.Fatalf("ping error: %v", err)
	}

	// Connect is idempotent while already connected.
	if err := manager.Connect(ctx); err != nil {
		t.Fatalf("second connect error: %v", err)
	}

	if err := manager.Disconnect(); err != nil {
		t.Fatalf("disconnect error: %v", err)
	}
	if manager.GetDB() != nil {
		t.Fatal("GetDB should return nil after disconnect")
	}
	if err := manager.Ping(ctx); err == nil {
		t.Fatal("ping should fail after disconnect")
	}
	// Disconnecting twice is harmless.
	if err := manager.Disconnect(); err != nil {
		t.Fatalf("second disconnect error: %v", err)
	}
}

func TestManagerUnsupportedType(t *testing.T) {
	cfg := database.DefaultConnectionConfig()
	cfg.Type = "oracle"
	cfg.DBName = "x"

	manager := database.NewDatabaseManager(cfg)
	err := manager.Connect(context.Background())
	if err == nil {
		t.Fatal("expected error for unsupported database type")
	}
	if !strings.Contains(err.Error(), "unsupported database type") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConnectionConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     database.ConnectionConfig
		wantErr string
	}{
		{
			name: "complete postgres",
			cfg:  database.ConnectionConfig{Type: "postgres", DBName: "d", Username: "u", Password: "p"},
		},
		{
			name:    "missing password",
			cfg:     database.ConnectionConfig{Type: "postgres", DBName: "d", Username: "u"},
			wantErr: "password must be set",
		},
		{
			name:    "missing everything",
			cfg:     database.ConnectionConfig{Type: "postgres"},
			wantErr: "dbname, username, password must be set",
		},
		{
			name: "sqlite needs only dbname",
			cfg:  database.ConnectionConfig{Type: "sqlite", DBName: ":memory:"},
		},
		{
			name:    "sqlite without dbname",
			cfg:     database.ConnectionConfig{Type: "sqlite"},
			wantErr: "dbname must be set",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tc.wantErr)
			}
		})
	}
}
