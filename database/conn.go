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
	"fmt"
	"sync"

	"github.com/uptrace/bun"
)

var (
	globalMu      sync.Mutex
	globalManager Manager
	DB            *bun.DB
)

// GetDB returns the global Bun database instance.
func GetDB() *bun.DB {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalManager != nil {
		return globalManager.GetDB()
	}
	return DB
}

// GetDatabaseManager returns the global database manager.
func GetDatabaseManager() Manager {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalManager
}

// InitDB opens the global connection using the provided configuration and
// registers all known models with Bun. Collaborating processes that read or
// insert prediction rows bootstrap through here.
func InitDB(ctx context.Context, cfg *ConnectionConfig) (*bun.DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	manager := NewDatabaseManager(cfg)
	manager.SetLogger(GetLogger())
	if err := manager.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := manager.GetDB()
	db.RegisterModel(RegisteredModelInstances()...)

	globalMu.Lock()
	globalManager = manager
	DB = db
	globalMu.Unlock()
	return db, nil
}

// CloseDB closes the global database connection.
func CloseDB() error {
	globalMu.Lock()
	manager := globalManager
	globalManager = nil
	DB = nil
	globalMu.Unlock()

	if manager != nil {
		return manager.Disconnect()
	}
	return nil
}
