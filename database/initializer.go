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
	"reflect"

	"github.com/uptrace/bun"
)

// Initializer performs the one-shot database bootstrap: validate the
// configuration, open a single connection, apply the idempotent schema in
// one transaction, verify it against the catalog, and release the
// connection. It takes its configuration explicitly and reads no global
// state, so runs are reproducible and testable in isolation.
type Initializer struct {
	config  *ConnectionConfig
	manager Manager
	logger  Logger
}

// NewInitializer constructs an initializer for the given connection config.
func NewInitializer(cfg *ConnectionConfig) *Initializer {
	return &Initializer{
		config: cfg,
		logger: GetLogger(),
	}
}

// WithManager overrides the connection manager, primarily for tests.
func (i *Initializer) WithManager(m Manager) *Initializer {
	i.manager = m
	return i
}

// WithLogger overrides the logger.
func (i *Initializer) WithLogger(l Logger) *Initializer {
	i.logger = l
	return i
}

// Run executes the bootstrap. Validation happens before any network
// activity; every acquired resource is released on all exit paths. Run is
// safe to execute repeatedly: the schema statements are create-if-not-exists
// and never alter an existing table.
func (i *Initializer) Run(ctx context.Context) error {
	if i.config == nil {
		return fmt.Errorf("database configuration cannot be empty")
	}
	if err := i.config.Validate(); err != nil {
		return err
	}

	manager := i.manager
	if manager == nil {
		manager = NewDatabaseManager(i.config)
	}
	manager.SetLogger(i.logger)

	if err := manager.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := manager.Disconnect(); err != nil && i.logger != nil {
			i.logger.Error("Failed to release database connection", "error", err)
		}
	}()

	db := manager.GetDB()
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	bootstrap := NewSchemaBootstrap(db, i.logger)
	if err := bootstrap.Apply(ctx); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	if err := i.verify(ctx, db); err != nil {
		return err
	}

	if i.logger != nil {
		i.logger.Info("Database initialization completed!")
	}
	return nil
}

// verify confirms every registered model's table is visible in the engine's
// catalog after the commit.
func (i *Initializer) verify(ctx context.Context, db *bun.DB) error {
	for _, model := range GetRegisteredModels() {
		table := db.Table(indirectType(model.Instance()))
		exists, err := TableExists(ctx, db, table.Name)
		if err != nil {
			return fmt.Errorf("failed to verify table %s: %w", table.Name, err)
		}
		if !exists {
			return fmt.Errorf("table %s missing after schema bootstrap", table.Name)
		}
	}
	return nil
}

func indirectType(model interface{}) reflect.Type {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
