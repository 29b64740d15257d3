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
	"os"
	"reflect"

	"github.com/uptrace/bun"
)

// SchemaBootstrap applies the idempotent schema for all registered models.
// Running it repeatedly is safe: tables and indexes are created only if they
// do not already exist, and an existing table is never altered.
type SchemaBootstrap struct {
	db     *bun.DB
	logger Logger
}

// NewSchemaBootstrap constructs a bootstrap bound to the given Bun database.
func NewSchemaBootstrap(db *bun.DB, logger Logger) *SchemaBootstrap {
	return &SchemaBootstrap{
		db:     db,
		logger: logger,
	}
}

// Apply executes the schema DDL inside a single transaction: one
// CREATE TABLE IF NOT EXISTS per registered model plus the declared
// secondary indexes, then commit. On any failure the transaction is rolled
// back and the database is left untouched.
func (sb *SchemaBootstrap) Apply(ctx context.Context) error {
	// Keep the slow-query hook out of the DDL output. bundebug has its own
	// BUNDEBUG switch and is left alone.
	if _, ok := os.LookupEnv("BUNDEBUG"); !ok {
		EnableQuietSQL(true)
		defer EnableQuietSQL(false)
	}

	if sb.db == nil {
		return fmt.Errorf("database not initialized")
	}

	tx, err := sb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	var committed bool
	defer func(tx bun.Tx) {
		if !committed {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && sb.logger != nil {
				sb.logger.Error("Failed to rollback transaction", "error", rollbackErr)
			}
		}
	}(tx)

	if err := sb.createTables(ctx, tx); err != nil {
		return err
	}
	if err := sb.createIndexes(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}
	committed = true

	if sb.logger != nil {
		sb.logger.Info("Schema bootstrap completed!")
	}
	return nil
}

func (sb *SchemaBootstrap) createTables(ctx context.Context, db bun.IDB) error {
	for _, model := range GetRegisteredModels() {
		instance := model.Instance()
		_, err := db.NewCreateTable().
			Model(instance).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			// IF NOT EXISTS does not protect against a concurrent
			// initializer winning the create race.
			if is, kind := IsSqlError(err); is && kind == ExistTableErr {
				continue
			}
			return fmt.Errorf("failed to create table %s: %w", modelName(instance), err)
		}
	}
	return nil
}

func (sb *SchemaBootstrap) createIndexes(ctx context.Context, db bun.IDB) error {
	for _, model := range GetRegisteredModels() {
		indexed, ok := model.(IndexedModel)
		if !ok {
			continue
		}
		for _, idx := range indexed.Indexes() {
			query := db.NewCreateIndex().
				Model(indexed.Instance()).
				Index(idx.Name).
				Column(idx.Columns...).
				IfNotExists()
			if idx.Unique {
				query = query.Unique()
			}
			if _, err := query.Exec(ctx); err != nil {
				if is, kind := IsSqlError(err); is && kind == ExistIndexErr {
					continue
				}
				return fmt.Errorf("failed to create index %s: %w", idx.Name, err)
			}
		}
	}
	return nil
}

func modelName(model interface{}) string {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
