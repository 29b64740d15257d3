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

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// ColumnSpec describes one column as reported by the engine's catalog.
type ColumnSpec struct {
	Name    string
	Type    string
	NotNull bool
	Default string
}

// IndexSpec describes one index as reported by the engine's catalog.
type IndexSpec struct {
	Name    string
	Unique  bool
	Columns []string
}

// TableExists reports whether the named table is present in the current
// schema.
func TableExists(ctx context.Context, db *bun.DB, table string) (bool, error) {
	var exists bool
	var err error
	switch db.Dialect().Name() {
	case dialect.PG:
		err = db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1)`,
			table).Scan(&exists)
	case dialect.MySQL:
		err = db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?)`,
			table).Scan(&exists)
	default:
		err = db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?)`,
			table).Scan(&exists)
	}
	if err != nil {
		return false, fmt.Errorf("failed to query table catalog: %w", err)
	}
	return exists, nil
}

// TableColumns returns the catalog view of a table's columns keyed by
// column name.
func TableColumns(ctx context.Context, db *bun.DB, table string) (map[string]ColumnSpec, error) {
	cols := map[string]ColumnSpec{}
	var rows *sql.Rows
	var err error
	name := db.Dialect().Name()
	switch name {
	case dialect.PG:
		rows, err = db.QueryContext(ctx,
			`SELECT column_name, data_type, is_nullable, column_default FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1`,
			table)
	case dialect.MySQL:
		rows, err = db.QueryContext(ctx,
			`SELECT COLUMN_NAME, COLUMN_TYPE, IS_NULLABLE, COLUMN_DEFAULT FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?`,
			table)
	default:
		rows, err = db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info('%s')", table))
	}
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	for rows.Next() {
		var colName, typStr, nullable string
		var defaultNS sql.NullString
		switch name {
		case dialect.PG, dialect.MySQL:
			if err := rows.Scan(&colName, &typStr, &nullable, &defaultNS); err != nil {
				return nil, err
			}
		default:
			var cid, notnull, pk int
			if err := rows.Scan(&cid, &colName, &typStr, &notnull, &defaultNS, &pk); err != nil {
				return nil, err
			}
			nullable = map[bool]string{true: "NO", false: "YES"}[notnull == 1]
		}
		def := ""
		if defaultNS.Valid {
			def = defaultNS.String
		}
		cols[colName] = ColumnSpec{
			Name:    colName,
			Type:    typStr,
			NotNull: strings.ToUpper(nullable) == "NO",
			Default: def,
		}
	}
	return cols, rows.Err()
}

// TableIndexes returns the catalog view of a table's indexes.
func TableIndexes(ctx context.Context, db *bun.DB, table string) ([]IndexSpec, error) {
	var idx []IndexSpec

	switch db.Dialect().Name() {
	case dialect.PG:
		rows, err := db.QueryContext(ctx,
			`SELECT indexname, indexdef FROM pg_indexes WHERE schemaname = current_schema() AND tablename = $1`,
			table)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		for rows.Next() {
			var name, def string
			if err := rows.Scan(&name, &def); err != nil {
				return nil, err
			}
			spec := IndexSpec{Name: name}
			spec.Unique = strings.Contains(strings.ToUpper(def), "UNIQUE")
			open := strings.Index(def, "(")
			closing := strings.LastIndex(def, ")")
			if open > 0 && closing > open {
				for _, c := range strings.Split(def[open+1:closing], ",") {
					spec.Columns = append(spec.Columns, strings.TrimSpace(strings.Trim(c, `"`)))
				}
			}
			idx = append(idx, spec)
		}
		return idx, rows.Err()
	case dialect.MySQL:
		rows, err := db.QueryContext(ctx,
			`SELECT INDEX_NAME, COLUMN_NAME, NON_UNIQUE FROM INFORMATION_SCHEMA.STATISTICS WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ? ORDER BY SEQ_IN_INDEX`,
			table)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		temp := map[string]IndexSpec{}
		var order []string
		for rows.Next() {
			var name, col string
			var nonUnique int
			if err := rows.Scan(&name, &col, &nonUnique); err != nil {
				return nil, err
			}
			spec, seen := temp[name]
			if !seen {
				order = append(order, name)
			}
			spec.Name = name
			spec.Unique = nonUnique == 0
			spec.Columns = append(spec.Columns, col)
			temp[name] = spec
		}
		for _, name := range order {
			idx = append(idx, temp[name])
		}
		return idx, rows.Err()
	default:
		rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA index_list('%s')", table))
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var seq, unique int
			var name, origin, partial string
			if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
				_ = rows.Close()
				return nil, err
			}
			idx = append(idx, IndexSpec{Name: name, Unique: unique == 1})
		}
		// Drain and close before the per-index PRAGMA queries: with a
		// single-connection pool an open result set would starve them.
		if err := rows.Err(); err != nil {
			_ = rows.Close()
			return nil, err
		}
		if err := rows.Close(); err != nil {
			return nil, err
		}
		for i := range idx {
			cols, err := sqliteIndexColumns(ctx, db, idx[i].Name)
			if err != nil {
				return nil, err
			}
			idx[i].Columns = cols
		}
		return idx, nil
	}
}

func sqliteIndexColumns(ctx context.Context, db *bun.DB, index string) ([]string, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA index_info('%s')", index))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cols []string
	for rows.Next() {
		var seqno, cid int
		var col string
		if err := rows.Scan(&seqno, &cid, &col); err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return cols, rows.Err()
}
