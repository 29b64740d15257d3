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
	"testing"

	"github.com/tomoncle/visiondb/database"
	_ "github.com/tomoncle/visiondb/model"
)

func TestSchemaBootstrapApply(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	bootstrap := database.NewSchemaBootstrap(db, nil)
	if err := bootstrap.Apply(ctx); err != nil {
		t.Fatalf("apply error: %v", err)
	}

	exists, err := database.TableExists(ctx, db, "predictions")
	if err != nil {
		t.Fatalf("table catalog error: %v", err)
	}
	if !exists {
		t.Fatal("predictions table missing after bootstrap")
	}
}

func TestSchemaBootstrapIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	bootstrap := database.NewSchemaBootstrap(db, nil)
	for i := 0; i < 3; i++ {
		if err := bootstrap.Apply(ctx); err != nil {
			t.Fatalf("apply #%d error: %v", i+1, err)
		}
	}
}

func TestSchemaBootstrapRerunKeepsData(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	bootstrap := database.NewSchemaBootstrap(db, nil)
	if err := bootstrap.Apply(ctx); err != nil {
		t.Fatalf("apply error: %v", err)
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO predictions (prediction_id, class_name) VALUES (?, ?)`,
		"0b2fcf30-9a1f-4c6f-9d7e-2f4a8b1c3d5e", "person"); err != nil {
		t.Fatalf("insert error: %v", err)
	}

	if err := bootstrap.Apply(ctx); err != nil {
		t.Fatalf("rerun error: %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT count(*) FROM predictions`).Scan(&count); err != nil {
		t.Fatalf("count error: %v", err)
	}
	if count != 1 {
		t.Errorf("rerun must not touch existing rows, count = %d", count)
	}
}

func TestSchemaBootstrapColumns(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	if err := database.NewSchemaBootstrap(db, nil).Apply(ctx); err != nil {
		t.Fatalf("apply error: %v", err)
	}

	cols, err := database.TableColumns(ctx, db, "predictions")
	if err != nil {
		t.Fatalf("column catalog error: %v", err)
	}
	want := []string{
		"id", "prediction_id", "image_path", "class_name", "confidence",
		"bbox_left", "bbox_top", "bbox_width", "bbox_height", "created_at",
	}
	if len(cols) != len(want) {
		t.Errorf("expected %d columns, got %d: %v", len(want), len(cols), cols)
	}
	for _, name := range want {
		if _, ok := cols[name]; !ok {
			t.Errorf("column %q missing from catalog", name)
		}
	}
	if !cols["prediction_id"].NotNull {
		t.Error("prediction_id should be NOT NULL")
	}
	if cols["created_at"].NotNull {
		t.Error("created_at should be nullable")
	}
	if cols["created_at"].Default == "" {
		t.Error("created_at should carry a server-side default")
	}
	if cols["class_name"].NotNull {
		t.Error("class_name should be nullable")
	}
}

func TestSchemaBootstrapIndexes(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	if err := database.NewSchemaBootstrap(db, nil).Apply(ctx); err != nil {
		t.Fatalf("apply error: %v", err)
	}

	indexes, err := database.TableIndexes(ctx, db, "predictions")
	if err != nil {
		t.Fatalf("index catalog error: %v", err)
	}
	var found *database.IndexSpec
	for i := range indexes {
		if indexes[i].Name == "idx_predictions_prediction_id" {
			found = &indexes[i]
			break
		}
	}
	if found == nil {
		t.Fatalf("idx_predictions_prediction_id missing, got %v", indexes)
	}
	if found.Unique {
		t.Error("prediction_id index must be non-unique")
	}
	if len(found.Columns) != 1 || found.Columns[0] != "prediction_id" {
		t.Errorf("unexpected index columns: %v", found.Columns)
	}
}
