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

package visiondb_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/tomoncle/visiondb"
	"github.com/tomoncle/visiondb/database"
	"github.com/tomoncle/visiondb/model"
	"github.com/tomoncle/visiondb/types"
)

func setupStore(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	cfg := database.DefaultConnectionConfig()
	cfg.Type = "sqlite"
	cfg.DBName = filepath.Join(t.TempDir(), "visiondb-test")

	if err := database.NewInitializer(cfg).Run(ctx); err != nil {
		t.Fatalf("initializer error: %v", err)
	}
	if _, err := database.InitDB(ctx, cfg); err != nil {
		t.Fatalf("init db error: %v", err)
	}
	t.Cleanup(func() {
		_ = database.CloseDB()
	})
}

func newPrediction(runID uuid.UUID, class string, confidence float64) *model.Prediction {
	image := "frames/0001.jpg"
	p := &model.Prediction{
		PredictionID: runID,
		ImagePath:    &image,
		ClassName:    &class,
		Confidence:   &confidence,
	}
	p.SetBBox(10, 20, 120, 240)
	return p
}

func TestPredictionService(t *testing.T) {
	setupStore(t)
	ctx := context.Background()
	svc := visiondb.NewService[model.Prediction]()

	runID := uuid.New()
	first := newPrediction(runID, "person", 0.92)
	second := newPrediction(runID, "bicycle", 0.71)

	if err := svc.Save(ctx, first); err != nil {
		t.Fatalf("save error: %v", err)
	}
	if err := svc.Save(ctx, second); err != nil {
		t.Fatalf("save error: %v", err)
	}
	if first.ID == 0 || second.ID == 0 {
		t.Errorf("ids not assigned on insert: %d, %d", first.ID, second.ID)
	}

	got, err := svc.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if got.ClassName == nil || *got.ClassName != "person" {
		t.Errorf("unexpected class name: %v", got.ClassName)
	}
	if got.PredictionID != runID {
		t.Errorf("prediction id mismatch: %s", got.PredictionID)
	}
	if got.BBoxLeft == nil || *got.BBoxLeft != 10 {
		t.Errorf("unexpected bbox: %v", got.BBoxLeft)
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at not assigned by the engine")
	}

	byRun, err := svc.List(ctx, types.NewQueryFilter("prediction_id = ?", runID))
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(byRun) != 2 {
		t.Errorf("expected 2 detections for run, got %d", len(byRun))
	}

	other, err := svc.List(ctx, types.NewQueryFilter("prediction_id = ?", uuid.New()))
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("expected no detections for unknown run, got %d", len(other))
	}
}

func TestPredictionServicePage(t *testing.T) {
	setupStore(t)
	ctx := context.Background()
	svc := visiondb.NewService[model.Prediction]()

	runID := uuid.New()
	for i := 0; i < 5; i++ {
		if err := svc.Save(ctx, newPrediction(runID, "car", 0.5)); err != nil {
			t.Fatalf("save error: %v", err)
		}
	}

	page, err := svc.Page(ctx, types.NewDefaultPageRequest(1, 2))
	if err != nil {
		t.Fatalf("page error: %v", err)
	}
	if page.Total != 5 {
		t.Errorf("expected total 5, got %d", page.Total)
	}
	if len(page.Items) != 2 {
		t.Errorf("expected 2 items on page, got %d", len(page.Items))
	}
}

func TestPredictionServiceUpdateDelete(t *testing.T) {
	setupStore(t)
	ctx := context.Background()
	svc := visiondb.NewService[model.Prediction]()

	p := newPrediction(uuid.New(), "dog", 0.4)
	if err := svc.Save(ctx, p); err != nil {
		t.Fatalf("save error: %v", err)
	}

	stored, err := svc.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	className := "cat"
	stored.ClassName = &className
	if err := svc.Update(ctx, stored); err != nil {
		t.Fatalf("update error: %v", err)
	}
	got, err := svc.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if got.ClassName == nil || *got.ClassName != "cat" {
		t.Errorf("update not persisted: %v", got.ClassName)
	}

	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	all, err := svc.All(ctx)
	if err != nil {
		t.Fatalf("all error: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected empty table after delete, got %d rows", len(all))
	}
}
