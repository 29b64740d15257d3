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

// Package model defines the persisted entities of the prediction store.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/tomoncle/visiondb/database"
	"github.com/uptrace/bun"
)

// Prediction is one detected object instance from one inference run: class
// label, confidence score, and bounding box in pixel coordinates. Several
// rows may share one PredictionID, one per object detected in the run's
// image. ID and CreatedAt are assigned by the storage engine.
type Prediction struct {
	bun.BaseModel `bun:"table:predictions,alias:p"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	PredictionID uuid.UUID `bun:"prediction_id,type:uuid,notnull" json:"prediction_id"`
	ImagePath    *string   `bun:"image_path" json:"image_path,omitempty"`
	ClassName    *string   `bun:"class_name" json:"class_name,omitempty"`
	Confidence   *float64  `bun:"confidence" json:"confidence,omitempty"`
	BBoxLeft     *int      `bun:"bbox_left" json:"bbox_left,omitempty"`
	BBoxTop      *int      `bun:"bbox_top" json:"bbox_top,omitempty"`
	BBoxWidth    *int      `bun:"bbox_width" json:"bbox_width,omitempty"`
	BBoxHeight   *int      `bun:"bbox_height" json:"bbox_height,omitempty"`
	CreatedAt    time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// SetBBox sets the bounding box of the detection.
func (p *Prediction) SetBBox(left, top, width, height int) {
	p.BBoxLeft = &left
	p.BBoxTop = &top
	p.BBoxWidth = &width
	p.BBoxHeight = &height
}

func init() {
	// prediction_id is the lookup key for a run's detections; the index is
	// intentionally non-unique since one run yields many rows.
	database.RegisteredModel(
		database.NewModelAdapter((*Prediction)(nil), 1).WithIndexes(database.ModelIndex{
			Name:    "idx_predictions_prediction_id",
			Columns: []string{"prediction_id"},
		}),
	)
}
