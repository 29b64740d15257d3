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

package model_test

import (
	"testing"

	"github.com/tomoncle/visiondb/database"
	"github.com/tomoncle/visiondb/model"
)

func TestSetBBox(t *testing.T) {
	var p model.Prediction
	p.SetBBox(4, 8, 15, 16)

	if p.BBoxLeft == nil || *p.BBoxLeft != 4 {
		t.Errorf("left = %v", p.BBoxLeft)
	}
	if p.BBoxTop == nil || *p.BBoxTop != 8 {
		t.Errorf("top = %v", p.BBoxTop)
	}
	if p.BBoxWidth == nil || *p.BBoxWidth != 15 {
		t.Errorf("width = %v", p.BBoxWidth)
	}
	if p.BBoxHeight == nil || *p.BBoxHeight != 16 {
		t.Errorf("height = %v", p.BBoxHeight)
	}
}

func TestPredictionRegistered(t *testing.T) {
	for _, m := range database.GetRegisteredModels() {
		if _, ok := m.Instance().(*model.Prediction); !ok {
			continue
		}
		indexed, ok := m.(database.IndexedModel)
		if !ok {
			t.Fatal("prediction model should declare its indexes")
		}
		for _, idx := range indexed.Indexes() {
			if idx.Name == "idx_predictions_prediction_id" {
				if idx.Unique {
					t.Error("prediction_id index must be non-unique")
				}
				return
			}
		}
		t.Fatal("idx_predictions_prediction_id not declared")
	}
	t.Fatal("prediction model not registered")
}
