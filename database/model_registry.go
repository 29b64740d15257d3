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
	"sort"
	"sync"
)

var defaultRegistry = newModelRegistry()

// SQLModel represents a database model used for schema bootstrap. Instance
// should return a struct pointer compatible with Bun, and Priority controls
// table creation order (lower values first).
type SQLModel interface {
	Instance() interface{}
	Priority() int
}

// ModelIndex describes a secondary index the bootstrap should ensure for a
// model's table.
type ModelIndex struct {
	Name    string
	Columns []string
	Unique  bool
}

// IndexedModel is implemented by models that declare secondary indexes.
type IndexedModel interface {
	SQLModel
	Indexes() []ModelIndex
}

// ModelRegistry stores SQL models and exposes them in a deterministic order.
type ModelRegistry interface {
	Register(model SQLModel)
	Models() []SQLModel
}

type modelRegistry struct {
	models []SQLModel
	mutex  sync.RWMutex
}

func newModelRegistry() ModelRegistry {
	return &modelRegistry{
		models: make([]SQLModel, 0),
	}
}

func (r *modelRegistry) Register(model SQLModel) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.models = append(r.models, model)
}

func (r *modelRegistry) Models() []SQLModel {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]SQLModel, len(r.models))
	copy(result, r.models)
	sort.Slice(result, func(i, j int) bool {
		return result[i].Priority() < result[j].Priority()
	})
	return result
}

// ModelAdapter wraps a struct instance, priority, and optional indexes into
// an SQLModel.
type ModelAdapter struct {
	instance interface{}
	priority int
	indexes  []ModelIndex
}

// NewModelAdapter wraps a struct instance and priority into an SQLModel.
func NewModelAdapter(instance interface{}, priority int) *ModelAdapter {
	return &ModelAdapter{
		instance: instance,
		priority: priority,
	}
}

// WithIndexes attaches secondary index definitions to the adapter.
func (a *ModelAdapter) WithIndexes(indexes ...ModelIndex) *ModelAdapter {
	a.indexes = append(a.indexes, indexes...)
	return a
}

// Instance returns the underlying struct used for schema bootstrap.
func (a *ModelAdapter) Instance() interface{} {
	return a.instance
}

// Priority returns the model's ordering value; lower values run earlier.
func (a *ModelAdapter) Priority() int {
	return a.priority
}

// Indexes returns the declared secondary indexes.
func (a *ModelAdapter) Indexes() []ModelIndex {
	return a.indexes
}

// GetRegisteredModels returns all models registered in the default registry
// sorted by ascending priority.
func GetRegisteredModels() []SQLModel {
	return defaultRegistry.Models()
}

// RegisteredModel adds a model to the default registry.
func RegisteredModel(model SQLModel) {
	defaultRegistry.Register(model)
}

// RegisteredModelInstances returns the struct instances of all registered
// models in priority order.
func RegisteredModelInstances() []interface{} {
	models := GetRegisteredModels()
	modelInstances := make([]interface{}, len(models))
	for i, model := range models {
		modelInstances[i] = model.Instance()
	}
	return modelInstances
}
