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

// Package visiondb is the shared library of the object-detection prediction
// store: schema bootstrap for the predictions table plus the data access
// surface collaborating services use to read and write prediction rows.
package visiondb

import (
	"context"
	"sync"

	"github.com/tomoncle/visiondb/database"
	"github.com/tomoncle/visiondb/repository"
	"github.com/tomoncle/visiondb/types"

	"github.com/uptrace/bun"
)

// Service is the data access facade for one entity type, backed by the
// global database connection opened via database.InitDB.
type Service[T any] interface {
	// Get returns the entity with the given identifier.
	Get(ctx context.Context, id any) (*T, error)

	// All returns every entity.
	All(ctx context.Context) ([]*T, error)

	// List returns the entities matching the filter.
	List(ctx context.Context, filter *types.QueryFilter) ([]*T, error)

	// Page returns one page of entities with the unpaged total.
	Page(ctx context.Context, page *types.PageRequest) (*types.Pagination[T], error)

	// Save inserts new entities.
	Save(ctx context.Context, model ...*T) error

	// SaveWithTx inserts new entities within an existing transaction.
	SaveWithTx(ctx context.Context, tx *bun.Tx, model ...*T) error

	// Update rewrites an existing entity by primary key.
	Update(ctx context.Context, model *T) error

	// Delete removes the entity with the given identifier.
	Delete(ctx context.Context, id any) error

	// SelectBuilder returns a Bun select query bound to the entity type.
	SelectBuilder() *bun.SelectQuery

	// InsertBuilder returns a Bun insert query bound to the entity type.
	InsertBuilder() *bun.InsertQuery
}

// NewService returns the default Service over the generic repository. The
// repository binds to the global connection on first use, so services may be
// constructed before database.InitDB has run.
func NewService[T any]() Service[T] {
	return &entityService[T]{}
}

type entityService[T any] struct {
	once sync.Once
	repo repository.Repository[T]
}

func (s *entityService[T]) r() repository.Repository[T] {
	s.once.Do(func() {
		s.repo = repository.NewRepository[T](database.GetDB())
	})
	return s.repo
}

func (s *entityService[T]) Get(ctx context.Context, id any) (*T, error) {
	return s.r().GetOne(ctx, id)
}

func (s *entityService[T]) All(ctx context.Context) ([]*T, error) {
	return s.r().GetAll(ctx)
}

func (s *entityService[T]) List(ctx context.Context, filter *types.QueryFilter) ([]*T, error) {
	return s.r().List(ctx, filter)
}

func (s *entityService[T]) Page(ctx context.Context, page *types.PageRequest) (*types.Pagination[T], error) {
	return s.r().Page(ctx, page)
}

func (s *entityService[T]) Save(ctx context.Context, model ...*T) error {
	return s.r().Create(ctx, model...)
}

func (s *entityService[T]) SaveWithTx(ctx context.Context, tx *bun.Tx, model ...*T) error {
	return s.r().CreateWithTx(ctx, tx, model...)
}

func (s *entityService[T]) Update(ctx context.Context, model *T) error {
	return s.r().Update(ctx, model)
}

func (s *entityService[T]) Delete(ctx context.Context, id any) error {
	return s.r().Delete(ctx, id)
}

func (s *entityService[T]) SelectBuilder() *bun.SelectQuery {
	return s.r().NewSelect()
}

func (s *entityService[T]) InsertBuilder() *bun.InsertQuery {
	return s.r().NewInsert()
}
