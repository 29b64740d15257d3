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

package repository

import (
	"context"

	"github.com/tomoncle/visiondb/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

// bunRepository is the Bun-backed Repository implementation. Entities are
// addressed by their "id" column.
type bunRepository[T any] struct {
	db *bun.DB
}

// NewRepository returns a generic repository backed by the provided Bun DB.
func NewRepository[T any](db *bun.DB) Repository[T] {
	return &bunRepository[T]{db: db}
}

func (r *bunRepository[T]) GetOne(ctx context.Context, id any) (*T, error) {
	entity := new(T)
	if err := r.db.NewSelect().Model(entity).Where("id = ?", id).Scan(ctx); err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *bunRepository[T]) GetAll(ctx context.Context) ([]*T, error) {
	var entities []*T
	err := r.db.NewSelect().Model(&entities).Scan(ctx)
	return entities, err
}

func (r *bunRepository[T]) List(ctx context.Context, filter *types.QueryFilter) ([]*T, error) {
	var entities []*T
	query := r.db.NewSelect().Model(&entities)
	if filter != nil {
		query = query.Where(filter.Schema, filter.Args...)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *bunRepository[T]) Page(ctx context.Context, page *types.PageRequest) (*types.Pagination[T], error) {
	var entities []*T
	query := r.db.NewSelect().Model(&entities)
	if f := page.GetFilter(); f != nil {
		query = query.Where(f.Schema, f.Args...)
	}
	// ScanAndCount counts before limit/offset apply, so Total is the size of
	// the whole filtered set.
	total, err := query.
		Offset(page.GetOffset()).
		Limit(page.GetPageSize()).
		Order(page.GetOrders()...).
		ScanAndCount(ctx)
	if err != nil {
		return nil, err
	}

	result := types.NewDefaultPagination[T](page.GetPage(), page.GetPageSize())
	result.Total = total
	if entities != nil {
		result.Items = entities
	}
	return result, nil
}

func (r *bunRepository[T]) Create(ctx context.Context, entity ...*T) error {
	_, err := r.db.NewInsert().Model(&entity).Exec(ctx)
	return err
}

func (r *bunRepository[T]) CreateWithTx(ctx context.Context, tx *bun.Tx, entity ...*T) error {
	_, err := tx.NewInsert().Model(&entity).Exec(ctx)
	return err
}

func (r *bunRepository[T]) Update(ctx context.Context, entity *T) error {
	_, err := r.db.NewUpdate().Model(entity).WherePK().Exec(ctx)
	return err
}

func (r *bunRepository[T]) Delete(ctx context.Context, id any) error {
	_, err := r.db.NewDelete().Model(new(T)).Where("id = ?", id).Exec(ctx)
	return err
}

func (r *bunRepository[T]) DeleteWithTx(ctx context.Context, tx *bun.Tx, id any) error {
	_, err := tx.NewDelete().Model(new(T)).Where("id = ?", id).Exec(ctx)
	return err
}

func (r *bunRepository[T]) Dialect() schema.Dialect { return r.db.Dialect() }

func (r *bunRepository[T]) NewSelect() *bun.SelectQuery { return r.db.NewSelect().Model(new(T)) }

func (r *bunRepository[T]) NewInsert() *bun.InsertQuery { return r.db.NewInsert().Model(new(T)) }

func (r *bunRepository[T]) NewUpdate() *bun.UpdateQuery { return r.db.NewUpdate().Model(new(T)) }

func (r *bunRepository[T]) NewDelete() *bun.DeleteQuery { return r.db.NewDelete().Model(new(T)) }
