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

// Package types holds the query and pagination value types shared by the
// repository and service layers.
package types

// QueryFilter is a WHERE clause fragment with its bind arguments, e.g.
// NewQueryFilter("prediction_id = ?", runID).
type QueryFilter struct {
	Schema string
	Args   []interface{}
}

// NewQueryFilter builds a filter from a clause schema and its arguments.
func NewQueryFilter(schema string, args ...interface{}) *QueryFilter {
	return &QueryFilter{Schema: schema, Args: args}
}

// PageRequest describes one page of a filtered, ordered listing. Page is
// 1-based; out-of-range values are normalized by the accessors.
type PageRequest struct {
	Page     int
	PageSize int
	Filter   *QueryFilter
	Orders   []string // "id ASC", "created_at DESC"
}

// NewPageRequest builds a fully specified page request.
func NewPageRequest(page, pageSize int, filter *QueryFilter, orders []string) *PageRequest {
	return &PageRequest{Page: page, PageSize: pageSize, Filter: filter, Orders: orders}
}

// NewPageRequestWithFilter builds a page request with a filter and no ordering.
func NewPageRequestWithFilter(page, pageSize int, filter *QueryFilter) *PageRequest {
	return NewPageRequest(page, pageSize, filter, nil)
}

// NewDefaultPageRequest builds a page request with no filter or ordering.
func NewDefaultPageRequest(page, pageSize int) *PageRequest {
	return NewPageRequest(page, pageSize, nil, nil)
}

// GetPage returns the 1-based page number, at least 1.
func (p *PageRequest) GetPage() int {
	if p.Page < 1 {
		return 1
	}
	return p.Page
}

// GetPageSize returns the page size, defaulting to 10.
func (p *PageRequest) GetPageSize() int {
	if p.PageSize < 1 {
		return 10
	}
	return p.PageSize
}

// GetOffset returns the row offset of the requested page.
func (p *PageRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// GetFilter returns the optional filter.
func (p *PageRequest) GetFilter() *QueryFilter { return p.Filter }

// GetOrders returns the ordering clauses.
func (p *PageRequest) GetOrders() []string { return p.Orders }

// Pagination is one page of results plus the unpaged total.
type Pagination[T any] struct {
	Page     int
	PageSize int
	Total    int
	Items    []*T
}

// NewDefaultPagination builds an empty page container.
func NewDefaultPagination[T any](page, pageSize int) *Pagination[T] {
	return &Pagination[T]{Page: page, PageSize: pageSize, Items: []*T{}}
}
