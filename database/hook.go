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
	"sync/atomic"
	"time"

	"github.com/fatih/color"
	"github.com/uptrace/bun"
)

// quietSQLMode is read by query hooks on whatever goroutine runs the query,
// so it must be atomic.
var quietSQLMode atomic.Bool

// EnableQuietSQL suppresses slow-query hook output, used while the schema
// bootstrap issues its DDL.
func EnableQuietSQL(b bool) {
	quietSQLMode.Store(b)
}

// SlowQueryHook logs queries slower than the configured threshold.
type SlowQueryHook struct {
	slowTime time.Duration
	logger   Logger
}

var _ bun.QueryHook = (*SlowQueryHook)(nil)

// NewSlowQueryHook creates a hook that reports queries exceeding slowTime.
func NewSlowQueryHook(slowTime time.Duration, logger Logger) *SlowQueryHook {
	return &SlowQueryHook{slowTime: slowTime, logger: logger}
}

func (h *SlowQueryHook) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	return ctx
}

func (h *SlowQueryHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	if quietSQLMode.Load() {
		return
	}
	if event.Err != nil {
		return
	}

	duration := time.Since(event.StartTime)
	if duration > h.slowTime && h.logger != nil {
		h.logger.Warn("Database slow query detected",
			"duration", duration,
			"slow_threshold", h.slowTime,
			"query", colorQuery(event),
		)
	}
}

func colorQuery(event *bun.QueryEvent) string {
	switch event.Operation() {
	case "SELECT":
		return color.GreenString(event.Query)
	case "INSERT":
		return color.BlueString(event.Query)
	case "UPDATE":
		return color.YellowString(event.Query)
	case "DELETE":
		return color.MagentaString(event.Query)
	default:
		return color.RedString(event.Query)
	}
}
