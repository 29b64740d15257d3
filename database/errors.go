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
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

type SQLError int

const (
	UnknownErr SQLError = iota
	NoTableErr
	ExistTableErr
	ExistIndexErr
	NoColumnErr
	DuplicateKeyErr
	NotNullViolationErr
	PermissionDeniedErr
)

// IsSqlError classifies driver errors by engine error code or SQLSTATE
// text. MySQL errors carry typed codes; postgres and sqlite errors are
// matched on their message.
func IsSqlError(err error) (is bool, sqlErr SQLError) {
	if err == nil {
		return false, UnknownErr
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1050:
			return true, ExistTableErr
		case 1061:
			return true, ExistIndexErr
		case 1054:
			return true, NoColumnErr
		case 1062:
			return true, DuplicateKeyErr
		case 1048:
			return true, NotNullViolationErr
		case 1142, 1044, 1045:
			return true, PermissionDeniedErr
		case 1146:
			return true, NoTableErr
		default:
			return true, UnknownErr
		}
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "sqlstate 42p01") ||
		strings.Contains(s, "undefined table") ||
		strings.Contains(s, "no such table") {
		return true, NoTableErr
	}
	if strings.Contains(s, "already exists") && strings.Contains(s, "index") {
		return true, ExistIndexErr
	}
	if strings.Contains(s, "sqlstate 42p07") ||
		(strings.Contains(s, "already exists") && strings.Contains(s, "table")) ||
		(strings.Contains(s, "relation") && strings.Contains(s, "already exists")) {
		return true, ExistTableErr
	}
	if strings.Contains(s, "sqlstate 42703") ||
		strings.Contains(s, "undefined column") ||
		strings.Contains(s, "no such column") {
		return true, NoColumnErr
	}
	if strings.Contains(s, "duplicate key value") ||
		strings.Contains(s, "unique constraint failed") ||
		strings.Contains(s, "sqlstate 23505") {
		return true, DuplicateKeyErr
	}
	if strings.Contains(s, "not-null constraint") ||
		strings.Contains(s, "sqlstate 23502") ||
		strings.Contains(s, "not null constraint failed") {
		return true, NotNullViolationErr
	}
	if strings.Contains(s, "permission denied") ||
		strings.Contains(s, "sqlstate 42501") ||
		strings.Contains(s, "access denied") {
		return true, PermissionDeniedErr
	}
	return false, UnknownErr
}
