// Package database provides connection management, idempotent schema
// bootstrap, catalog inspection, configuration types, logging, and related
// utilities built on top of Bun.
package database
