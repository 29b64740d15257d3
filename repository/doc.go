// Package repository provides a generic repository abstraction built on Bun
// for CRUD operations, querying, pagination, and transactional writes.
package repository
