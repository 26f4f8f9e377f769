// Package migrations groups the embedded goose migration sets, one
// subpackage per SQL dialect. Migrations only ever add tables and indexes.
package migrations
