// Package dataset stores the CSV files the agents analyze. Names are
// /-separated paths relative to the store root.
package dataset

import "context"

// DefaultPattern selects every CSV file at any depth.
const DefaultPattern = "**/*.csv"

// Entry is a named file and its raw contents.
type Entry struct {
	Name string
	Data []byte
}

// Store reads and writes named files. Implementations are stateless: they
// perform I/O on each call without caching.
type Store interface {
	// List returns the names matching a doublestar pattern, sorted. An
	// empty pattern matches every file.
	List(ctx context.Context, pattern string) ([]string, error)

	// Load retrieves entries for the specified names.
	Load(ctx context.Context, names ...string) ([]Entry, error)

	// Save persists entries, creating or overwriting as needed.
	Save(ctx context.Context, entries ...Entry) error

	// Delete removes entries. Missing names are ignored.
	Delete(ctx context.Context, names ...string) error
}
