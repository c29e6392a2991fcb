package ports

// TableLoader defines how named instruction tables are retrieved.
// This allows table sources (files, memory, embedded catalog) to be decoupled.
type TableLoader interface {
	// GetTable retrieves the raw table text by name.
	// It returns the raw bytes (which the compiler will parse) or an error.
	GetTable(name string) ([]byte, error)

	// ListTables returns the names of all available tables, sorted.
	ListTables() ([]string, error)
}
