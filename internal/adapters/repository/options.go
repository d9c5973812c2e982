package repository

// SQLiteOption applies a configuration option to the SQLiteStore.
type SQLiteOption func(*SQLiteStore)

// WithPath sets the database file location.
func WithPath(path string) SQLiteOption {
	return func(s *SQLiteStore) {
		if path != "" {
			s.path = path
		}
	}
}

// WithMemory uses an in-memory database. Intended for tests.
func WithMemory() SQLiteOption {
	return func(s *SQLiteStore) {
		s.path = ":memory:"
	}
}
