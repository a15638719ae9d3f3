package store

// ReductionStore persists the history of performed reductions.
type ReductionStore interface {
	// Init ensures the schema exists; idempotent, important for in-memory SQLite
	Init() error
	Close() error

	// CreateReduction inserts a new reduction row and returns its generated id
	CreateReduction(reduction *Reduction) (string, error)
	// GetReduction returns the full row, including image data
	GetReduction(id string) (*Reduction, error)
	// GetReductionImage returns only the reduced PNG bytes
	GetReductionImage(id string) ([]byte, error)
	// ListReductions returns metadata for all rows, newest first, without image data
	ListReductions() ([]*Reduction, error)
	DeleteReduction(id string) error
}
