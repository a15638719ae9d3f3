package store

import "time"

// Reduction is one recorded reduction run.
type Reduction struct {
	ID             string
	Image          []byte // reduced PNG data stored as binary
	OriginalWidth  int
	OriginalHeight int
	ReducedWidth   int
	ReducedHeight  int
	CreatedAt      time.Time
}
