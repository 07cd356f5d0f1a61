package domain

import "time"

// ScratchEnvironment is a uniquely named temporary directory owned by one
// build or run sequence.
type ScratchEnvironment struct {
	CreatedAt time.Time
	Root      string
}
