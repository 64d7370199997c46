package site

import "fmt"

// CollisionError means two documents resolve to the same output path.
// It is structural and therefore fatal to the whole build; it is raised
// before anything is written.
type CollisionError struct {
	Path    string
	Sources [2]string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("output path collision: %q claimed by both %q and %q",
		e.Path, e.Sources[0], e.Sources[1])
}
