package render

import "fmt"

// RenderError reports a chart that could not be drawn, encoded or persisted
type RenderError struct {
	Chart string // Chart name
	Path  string // Target file
	Op    string // "layout", "encode" or "write"
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s to %s: %s failed: %v", e.Chart, e.Path, e.Op, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
