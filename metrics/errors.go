package metrics

import "fmt"

// DegenerateInputError reports a zero or non-finite denominator (or sample)
// that would turn a percentage or ratio into Inf/NaN
type DegenerateInputError struct {
	Quantity string  // What was being divided by, e.g. "baseline mean"
	Value    float64 // The offending value
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("degenerate input: %s is %v", e.Quantity, e.Value)
}

// InputShapeError reports a series with the wrong number of values for its scenario
type InputShapeError struct {
	Scenario string // "interactive", "starvation" or "io"
	Field    string // Which series or slot, e.g. "baseline" or "variant.dominant"
	Want     int    // Expected count (0 means "at least one")
	Got      int
}

func (e *InputShapeError) Error() string {
	if e.Want == 0 {
		return fmt.Sprintf("%s: %s must not be empty", e.Scenario, e.Field)
	}
	return fmt.Sprintf("%s: %s needs exactly %d value(s), got %d", e.Scenario, e.Field, e.Want, e.Got)
}
