package match

import "fmt"

// ValidationError reports one defective input record. Every record is
// checked and every violation reported, so a single run surfaces all the
// fixes the source data needs; the run never solves over invalid data.
type ValidationError struct {
	Record string // e.g. "student S012"
	Field  string // e.g. "areas[2]"
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("match: %v: %v: %v", e.Record, e.Field, e.Reason)
	}
	return fmt.Sprintf("match: %v: %v %q: %v", e.Record, e.Field, e.Value, e.Reason)
}
