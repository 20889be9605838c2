package workload

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConsistencyViolation = errors.New("consistency violation")
	ErrKeyMissing           = errors.New("key missing from configuration")
	ErrInterrupted          = errors.New("pacing wait interrupted")
	ErrInvalidConfig        = errors.New("invalid workload config")
)

// ViolationError reports a read whose fields did not all come from one
// published snapshot.
type ViolationError struct {
	Consumer  string
	Iteration int
	Keys      []string
	Values    []string // "" for a missing key
	Missing   string   // first missing key, if any
}

func (e *ViolationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s iteration %d:", ErrConsistencyViolation, e.Consumer, e.Iteration)
	if e.Missing != "" {
		fmt.Fprintf(&b, " missing %q", e.Missing)
		return b.String()
	}
	for i, k := range e.Keys {
		fmt.Fprintf(&b, " %s=%q", k, e.Values[i])
	}
	return b.String()
}

func (e *ViolationError) Unwrap() error {
	return ErrConsistencyViolation
}
