package scenario

import (
	"fmt"
	"strings"

	"github.com/kbukum/scenariokit/errors"
)

// DuplicatePolicy decides what Create does when the protected name is taken.
type DuplicatePolicy int

const (
	// Overwrite replaces the existing entry and logs a warning.
	Overwrite DuplicatePolicy = iota
	// Reject leaves the existing entry in place and returns ALREADY_EXISTS.
	Reject
	// Versioned replaces the existing entry and keeps it in the name's history.
	Versioned
)

var policyNames = map[DuplicatePolicy]string{
	Overwrite: "overwrite",
	Reject:    "reject",
	Versioned: "versioned",
}

func (p DuplicatePolicy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParseDuplicatePolicy converts "overwrite", "reject" or "versioned" to a
// policy. The empty string parses to Overwrite.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Overwrite, nil
	}
	for p, name := range policyNames {
		if name == s {
			return p, nil
		}
	}
	return Overwrite, errors.InvalidInput("duplicate_policy", fmt.Sprintf("unknown duplicate policy %q", s))
}
