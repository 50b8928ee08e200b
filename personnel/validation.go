package personnel

import (
	"fmt"
	"regexp"
	"strings"
)

// =============================================================================
// VALIDATION POLICY - How strict the entry boundary is about the NIP
// =============================================================================

// EmployeeNumberRule selects how the employee number (NIP) is checked.
type EmployeeNumberRule string

const (
	// EmployeeNumberStrict requires exactly 18 digits.
	EmployeeNumberStrict EmployeeNumberRule = "strict"
	// EmployeeNumberRelaxed only requires a non-empty value.
	EmployeeNumberRelaxed EmployeeNumberRule = "relaxed"
)

var nipPattern = regexp.MustCompile(`^\d{18}$`)

// ParseEmployeeNumberRule parses a config value.
func ParseEmployeeNumberRule(s string) (EmployeeNumberRule, error) {
	switch r := EmployeeNumberRule(strings.ToLower(strings.TrimSpace(s))); r {
	case EmployeeNumberStrict, EmployeeNumberRelaxed:
		return r, nil
	case "":
		return EmployeeNumberStrict, nil
	default:
		return "", fmt.Errorf("unknown employee number rule %q (want strict or relaxed)", s)
	}
}

// ValidationPolicy checks new records before they enter the set.
type ValidationPolicy struct {
	EmployeeNumber EmployeeNumberRule
}

// StrictPolicy is the entry-form policy: name required, 18-digit NIP.
func StrictPolicy() ValidationPolicy {
	return ValidationPolicy{EmployeeNumber: EmployeeNumberStrict}
}

// RelaxedPolicy requires name and a non-empty NIP.
func RelaxedPolicy() ValidationPolicy {
	return ValidationPolicy{EmployeeNumber: EmployeeNumberRelaxed}
}

// Validate returns a *ValidationError for the first failing field.
func (p ValidationPolicy) Validate(in Input) error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}

	nip := strings.TrimSpace(in.EmployeeNumber)
	if nip == "" {
		return &ValidationError{Field: "employee_number", Reason: "is required"}
	}
	if p.EmployeeNumber != EmployeeNumberRelaxed && !nipPattern.MatchString(nip) {
		return &ValidationError{Field: "employee_number", Reason: "must be 18 digits"}
	}
	return nil
}
