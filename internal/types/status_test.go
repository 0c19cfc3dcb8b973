package types

import (
	"errors"
	"testing"
)

// ============================================================================
// Status Mapping Tests
// ============================================================================

// TestStatusMapping_Bijection verifies that composing the two mapping
// directions is the identity for every enumeration value.
func TestStatusMapping_Bijection(t *testing.T) {
	for _, s := range AllComplianceStatuses {
		impl, err := MapComplianceToImplementation(s)
		if err != nil {
			t.Fatalf("MapComplianceToImplementation(%s) failed: %v", s, err)
		}

		back, err := MapImplementationToCompliance(impl)
		if err != nil {
			t.Fatalf("MapImplementationToCompliance(%s) failed: %v", impl, err)
		}

		if back != s {
			t.Errorf("Round trip for %s returned %s", s, back)
		}
	}

	// Reverse direction
	for _, impl := range []ImplementationStatus{ImplFully, ImplPartially, ImplNot, ImplNA} {
		s, err := MapImplementationToCompliance(impl)
		if err != nil {
			t.Fatalf("MapImplementationToCompliance(%s) failed: %v", impl, err)
		}

		back, err := MapComplianceToImplementation(s)
		if err != nil {
			t.Fatalf("MapComplianceToImplementation(%s) failed: %v", s, err)
		}

		if back != impl {
			t.Errorf("Round trip for %s returned %s", impl, back)
		}
	}
}

// TestStatusMapping_PairsExact pins the four mapping pairs
func TestStatusMapping_PairsExact(t *testing.T) {
	pairs := map[ComplianceStatus]ImplementationStatus{
		StatusCompliant:     ImplFully,
		StatusNotCompliant:  ImplNot,
		StatusPartial:       ImplPartially,
		StatusNotApplicable: ImplNA,
	}

	for s, want := range pairs {
		got, err := MapComplianceToImplementation(s)
		if err != nil {
			t.Fatalf("MapComplianceToImplementation(%s) failed: %v", s, err)
		}
		if got != want {
			t.Errorf("MapComplianceToImplementation(%s) = %s, want %s", s, got, want)
		}
	}
}

// TestStatusMapping_InvalidValue verifies out-of-enumeration values surface
// ErrInvalidStatus instead of being silently coerced
func TestStatusMapping_InvalidValue(t *testing.T) {
	if _, err := MapComplianceToImplementation("unknown"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("Expected ErrInvalidStatus, got %v", err)
	}

	if _, err := MapImplementationToCompliance(""); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("Expected ErrInvalidStatus, got %v", err)
	}
}

// TestParseComplianceStatus tests user-input parsing
func TestParseComplianceStatus(t *testing.T) {
	s, err := ParseComplianceStatus("partial")
	if err != nil {
		t.Fatalf("ParseComplianceStatus failed: %v", err)
	}
	if s != StatusPartial {
		t.Errorf("Expected partial, got %s", s)
	}

	if _, err := ParseComplianceStatus("Partial"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("Parsing is case-sensitive, expected ErrInvalidStatus, got %v", err)
	}
}

// TestStatusLabels verifies the human-readable report labels
func TestStatusLabels(t *testing.T) {
	want := map[ComplianceStatus]string{
		StatusCompliant:     "Compliant",
		StatusNotCompliant:  "Not Compliant",
		StatusPartial:       "Partial Compliant",
		StatusNotApplicable: "Not Applicable",
	}

	for s, label := range want {
		if got := s.Label(); got != label {
			t.Errorf("Label(%s) = %q, want %q", s, got, label)
		}
	}

	if got := ComplianceStatus("bogus").Label(); got != "" {
		t.Errorf("Label for invalid status should be empty, got %q", got)
	}
}
