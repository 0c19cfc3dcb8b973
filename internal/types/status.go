package types

import "errors"

// ComplianceStatus is the stored assessment value of a control.
type ComplianceStatus string

// ComplianceStatus values. These are the wire values persisted in the audit
// record; Label() carries the human-readable form.
const (
	StatusCompliant     ComplianceStatus = "compliant"
	StatusNotCompliant  ComplianceStatus = "notCompliant"
	StatusPartial       ComplianceStatus = "partial"
	StatusNotApplicable ComplianceStatus = "notApplicable"
)

// AllComplianceStatuses lists the enumeration in its canonical order.
var AllComplianceStatuses = []ComplianceStatus{
	StatusCompliant,
	StatusNotCompliant,
	StatusPartial,
	StatusNotApplicable,
}

// ImplementationStatus is the presentation-only relabeling of
// ComplianceStatus used by the read-only table view.
type ImplementationStatus string

// ImplementationStatus values.
const (
	ImplFully     ImplementationStatus = "fullyImplemented"
	ImplPartially ImplementationStatus = "partiallyImplemented"
	ImplNot       ImplementationStatus = "notImplemented"
	ImplNA        ImplementationStatus = "notApplicable"
)

// ErrInvalidStatus indicates a value outside either status enumeration.
var ErrInvalidStatus = errors.New("invalid status value")

// Valid reports whether s is one of the four enumeration values.
func (s ComplianceStatus) Valid() bool {
	switch s {
	case StatusCompliant, StatusNotCompliant, StatusPartial, StatusNotApplicable:
		return true
	}
	return false
}

// Label returns the human-readable report label, empty for values outside
// the enumeration.
func (s ComplianceStatus) Label() string {
	switch s {
	case StatusCompliant:
		return "Compliant"
	case StatusNotCompliant:
		return "Not Compliant"
	case StatusPartial:
		return "Partial Compliant"
	case StatusNotApplicable:
		return "Not Applicable"
	}
	return ""
}

// Label returns the human-readable table label, empty for values outside
// the enumeration.
func (s ImplementationStatus) Label() string {
	switch s {
	case ImplFully:
		return "Fully Implemented"
	case ImplPartially:
		return "Partially Implemented"
	case ImplNot:
		return "Not Implemented"
	case ImplNA:
		return "Not Applicable"
	}
	return ""
}

// MapComplianceToImplementation converts a stored status to its table
// vocabulary. Total over the closed enumeration; anything else is
// ErrInvalidStatus.
func MapComplianceToImplementation(s ComplianceStatus) (ImplementationStatus, error) {
	switch s {
	case StatusCompliant:
		return ImplFully, nil
	case StatusNotCompliant:
		return ImplNot, nil
	case StatusPartial:
		return ImplPartially, nil
	case StatusNotApplicable:
		return ImplNA, nil
	}
	return "", ErrInvalidStatus
}

// MapImplementationToCompliance is the inverse of
// MapComplianceToImplementation.
func MapImplementationToCompliance(s ImplementationStatus) (ComplianceStatus, error) {
	switch s {
	case ImplFully:
		return StatusCompliant, nil
	case ImplNot:
		return StatusNotCompliant, nil
	case ImplPartially:
		return StatusPartial, nil
	case ImplNA:
		return StatusNotApplicable, nil
	}
	return "", ErrInvalidStatus
}

// ParseComplianceStatus parses a wire value from user input. Matching is
// exact and case-sensitive.
func ParseComplianceStatus(raw string) (ComplianceStatus, error) {
	s := ComplianceStatus(raw)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
