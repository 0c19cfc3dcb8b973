package core

import (
	"fmt"
	"sort"

	"github.com/sharkcyber/auditdesk/internal/types"
)

// Control-set management: the separate management surface sharing the same
// persisted audit record. Unlike status edits in the review flow, these
// operations commit to the gateway immediately.

// ControlInput is the editable part of a control on the management surface.
type ControlInput struct {
	Category    string
	Title       string
	Description string
	Status      types.ComplianceStatus
}

func (in ControlInput) validate() error {
	var missing []string
	if in.Title == "" {
		missing = append(missing, "title")
	}
	if in.Description == "" {
		missing = append(missing, "description")
	}
	if in.Category == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrValidation, missing)
	}
	return nil
}

// AddControl validates the input, appends a new control with the next serial
// number, and persists the audit. No change is made on validation failure.
func (s *Session) AddControl(in ControlInput) (types.Control, error) {
	if s.audit == nil {
		return types.Control{}, ErrNotReady
	}
	if err := in.validate(); err != nil {
		return types.Control{}, err
	}

	status := in.Status
	if !status.Valid() {
		status = types.StatusNotCompliant
	}

	control := types.Control{
		ID:           s.newID(),
		Category:     in.Category,
		Title:        in.Title,
		Description:  in.Description,
		Status:       status,
		SerialNumber: len(s.controls) + 1,
		UpdatedAt:    s.now(),
	}

	s.controls = append(s.controls, control)
	if err := s.persistControls(); err != nil {
		return types.Control{}, err
	}

	return control, nil
}

// EditControl validates the input and rewrites the identified control's
// editable fields, keeping its serial number and attachment.
func (s *Session) EditControl(id string, in ControlInput) error {
	if s.audit == nil {
		return ErrNotReady
	}
	if err := in.validate(); err != nil {
		return err
	}

	for i := range s.controls {
		if s.controls[i].ID != id {
			continue
		}

		s.controls[i].Category = in.Category
		s.controls[i].Title = in.Title
		s.controls[i].Description = in.Description
		if in.Status.Valid() {
			s.controls[i].Status = in.Status
		}
		s.controls[i].UpdatedAt = s.now()

		return s.persistControls()
	}

	return fmt.Errorf("%w: %s", ErrControlNotFound, id)
}

// DeleteControl removes a control by id and persists. Serial numbers of the
// remaining controls are left as they are: no gap renumbering. An unknown id
// changes nothing and is not an error.
func (s *Session) DeleteControl(id string) error {
	if s.audit == nil {
		return ErrNotReady
	}

	for i := range s.controls {
		if s.controls[i].ID == id {
			s.controls = append(s.controls[:i], s.controls[i+1:]...)
			return s.persistControls()
		}
	}

	return nil
}

// AddCategory appends a label to the display-only category list. The label
// is not written into any control until one is saved under it.
func (s *Session) AddCategory(name string) error {
	if name == "" {
		return fmt.Errorf("%w: category", ErrValidation)
	}

	for _, existing := range s.Categories() {
		if existing == name {
			return fmt.Errorf(ErrCategoryExistsMsg, name)
		}
	}

	s.categories = append(s.categories, name)
	s.notify()
	return nil
}

// Categories returns the distinct control categories plus any added labels,
// sorted for display.
func (s *Session) Categories() []string {
	seen := make(map[string]bool)
	var out []string

	for _, c := range s.controls {
		if c.Category != "" && !seen[c.Category] {
			seen[c.Category] = true
			out = append(out, c.Category)
		}
	}
	for _, label := range s.categories {
		if !seen[label] {
			seen[label] = true
			out = append(out, label)
		}
	}

	sort.Strings(out)
	return out
}

// persistControls read-modify-writes the full audit record with the current
// control set.
func (s *Session) persistControls() error {
	s.audit.Controls = append([]types.Control(nil), s.controls...)
	s.audit.UpdatedAt = s.now()

	if err := s.audits.Save(*s.audit); err != nil {
		return err
	}

	s.notify()
	return nil
}
