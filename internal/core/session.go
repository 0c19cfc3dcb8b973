// Package core implements the audit session controller: it owns the
// in-memory session state, mediates every mutation, and is the sole writer to
// the persistence gateway.
package core

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sharkcyber/auditdesk/internal/report"
	"github.com/sharkcyber/auditdesk/internal/store"
	"github.com/sharkcyber/auditdesk/internal/types"
)

// SessionState characterizes session progress after Init.
type SessionState int

// Session states. NoClient is terminal for the audit flow: the caller must
// redirect to client setup. Submitted is not a state of its own; it is a
// data attribute of the audit, and read-only presentation of submitted
// audits is the collaborator layer's contract.
const (
	StateUninitialized SessionState = iota
	StateLoading
	StateNoClient
	StateReady
)

// CoverDraft holds the editable cover-metadata fields before they are merged
// into the audit by SaveAudit or SaveCoverInfo.
type CoverDraft struct {
	Title         string
	FinancialYear string
	AuditDate     time.Time
}

// Session is the audit session controller.
//
// All mutations go through it, it persists only on the explicit save
// operations, and it notifies subscribers after every mutating operation so
// the collaborator layer can re-render.
type Session struct {
	clients *store.RecordStore[types.Client]
	audits  *store.RecordStore[types.Audit]
	log     zerolog.Logger

	state        SessionState
	client       *types.Client
	audit        *types.Audit
	controls     []types.Control
	activeFilter string
	viewMode     ViewMode
	cover        CoverDraft
	categories   []string // display-only labels added before any control uses them

	subscribers []func()

	// Injectable for deterministic tests
	now   func() time.Time
	newID func() string
}

// NewSession creates a controller over the given backend.
func NewSession(backend store.Backend, log zerolog.Logger) *Session {
	return &Session{
		clients:      store.NewClientStore(backend, log),
		audits:       store.NewAuditStore(backend, log),
		log:          log,
		state:        StateUninitialized,
		activeFilter: FilterAll,
		viewMode:     ViewCards,
		now:          time.Now,
		newID:        func() string { return uuid.NewString() },
	}
}

// Subscribe registers a change listener invoked after every mutating
// operation.
func (s *Session) Subscribe(fn func()) {
	s.subscribers = append(s.subscribers, fn)
}

func (s *Session) notify() {
	for _, fn := range s.subscribers {
		fn()
	}
}

// State returns the current session state.
func (s *Session) State() SessionState { return s.state }

// Client returns the active client, or nil before Init or in NoClient.
func (s *Session) Client() *types.Client { return s.client }

// Audit returns the current audit, or nil before Init or in NoClient.
func (s *Session) Audit() *types.Audit { return s.audit }

// Controls returns the in-memory control set in display order.
func (s *Session) Controls() []types.Control {
	return types.DisplayOrder(s.controls)
}

// Cover returns the current cover-metadata draft.
func (s *Session) Cover() CoverDraft { return s.cover }

// ViewMode returns the active view mode.
func (s *Session) ViewMode() ViewMode { return s.viewMode }

// ActiveFilter returns the active control filter.
func (s *Session) ActiveFilter() string { return s.activeFilter }

// Init runs the session initialization protocol. If no client is stored the
// session lands in NoClient and the caller must redirect to setup; no audit
// work proceeds. If a client is stored but no audit is, a fresh audit is
// synthesized from the template set and persisted before anything renders.
func (s *Session) Init(template []types.Control) (SessionState, error) {
	s.state = StateLoading

	client, ok, err := s.clients.Load()
	if err != nil {
		return s.state, err
	}
	if !ok {
		s.state = StateNoClient
		s.log.Debug().Msg("no client record, redirecting to setup")
		s.notify()
		return s.state, nil
	}
	s.client = &client

	audit, ok, err := s.audits.Load()
	if err != nil {
		return s.state, err
	}
	if !ok {
		fresh := s.synthesizeAudit(client, template)
		if err := s.audits.Save(fresh); err != nil {
			return s.state, err
		}
		audit = fresh
		s.log.Info().Str("audit", audit.ID).Int("controls", len(audit.Controls)).Msg("created new audit from template")
	} else {
		// Backfill missing serial numbers with the 1-based position.
		for i := range audit.Controls {
			if audit.Controls[i].SerialNumber == 0 {
				audit.Controls[i].SerialNumber = i + 1
			}
		}
	}

	s.audit = &audit
	s.controls = append([]types.Control(nil), audit.Controls...)
	s.cover = CoverDraft{
		Title:         types.DefaultAuditTitle,
		FinancialYear: types.DefaultFinancialYear,
		AuditDate:     s.now(),
	}
	if audit.Title != "" {
		s.cover.Title = audit.Title
	}
	if audit.FinancialYear != "" {
		s.cover.FinancialYear = audit.FinancialYear
	}
	if audit.AuditDate != nil {
		s.cover.AuditDate = *audit.AuditDate
	}

	s.state = StateReady
	s.notify()
	return s.state, nil
}

// synthesizeAudit builds a brand-new audit around the stored client and the
// template control set, with serial numbers assigned by position and the
// default cover metadata.
func (s *Session) synthesizeAudit(client types.Client, template []types.Control) types.Audit {
	now := s.now()
	controls := make([]types.Control, len(template))
	for i, c := range template {
		if c.ID == "" {
			c.ID = s.newID()
		}
		c.SerialNumber = i + 1
		c.UpdatedAt = now
		controls[i] = c
	}

	auditDate := now
	confidential := true
	company := types.DefaultCompanyInfo()

	return types.Audit{
		ID:            s.newID(),
		Client:        client,
		Controls:      controls,
		Title:         types.DefaultAuditTitle,
		FinancialYear: types.DefaultFinancialYear,
		AuditDate:     &auditDate,
		CompanyInfo:   &company,
		Confidential:  &confidential,
		Disclaimer:    types.DefaultDisclaimer,
		CreatedAt:     now,
		UpdatedAt:     now,
		Submitted:     false,
	}
}

// SaveClient validates and persists a client record, replacing any prior
// one, and adopts it as the session client.
func (s *Session) SaveClient(client types.Client) error {
	if client.Name == "" {
		return fmt.Errorf("%w: client name", ErrValidation)
	}

	now := s.now()
	if client.ID == "" {
		client.ID = s.newID()
		client.CreatedAt = now
	}
	client.UpdatedAt = now

	if err := s.clients.Save(client); err != nil {
		return err
	}

	s.client = &client
	if s.state == StateNoClient {
		s.state = StateUninitialized
	}
	s.notify()
	return nil
}

// UpdateControl replaces the control with the matching id in the in-memory
// set and stamps its update time. Unknown ids are a silent no-op. Nothing is
// persisted until SaveAudit or SubmitAudit.
func (s *Session) UpdateControl(updated types.Control) {
	for i := range s.controls {
		if s.controls[i].ID != updated.ID {
			continue
		}

		// Attachment fields travel as a pair; a half-set pair from a caller
		// is normalized to unset.
		if (updated.AttachmentURL == "") != (updated.AttachmentName == "") {
			s.log.Debug().Str("control", updated.ID).Msg("half-set attachment pair, clearing both")
			updated.AttachmentURL = ""
			updated.AttachmentName = ""
		}

		updated.UpdatedAt = s.now()
		s.controls[i] = updated
		s.notify()
		return
	}
}

// SetAttachment attaches an encoded blob reference to a control, in memory.
func (s *Session) SetAttachment(controlID, name, dataURL string) {
	for i := range s.controls {
		if s.controls[i].ID == controlID {
			s.controls[i].AttachmentName = name
			s.controls[i].AttachmentURL = dataURL
			s.controls[i].UpdatedAt = s.now()
			s.notify()
			return
		}
	}
}

// RemoveAttachment clears both attachment fields of a control.
func (s *Session) RemoveAttachment(controlID string) {
	for i := range s.controls {
		if s.controls[i].ID == controlID {
			s.controls[i].AttachmentName = ""
			s.controls[i].AttachmentURL = ""
			s.controls[i].UpdatedAt = s.now()
			s.notify()
			return
		}
	}
}

// SetCoverDraft replaces the in-memory cover-metadata draft.
func (s *Session) SetCoverDraft(draft CoverDraft) {
	s.cover = draft
	s.notify()
}

// SetFilter sets the active control filter: FilterAll or one of the four
// compliance statuses.
func (s *Session) SetFilter(filter string) error {
	if filter != FilterAll && !types.ComplianceStatus(filter).Valid() {
		return fmt.Errorf(ErrFilterMsg, filter)
	}
	s.activeFilter = filter
	s.notify()
	return nil
}

// SetViewMode sets the list rendering mode.
func (s *Session) SetViewMode(mode ViewMode) {
	s.viewMode = mode
	s.notify()
}

// FilteredControls projects the control set through the active filter. The
// projection is recomputed on demand and never mutates the underlying set.
func (s *Session) FilteredControls() []types.Control {
	ordered := types.DisplayOrder(s.controls)
	if s.activeFilter == FilterAll {
		return ordered
	}

	filtered := make([]types.Control, 0, len(ordered))
	for _, c := range ordered {
		if string(c.Status) == s.activeFilter {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// HasUnaddressedControls reports whether any control has no status. With the
// closed status enumeration this should be unreachable, but malformed
// persisted data can produce empty statuses, so the check stays.
func (s *Session) HasUnaddressedControls() bool {
	for _, c := range s.controls {
		if c.Status == "" {
			return true
		}
	}
	return false
}

// Summary returns the compliance tally over the current control set.
func (s *Session) Summary() types.Summary {
	return types.Summarize(s.controls)
}

// SaveAudit merges the in-memory controls and cover metadata into the audit,
// stamps its update time, and persists it. A session without a loaded client
// and audit is a no-op.
func (s *Session) SaveAudit() error {
	if s.audit == nil || s.client == nil {
		s.log.Debug().Msg("save requested with no loaded session, ignoring")
		return nil
	}

	s.mergeCover()
	s.audit.Controls = append([]types.Control(nil), s.controls...)
	s.audit.UpdatedAt = s.now()

	if err := s.audits.Save(*s.audit); err != nil {
		return err
	}

	s.notify()
	return nil
}

// SubmitAudit is SaveAudit plus the one-way submitted flag. Resubmitting is
// allowed and keeps the flag true; nothing ever un-sets it.
func (s *Session) SubmitAudit() error {
	if s.audit == nil || s.client == nil {
		s.log.Debug().Msg("submit requested with no loaded session, ignoring")
		return nil
	}

	s.audit.Submitted = true
	return s.SaveAudit()
}

// SaveCoverInfo merges only the cover-metadata fields into the audit and
// persists; controls and the submitted flag are untouched.
func (s *Session) SaveCoverInfo() error {
	if s.audit == nil {
		s.log.Debug().Msg("cover save requested with no loaded audit, ignoring")
		return nil
	}

	s.mergeCover()

	if err := s.audits.Save(*s.audit); err != nil {
		return err
	}

	s.notify()
	return nil
}

func (s *Session) mergeCover() {
	s.audit.Title = s.cover.Title
	s.audit.FinancialYear = s.cover.FinancialYear
	if !s.cover.AuditDate.IsZero() {
		d := s.cover.AuditDate
		s.audit.AuditDate = &d
	}
}

// ExportReport renders the current audit to a file in outDir and returns the
// written path. Any generation failure, including panics out of the
// renderer, is wrapped as ErrExport; no partial file is left behind.
func (s *Session) ExportReport(gen *report.Generator, format report.Format, outDir string) (path string, err error) {
	if s.audit == nil || s.client == nil {
		return "", fmt.Errorf("%w: no audit or client loaded", ErrExport)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrExport, r)
		}
	}()

	snapshot := *s.audit
	snapshot.Controls = append([]types.Control(nil), s.controls...)

	doc, err := gen.Build(snapshot, *s.client)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExport, err)
	}

	data, err := gen.Render(doc, format)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExport, err)
	}

	path = filepath.Join(outDir, report.Filename(s.client.Name, format))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExport, err)
	}

	return path, nil
}
