package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sharkcyber/auditdesk/internal/report"
	"github.com/sharkcyber/auditdesk/internal/store"
	"github.com/sharkcyber/auditdesk/internal/types"
)

// ============================================================================
// Test Helpers
// ============================================================================

func newTestSession(backend store.Backend) *Session {
	s := NewSession(backend, zerolog.Nop())
	s.now = func() time.Time { return time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC) }

	seq := 0
	s.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	return s
}

func clientFixture() types.Client {
	return types.Client{Name: "Acme Corporation"}
}

func seedClient(t *testing.T, backend store.Backend) types.Client {
	t.Helper()

	client := types.Client{
		ID:        "client-1",
		Name:      "Acme Corporation",
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := store.NewClientStore(backend, zerolog.Nop()).Save(client); err != nil {
		t.Fatalf("Seeding client failed: %v", err)
	}
	return client
}

func templateControls() []types.Control {
	return []types.Control{
		{Category: "Access Control", Title: "AC-1", Description: "Account management", Status: types.StatusNotCompliant},
		{Category: "Risk Assessment", Title: "RA-1", Description: "Risk policy", Status: types.StatusNotCompliant},
		{Category: "Incident Response", Title: "IR-1", Description: "Incident policy", Status: types.StatusNotCompliant},
	}
}

// ============================================================================
// Initialization Protocol Tests
// ============================================================================

// TestInit_NoClient covers the fresh-session flow: nothing stored, the
// session lands in NoClient and no audit work proceeds
func TestInit_NoClient(t *testing.T) {
	s := newTestSession(store.NewMemoryBackend())

	state, err := s.Init(templateControls())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if state != StateNoClient {
		t.Errorf("Expected StateNoClient, got %v", state)
	}
	if s.Audit() != nil {
		t.Error("No audit may exist without a client")
	}
}

// TestInit_SynthesizesAudit covers the stored-client, no-audit flow: a new
// audit is built from the template and persisted before the first render
func TestInit_SynthesizesAudit(t *testing.T) {
	backend := store.NewMemoryBackend()
	seedClient(t, backend)

	s := newTestSession(backend)
	state, err := s.Init(templateControls())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if state != StateReady {
		t.Fatalf("Expected StateReady, got %v", state)
	}

	audit := s.Audit()
	if audit == nil {
		t.Fatal("Expected synthesized audit")
	}
	if audit.Submitted {
		t.Error("New audit must not be submitted")
	}
	if audit.Client.Name != "Acme Corporation" {
		t.Error("Audit must embed the stored client snapshot")
	}
	if audit.Title != types.DefaultAuditTitle || audit.FinancialYear != types.DefaultFinancialYear {
		t.Error("New audit must carry the default cover metadata")
	}
	if audit.Disclaimer != types.DefaultDisclaimer {
		t.Error("New audit must carry the default disclaimer")
	}
	if audit.Confidential == nil || !*audit.Confidential {
		t.Error("New audit must default to confidential")
	}

	for i, c := range audit.Controls {
		if c.SerialNumber != i+1 {
			t.Errorf("Control %d: expected serial %d, got %d", i, i+1, c.SerialNumber)
		}
		if c.ID == "" {
			t.Errorf("Control %d: expected assigned id", i)
		}
	}

	// Persisted before first render
	stored, ok, err := store.NewAuditStore(backend, zerolog.Nop()).Load()
	if err != nil || !ok {
		t.Fatalf("Expected persisted audit, ok=%v err=%v", ok, err)
	}
	if stored.ID != audit.ID || len(stored.Controls) != len(audit.Controls) {
		t.Error("Persisted audit does not match the session audit")
	}
}

// TestInit_BackfillsSerialNumbers verifies 1-based backfill for stored
// audits that predate serial numbers, and idempotence for those that don't
func TestInit_BackfillsSerialNumbers(t *testing.T) {
	backend := store.NewMemoryBackend()
	seedClient(t, backend)

	auditStore := store.NewAuditStore(backend, zerolog.Nop())
	seeded := types.Audit{
		ID: "audit-1",
		Controls: []types.Control{
			{ID: "a", Title: "A", Status: types.StatusCompliant},
			{ID: "b", Title: "B", Status: types.StatusPartial},
			{ID: "c", Title: "C", Status: types.StatusCompliant},
		},
	}
	if err := auditStore.Save(seeded); err != nil {
		t.Fatalf("Seeding audit failed: %v", err)
	}

	s := newTestSession(backend)
	if _, err := s.Init(nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	for i, c := range s.Controls() {
		if c.SerialNumber != i+1 {
			t.Errorf("Control %d: expected backfilled serial %d, got %d", i, i+1, c.SerialNumber)
		}
	}

	// Save, reload in a second session: numbers must be unchanged
	if err := s.SaveAudit(); err != nil {
		t.Fatalf("SaveAudit failed: %v", err)
	}

	s2 := newTestSession(backend)
	if _, err := s2.Init(nil); err != nil {
		t.Fatalf("Second Init failed: %v", err)
	}

	if !reflect.DeepEqual(serials(s.Controls()), serials(s2.Controls())) {
		t.Error("Serial numbers changed across save/reload")
	}
}

func serials(controls []types.Control) []int {
	out := make([]int, len(controls))
	for i, c := range controls {
		out[i] = c.SerialNumber
	}
	return out
}

// TestInit_AdoptsStoredCoverMetadata verifies stored cover fields override
// the defaults in the draft
func TestInit_AdoptsStoredCoverMetadata(t *testing.T) {
	backend := store.NewMemoryBackend()
	seedClient(t, backend)

	date := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	if err := store.NewAuditStore(backend, zerolog.Nop()).Save(types.Audit{
		ID:            "audit-1",
		Title:         "Custom Title",
		FinancialYear: "2023-2024",
		AuditDate:     &date,
	}); err != nil {
		t.Fatalf("Seeding audit failed: %v", err)
	}

	s := newTestSession(backend)
	if _, err := s.Init(nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	cover := s.Cover()
	if cover.Title != "Custom Title" || cover.FinancialYear != "2023-2024" || !cover.AuditDate.Equal(date) {
		t.Errorf("Cover draft did not adopt stored metadata: %+v", cover)
	}
}

// ============================================================================
// Mutation Tests
// ============================================================================

func readySession(t *testing.T) (*Session, store.Backend) {
	t.Helper()

	backend := store.NewMemoryBackend()
	seedClient(t, backend)

	s := newTestSession(backend)
	if state, err := s.Init(templateControls()); err != nil || state != StateReady {
		t.Fatalf("Init failed: state=%v err=%v", state, err)
	}
	return s, backend
}

// TestUpdateControl_ReplacesById verifies in-memory replacement without
// persistence
func TestUpdateControl_ReplacesById(t *testing.T) {
	s, backend := readySession(t)

	target := s.Controls()[0]
	target.Status = types.StatusCompliant
	target.Comment = "reviewed"
	s.UpdateControl(target)

	if got := s.Controls()[0]; got.Status != types.StatusCompliant || got.Comment != "reviewed" {
		t.Errorf("Control not updated in memory: %+v", got)
	}

	// Not persisted until SaveAudit
	stored, _, _ := store.NewAuditStore(backend, zerolog.Nop()).Load()
	if stored.Controls[0].Status == types.StatusCompliant {
		t.Error("UpdateControl must not persist by itself")
	}
}

// TestUpdateControl_UnknownIdIsNoop tests the silent no-op contract
func TestUpdateControl_UnknownIdIsNoop(t *testing.T) {
	s, _ := readySession(t)
	before := s.Controls()

	s.UpdateControl(types.Control{ID: "ghost", Status: types.StatusCompliant})

	if !reflect.DeepEqual(before, s.Controls()) {
		t.Error("Unknown id must not change the control set")
	}
}

// TestAttachmentPairing verifies name and URL stay set-or-unset as a pair
// through update, set, and remove operations
func TestAttachmentPairing(t *testing.T) {
	s, _ := readySession(t)
	id := s.Controls()[0].ID

	s.SetAttachment(id, "evidence.png", "data:image/png;base64,AAAA")
	c := s.Controls()[0]
	if c.AttachmentName == "" || c.AttachmentURL == "" {
		t.Fatal("Both attachment fields must be set")
	}

	// A half-set pair arriving through UpdateControl is normalized to unset
	c.AttachmentName = ""
	s.UpdateControl(c)
	c = s.Controls()[0]
	if c.AttachmentName != "" || c.AttachmentURL != "" {
		t.Error("Half-set attachment pair must be cleared")
	}

	s.SetAttachment(id, "evidence.png", "data:image/png;base64,AAAA")
	s.RemoveAttachment(id)
	c = s.Controls()[0]
	if c.AttachmentName != "" || c.AttachmentURL != "" {
		t.Error("RemoveAttachment must clear both fields")
	}
}

// TestSaveAudit_MergesAndPersists verifies controls and cover draft land in
// the stored record
func TestSaveAudit_MergesAndPersists(t *testing.T) {
	s, backend := readySession(t)

	target := s.Controls()[0]
	target.Status = types.StatusCompliant
	s.UpdateControl(target)
	s.SetCoverDraft(CoverDraft{Title: "T", FinancialYear: "2025-2026", AuditDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)})

	if err := s.SaveAudit(); err != nil {
		t.Fatalf("SaveAudit failed: %v", err)
	}

	stored, ok, _ := store.NewAuditStore(backend, zerolog.Nop()).Load()
	if !ok {
		t.Fatal("Expected stored audit")
	}
	if stored.Controls[0].Status != types.StatusCompliant {
		t.Error("Saved audit missing control update")
	}
	if stored.Title != "T" || stored.FinancialYear != "2025-2026" {
		t.Error("Saved audit missing cover metadata")
	}
}

// TestSaveAudit_WithoutSessionIsNoop verifies the no-op contract when
// nothing is loaded
func TestSaveAudit_WithoutSessionIsNoop(t *testing.T) {
	s := newTestSession(store.NewMemoryBackend())

	if err := s.SaveAudit(); err != nil {
		t.Errorf("SaveAudit without a session must be a no-op, got: %v", err)
	}
}

// TestSubmitAudit_OneWay covers the double-submit scenario: submitted stays
// true and the second call does not error
func TestSubmitAudit_OneWay(t *testing.T) {
	s, backend := readySession(t)

	if err := s.SubmitAudit(); err != nil {
		t.Fatalf("First submit failed: %v", err)
	}
	if err := s.SubmitAudit(); err != nil {
		t.Fatalf("Second submit failed: %v", err)
	}

	stored, _, _ := store.NewAuditStore(backend, zerolog.Nop()).Load()
	if !stored.Submitted {
		t.Error("Submitted must remain true after resubmission")
	}
}

// TestSaveCoverInfo_TouchesOnlyCoverFields verifies controls and submitted
// are untouched
func TestSaveCoverInfo_TouchesOnlyCoverFields(t *testing.T) {
	s, backend := readySession(t)

	// Unsaved in-memory control edit must not leak through SaveCoverInfo
	target := s.Controls()[0]
	target.Status = types.StatusCompliant
	s.UpdateControl(target)

	s.SetCoverDraft(CoverDraft{Title: "Cover Only", FinancialYear: "2025-2026", AuditDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)})
	if err := s.SaveCoverInfo(); err != nil {
		t.Fatalf("SaveCoverInfo failed: %v", err)
	}

	stored, _, _ := store.NewAuditStore(backend, zerolog.Nop()).Load()
	if stored.Title != "Cover Only" {
		t.Error("Cover title not persisted")
	}
	if stored.Submitted {
		t.Error("SaveCoverInfo must not touch submitted")
	}
	if stored.Controls[0].Status == types.StatusCompliant {
		t.Error("SaveCoverInfo must not persist control edits")
	}
}

// ============================================================================
// Projection Tests
// ============================================================================

// TestFilteredControls verifies the pure filter projection
func TestFilteredControls(t *testing.T) {
	s, _ := readySession(t)

	target := s.Controls()[0]
	target.Status = types.StatusCompliant
	s.UpdateControl(target)

	if err := s.SetFilter("compliant"); err != nil {
		t.Fatalf("SetFilter failed: %v", err)
	}

	filtered := s.FilteredControls()
	if len(filtered) != 1 || filtered[0].ID != target.ID {
		t.Errorf("Unexpected filtered set: %+v", filtered)
	}

	// Underlying set unchanged
	if len(s.Controls()) != 3 {
		t.Error("Filtering must not mutate the control set")
	}

	if err := s.SetFilter(FilterAll); err != nil {
		t.Fatalf("SetFilter failed: %v", err)
	}
	if len(s.FilteredControls()) != 3 {
		t.Error("FilterAll must return the full set")
	}
}

// TestSetFilter_RejectsUnknown tests the filter guard
func TestSetFilter_RejectsUnknown(t *testing.T) {
	s, _ := readySession(t)

	if err := s.SetFilter("Compliant"); err == nil {
		t.Error("Expected error for unknown filter value")
	}
	if s.ActiveFilter() != FilterAll {
		t.Error("Failed SetFilter must leave the filter unchanged")
	}
}

// TestHasUnaddressedControls verifies the defensive falsy-status check;
// unreachable with well-formed data but live for malformed records
func TestHasUnaddressedControls(t *testing.T) {
	s, _ := readySession(t)

	if s.HasUnaddressedControls() {
		t.Error("Template controls all carry a status")
	}

	broken := s.Controls()[0]
	broken.Status = ""
	s.UpdateControl(broken)

	if !s.HasUnaddressedControls() {
		t.Error("Empty status must be reported as unaddressed")
	}
}

// TestSubscribe_NotifiesOnMutations verifies the change-notification
// contract behind reactive re-rendering
func TestSubscribe_NotifiesOnMutations(t *testing.T) {
	backend := store.NewMemoryBackend()
	seedClient(t, backend)

	s := newTestSession(backend)
	notified := 0
	s.Subscribe(func() { notified++ })

	if _, err := s.Init(templateControls()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if notified == 0 {
		t.Fatal("Init must notify")
	}

	before := notified
	target := s.Controls()[0]
	target.Status = types.StatusCompliant
	s.UpdateControl(target)
	if notified != before+1 {
		t.Error("UpdateControl must notify exactly once")
	}

	before = notified
	if err := s.SaveAudit(); err != nil {
		t.Fatalf("SaveAudit failed: %v", err)
	}
	if notified != before+1 {
		t.Error("SaveAudit must notify")
	}
}

// ============================================================================
// Export Tests
// ============================================================================

// TestExportReport_WritesFile verifies the export flow end to end
func TestExportReport_WritesFile(t *testing.T) {
	s, _ := readySession(t)
	dir := t.TempDir()

	gen := report.New(zerolog.Nop())
	path, err := s.ExportReport(gen, report.FormatMarkdown, dir)
	if err != nil {
		t.Fatalf("ExportReport failed: %v", err)
	}

	if filepath.Base(path) != "security_audit_Acme_Corporation.md" {
		t.Errorf("Unexpected artifact name %q", filepath.Base(path))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Exported file missing: %v", err)
	}
}

// TestExportReport_WithoutSession verifies the ExportError contract
func TestExportReport_WithoutSession(t *testing.T) {
	s := newTestSession(store.NewMemoryBackend())

	_, err := s.ExportReport(report.New(zerolog.Nop()), report.FormatPDF, t.TempDir())
	if !errors.Is(err, ErrExport) {
		t.Errorf("Expected ErrExport, got %v", err)
	}
}

// TestSaveClient_RequiresName verifies the required-field check
func TestSaveClient_RequiresName(t *testing.T) {
	s := newTestSession(store.NewMemoryBackend())

	err := s.SaveClient(types.Client{})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}
}
