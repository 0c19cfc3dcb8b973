package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sharkcyber/auditdesk/internal/types"
)

// ============================================================================
// Control Template Tests
// ============================================================================

// TestLoadTemplate_BuiltinCatalog verifies the default catalog shape
func TestLoadTemplate_BuiltinCatalog(t *testing.T) {
	controls := LoadTemplate(t.TempDir(), zerolog.Nop())

	if len(controls) == 0 {
		t.Fatal("Built-in catalog must not be empty")
	}
	for i, c := range controls {
		if c.Category == "" || c.Title == "" || c.Description == "" {
			t.Errorf("Catalog entry %d incomplete: %+v", i, c)
		}
		if !c.Status.Valid() {
			t.Errorf("Catalog entry %d has invalid status %q", i, c.Status)
		}
		if c.SerialNumber != 0 || c.ID != "" {
			t.Errorf("Catalog entry %d must not pre-assign id or serial", i)
		}
	}
}

// TestLoadTemplate_YAMLOverride verifies controls.yml replaces the catalog
func TestLoadTemplate_YAMLOverride(t *testing.T) {
	dir := t.TempDir()
	doc := `controls:
  - category: Physical Security
    title: "PE-1: Physical Access"
    description: Physical access to facilities is controlled.
    status: compliant
  - category: Physical Security
    title: "PE-2: Visitor Control"
    description: Visitors are escorted and monitored.
`
	if err := os.WriteFile(filepath.Join(dir, TemplateFileName), []byte(doc), 0644); err != nil {
		t.Fatalf("Writing template failed: %v", err)
	}

	controls := LoadTemplate(dir, zerolog.Nop())

	if len(controls) != 2 {
		t.Fatalf("Expected 2 controls from override, got %d", len(controls))
	}
	if controls[0].Status != types.StatusCompliant {
		t.Errorf("Expected declared status, got %s", controls[0].Status)
	}
	// Missing status defaults to not compliant
	if controls[1].Status != types.StatusNotCompliant {
		t.Errorf("Expected notCompliant default, got %s", controls[1].Status)
	}
}

// TestLoadTemplate_InvalidYAMLFallsBack verifies corruption falls back to
// the built-in catalog instead of failing
func TestLoadTemplate_InvalidYAMLFallsBack(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, TemplateFileName), []byte("controls: ["), 0644); err != nil {
		t.Fatalf("Writing template failed: %v", err)
	}

	controls := LoadTemplate(dir, zerolog.Nop())
	if len(controls) == 0 {
		t.Error("Expected built-in catalog fallback")
	}
}
