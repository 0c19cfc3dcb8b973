package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/sharkcyber/auditdesk/internal/types"
)

// maxTemplateFileSize bounds the optional controls.yml (1 MB). A catalog of
// several hundred controls is well under 100 KB.
const maxTemplateFileSize = 1 << 20

// TemplateControl is one entry of the control catalog used on first-ever
// audit creation.
type TemplateControl struct {
	Category    string `yaml:"category"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Status      string `yaml:"status,omitempty"`
}

// controlTemplate is the controls.yml document shape.
type controlTemplate struct {
	Controls []TemplateControl `yaml:"controls"`
}

// LoadTemplate returns the control template set: the controls.yml catalog in
// rootDir when present and parseable, otherwise the built-in catalog. Serial
// numbers and ids are assigned later, when an audit is synthesized.
func LoadTemplate(rootDir string, log zerolog.Logger) []types.Control {
	path := filepath.Join(rootDir, TemplateFileName)

	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("path", path).Msg("control template unreadable, using built-in catalog")
		}
		return builtinTemplate()
	}
	if info.Size() > maxTemplateFileSize {
		log.Warn().Str("path", path).Msg("control template exceeds size limit, using built-in catalog")
		return builtinTemplate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("control template unreadable, using built-in catalog")
		return builtinTemplate()
	}

	var tpl controlTemplate
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		log.Warn().Err(err).Str("path", path).Msg(fmt.Sprintf("invalid %s, using built-in catalog", TemplateFileName))
		return builtinTemplate()
	}
	if len(tpl.Controls) == 0 {
		return builtinTemplate()
	}

	controls := make([]types.Control, 0, len(tpl.Controls))
	for _, entry := range tpl.Controls {
		status := types.ComplianceStatus(entry.Status)
		if !status.Valid() {
			status = types.StatusNotCompliant
		}
		controls = append(controls, types.Control{
			Category:    entry.Category,
			Title:       entry.Title,
			Description: entry.Description,
			Status:      status,
		})
	}
	return controls
}

// builtinTemplate is the default NIST-style control catalog. Every control
// starts not compliant until the auditor assesses it.
func builtinTemplate() []types.Control {
	entries := []TemplateControl{
		{
			Category:    "Access Control",
			Title:       "AC-1: Account Management",
			Description: "The organization manages information system accounts, including establishing, activating, modifying, reviewing, disabling, and removing accounts.",
		},
		{
			Category:    "Access Control",
			Title:       "AC-2: Access Enforcement",
			Description: "The information system enforces approved authorizations for logical access to the system in accordance with applicable policy.",
		},
		{
			Category:    "Risk Assessment",
			Title:       "RA-1: Risk Assessment Policy and Procedures",
			Description: "The organization develops, disseminates, and reviews/updates a risk assessment policy and procedures.",
		},
		{
			Category:    "Risk Assessment",
			Title:       "RA-2: Security Categorization",
			Description: "The organization categorizes information and information systems in accordance with applicable laws, regulations, standards, and guidance.",
		},
		{
			Category:    "System and Communications Protection",
			Title:       "SC-1: System and Communications Protection Policy and Procedures",
			Description: "The organization develops, disseminates, and reviews/updates a system and communications protection policy and procedures.",
		},
		{
			Category:    "Configuration Management",
			Title:       "CM-1: Configuration Management Policy and Procedures",
			Description: "The organization develops, disseminates, and reviews/updates configuration management policy and procedures.",
		},
		{
			Category:    "Incident Response",
			Title:       "IR-1: Incident Response Policy and Procedures",
			Description: "The organization develops, disseminates, and reviews/updates an incident response policy and procedures.",
		},
		{
			Category:    "Contingency Planning",
			Title:       "CP-1: Contingency Planning Policy and Procedures",
			Description: "The organization develops, disseminates, and reviews/updates a contingency planning policy and procedures.",
		},
	}

	controls := make([]types.Control, len(entries))
	for i, entry := range entries {
		controls[i] = types.Control{
			Category:    entry.Category,
			Title:       entry.Title,
			Description: entry.Description,
			Status:      types.StatusNotCompliant,
		}
	}
	return controls
}
