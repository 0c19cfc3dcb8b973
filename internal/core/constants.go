package core

import (
	"os"
	"path/filepath"
)

// Store layout constants.
const (
	// HomeEnvVar overrides the store root directory
	HomeEnvVar = "AUDITDESK_HOME"

	// StoreDirName is the default store root under the user's home directory
	StoreDirName = ".auditdesk"

	// TemplateFileName is the optional control-catalog override in the store
	// root, replacing the built-in catalog on first-ever audit creation
	TemplateFileName = "controls.yml"
)

// Filter value selecting the full control set.
const FilterAll = "all"

// ViewMode selects how the control list is rendered: cards carry the edit
// vocabulary, the table carries the read-only implementation vocabulary.
type ViewMode string

// ViewMode values.
const (
	ViewCards ViewMode = "cards"
	ViewTable ViewMode = "table"
)

// StoreDir resolves the store root: $AUDITDESK_HOME if set, otherwise
// ~/.auditdesk, falling back to a relative directory when the home directory
// cannot be resolved.
func StoreDir() string {
	if dir := os.Getenv(HomeEnvVar); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return StoreDirName
	}
	return filepath.Join(home, StoreDirName)
}
