package core

// UICallback decouples the controller-facing commands from the terminal
// layer. The interactive implementation lives in internal/tui; tests and
// non-interactive runs use SilentUICallback or the JSON-emitting variant.
type UICallback interface {
	ShowError(title, message string)
	ShowSuccess(message string)
	ShowWarning(title, message string)
	AskConfirmation(title, message string) bool
	GetOutputMode() OutputMode
	FormatJSON(out JSONOutput) error
}

// SilentUICallback discards all output and auto-declines confirmations.
type SilentUICallback struct{}

// ShowError implements UICallback.
func (SilentUICallback) ShowError(title, message string) {}

// ShowSuccess implements UICallback.
func (SilentUICallback) ShowSuccess(message string) {}

// ShowWarning implements UICallback.
func (SilentUICallback) ShowWarning(title, message string) {}

// AskConfirmation implements UICallback. Always declines.
func (SilentUICallback) AskConfirmation(title, message string) bool { return false }

// GetOutputMode implements UICallback.
func (SilentUICallback) GetOutputMode() OutputMode { return OutputQuiet }

// FormatJSON implements UICallback.
func (SilentUICallback) FormatJSON(out JSONOutput) error { return nil }
