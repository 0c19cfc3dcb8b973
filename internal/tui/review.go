package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sharkcyber/auditdesk/internal/core"
	"github.com/sharkcyber/auditdesk/internal/types"
)

var (
	reviewStyleCursor = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00468B"))
	reviewStyleFlash  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00A000"))
	reviewStyleHelp   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// filterCycle is the order the f key walks through.
var filterCycle = []string{
	core.FilterAll,
	string(types.StatusCompliant),
	string(types.StatusNotCompliant),
	string(types.StatusPartial),
	string(types.StatusNotApplicable),
}

// ========================================
// Bubbletea Review Model
// ========================================

// reviewModel walks the checklist: arrows move, number keys assign a status,
// f cycles the filter, s saves. Submitted audits are browsable but locked.
type reviewModel struct {
	session  *core.Session
	cursor   int
	flash    string
	readOnly bool
}

func newReviewModel(session *core.Session) reviewModel {
	readOnly := session.Audit() != nil && session.Audit().Submitted
	return reviewModel{session: session, readOnly: readOnly}
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	visible := m.session.FilteredControls()

	switch keyMsg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(visible)-1 {
			m.cursor++
		}

	case "f":
		next := filterCycle[0]
		for i, f := range filterCycle {
			if f == m.session.ActiveFilter() {
				next = filterCycle[(i+1)%len(filterCycle)]
				break
			}
		}
		_ = m.session.SetFilter(next)
		m.cursor = 0
		m.flash = "Filter: " + next

	case "1", "2", "3", "4":
		if m.readOnly {
			m.flash = "Audit is submitted; editing is disabled"
			break
		}
		if m.cursor >= len(visible) {
			break
		}
		control := visible[m.cursor]
		control.Status = types.AllComplianceStatuses[int(keyMsg.String()[0]-'1')]
		m.session.UpdateControl(control)
		m.flash = fmt.Sprintf("%s → %s", control.Title, control.Status.Label())

	case "s":
		if m.readOnly {
			m.flash = "Audit is submitted; editing is disabled"
			break
		}
		if err := m.session.SaveAudit(); err != nil {
			m.flash = "Save failed: " + err.Error()
		} else {
			m.flash = "Audit saved"
		}
	}

	return m, nil
}

func (m reviewModel) View() string {
	var b strings.Builder

	audit := m.session.Audit()
	if audit == nil {
		return "No audit loaded.\n"
	}

	b.WriteString(StyleTitle(audit.Title) + "\n")

	summary := m.session.Summary()
	b.WriteString(fmt.Sprintf("Compliant %d · Not Compliant %d · Partial %d · N/A %d · Overall %d%%\n",
		summary.Compliant, summary.NotCompliant, summary.Partial, summary.NotApplicable, summary.CompliancePercentage))
	if m.session.ActiveFilter() != core.FilterAll {
		b.WriteString("Filter: " + m.session.ActiveFilter() + "\n")
	}
	b.WriteString("\n")

	visible := m.session.FilteredControls()
	for i, c := range visible {
		marker := "  "
		line := fmt.Sprintf("%d. %s [%s]", c.SerialNumber, c.Title, StatusBadge(c.Status))
		if i == m.cursor {
			marker = "> "
			line = reviewStyleCursor.Render(fmt.Sprintf("%d. %s", c.SerialNumber, c.Title)) + " [" + StatusBadge(c.Status) + "]"
		}
		b.WriteString(marker + line + "\n")
	}
	if len(visible) == 0 {
		b.WriteString(reviewStyleHelp.Render("No controls match the filter") + "\n")
	}

	if m.flash != "" {
		b.WriteString("\n" + reviewStyleFlash.Render(m.flash) + "\n")
	}

	help := "1 Compliant · 2 Not Compliant · 3 Partial · 4 N/A · f filter · s save · q quit"
	if m.readOnly {
		help = "submitted (read-only) · f filter · q quit"
	}
	b.WriteString("\n" + reviewStyleHelp.Render(help) + "\n")

	return b.String()
}

// RunReview launches the interactive checklist.
func RunReview(session *core.Session) error {
	_, err := tea.NewProgram(newReviewModel(session)).Run()
	return err
}
