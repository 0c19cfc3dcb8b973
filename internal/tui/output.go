// Package tui provides terminal user interface components and callbacks for
// auditdesk.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sharkcyber/auditdesk/internal/core"
	"github.com/sharkcyber/auditdesk/internal/types"
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00468B"))
	styleErr     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleCard    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("238"))

	badgeStyles = map[types.ComplianceStatus]lipgloss.Style{
		types.StatusCompliant:     lipgloss.NewStyle().Foreground(lipgloss.Color("#00A000")),
		types.StatusNotCompliant:  lipgloss.NewStyle().Foreground(lipgloss.Color("#D00000")),
		types.StatusPartial:       lipgloss.NewStyle().Foreground(lipgloss.Color("#D08000")),
		types.StatusNotApplicable: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
)

// PrintError prints a styled error block
func PrintError(title, msg string) { fmt.Println(styleErr.Render("✖ " + title)); fmt.Println(msg) }

// PrintSuccess prints a styled success line
func PrintSuccess(msg string) { fmt.Println(styleSuccess.Render("✔ " + msg)) }

// PrintInfo prints a dimmed informational line
func PrintInfo(msg string) { fmt.Println(styleDim.Render(msg)) }

// PrintWarning prints a styled warning block
func PrintWarning(title, msg string) { fmt.Println(styleWarn.Render("! " + title)); fmt.Println(msg) }

// StyleTitle styles a heading for terminal output
func StyleTitle(text string) string { return styleTitle.Render(text) }

// StatusBadge renders a colored status label.
func StatusBadge(s types.ComplianceStatus) string {
	style, ok := badgeStyles[s]
	if !ok {
		return styleDim.Render("Unaddressed")
	}
	return style.Render(s.Label())
}

// PrintSummary renders the compliance tally with an overall progress bar.
func PrintSummary(summary types.Summary) {
	fmt.Println(StyleTitle("Compliance Summary"))
	fmt.Printf("  Compliant          %3d\n", summary.Compliant)
	fmt.Printf("  Not Compliant      %3d\n", summary.NotCompliant)
	fmt.Printf("  Partial Compliant  %3d\n", summary.Partial)
	fmt.Printf("  Not Applicable     %3d\n", summary.NotApplicable)

	const barWidth = 30
	filled := 0
	if summary.TotalApplicable > 0 {
		filled = summary.CompliancePercentage * barWidth / 100
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	fmt.Printf("  Overall [%s] %d%%\n", bar, summary.CompliancePercentage)
}

// PrintControlCards renders the control list in card view using the
// canonical status vocabulary.
func PrintControlCards(controls []types.Control) {
	for _, c := range controls {
		lines := []string{
			fmt.Sprintf("%d. %s", c.SerialNumber, StyleTitle(c.Title)),
			styleDim.Render(c.Category),
			c.Description,
			"Status: " + StatusBadge(c.Status),
		}
		if comment := c.DisplayComment(); comment != "" {
			lines = append(lines, styleDim.Render("Comment: "+comment))
		}
		if c.HasAttachment() {
			lines = append(lines, styleDim.Render("Attachment: "+c.AttachmentName))
		}
		fmt.Println(styleCard.Render(strings.Join(lines, "\n")))
	}
}

// PrintControlTable renders the read-only table view, relabeled with the
// implementation-status vocabulary.
func PrintControlTable(controls []types.Control) {
	fmt.Printf("%-4s %-36s %-28s %s\n", "#", "Control", "Category", "Implementation")
	for _, c := range controls {
		label := "Unaddressed"
		if impl, err := types.MapComplianceToImplementation(c.Status); err == nil {
			label = impl.Label()
		}
		fmt.Printf("%-4d %-36s %-28s %s\n", c.SerialNumber, truncate(c.Title, 36), truncate(c.Category, 28), label)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

// PrintSessionState prints a short banner for the session.
func PrintSessionState(s *core.Session) {
	client := s.Client()
	audit := s.Audit()
	if client == nil || audit == nil {
		return
	}

	fmt.Println(StyleTitle(audit.Title))
	fmt.Printf("Client: %s  Financial Year: %s\n", client.Name, audit.FinancialYear)
	if audit.Submitted {
		fmt.Println(styleWarn.Render("Submitted: this audit is read-only"))
	}
	if s.HasUnaddressedControls() {
		fmt.Println(styleWarn.Render("Some controls have no status assigned"))
	}
}
