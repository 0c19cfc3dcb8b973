// Package report turns an audit and its client into a paginated, exportable
// document: cover page, compliance summary, and per-control detail table.
package report

import (
	"regexp"
	"strings"

	"github.com/sharkcyber/auditdesk/internal/types"
)

// Format selects the export renderer.
type Format string

// Supported export formats.
const (
	FormatPDF      Format = "pdf"
	FormatMarkdown Format = "markdown"
)

// Ext returns the file extension for the format.
func (f Format) Ext() string {
	if f == FormatMarkdown {
		return "md"
	}
	return "pdf"
}

// filenamePrefix is the fixed base name of the exported artifact.
const filenamePrefix = "security_audit"

// noCommentsPlaceholder fills the comment column when a control carries no
// comment text.
const noCommentsPlaceholder = "No comments"

var whitespaceRun = regexp.MustCompile(`\s+`)

// Filename derives the artifact name from the client name, collapsing
// whitespace runs to underscores.
func Filename(clientName string, format Format) string {
	return filenamePrefix + "_" + whitespaceRun.ReplaceAllString(clientName, "_") + "." + format.Ext()
}

// Cover is the first page of the document: title, branding, and parties.
type Cover struct {
	Title    string
	Subtitle string

	ClientName  string
	LogoDataURL string // empty when the client has no logo

	DateLine string // formatted audit date, e.g. "05 March 2025"

	ClientAddress  []string
	CompanyName    string
	CompanyAddress []string

	ShowConfidential bool
	Disclaimer       string
}

// DetailRow is one control in the detail table.
type DetailRow struct {
	Category    string
	Title       string
	StatusLabel string
	Comment     string
}

// Document is the renderer-independent report model. Renderers consume it
// without touching the domain entities again.
type Document struct {
	Cover     Cover
	ShortDate string // compact audit date for the summary page
	Summary   types.Summary
	Rows      []DetailRow
}

// addressLines splits a stored multi-line address into display lines.
func addressLines(addr string) []string {
	var out []string
	for _, line := range strings.Split(addr, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// clientAddressLines composes the client's postal address block.
func clientAddressLines(c types.Client) []string {
	var out []string
	if c.Address != "" {
		out = append(out, addressLines(c.Address)...)
	}

	var cityLine []string
	for _, part := range []string{c.City, c.State, c.ZipCode} {
		if part != "" {
			cityLine = append(cityLine, part)
		}
	}
	if len(cityLine) > 0 {
		out = append(out, strings.Join(cityLine, ", "))
	}
	if c.Country != "" {
		out = append(out, c.Country)
	}
	return out
}
