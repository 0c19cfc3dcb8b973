package report

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sharkcyber/auditdesk/internal/types"
)

// Generator assembles and renders audit reports.
type Generator struct {
	log zerolog.Logger

	// now supplies the audit date fallback. When audit.AuditDate is absent
	// the report carries the generation date, which makes output
	// date-dependent; that is the intended behavior, not an oversight.
	now func() time.Time
}

// New creates a Generator.
func New(log zerolog.Logger) *Generator {
	return &Generator{log: log, now: time.Now}
}

// Build assembles the document model from an audit and its client. It is a
// pure function of its inputs apart from the documented audit-date fallback.
func (g *Generator) Build(audit types.Audit, client types.Client) (Document, error) {
	if client.Name == "" && audit.ID == "" {
		return Document{}, fmt.Errorf("nothing to report: empty audit and client")
	}

	auditDate := g.now()
	if audit.AuditDate != nil {
		auditDate = *audit.AuditDate
	}

	title := audit.Title
	if title == "" {
		title = types.DefaultAuditTitle
	}
	financialYear := audit.FinancialYear
	if financialYear == "" {
		financialYear = types.DefaultFinancialYear
	}

	company := types.DefaultCompanyInfo()
	if audit.CompanyInfo != nil {
		company = *audit.CompanyInfo
	}

	disclaimer := audit.Disclaimer
	if disclaimer == "" {
		disclaimer = types.DefaultDisclaimer
	}

	doc := Document{
		Cover: Cover{
			Title:            title,
			Subtitle:         "Audit Financial Year " + financialYear,
			ClientName:       client.Name,
			LogoDataURL:      client.LogoURL,
			DateLine:         auditDate.Format("02 January 2006"),
			ClientAddress:    clientAddressLines(client),
			CompanyName:      company.Name,
			CompanyAddress:   addressLines(company.Address),
			ShowConfidential: audit.ConfidentialShown(),
			Disclaimer:       disclaimer,
		},
		ShortDate: auditDate.Format("02/01/2006"),
		Summary:   types.Summarize(audit.Controls),
	}

	for _, c := range types.DisplayOrder(audit.Controls) {
		label := c.Status.Label()
		if label == "" {
			label = string(c.Status)
		}

		comment := c.DisplayComment()
		if comment == "" {
			comment = noCommentsPlaceholder
		}

		doc.Rows = append(doc.Rows, DetailRow{
			Category:    c.Category,
			Title:       c.Title,
			StatusLabel: label,
			Comment:     comment,
		})
	}

	return doc, nil
}

// Render produces the document bytes in the requested format.
func (g *Generator) Render(doc Document, format Format) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		return renderMarkdown(doc)
	case FormatPDF:
		return g.renderPDF(doc)
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}
