package report

import (
	"bytes"
	"text/template"
)

// mdTemplate renders the same paginated document as the PDF writer, with
// horizontal rules as page breaks.
var mdTemplate = template.Must(template.New("report").Parse(`# {{ .Cover.Title }}

## {{ .Cover.Subtitle }}

**{{ .Cover.ClientName }}**

{{ .Cover.DateLine }}

{{ range .Cover.ClientAddress }}{{ . }}
{{ end }}
**{{ .Cover.CompanyName }}**
{{ range .Cover.CompanyAddress }}{{ . }}
{{ end }}
{{ if .Cover.ShowConfidential }}**CONFIDENTIAL DOCUMENT:** Not to be circulated or reproduced without appropriate authorization
{{ end }}
**DISCLAIMER:** {{ .Cover.Disclaimer }}

---

# Security Compliance Audit

**Client:** {{ .Cover.ClientName }}
**Date:** {{ .ShortDate }}

## Compliance Summary

| Status | Count |
| --- | --- |
| Compliant | {{ .Summary.Compliant }} |
| Not Compliant | {{ .Summary.NotCompliant }} |
| Partial Compliant | {{ .Summary.Partial }} |
| Not Applicable | {{ .Summary.NotApplicable }} |
| Overall Compliance | {{ .Summary.CompliancePercentage }}% |

## Control Details

| Category | Control | Status | Comments |
| --- | --- | --- | --- |
{{ range .Rows }}| {{ .Category }} | {{ .Title }} | {{ .StatusLabel }} | {{ .Comment }} |
{{ end }}`))

// renderMarkdown renders the document as Markdown.
func renderMarkdown(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := mdTemplate.Execute(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
