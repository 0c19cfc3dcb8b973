package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // logo decoding
	_ "image/jpeg" // logo decoding
	_ "image/png"  // logo decoding
	"strings"

	"github.com/go-pdf/fpdf"
)

// Page geometry (A4 portrait, mm), matching the layout the report has always
// had.
const (
	pdfLineHeight   = 5.0
	pdfMarginLeft   = 14.0
	pdfPageBottom   = 280.0
	pdfLogoSize     = 60.0
	pdfCoverAddrY   = 210.0
	pdfCoverDateY   = 180.0
	pdfCoverLegalY  = 260.0
	pdfCellPadding  = 1.0
)

// renderPDF renders the document as an A4 portrait PDF: cover page, then the
// summary and detail tables.
func (g *Generator) renderPDF(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, _ := pdf.GetPageSize()

	// --- Cover page ---
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(0, 70, 139)
	pdf.SetY(36)
	pdf.MultiCell(0, 10, tr(doc.Cover.Title), "", "C", false)

	pdf.SetFont("Helvetica", "", 16)
	pdf.SetY(50)
	pdf.MultiCell(0, 8, tr(doc.Cover.Subtitle), "", "C", false)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetY(70)
	pdf.MultiCell(0, 8, tr(doc.Cover.ClientName), "", "C", false)

	g.embedLogo(pdf, doc.Cover.LogoDataURL, pageW/2-pdfLogoSize/2, 80)

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(20, pdfCoverDateY, tr(doc.Cover.DateLine))

	// Client postal address on the left, auditing company on the right.
	pdf.SetFont("Helvetica", "", 11)
	y := pdfCoverAddrY
	pdf.Text(20, y, tr(doc.Cover.ClientName))
	for _, line := range doc.Cover.ClientAddress {
		y += pdfLineHeight
		pdf.Text(20, y, tr(line))
	}

	y = pdfCoverAddrY
	rightText(pdf, pageW-20, y, tr(doc.Cover.CompanyName))
	for _, line := range doc.Cover.CompanyAddress {
		y += pdfLineHeight
		rightText(pdf, pageW-20, y, tr(line))
	}

	pdf.SetFont("Helvetica", "", 8)
	y = pdfCoverLegalY
	if doc.Cover.ShowConfidential {
		pdf.Text(20, y, "CONFIDENTIAL DOCUMENT:")
		pdf.Text(20, y+pdfLineHeight, "Not to be circulated or reproduced without appropriate authorization")
		y += 2 * pdfLineHeight
	}
	pdf.Text(20, y, "DISCLAIMER:")
	pdf.Text(20, y+pdfLineHeight, tr(doc.Cover.Disclaimer))

	// --- Summary page ---
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetXY(pdfMarginLeft, 16)
	pdf.CellFormat(0, 10, "Security Compliance Audit", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetX(pdfMarginLeft)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Client: %s", doc.Cover.ClientName)), "", 1, "L", false, 0, "")
	pdf.SetX(pdfMarginLeft)
	pdf.CellFormat(0, 6, fmt.Sprintf("Date: %s", doc.ShortDate), "", 1, "L", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetX(pdfMarginLeft)
	pdf.CellFormat(0, 8, "Compliance Summary", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	summaryRows := [][]string{
		{"Compliant", fmt.Sprintf("%d", doc.Summary.Compliant)},
		{"Not Compliant", fmt.Sprintf("%d", doc.Summary.NotCompliant)},
		{"Partial Compliant", fmt.Sprintf("%d", doc.Summary.Partial)},
		{"Not Applicable", fmt.Sprintf("%d", doc.Summary.NotApplicable)},
		{"Overall Compliance", fmt.Sprintf("%d%%", doc.Summary.CompliancePercentage)},
	}
	g.drawTable(pdf, tr, []string{"Status", "Count"}, summaryRows, []float64{60, 30})

	// --- Detail table ---
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetX(pdfMarginLeft)
	pdf.CellFormat(0, 8, "Control Details", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	detailRows := make([][]string, len(doc.Rows))
	for i, r := range doc.Rows {
		detailRows[i] = []string{r.Category, r.Title, r.StatusLabel, r.Comment}
	}
	g.drawTable(pdf, tr, []string{"Category", "Control", "Status", "Comments"}, detailRows, []float64{40, 60, 30, 60})

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}
	return buf.Bytes(), nil
}

// embedLogo places the client logo on the cover. Any decode or registration
// failure is logged and skipped: the report must never abort over a logo.
func (g *Generator) embedLogo(pdf *fpdf.Fpdf, dataURL string, x, y float64) {
	if dataURL == "" {
		return
	}

	imgType, data, err := decodeDataURL(dataURL)
	if err != nil {
		g.log.Warn().Err(err).Msg("skipping logo: undecodable data URL")
		return
	}

	// Validate before handing to fpdf so a corrupt payload cannot poison the
	// document error state.
	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		g.log.Warn().Err(err).Msg("skipping logo: not a decodable image")
		return
	}

	opts := fpdf.ImageOptions{ImageType: imgType}
	pdf.RegisterImageOptionsReader("client-logo", opts, bytes.NewReader(data))
	if pdf.Err() {
		g.log.Warn().Err(pdf.Error()).Msg("skipping logo: image registration failed")
		pdf.ClearError()
		return
	}

	pdf.ImageOptions("client-logo", x, y, pdfLogoSize, pdfLogoSize, false, opts, 0, "")
	if pdf.Err() {
		g.log.Warn().Err(pdf.Error()).Msg("skipping logo: image placement failed")
		pdf.ClearError()
	}
}

// decodeDataURL splits a base64 data URL into an fpdf image type and raw
// bytes.
func decodeDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URL")
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URL")
	}
	if !strings.HasSuffix(meta, ";base64") {
		return "", nil, fmt.Errorf("data URL is not base64-encoded")
	}

	var imgType string
	switch {
	case strings.HasPrefix(meta, "image/png"):
		imgType = "PNG"
	case strings.HasPrefix(meta, "image/jpeg"), strings.HasPrefix(meta, "image/jpg"):
		imgType = "JPG"
	case strings.HasPrefix(meta, "image/gif"):
		imgType = "GIF"
	default:
		return "", nil, fmt.Errorf("unsupported image media type %q", strings.TrimSuffix(meta, ";base64"))
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	return imgType, data, nil
}

// rightText draws right-aligned text ending at x.
func rightText(pdf *fpdf.Fpdf, x, y float64, text string) {
	w := pdf.GetStringWidth(text)
	pdf.Text(x-w, y, text)
}

// drawTable renders a striped table with wrapped cells, breaking pages as
// needed and repeating the header row.
func (g *Generator) drawTable(pdf *fpdf.Fpdf, tr func(string) string, headers []string, rows [][]string, widths []float64) {
	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(3, 105, 161)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetX(pdfMarginLeft)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(0, 0, 0)
	}

	drawHeader()

	for rowIdx, row := range rows {
		// Wrap every cell and size the row to the tallest one.
		cellLines := make([][]string, len(row))
		maxLines := 1
		for i, cell := range row {
			lines := pdf.SplitText(tr(cell), widths[i]-2*pdfCellPadding)
			if len(lines) == 0 {
				lines = []string{""}
			}
			cellLines[i] = lines
			if len(lines) > maxLines {
				maxLines = len(lines)
			}
		}
		rowH := float64(maxLines)*pdfLineHeight + 2*pdfCellPadding

		if pdf.GetY()+rowH > pdfPageBottom {
			pdf.AddPage()
			drawHeader()
		}

		if rowIdx%2 == 1 {
			pdf.SetFillColor(240, 240, 240)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		x := pdfMarginLeft
		y := pdf.GetY()
		for i, lines := range cellLines {
			pdf.Rect(x, y, widths[i], rowH, "FD")
			for li, line := range lines {
				pdf.Text(x+pdfCellPadding, y+pdfCellPadding+float64(li+1)*pdfLineHeight-1.2, line)
			}
			x += widths[i]
		}
		pdf.SetY(y + rowH)
	}
}
