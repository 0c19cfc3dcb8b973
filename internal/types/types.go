package types

import (
	"sort"
	"time"
)

// Client is the organization under audit. Created once during setup and only
// ever replaced wholesale by a new setup flow, never deleted.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	LogoURL   string    `json:"logoUrl"` // empty or an inline base64 data URL
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	ZipCode   string    `json:"zipCode,omitempty"`
	Country   string    `json:"country,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Control is a single security requirement being assessed for compliance.
//
// AttachmentName and AttachmentURL are set or unset as a pair. SerialNumber is
// the stable 1-based display-order tag; zero means not yet assigned.
type Control struct {
	ID              string           `json:"id"`
	Category        string           `json:"category"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Status          ComplianceStatus `json:"status"`
	Comment         string           `json:"comment,omitempty"`
	DetailedComment string           `json:"detailedComment,omitempty"`
	AttachmentURL   string           `json:"attachmentUrl,omitempty"`
	AttachmentName  string           `json:"attachmentName,omitempty"`
	SerialNumber    int              `json:"serialNumber,omitempty"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// DisplayComment returns the comment text for display and export: the
// detailed comment takes precedence over the short one.
func (c Control) DisplayComment() string {
	if c.DetailedComment != "" {
		return c.DetailedComment
	}
	return c.Comment
}

// HasAttachment reports whether the control carries an attachment reference.
func (c Control) HasAttachment() bool {
	return c.AttachmentURL != "" || c.AttachmentName != ""
}

// CompanyInfo is the auditing company's identity block on the report cover.
type CompanyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Logo    string `json:"logo,omitempty"`
}

// Audit is the full assessment session: one client snapshot, the control set
// with statuses, and the report cover metadata.
//
// Client is an embedded snapshot taken at audit creation, not a live
// reference. Submitted is a one-way flag: nothing un-sets it.
type Audit struct {
	ID            string       `json:"id"`
	Client        Client       `json:"client"`
	Controls      []Control    `json:"controls"`
	Title         string       `json:"title,omitempty"`
	FinancialYear string       `json:"financialYear,omitempty"`
	AuditDate     *time.Time   `json:"auditDate,omitempty"`
	CompanyInfo   *CompanyInfo `json:"companyInfo,omitempty"`
	Confidential  *bool        `json:"confidential,omitempty"`
	Disclaimer    string       `json:"disclaimer,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
	Submitted     bool         `json:"submitted"`
}

// ConfidentialShown reports whether the confidentiality notice is rendered.
// The notice defaults to shown; only an explicit false hides it.
func (a Audit) ConfidentialShown() bool {
	return a.Confidential == nil || *a.Confidential
}

// DisplayOrder returns the controls sorted for display: ascending serial
// number, with unnumbered controls keeping their insertion position at the
// end. The input slice is not modified.
func DisplayOrder(controls []Control) []Control {
	out := make([]Control, len(controls))
	copy(out, controls)
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := out[i].SerialNumber, out[j].SerialNumber
		if si > 0 && sj > 0 {
			return si < sj
		}
		return si > 0 && sj == 0
	})
	return out
}
