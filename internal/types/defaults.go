package types

// Report cover defaults. These are the fixed strings used when an audit
// carries no custom cover metadata; the confidentiality notice and the
// disclaimer are always rendered unless explicitly disabled.
const (
	DefaultAuditTitle    = "Information System & Electronic Data Processing"
	DefaultFinancialYear = "2024-2025"
	DefaultCompanyName   = "Shark Cyber System"
	DefaultCompanyAddr   = "518, I square Corporate Park,\nNear CIMS Hospital, Science\nCity Road, Ahmedabad -\n380060 (Gujarat)"
	DefaultDisclaimer    = "Only Shark Cyber System's logo is our property, and all other logos are property of individual owners"

	ConfidentialHeading = "CONFIDENTIAL DOCUMENT:"
	ConfidentialNotice  = "Not to be circulated or reproduced without appropriate authorization"
	DisclaimerHeading   = "DISCLAIMER:"
)

// DefaultCompanyInfo returns the built-in auditing-company identity block.
func DefaultCompanyInfo() CompanyInfo {
	return CompanyInfo{Name: DefaultCompanyName, Address: DefaultCompanyAddr}
}
