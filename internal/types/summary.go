package types

import "math"

// Summary is the compliance tally shared by the in-app summary display and
// the exported report.
type Summary struct {
	Compliant     int `json:"compliant"`
	NotCompliant  int `json:"notCompliant"`
	Partial       int `json:"partial"`
	NotApplicable int `json:"notApplicable"`

	Total                int `json:"total"`
	TotalApplicable      int `json:"totalApplicable"`
	CompliancePercentage int `json:"compliancePercentage"`
}

// Summarize tallies every control into exactly one of the four status
// buckets. A status outside the enumeration (possible only with malformed
// persisted data) counts as not compliant, so the buckets always sum to the
// collection size.
//
// The percentage is compliant over applicable controls, rounded; zero when
// no control is applicable.
func Summarize(controls []Control) Summary {
	s := Summary{Total: len(controls)}

	for _, c := range controls {
		switch c.Status {
		case StatusCompliant:
			s.Compliant++
		case StatusNotCompliant:
			s.NotCompliant++
		case StatusPartial:
			s.Partial++
		case StatusNotApplicable:
			s.NotApplicable++
		default:
			s.NotCompliant++
		}
	}

	s.TotalApplicable = s.Total - s.NotApplicable
	if s.TotalApplicable > 0 {
		s.CompliancePercentage = int(math.Round(float64(s.Compliant) / float64(s.TotalApplicable) * 100))
	}

	return s
}
