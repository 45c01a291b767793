package domain

import "github.com/google/uuid"

// LogoItem is immutable reference data produced once per guess-logo activity
// by the external content generator and addressed by round index.
type LogoItem struct {
	ActivityID     uuid.UUID `json:"activity_id"`
	Index          int       `json:"index"`
	CompanyName    string    `json:"company_name"`
	LogoURL        string    `json:"logo_url"`
	Hints          []string  `json:"hints"`
	AlternateNames []string  `json:"alternate_names"`
}

// Candidates returns the company name plus alternates, the answer set both
// matchers run against.
func (l *LogoItem) Candidates() []string {
	out := make([]string, 0, len(l.AlternateNames)+1)
	out = append(out, l.CompanyName)
	out = append(out, l.AlternateNames...)
	return out
}
