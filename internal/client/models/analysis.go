package models

import "strings"

// Verdict is the analyzer's classification of a news item.
type Verdict string

const (
	VerdictReal       Verdict = "REAL"
	VerdictFake       Verdict = "FAKE"
	VerdictMisleading Verdict = "MISLEADING"
	VerdictUncertain  Verdict = "UNCERTAIN"
)

// Verdicts lists all classifications in display order.
var Verdicts = []Verdict{VerdictReal, VerdictFake, VerdictMisleading, VerdictUncertain}

// ParseVerdict normalizes a backend-supplied verdict string. Anything
// unrecognized maps to UNCERTAIN rather than failing the whole record.
func ParseVerdict(s string) Verdict {
	switch Verdict(strings.ToUpper(strings.TrimSpace(s))) {
	case VerdictReal:
		return VerdictReal
	case VerdictFake:
		return VerdictFake
	case VerdictMisleading:
		return VerdictMisleading
	default:
		return VerdictUncertain
	}
}

// Analysis is one stored verification result, as listed on the dashboard
// and in the paginated history.
type Analysis struct {
	ID         int64   `json:"id"`
	Timestamp  string  `json:"timestamp"`
	Headline   string  `json:"headline"`
	NewsText   string  `json:"news_text"`
	Verdict    Verdict `json:"verdict"`
	Confidence float64 `json:"confidence"`
}

// Source is one outlet the analyzer consults when cross-checking a claim.
type Source struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Credibility string `json:"credibility"`
	Checked     bool   `json:"checked"`
}

// AnalysisReport is the full result of a single /api/analyze call.
type AnalysisReport struct {
	Timestamp               string   `json:"timestamp"`
	Headline                string   `json:"headline"`
	NewsText                string   `json:"news_text"`
	Verdict                 Verdict  `json:"verdict"`
	Confidence              float64  `json:"confidence"`
	Summary                 string   `json:"summary"`
	DetailedAnalysis        string   `json:"detailed_analysis"`
	RedFlags                []string `json:"red_flags"`
	VerificationSuggestions []string `json:"verification_suggestions"`
	KeyClaims               []string `json:"key_claims"`
	SourcesChecked          []Source `json:"sources_checked"`
	TotalSourcesChecked     int      `json:"total_sources_checked"`
	AIModel                 string   `json:"ai_model"`
}

// DashboardStats are the aggregate counters shown at the top of the dashboard.
type DashboardStats struct {
	TotalAnalyses       int             `json:"total_analyses"`
	VerdictDistribution map[Verdict]int `json:"verdict_distribution"`
	LastAnalysis        string          `json:"last_analysis"`
}
