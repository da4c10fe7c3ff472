package models

// Verdict is the categorical outcome of an ATS evaluation.
type Verdict string

const (
	VerdictShortlist  Verdict = "Shortlist"
	VerdictBorderline Verdict = "Borderline"
	VerdictReject     Verdict = "Reject"
	VerdictError      Verdict = "ERROR"
)

// IsValidVerdict reports whether v is one of the four allowed members.
func IsValidVerdict(v Verdict) bool {
	switch v {
	case VerdictShortlist, VerdictBorderline, VerdictReject, VerdictError:
		return true
	}
	return false
}

// TrackScores holds the three hiring-track calibrations, each 0-100.
type TrackScores struct {
	ProductBased     int `json:"product_based"`
	ServiceBased     int `json:"service_based"`
	IncubatorStartup int `json:"incubator_startup"`
}

type DetailedAnalysis struct {
	Strengths              []string `json:"strengths"`
	Weaknesses             []string `json:"weaknesses"`
	ActionableImprovements []string `json:"actionable_improvements"`
}

type InterviewQuestions struct {
	Technical  string `json:"technical"`
	Behavioral string `json:"behavioral"`
}

// ATSReport is the evaluation contract returned to the frontend. Every field
// is present on every outcome, including failures; failures are distinguished
// only by verdict ERROR and zeroed scores.
type ATSReport struct {
	CandidateName      string             `json:"candidate_name"`
	OverallScore       int                `json:"overall_score"`
	Verdict            Verdict            `json:"verdict"`
	TrackScores        TrackScores        `json:"track_scores"`
	DetailedAnalysis   DetailedAnalysis   `json:"detailed_analysis"`
	InterviewQuestions InterviewQuestions `json:"interview_questions"`
}

// NewEmptyReport returns a structurally complete report with zero scores and
// empty (non-nil) lists, ready to be filled by the normalizer or error mapper.
func NewEmptyReport() *ATSReport {
	return &ATSReport{
		Verdict: VerdictError,
		DetailedAnalysis: DetailedAnalysis{
			Strengths:              []string{},
			Weaknesses:             []string{},
			ActionableImprovements: []string{},
		},
	}
}
