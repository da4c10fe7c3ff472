package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hiringlab/ats-analyzer/internal/models"
)

const conformantResponse = `{
	"candidate_name": "Jane Doe",
	"overall_score": 78,
	"verdict": "Borderline",
	"track_scores": {
		"product_based": 72,
		"service_based": 80,
		"incubator_startup": 76
	},
	"detailed_analysis": {
		"strengths": ["Built 3 deployed projects", "Solid Python and React skills", "Active GitHub profile"],
		"weaknesses": ["No internship experience", "No DSA profile linked", "Metrics missing from projects"],
		"actionable_improvements": ["[Product] Add LeetCode profile", "[Service] List team projects", "[Startup] Add live demo links"]
	},
	"interview_questions": {
		"technical": "Walk through the architecture of your largest project.",
		"behavioral": "Describe a team deadline you helped meet."
	}
}`

func newTestNormalizer() NormalizerService {
	return NewNormalizerService(zap.NewNop().Sugar())
}

func TestNormalizeConformantResponse(t *testing.T) {
	report, err := newTestNormalizer().Normalize(conformantResponse)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", report.CandidateName)
	assert.Equal(t, 78, report.OverallScore)
	assert.Equal(t, models.VerdictBorderline, report.Verdict)
	assert.Equal(t, 72, report.TrackScores.ProductBased)
	assert.Equal(t, 80, report.TrackScores.ServiceBased)
	assert.Equal(t, 76, report.TrackScores.IncubatorStartup)
	assert.Len(t, report.DetailedAnalysis.Strengths, 3)
	assert.Len(t, report.DetailedAnalysis.Weaknesses, 3)
	assert.Len(t, report.DetailedAnalysis.ActionableImprovements, 3)
	assert.NotEmpty(t, report.InterviewQuestions.Technical)
	assert.NotEmpty(t, report.InterviewQuestions.Behavioral)
}

func TestNormalizeStripsMarkdownFences(t *testing.T) {
	wrapped := "```json\n" + conformantResponse + "\n```"

	report, err := newTestNormalizer().Normalize(wrapped)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", report.CandidateName)
	assert.Equal(t, 78, report.OverallScore)
}

func TestNormalizeExtractsObjectFromSurroundingProse(t *testing.T) {
	noisy := "Here is the evaluation you asked for:\n" + conformantResponse + "\nLet me know if you need anything else."

	report, err := newTestNormalizer().Normalize(noisy)
	require.NoError(t, err)
	assert.Equal(t, models.VerdictBorderline, report.Verdict)
}

func TestNormalizeRepairsTrailingCommasAndSmartQuotes(t *testing.T) {
	malformed := "{\n" +
		"\t“candidate_name”: “Ram Kumar”,\n" +
		"\t\"overall_score\": 64,\n" +
		"\t\"verdict\": \"Borderline\",\n" +
		"\t\"track_scores\": {\"product_based\": 60, \"service_based\": 68, \"incubator_startup\": 62,},\n" +
		"\t\"detailed_analysis\": {\"strengths\": [\"Good basics\",], \"weaknesses\": [], \"actionable_improvements\": []},\n" +
		"\t\"interview_questions\": {\"technical\": \"Q1\", \"behavioral\": \"Q2\"}\n" +
		"}"

	report, err := newTestNormalizer().Normalize(malformed)
	require.NoError(t, err)
	assert.Equal(t, "Ram Kumar", report.CandidateName)
	assert.Equal(t, 64, report.OverallScore)
	assert.Equal(t, 68, report.TrackScores.ServiceBased)
}

// Missing verdict coerces to ERROR, which in turn zeroes every score. This
// pins the coercion policy for partially conformant output.
func TestNormalizeScoreOnlyResponseCoercesToError(t *testing.T) {
	report, err := newTestNormalizer().Normalize(`{"overall_score": 85}`)
	require.NoError(t, err)

	assert.Equal(t, models.VerdictError, report.Verdict)
	assert.Equal(t, 0, report.OverallScore)
	assert.Equal(t, models.TrackScores{}, report.TrackScores)
	assert.Empty(t, report.DetailedAnalysis.Strengths)
	assert.Empty(t, report.DetailedAnalysis.Weaknesses)
	assert.Empty(t, report.DetailedAnalysis.ActionableImprovements)
	assert.Equal(t, "", report.InterviewQuestions.Technical)
}

func TestNormalizeUnknownVerdictCoercesToError(t *testing.T) {
	report, err := newTestNormalizer().Normalize(
		`{"candidate_name": "X", "overall_score": 70, "verdict": "Strong Hire"}`)
	require.NoError(t, err)

	assert.Equal(t, models.VerdictError, report.Verdict)
	assert.Equal(t, 0, report.OverallScore)
}

func TestNormalizeClampsOutOfRangeScores(t *testing.T) {
	report, err := newTestNormalizer().Normalize(
		`{"candidate_name": "X", "overall_score": 140, "verdict": "Shortlist",
		  "track_scores": {"product_based": -5, "service_based": 250, "incubator_startup": 50}}`)
	require.NoError(t, err)

	assert.Equal(t, 100, report.OverallScore)
	assert.Equal(t, 0, report.TrackScores.ProductBased)
	assert.Equal(t, 100, report.TrackScores.ServiceBased)
	assert.Equal(t, 50, report.TrackScores.IncubatorStartup)
}

func TestNormalizeMistypedListsBecomeEmpty(t *testing.T) {
	report, err := newTestNormalizer().Normalize(
		`{"candidate_name": "X", "overall_score": 70, "verdict": "Borderline",
		  "detailed_analysis": {"strengths": "not a list", "weaknesses": 3}}`)
	require.NoError(t, err)

	assert.Equal(t, []string{}, report.DetailedAnalysis.Strengths)
	assert.Equal(t, []string{}, report.DetailedAnalysis.Weaknesses)
}

func TestNormalizeUnparsableOutputFails(t *testing.T) {
	_, err := newTestNormalizer().Normalize("I cannot evaluate this resume, sorry.")
	require.Error(t, err)

	var failure *Failure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, FailureSchemaViolation, failure.Kind)
}

func TestNormalizeEmptyOutputFails(t *testing.T) {
	_, err := newTestNormalizer().Normalize("")
	require.Error(t, err)

	var failure *Failure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, FailureSchemaViolation, failure.Kind)
}

func TestNormalizeSalvagesTruncatedResponse(t *testing.T) {
	truncated := `{"candidate_name": "Asha Patel", "overall_score": 71, "verdict": "Borderline",
		"track_scores": {"product_based": 68, "service_based": 74, "incu`

	report, err := newTestNormalizer().Normalize(truncated)
	require.NoError(t, err)

	assert.Equal(t, "Asha Patel", report.CandidateName)
	assert.Equal(t, 71, report.OverallScore)
	assert.Equal(t, models.VerdictBorderline, report.Verdict)
	assert.NotEmpty(t, report.DetailedAnalysis.Weaknesses)
	require.NoError(t, ValidateReport(report))
}

func TestExtractFirstJSONObjectRespectsStrings(t *testing.T) {
	text := `prefix {"a": "brace } inside", "b": {"c": 1}} suffix {"d": 2}`

	obj, ok := extractFirstJSONObject(text)
	require.True(t, ok)
	assert.Equal(t, `{"a": "brace } inside", "b": {"c": 1}}`, obj)
}

func TestNormalizedReportAlwaysMatchesSchema(t *testing.T) {
	inputs := []string{
		conformantResponse,
		`{"overall_score": 85}`,
		`{}`,
		`{"candidate_name": "X", "verdict": "whatever"}`,
	}

	for _, input := range inputs {
		report, err := newTestNormalizer().Normalize(input)
		require.NoError(t, err, "input: %s", input)
		require.NoError(t, ValidateReport(report), "input: %s", input)
	}
}
