package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"hiringlab/ats-analyzer/internal/models"
)

// NormalizerService parses and repairs raw model output into a complete
// ATSReport. Partial output is coerced with per-field defaults instead of
// rejected; only totally unparsable output is a failure. This trades strict
// fidelity for a stable frontend contract.
type NormalizerService interface {
	Normalize(raw string) (*models.ATSReport, error)
}

type normalizerService struct {
	log *zap.SugaredLogger
}

func NewNormalizerService(log *zap.SugaredLogger) NormalizerService {
	return &normalizerService{log: log}
}

func (n *normalizerService) Normalize(raw string) (*models.ATSReport, error) {
	clean := stripMarkdownFences(raw)

	parsed, ok := parseModelJSON(clean)
	if !ok {
		// The response may have been cut off mid-object. Salvage the scalar
		// fields that regex can still reach before giving up.
		if report, salvaged := salvageTruncatedPayload(clean); salvaged {
			n.log.Warnw("model output truncated, salvaged partial payload",
				"candidate", report.CandidateName)
			return finalizeReport(report)
		}

		n.log.Warnw("model output unparsable", "chars", len(clean))
		return nil, NewFailure(FailureSchemaViolation,
			fmt.Errorf("model output is not valid JSON"))
	}

	report := coerceToReport(parsed)
	n.log.Infow("model output normalized",
		"candidate", report.CandidateName,
		"score", report.OverallScore,
		"verdict", report.Verdict)

	return finalizeReport(report)
}

// parseModelJSON tries progressively harder to recover a JSON object from the
// model text: direct parse, balanced-brace extraction of the first object,
// then repair of common LLM mistakes.
func parseModelJSON(text string) (gjson.Result, bool) {
	candidates := []string{text}

	if extracted, ok := extractFirstJSONObject(text); ok {
		candidates = append(candidates, extracted, repairCommonJSONIssues(extracted))
	}
	candidates = append(candidates, repairCommonJSONIssues(text))

	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if gjson.Valid(c) {
			res := gjson.Parse(c)
			if res.IsObject() {
				return res, true
			}
		}
	}

	return gjson.Result{}, false
}

// stripMarkdownFences removes ```json / ``` wrappers. JSON response mode
// should prevent them, but models still slip occasionally.
func stripMarkdownFences(text string) string {
	clean := strings.TrimSpace(text)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}

// extractFirstJSONObject scans for the first balanced top-level object,
// respecting string literals and escapes.
func extractFirstJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escapeNext := false

	for i := start; i < len(text); i++ {
		ch := text[i]

		if escapeNext {
			escapeNext = false
			continue
		}

		switch ch {
		case '\\':
			escapeNext = true
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1], true
				}
			}
		}
	}

	return "", false
}

var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

// repairCommonJSONIssues fixes trailing commas and smart quotes, the two
// malformations models produce most often.
func repairCommonJSONIssues(text string) string {
	repaired := strings.TrimSpace(text)

	repaired = strings.ReplaceAll(repaired, "“", `"`)
	repaired = strings.ReplaceAll(repaired, "”", `"`)
	repaired = strings.ReplaceAll(repaired, "’", "'")

	return trailingCommaRe.ReplaceAllString(repaired, "$1")
}

var (
	salvageNameRe    = regexp.MustCompile(`"candidate_name"\s*:\s*"([^"]*)`)
	salvageScoreRe   = regexp.MustCompile(`"overall_score"\s*:\s*(\d+)`)
	salvageVerdictRe = regexp.MustCompile(`"verdict"\s*:\s*"([^"]*)`)
)

// salvageTruncatedPayload pulls the scalar header fields out of a response
// that was cut off before the JSON closed. It reports false when nothing
// recognizable is present.
func salvageTruncatedPayload(text string) (*models.ATSReport, bool) {
	report := models.NewEmptyReport()
	report.CandidateName = "Unknown"

	found := false

	if m := salvageNameRe.FindStringSubmatch(text); m != nil && strings.TrimSpace(m[1]) != "" {
		report.CandidateName = strings.TrimSpace(m[1])
		found = true
	}

	if m := salvageScoreRe.FindStringSubmatch(text); m != nil {
		score, _ := strconv.Atoi(m[1])
		report.OverallScore = clampScore(score)
		found = true
	}

	if m := salvageVerdictRe.FindStringSubmatch(text); m != nil {
		raw := strings.ToLower(strings.TrimSpace(m[1]))
		switch {
		case strings.HasPrefix(raw, "short"):
			report.Verdict = models.VerdictShortlist
		case strings.HasPrefix(raw, "border"):
			report.Verdict = models.VerdictBorderline
		case strings.HasPrefix(raw, "reject"):
			report.Verdict = models.VerdictReject
		}
		found = true
	}

	if !found {
		return nil, false
	}

	if report.Verdict != models.VerdictError {
		score := report.OverallScore
		report.TrackScores = models.TrackScores{
			ProductBased:     score,
			ServiceBased:     score,
			IncubatorStartup: score,
		}
	}

	report.DetailedAnalysis.Weaknesses = []string{
		"Model response was truncated before full JSON could be returned.",
	}
	report.DetailedAnalysis.ActionableImprovements = []string{
		"Retry once. If it repeats, shorten resume text or reduce traffic.",
	}
	report.InterviewQuestions = models.InterviewQuestions{
		Technical:  "None",
		Behavioral: "None",
	}

	return report, true
}

// coerceToReport reads every contract field with a defined default: missing
// numerics become 0, missing lists become empty, missing strings become "".
func coerceToReport(data gjson.Result) *models.ATSReport {
	report := models.NewEmptyReport()

	report.CandidateName = strings.TrimSpace(data.Get("candidate_name").String())
	report.OverallScore = clampScore(int(data.Get("overall_score").Int()))
	report.Verdict = coerceVerdict(data.Get("verdict").String())

	report.TrackScores = models.TrackScores{
		ProductBased:     clampScore(int(data.Get("track_scores.product_based").Int())),
		ServiceBased:     clampScore(int(data.Get("track_scores.service_based").Int())),
		IncubatorStartup: clampScore(int(data.Get("track_scores.incubator_startup").Int())),
	}

	report.DetailedAnalysis = models.DetailedAnalysis{
		Strengths:              stringList(data.Get("detailed_analysis.strengths")),
		Weaknesses:             stringList(data.Get("detailed_analysis.weaknesses")),
		ActionableImprovements: stringList(data.Get("detailed_analysis.actionable_improvements")),
	}

	report.InterviewQuestions = models.InterviewQuestions{
		Technical:  data.Get("interview_questions.technical").String(),
		Behavioral: data.Get("interview_questions.behavioral").String(),
	}

	return report
}

// finalizeReport enforces the contract invariants: a validated verdict, and
// zeroed scores whenever the verdict is ERROR. The result is checked against
// the report schema as a last line of defense.
func finalizeReport(report *models.ATSReport) (*models.ATSReport, error) {
	if !models.IsValidVerdict(report.Verdict) {
		report.Verdict = models.VerdictError
	}

	if report.Verdict == models.VerdictError {
		report.OverallScore = 0
		report.TrackScores = models.TrackScores{}
	}

	if err := ValidateReport(report); err != nil {
		return nil, NewFailure(FailureSchemaViolation, err)
	}

	return report, nil
}

func coerceVerdict(raw string) models.Verdict {
	v := models.Verdict(strings.TrimSpace(raw))
	if models.IsValidVerdict(v) {
		return v
	}
	return models.VerdictError
}

func stringList(res gjson.Result) []string {
	items := []string{}
	if !res.IsArray() {
		return items
	}
	for _, item := range res.Array() {
		if s := strings.TrimSpace(item.String()); s != "" {
			items = append(items, s)
		}
	}
	return items
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
