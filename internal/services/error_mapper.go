package services

import (
	"hiringlab/ats-analyzer/internal/models"
)

// ErrorReport converts a pipeline failure into a complete, schema-valid
// report with verdict ERROR. The weaknesses guidance strings are part of the
// frontend contract: it matches on "quota", API key wording and document
// extractability wording to pick a UI treatment.
func ErrorReport(failure *Failure) *models.ATSReport {
	report := models.NewEmptyReport()
	report.InterviewQuestions = models.InterviewQuestions{
		Technical:  "None",
		Behavioral: "None",
	}

	kind := FailureTransient
	if failure != nil {
		kind = failure.Kind
	}

	switch kind {
	case FailureEmptyContent:
		report.CandidateName = "Unreadable Document"
		report.DetailedAnalysis.Weaknesses = []string{
			"No text could be extracted from the document. It may be scanned, image-only, or corrupted.",
		}
		report.DetailedAnalysis.ActionableImprovements = []string{
			"Export the resume as a text-based PDF instead of a scan or photo.",
			"Avoid image-heavy templates; ATS systems need selectable text.",
		}

	case FailureRateLimited:
		report.CandidateName = "API Quota Exceeded"
		report.DetailedAnalysis.Weaknesses = []string{
			"API quota exceeded. The model service is rate-limiting requests.",
		}
		report.DetailedAnalysis.ActionableImprovements = []string{
			"Wait for the quota window to reset, then retry.",
			"Lower request frequency if you are hitting rate limits.",
		}

	case FailureAuth:
		report.CandidateName = "API Auth Error"
		report.DetailedAnalysis.Weaknesses = []string{
			"Invalid or expired API key. Authentication failed with the model service.",
		}
		report.DetailedAnalysis.ActionableImprovements = []string{
			"Verify the GEMINI_API_KEY environment variable is correct.",
			"Check if the API key has expired or been revoked.",
			"Generate a new API key from Google AI Studio if needed.",
		}

	case FailureSchemaViolation:
		report.CandidateName = "Parse Error"
		report.DetailedAnalysis.Weaknesses = []string{
			"AI returned invalid JSON format (could not be repaired).",
		}
		report.DetailedAnalysis.ActionableImprovements = []string{
			"Try again (temporary model formatting glitch).",
			"If it repeats, shorten the resume or try a text-based PDF.",
		}

	default:
		report.CandidateName = "System Error"
		report.DetailedAnalysis.Weaknesses = []string{
			"The model service could not be reached or returned an unexpected failure.",
		}
		report.DetailedAnalysis.ActionableImprovements = []string{
			"Check server logs for detailed error information.",
			"Ensure network connectivity to the model service.",
		}
	}

	return report
}
