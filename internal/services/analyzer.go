package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"hiringlab/ats-analyzer/internal/models"
)

// fallbackCandidateName is substituted when the model omits the name.
const fallbackCandidateName = "Unknown Candidate"

// AnalyzerService runs the analysis pipeline for one stored document:
// extraction, prompt construction, a single model call, normalization and
// assembly. Once a request reaches this service its outcome is always a
// complete report; every failure is mapped into a schema-shaped ERROR report
// instead of propagating.
type AnalyzerService interface {
	AnalyzeResume(ctx context.Context, filePath string) *models.ATSReport
}

type analyzerService struct {
	extractor     ExtractorService
	geminiService GeminiService
	normalizer    NormalizerService
	promptBuilder *PromptBuilder
	log           *zap.SugaredLogger
}

func NewAnalyzerService(
	extractor ExtractorService,
	geminiService GeminiService,
	normalizer NormalizerService,
	log *zap.SugaredLogger,
) AnalyzerService {
	return &analyzerService{
		extractor:     extractor,
		geminiService: geminiService,
		normalizer:    normalizer,
		promptBuilder: NewPromptBuilder(),
		log:           log,
	}
}

// AnalyzeResume implements AnalyzerService.
func (a *analyzerService) AnalyzeResume(ctx context.Context, filePath string) *models.ATSReport {
	text := a.extractor.ExtractText(filePath)
	if strings.TrimSpace(text) == "" {
		// The model is never invoked for unusable input.
		a.log.Warnw("extraction yielded no text", "path", filePath)
		return ErrorReport(NewFailure(FailureEmptyContent, nil))
	}

	prompt := a.promptBuilder.BuildATSPrompt(text)

	raw, err := a.geminiService.GenerateATSJSON(ctx, prompt)
	if err != nil {
		failure := ClassifyModelError(err)
		a.log.Warnw("model invocation failed", "kind", failure.Kind, "error", err)
		return ErrorReport(failure)
	}

	report, err := a.normalizer.Normalize(raw)
	if err != nil {
		failure, ok := err.(*Failure)
		if !ok {
			failure = NewFailure(FailureSchemaViolation, err)
		}
		a.log.Warnw("normalization failed", "kind", failure.Kind, "error", err)
		return ErrorReport(failure)
	}

	return assembleReport(report)
}

// assembleReport is the single exit point of the success path. It only fills
// in the candidate name fallback; a validated report passes through unchanged.
func assembleReport(report *models.ATSReport) *models.ATSReport {
	if strings.TrimSpace(report.CandidateName) == "" {
		report.CandidateName = fallbackCandidateName
	}
	return report
}
