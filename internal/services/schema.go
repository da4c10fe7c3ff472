package services

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"hiringlab/ats-analyzer/internal/models"
)

// atsReportSchema is the contract the frontend renders without defensive
// parsing. Every normalized or error-mapped report must satisfy it.
var atsReportSchema = map[string]any{
	"type": "object",
	"required": []any{
		"candidate_name", "overall_score", "verdict",
		"track_scores", "detailed_analysis", "interview_questions",
	},
	"properties": map[string]any{
		"candidate_name": map[string]any{"type": "string"},
		"overall_score":  map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
		"verdict": map[string]any{
			"type": "string",
			"enum": []any{"Shortlist", "Borderline", "Reject", "ERROR"},
		},
		"track_scores": map[string]any{
			"type":     "object",
			"required": []any{"product_based", "service_based", "incubator_startup"},
			"properties": map[string]any{
				"product_based":     map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
				"service_based":     map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
				"incubator_startup": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
			},
		},
		"detailed_analysis": map[string]any{
			"type":     "object",
			"required": []any{"strengths", "weaknesses", "actionable_improvements"},
			"properties": map[string]any{
				"strengths":               map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"weaknesses":              map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"actionable_improvements": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
		},
		"interview_questions": map[string]any{
			"type":     "object",
			"required": []any{"technical", "behavioral"},
			"properties": map[string]any{
				"technical":  map[string]any{"type": "string"},
				"behavioral": map[string]any{"type": "string"},
			},
		},
	},
}

var compiledReportSchema = mustCompileReportSchema()

func mustCompileReportSchema() *jsonschema.Schema {
	b, err := json.Marshal(atsReportSchema)
	if err != nil {
		panic(fmt.Sprintf("marshal report schema: %v", err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("ats_report.json", bytes.NewReader(b)); err != nil {
		panic(fmt.Sprintf("add report schema: %v", err))
	}
	schema, err := compiler.Compile("ats_report.json")
	if err != nil {
		panic(fmt.Sprintf("compile report schema: %v", err))
	}
	return schema
}

// ValidateReport checks a report against the output contract schema.
func ValidateReport(report *models.ATSReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal report: %w", err)
	}

	if err := compiledReportSchema.Validate(v); err != nil {
		return fmt.Errorf("report does not match schema: %w", err)
	}

	return nil
}
