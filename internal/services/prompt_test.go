package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildATSPromptEmbedsResumeText(t *testing.T) {
	resume := "Jane Doe\nPython, React, 3 deployed projects"
	prompt := NewPromptBuilder().BuildATSPrompt(resume)

	assert.Contains(t, prompt, resume)
	assert.Contains(t, prompt, "Return ONLY valid JSON")
	assert.Contains(t, prompt, "product_based")
	assert.Contains(t, prompt, "service_based")
	assert.Contains(t, prompt, "incubator_startup")
}

func TestBuildATSPromptIsDeterministic(t *testing.T) {
	pb := NewPromptBuilder()
	resume := "Some candidate resume text"

	assert.Equal(t, pb.BuildATSPrompt(resume), pb.BuildATSPrompt(resume))
}

func TestBuildATSPromptTruncatesLongResumes(t *testing.T) {
	long := strings.Repeat("x", maxResumeChars+500)
	prompt := NewPromptBuilder().BuildATSPrompt(long)

	assert.Contains(t, prompt, strings.Repeat("x", maxResumeChars))
	assert.NotContains(t, prompt, strings.Repeat("x", maxResumeChars+1))
}
