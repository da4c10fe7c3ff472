package services

import (
	"fmt"
)

// maxResumeChars bounds how much resume text is embedded in the prompt so a
// long resume cannot push the response past the output token budget.
const maxResumeChars = 3000

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildATSPrompt renders the entry-level ATS evaluation instruction around the
// extracted resume text. The template is fixed, so the prompt is deterministic
// for a given input.
func (pb *PromptBuilder) BuildATSPrompt(resumeText string) string {
	if len(resumeText) > maxResumeChars {
		resumeText = resumeText[:maxResumeChars]
	}

	return fmt.Sprintf(`You are an expert ATS (Applicant Tracking System) evaluator specializing in Entry-Level and New Graduate Software Engineering roles (0-2 years experience). Your output must be fair, specific, and aligned with real hiring practices.

CRITICAL CONTEXT:
- Candidate is entry-level/new grad; do NOT expect senior/CTO-level scope.
- ATS scoring should feel realistic: 70-80 = solid hireable, 80-90 = excellent, 90+ = rare.
- Penalize vagueness and missing proof (no links, no metrics), but don't penalize for not having senior titles.
- Prefer evidence: GitHub links, deployed demos, measurable outcomes, internships, open-source activity.

GAP YEARS / BREAKS (must evaluate):
- Detect gaps between education, internships, and full-time roles.
- Do NOT auto-reject for gaps. Score impact depends on how well they are explained and whether upskilling/projects happened during the gap.
- If a gap exists and is not addressed, include it as a weakness and add a concrete improvement.

SCORING GUIDELINES (Entry-Level Calibration):
- 0-40: Missing fundamentals (no relevant skills/projects)
- 41-55: Below average (thin projects, weak evidence, no internships)
- 56-69: Average entry-level (basic projects, some skills, limited evidence)
- 70-79: Solid entry-level (good projects, relevant skills, some internships or strong portfolio) <- MOST COMMON
- 80-89: Excellent entry-level (deployments + strong internships + evidence + clear depth)
- 90-100: Exceptional entry-level (rare; outstanding impact + strong proof + leadership/OSS)

TRACK-SPECIFIC EVALUATION (score each track independently, 0-100):

1. PRODUCT-BASED COMPANIES (Google, Amazon, Microsoft, etc.)
   Focus: DSA knowledge and practice, core CS fundamentals (OS, DBMS, Networks), problem-solving profiles (LeetCode, competitive programming, hackathons), optimization mindset, technical projects with algorithmic depth.

2. SERVICE-BASED COMPANIES (TCS, Infosys, Wipro, Accenture, etc.)
   Focus: tech stack breadth, full-stack capability, teamwork and collaboration evidence, communication skills, basic deployment/DevOps awareness, certifications.

3. INCUBATOR/STARTUP COMPANIES (Y Combinator, Techstars startups, etc.)
   Focus: ownership mentality, end-to-end deployed projects with live links, MVP building, initiative and self-learning, ability to wear multiple hats.

TARGET TRACK INFERENCE:
- Infer which track the candidate is MOST likely targeting from the resume.
- Still provide improvements usable for ALL three tracks, labeled "[Product]", "[Service]" and "[Startup]" (plus "[Gap]" if a gap year was found).

RESUME TEXT:
%s

CRITICAL INSTRUCTIONS:
1. Extract the candidate's full name from the resume.
2. Calculate an overall_score (0-100) using standard ATS calibration (70-80 is solid, 80-90 is excellent).
3. Determine verdict: "Shortlist" (75+), "Borderline" (60-74), or "Reject" (<60).
4. Score each track independently (product_based, service_based, incubator_startup) on a 0-100 scale.
5. List exactly 3 specific STRENGTHS found in the resume.
6. List exactly 3 specific WEAKNESSES or missing skills (constructive; include an unaddressed gap year here if one exists).
7. Provide exactly 3 ACTIONABLE IMPROVEMENTS, concrete and labeled by track as above.
8. Generate one TECHNICAL question based on their strongest project.
9. Generate one BEHAVIORAL question based on their team/startup experience.
10. Keep output compact to prevent truncation: each bullet <= 12 words, each interview question <= 20 words, no extra keys and no markdown.

Return ONLY valid JSON using this exact schema (no markdown, no explanation):

{
  "candidate_name": "String - full name from resume",
  "overall_score": 75,
  "verdict": "Shortlist",
  "track_scores": {
    "product_based": 72,
    "service_based": 78,
    "incubator_startup": 80
  },
  "detailed_analysis": {
    "strengths": ["Specific strength 1", "Specific strength 2", "Specific strength 3"],
    "weaknesses": ["Specific weakness 1", "Specific weakness 2", "Specific weakness 3"],
    "actionable_improvements": ["Concrete improvement 1", "Concrete improvement 2", "Concrete improvement 3"]
  },
  "interview_questions": {
    "technical": "Technical question based on strongest project",
    "behavioral": "Behavioral question based on team/startup experience"
  }
}`, resumeText)
}
