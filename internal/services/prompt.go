package services

import "fmt"

// Prompt input limits, in characters of normalized text. Longer inputs
// are silently truncated; the cut is advisory and may land mid-word.
const (
	extractionPromptLimit = 2500
	matchResumeLimit      = 2000
	matchJDLimit          = 1000
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildExtractionPrompt creates the prompt that pulls structured candidate
// fields out of the resume text.
func (pb *PromptBuilder) BuildExtractionPrompt(resumeText string) string {
	return fmt.Sprintf(`Extract the key information from the following resume text.

RESUME TEXT:
%s

Return your response as strict JSON with no markdown formatting, containing the following fields:
- name (candidate full name)
- phone (phone number)
- email (email address)
- education (short education summary)
- experience_years (years of work experience, as a number)
- skills (list of skill strings)`,
		TruncateRunes(resumeText, extractionPromptLimit))
}

// BuildMatchPrompt creates the prompt that scores the resume against a job
// description.
func (pb *PromptBuilder) BuildMatchPrompt(resumeText, jdText string) string {
	return fmt.Sprintf(`You are a recruiter comparing a resume against a job description.

RESUME TEXT:
%s

JOB DESCRIPTION:
%s

Provide:
1. score (an integer from 0 to 100)
2. analysis (a short match analysis, at most 100 words)

Return your response as strict JSON with no markdown formatting.`,
		TruncateRunes(resumeText, matchResumeLimit),
		TruncateRunes(jdText, matchJDLimit))
}
