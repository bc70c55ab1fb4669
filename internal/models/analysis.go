package models

// ExtractedInfo holds the structured fields pulled out of a resume.
// When the model output cannot be parsed, the record degrades to RawText
// carrying the unparsed response verbatim.
type ExtractedInfo struct {
	Name            string   `json:"name,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	Email           string   `json:"email,omitempty"`
	Education       string   `json:"education,omitempty"`
	ExperienceYears float64  `json:"experience_years,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	RawText         string   `json:"raw_text,omitempty"`
}

// MatchResult scores a resume against a job description.
type MatchResult struct {
	Score    int    `json:"score"`
	Analysis string `json:"analysis"`
}

// AnalysisResponse is the externally visible result of one analysis and
// the value stored in the result cache.
type AnalysisResponse struct {
	ResumeTextPreview string        `json:"resume_text_preview"`
	ExtractedInfo     ExtractedInfo `json:"extracted_info"`
	MatchResult       *MatchResult  `json:"match_result,omitempty"`
}
