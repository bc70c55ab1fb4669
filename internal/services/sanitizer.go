package services

import (
	"encoding/json"
	"strings"

	"resumelens/resume-analyzer/internal/models"
)

// Model output is untrusted text. The sanitizers below strip the markdown
// fences Gemini likes to wrap JSON in, attempt a schema decode, and fall
// back to a usable record on any failure. They never return an error.

const parsingErrorAnalysis = "AI Parsing Error"

// StripFences removes markdown code-block markers and isolates the
// outermost JSON object or array if one is present.
func StripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	endObj := strings.LastIndex(text, "}")
	startArr := strings.Index(text, "[")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	}
	if startArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return strings.TrimSpace(text)
}

// SanitizeExtraction parses model output against the extraction schema.
// Unparseable output is preserved verbatim under the raw_text sentinel.
func SanitizeExtraction(raw string) models.ExtractedInfo {
	var info models.ExtractedInfo
	if err := json.Unmarshal([]byte(StripFences(raw)), &info); err != nil {
		return models.ExtractedInfo{RawText: raw}
	}

	return info
}

// SanitizeMatch parses model output against the match schema.
func SanitizeMatch(raw string) models.MatchResult {
	var result models.MatchResult
	if err := json.Unmarshal([]byte(StripFences(raw)), &result); err != nil {
		return models.MatchResult{Score: 0, Analysis: parsingErrorAnalysis}
	}

	return result
}
