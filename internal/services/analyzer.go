package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"resumelens/resume-analyzer/internal/models"
)

const (
	previewLimit = 200
	resultTTL    = time.Hour
)

// AnalyzerService runs the full analysis pipeline for one uploaded resume:
// PDF text extraction, normalization, cache lookup, the two model calls,
// and the write-through of the assembled response.
type AnalyzerService interface {
	Analyze(ctx context.Context, pdfData []byte, jdText string) (*models.AnalysisResponse, error)
}

type analyzerService struct {
	parser        PDFParser
	completion    CompletionClient
	cache         ResultCache
	promptBuilder *PromptBuilder
	logger        *zap.Logger
}

func NewAnalyzerService(
	parser PDFParser,
	completion CompletionClient,
	cache ResultCache,
	logger *zap.Logger,
) AnalyzerService {
	return &analyzerService{
		parser:        parser,
		completion:    completion,
		cache:         cache,
		promptBuilder: NewPromptBuilder(),
		logger:        logger,
	}
}

// Analyze implements AnalyzerService. A document that cannot be parsed is
// the only fatal failure; completion errors and malformed model output
// degrade to the schema fallback records so the request still completes.
func (a *analyzerService) Analyze(ctx context.Context, pdfData []byte, jdText string) (*models.AnalysisResponse, error) {
	rawText, err := a.parser.ExtractText(pdfData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PDF: %w", err)
	}

	resumeText := NormalizeText(rawText)
	cacheKey := DeriveCacheKey(resumeText, jdText)

	if cached, ok := a.cache.Get(ctx, cacheKey); ok {
		var response models.AnalysisResponse
		if err := json.Unmarshal(cached, &response); err == nil {
			a.logger.Info("cache hit", zap.String("key", cacheKey))
			return &response, nil
		}
		a.logger.Warn("discarding undecodable cache entry", zap.String("key", cacheKey))
	}

	response := &models.AnalysisResponse{
		ResumeTextPreview: TruncateRunes(resumeText, previewLimit),
		ExtractedInfo:     a.extractInfo(ctx, resumeText),
	}

	if jdText != "" {
		match := a.matchAgainstJD(ctx, resumeText, jdText)
		response.MatchResult = &match
	}

	if serialized, err := json.Marshal(response); err == nil {
		a.cache.Put(ctx, cacheKey, serialized, resultTTL)
	}

	return response, nil
}

func (a *analyzerService) extractInfo(ctx context.Context, resumeText string) models.ExtractedInfo {
	prompt := a.promptBuilder.BuildExtractionPrompt(resumeText)

	output, err := a.completion.Complete(ctx, prompt)
	if err != nil {
		a.logger.Warn("extraction completion failed", zap.Error(err))
		output = ""
	}

	return SanitizeExtraction(output)
}

func (a *analyzerService) matchAgainstJD(ctx context.Context, resumeText, jdText string) models.MatchResult {
	prompt := a.promptBuilder.BuildMatchPrompt(resumeText, jdText)

	output, err := a.completion.Complete(ctx, prompt)
	if err != nil {
		a.logger.Warn("match completion failed", zap.Error(err))
		output = ""
	}

	return SanitizeMatch(output)
}
