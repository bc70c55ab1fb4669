package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- mock collaborators ---

type mockParser struct {
	text string
	err  error
}

func (m *mockParser) ExtractText([]byte) (string, error) {
	return m.text, m.err
}

type mockCompletion struct {
	outputs []string // consumed in call order, last one repeats
	err     error
	calls   []string
}

func (m *mockCompletion) Complete(_ context.Context, prompt string) (string, error) {
	m.calls = append(m.calls, prompt)
	if m.err != nil {
		return "", m.err
	}

	i := len(m.calls) - 1
	if i >= len(m.outputs) {
		i = len(m.outputs) - 1
	}
	return m.outputs[i], nil
}

type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	value, ok := c.entries[key]
	return value, ok
}

func (c *memoryCache) Put(_ context.Context, key string, value []byte, _ time.Duration) {
	c.entries[key] = value
}

const sampleResume = "John Doe, phone 555-1234, 5 years experience, skills: Go, Python"

const sampleExtraction = `{"name":"John Doe","phone":"555-1234","experience_years":5,"skills":["Go","Python"]}`

func newTestAnalyzer(parser PDFParser, completion CompletionClient, cache ResultCache) AnalyzerService {
	return NewAnalyzerService(parser, completion, cache, zap.NewNop())
}

// --- tests ---

func TestAnalyzeWithoutJD(t *testing.T) {
	completion := &mockCompletion{outputs: []string{sampleExtraction}}
	analyzer := newTestAnalyzer(&mockParser{text: sampleResume}, completion, newMemoryCache())

	response, err := analyzer.Analyze(context.Background(), []byte("pdf"), "")
	require.NoError(t, err)

	assert.Equal(t, "John Doe", response.ExtractedInfo.Name)
	assert.Equal(t, []string{"Go", "Python"}, response.ExtractedInfo.Skills)
	assert.Nil(t, response.MatchResult)
	assert.Equal(t, sampleResume, response.ResumeTextPreview)

	// No JD means no second completion call.
	assert.Len(t, completion.calls, 1)
}

func TestAnalyzeWithJD(t *testing.T) {
	completion := &mockCompletion{outputs: []string{
		sampleExtraction,
		`{"score":85,"analysis":"Strong Go match."}`,
	}}
	analyzer := newTestAnalyzer(&mockParser{text: sampleResume}, completion, newMemoryCache())

	response, err := analyzer.Analyze(context.Background(), []byte("pdf"), "Senior backend engineer, Go required")
	require.NoError(t, err)

	require.NotNil(t, response.MatchResult)
	assert.Equal(t, 85, response.MatchResult.Score)
	assert.Equal(t, "Strong Go match.", response.MatchResult.Analysis)
	assert.GreaterOrEqual(t, response.MatchResult.Score, 0)
	assert.LessOrEqual(t, response.MatchResult.Score, 100)

	require.Len(t, completion.calls, 2)
	assert.Contains(t, completion.calls[1], "Senior backend engineer, Go required")
}

func TestAnalyzePreviewTruncated(t *testing.T) {
	longText := strings.Repeat("word ", 200)
	completion := &mockCompletion{outputs: []string{sampleExtraction}}
	analyzer := newTestAnalyzer(&mockParser{text: longText}, completion, newMemoryCache())

	response, err := analyzer.Analyze(context.Background(), []byte("pdf"), "")
	require.NoError(t, err)

	normalized := NormalizeText(longText)
	assert.Equal(t, TruncateRunes(normalized, 200), response.ResumeTextPreview)
	assert.Len(t, []rune(response.ResumeTextPreview), 200)
}

func TestAnalyzeCacheIdempotence(t *testing.T) {
	completion := &mockCompletion{outputs: []string{
		sampleExtraction,
		`{"score":85,"analysis":"Strong Go match."}`,
	}}
	analyzer := newTestAnalyzer(&mockParser{text: sampleResume}, completion, newMemoryCache())
	ctx := context.Background()

	first, err := analyzer.Analyze(ctx, []byte("pdf"), "Go required")
	require.NoError(t, err)
	require.Len(t, completion.calls, 2)

	second, err := analyzer.Analyze(ctx, []byte("pdf"), "Go required")
	require.NoError(t, err)

	// Cache hit: no further model calls, identical result.
	assert.Len(t, completion.calls, 2)
	assert.Equal(t, first, second)
}

func TestAnalyzeDistinctJDsMissCache(t *testing.T) {
	completion := &mockCompletion{outputs: []string{sampleExtraction}}
	analyzer := newTestAnalyzer(&mockParser{text: sampleResume}, completion, newMemoryCache())
	ctx := context.Background()

	_, err := analyzer.Analyze(ctx, []byte("pdf"), "")
	require.NoError(t, err)
	_, err = analyzer.Analyze(ctx, []byte("pdf"), "different jd")
	require.NoError(t, err)

	// One extraction call each, plus one match call for the second request.
	assert.Len(t, completion.calls, 3)
}

func TestAnalyzeCompletionFailure(t *testing.T) {
	completion := &mockCompletion{err: errors.New("status 500")}
	analyzer := newTestAnalyzer(&mockParser{text: sampleResume}, completion, newMemoryCache())

	response, err := analyzer.Analyze(context.Background(), []byte("pdf"), "Go required")
	require.NoError(t, err)

	// Both records degrade to their fallbacks; the request still completes.
	assert.Empty(t, response.ExtractedInfo.Name)
	assert.Empty(t, response.ExtractedInfo.RawText)
	require.NotNil(t, response.MatchResult)
	assert.Equal(t, 0, response.MatchResult.Score)
	assert.Equal(t, "AI Parsing Error", response.MatchResult.Analysis)
}

func TestAnalyzeProseOutputFallsBack(t *testing.T) {
	prose := "I am unable to produce JSON for this resume."
	completion := &mockCompletion{outputs: []string{prose}}
	analyzer := newTestAnalyzer(&mockParser{text: sampleResume}, completion, newMemoryCache())

	response, err := analyzer.Analyze(context.Background(), []byte("pdf"), "")
	require.NoError(t, err)

	assert.Equal(t, prose, response.ExtractedInfo.RawText)
	assert.Empty(t, response.ExtractedInfo.Name)
}

func TestAnalyzeFencedOutput(t *testing.T) {
	completion := &mockCompletion{outputs: []string{"```json {\"name\":\"Jane\"} ```"}}
	analyzer := newTestAnalyzer(&mockParser{text: sampleResume}, completion, newMemoryCache())

	response, err := analyzer.Analyze(context.Background(), []byte("pdf"), "")
	require.NoError(t, err)

	assert.Equal(t, "Jane", response.ExtractedInfo.Name)
	assert.Empty(t, response.ExtractedInfo.RawText)
}

func TestAnalyzeParseFailureIsFatal(t *testing.T) {
	completion := &mockCompletion{outputs: []string{sampleExtraction}}
	parser := &mockParser{err: errors.New("failed to open PDF")}
	analyzer := newTestAnalyzer(parser, completion, newMemoryCache())

	_, err := analyzer.Analyze(context.Background(), []byte("not a pdf"), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse PDF")
	assert.Empty(t, completion.calls)
}

func TestAnalyzeWritesThroughCache(t *testing.T) {
	completion := &mockCompletion{outputs: []string{sampleExtraction}}
	cache := newMemoryCache()
	analyzer := newTestAnalyzer(&mockParser{text: sampleResume}, completion, cache)

	_, err := analyzer.Analyze(context.Background(), []byte("pdf"), "")
	require.NoError(t, err)

	key := DeriveCacheKey(NormalizeText(sampleResume), "")
	_, ok := cache.entries[key]
	assert.True(t, ok)
}

func TestAnalyzeTruncatesPromptInputs(t *testing.T) {
	longResume := strings.Repeat("Ω", 10000)
	longJD := strings.Repeat("Ψ", 10000)
	completion := &mockCompletion{outputs: []string{sampleExtraction, `{"score":50,"analysis":"ok"}`}}
	analyzer := newTestAnalyzer(&mockParser{text: longResume}, completion, newMemoryCache())

	_, err := analyzer.Analyze(context.Background(), []byte("pdf"), longJD)
	require.NoError(t, err)

	require.Len(t, completion.calls, 2)
	assert.Equal(t, 2500, strings.Count(completion.calls[0], "Ω"))
	assert.Equal(t, 2000, strings.Count(completion.calls[1], "Ω"))
	assert.Equal(t, 1000, strings.Count(completion.calls[1], "Ψ"))
}
