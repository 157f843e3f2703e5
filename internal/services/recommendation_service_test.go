package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cmdb-system/internal/dto"
	"cmdb-system/internal/repositories"
	"cmdb-system/pkg/config"
	apperrors "cmdb-system/pkg/errors"
)

type stubCorpusRepo struct {
	repositories.ClosureCodeRepositoryInterface

	corpus []dto.ClosureCodeDTO
	calls  int
}

func (s *stubCorpusRepo) CorpusByApplication(context.Context, uint64) ([]dto.ClosureCodeDTO, error) {
	s.calls++
	return s.corpus, nil
}

type memoryCache struct {
	entries map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]string{}}
}

func (m *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	value, ok := m.entries[key]
	return value, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.entries[key] = value
	return nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	delete(m.entries, key)
	return nil
}

func testRecommendationConfig() config.RecommendationConfig {
	return config.RecommendationConfig{CorpusCacheTTL: time.Minute, MaxSuggestions: 3}
}

func sampleCorpus() []dto.ClosureCodeDTO {
	return []dto.ClosureCodeDTO{
		{ID: 1, ApplicationID: 7, Code: "CC-001", Description: "error de configuración corregido"},
		{ID: 2, ApplicationID: 7, Code: "CC-002", Description: "reinicio de servicio por consumo de memoria"},
		{ID: 3, ApplicationID: 7, Code: "CC-003", Description: "problema de red resuelto con el proveedor"},
	}
}

func TestSuggestRanksByRelevance(t *testing.T) {
	repo := &stubCorpusRepo{corpus: sampleCorpus()}
	svc := NewRecommendationService(repo, newMemoryCache(), testRecommendationConfig(), zap.NewNop())

	suggestions, err := svc.Suggest(context.Background(), dto.RecommendClosureCodeDTO{
		ApplicationID: 7,
		Description:   "el servicio se quedó sin memoria y hubo que hacer un reinicio",
	})
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)

	assert.Equal(t, uint64(2), suggestions[0].ID)
	for i := 1; i < len(suggestions); i++ {
		assert.GreaterOrEqual(t, suggestions[i-1].Score, suggestions[i].Score)
	}
}

func TestSuggestDropsUnrelatedCodes(t *testing.T) {
	repo := &stubCorpusRepo{corpus: sampleCorpus()}
	svc := NewRecommendationService(repo, newMemoryCache(), testRecommendationConfig(), zap.NewNop())

	suggestions, err := svc.Suggest(context.Background(), dto.RecommendClosureCodeDTO{
		ApplicationID: 7,
		Description:   "xyzzy quux",
	})
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestSuggestLimitsResults(t *testing.T) {
	corpus := sampleCorpus()
	for i := uint64(4); i <= 10; i++ {
		corpus = append(corpus, dto.ClosureCodeDTO{ID: i, ApplicationID: 7, Code: "CC-X", Description: "error de red"})
	}
	repo := &stubCorpusRepo{corpus: corpus}
	svc := NewRecommendationService(repo, newMemoryCache(), testRecommendationConfig(), zap.NewNop())

	suggestions, err := svc.Suggest(context.Background(), dto.RecommendClosureCodeDTO{
		ApplicationID: 7,
		Description:   "error de red",
	})
	require.NoError(t, err)
	assert.Len(t, suggestions, 3)
}

func TestSuggestEmptyCorpus(t *testing.T) {
	svc := NewRecommendationService(&stubCorpusRepo{}, newMemoryCache(), testRecommendationConfig(), zap.NewNop())

	_, err := svc.Suggest(context.Background(), dto.RecommendClosureCodeDTO{
		ApplicationID: 7,
		Description:   "cualquier cosa",
	})
	assert.ErrorIs(t, err, apperrors.ErrNoClosureCodes)
}

func TestSuggestUsesCachedCorpus(t *testing.T) {
	repo := &stubCorpusRepo{corpus: sampleCorpus()}
	cache := newMemoryCache()
	svc := NewRecommendationService(repo, cache, testRecommendationConfig(), zap.NewNop())

	payload := dto.RecommendClosureCodeDTO{ApplicationID: 7, Description: "reinicio de servicio"}

	_, err := svc.Suggest(context.Background(), payload)
	require.NoError(t, err)
	_, err = svc.Suggest(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls)
}

func TestSuggestDiscardsMalformedCacheEntry(t *testing.T) {
	repo := &stubCorpusRepo{corpus: sampleCorpus()}
	cache := newMemoryCache()
	cache.entries["cmdb:closure-corpus:7"] = "{not json"
	svc := NewRecommendationService(repo, cache, testRecommendationConfig(), zap.NewNop())

	_, err := svc.Suggest(context.Background(), dto.RecommendClosureCodeDTO{
		ApplicationID: 7,
		Description:   "reinicio de servicio",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)

	var cached []dto.ClosureCodeDTO
	require.NoError(t, json.Unmarshal([]byte(cache.entries["cmdb:closure-corpus:7"]), &cached))
	assert.Len(t, cached, 3)
}

func TestInvalidateCorpus(t *testing.T) {
	repo := &stubCorpusRepo{corpus: sampleCorpus()}
	cache := newMemoryCache()
	svc := NewRecommendationService(repo, cache, testRecommendationConfig(), zap.NewNop())

	payload := dto.RecommendClosureCodeDTO{ApplicationID: 7, Description: "reinicio de servicio"}
	_, err := svc.Suggest(context.Background(), payload)
	require.NoError(t, err)

	require.NoError(t, svc.InvalidateCorpus(context.Background(), 7))
	_, err = svc.Suggest(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestTokenize(t *testing.T) {
	tokens := tokenize("Error: de-CONFIGURACIÓN, (red) 404!")
	assert.Equal(t, []string{"error", "de", "configuración", "red", "404"}, tokens)
	assert.Empty(t, tokenize("  ...  "))
}

func TestCosineSimilarity(t *testing.T) {
	a := termFrequencies([]string{"error", "de", "red"})
	assert.InDelta(t, 1.0, cosineSimilarity(a, a), 1e-9)

	b := termFrequencies([]string{"otra", "cosa"})
	assert.Zero(t, cosineSimilarity(a, b))
	assert.Zero(t, cosineSimilarity(a, termFrequencies(nil)))
}
