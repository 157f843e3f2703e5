package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"cmdb-system/internal/dto"
	"cmdb-system/internal/repositories"
	"cmdb-system/pkg/config"
	apperrors "cmdb-system/pkg/errors"
)

type RecommendationServiceInterface interface {
	Suggest(ctx context.Context, payload dto.RecommendClosureCodeDTO) ([]dto.ClosureCodeSuggestionDTO, error)
	InvalidateCorpus(ctx context.Context, applicationID uint64) error
}

type RecommendationService struct {
	closureCodeRepo repositories.ClosureCodeRepositoryInterface
	cache           repositories.CacheRepositoryInterface
	cfg             config.RecommendationConfig
	logger          *zap.Logger
}

func NewRecommendationService(
	closureCodeRepo repositories.ClosureCodeRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	cfg config.RecommendationConfig,
	logger *zap.Logger,
) RecommendationServiceInterface {
	return &RecommendationService{
		closureCodeRepo: closureCodeRepo,
		cache:           cache,
		cfg:             cfg,
		logger:          logger,
	}
}

func corpusCacheKey(applicationID uint64) string {
	return fmt.Sprintf("cmdb:closure-corpus:%d", applicationID)
}

// Suggest scores the application's closure codes against the free-text
// incident description and returns the best matches, highest score first.
// Codes that share no token with the description are left out.
func (s *RecommendationService) Suggest(ctx context.Context, payload dto.RecommendClosureCodeDTO) ([]dto.ClosureCodeSuggestionDTO, error) {
	corpus, err := s.corpus(ctx, payload.ApplicationID)
	if err != nil {
		return nil, err
	}
	if len(corpus) == 0 {
		return nil, apperrors.ErrNoClosureCodes
	}

	queryVector := termFrequencies(tokenize(payload.Description))
	suggestions := make([]dto.ClosureCodeSuggestionDTO, 0, s.cfg.MaxSuggestions)
	for _, code := range corpus {
		docVector := termFrequencies(tokenize(code.Code + " " + code.Description))
		score := cosineSimilarity(queryVector, docVector)
		if score <= 0 {
			continue
		}
		suggestions = append(suggestions, dto.ClosureCodeSuggestionDTO{
			ID:          code.ID,
			Code:        code.Code,
			Description: code.Description,
			Score:       math.Round(score*10000) / 10000,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].ID < suggestions[j].ID
	})
	if len(suggestions) > s.cfg.MaxSuggestions {
		suggestions = suggestions[:s.cfg.MaxSuggestions]
	}
	return suggestions, nil
}

func (s *RecommendationService) InvalidateCorpus(ctx context.Context, applicationID uint64) error {
	return s.cache.Delete(ctx, corpusCacheKey(applicationID))
}

// corpus loads the application's closure codes, preferring the cached copy.
// Cache failures are logged and bypassed, never surfaced to the caller.
func (s *RecommendationService) corpus(ctx context.Context, applicationID uint64) ([]dto.ClosureCodeDTO, error) {
	key := corpusCacheKey(applicationID)

	cached, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("recommendation: cache read failed", zap.Error(err))
	} else if found {
		var corpus []dto.ClosureCodeDTO
		if err := json.Unmarshal([]byte(cached), &corpus); err == nil {
			return corpus, nil
		}
		s.logger.Warn("recommendation: discarding malformed cache entry", zap.String("key", key))
	}

	corpus, err := s.closureCodeRepo.CorpusByApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(corpus); err == nil {
		if err := s.cache.Set(ctx, key, string(encoded), s.cfg.CorpusCacheTTL); err != nil {
			s.logger.Warn("recommendation: cache write failed", zap.Error(err))
		}
	}
	return corpus, nil
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func termFrequencies(tokens []string) map[string]float64 {
	freq := make(map[string]float64, len(tokens))
	for _, token := range tokens {
		freq[token]++
	}
	return freq
}

func cosineSimilarity(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for term, weight := range a {
		normA += weight * weight
		if other, ok := b[term]; ok {
			dot += weight * other
		}
	}
	for _, weight := range b {
		normB += weight * weight
	}
	if dot == 0 || normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
