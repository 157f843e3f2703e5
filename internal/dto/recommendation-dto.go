package dto

type RecommendClosureCodeDTO struct {
	ApplicationID uint64 `json:"aplicativo_id" validate:"required,gt=0"`
	Description   string `json:"descripcion" validate:"required,min=3"`
}

type ClosureCodeSuggestionDTO struct {
	ID          uint64  `json:"id"`
	Code        string  `json:"codigo"`
	Description string  `json:"descripcion"`
	Score       float64 `json:"score"`
}

// ClosureCodeSuggestionsDTO is the wire shape of the recommendation
// endpoint, kept compatible with its historical consumers.
type ClosureCodeSuggestionsDTO struct {
	Status      bool                       `json:"status"`
	Sugerencias []ClosureCodeSuggestionDTO `json:"sugerencias"`
}
