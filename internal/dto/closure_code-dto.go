package dto

type CreateClosureCodeDTO struct {
	ApplicationID uint64 `json:"application_id" validate:"required,gt=0"`
	Code          string `json:"code" validate:"required,min=1"`
	Description   string `json:"description"`
}

type UpdateClosureCodeDTO struct {
	Code        *string `json:"code,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
}

type ClosureCodeDTO struct {
	ID            uint64 `json:"id"`
	ApplicationID uint64 `json:"application_id"`
	Code          string `json:"code"`
	Description   string `json:"description"`
	CreatedAt     string `json:"created_at"`
}

// ClosureCodeOptionDTO is one entry of the dependent filter selector.
type ClosureCodeOptionDTO struct {
	ID   uint64 `json:"id"`
	Text string `json:"text"`
}

// ClosureCodeLookupDTO is the wire shape of the lookup endpoint.
type ClosureCodeLookupDTO struct {
	Codigos []ClosureCodeOptionDTO `json:"codigos"`
}
