package dto

// CreateApplicationDTO: what the client sends to register an application.
type CreateApplicationDTO struct {
	Code        string `json:"code" validate:"required,min=2"`
	Name        string `json:"name" validate:"required"`
	Criticality string `json:"criticality" validate:"omitempty"`
}

// UpdateApplicationDTO: partial update, absent fields stay untouched.
type UpdateApplicationDTO struct {
	Code        *string `json:"code,omitempty" validate:"omitempty,min=2"`
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Criticality *string `json:"criticality,omitempty"`
}

type ApplicationDTO struct {
	ID          uint64 `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Criticality string `json:"criticality,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

type ShortApplicationDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
