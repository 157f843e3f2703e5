package dto

import "github.com/aarondl/null/v8"

type CreateIncidentDTO struct {
	Code            string      `json:"code" validate:"required,min=3"`
	Description     string      `json:"description"`
	ApplicationID   null.Uint64 `json:"application_id"`
	SeverityID      null.Uint64 `json:"severity_id"`
	ResolverGroupID null.Uint64 `json:"resolver_group_id"`
	ClosureCodeID   null.Uint64 `json:"closure_code_id"`
	ComponentID     null.Uint64 `json:"component_id"`
	OpenedAt        null.Time   `json:"opened_at"`
	ResolvedAt      null.Time   `json:"resolved_at"`
}

type UpdateIncidentDTO struct {
	Description     null.String `json:"description"`
	ApplicationID   null.Uint64 `json:"application_id"`
	SeverityID      null.Uint64 `json:"severity_id"`
	ResolverGroupID null.Uint64 `json:"resolver_group_id"`
	ClosureCodeID   null.Uint64 `json:"closure_code_id"`
	ComponentID     null.Uint64 `json:"component_id"`
	OpenedAt        null.Time   `json:"opened_at"`
	ResolvedAt      null.Time   `json:"resolved_at"`
}

type IncidentDTO struct {
	ID            uint64 `json:"id"`
	Code          string `json:"code"`
	Description   string `json:"description"`
	Application   string `json:"application,omitempty"`
	Severity      string `json:"severity,omitempty"`
	ResolverGroup string `json:"resolver_group,omitempty"`
	ClosureCode   string `json:"closure_code,omitempty"`
	Component     string `json:"component,omitempty"`
	OpenedAt      string `json:"opened_at,omitempty"`
	ResolvedAt    string `json:"resolved_at,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}
