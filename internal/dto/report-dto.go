package dto

type ReportItemDTO struct {
	IncidentCode       string `json:"incidencia"`
	AppCriticality     string `json:"criticidad_aplicativo"`
	Severity           string `json:"severidad"`
	ResolverGroup      string `json:"grupo_resolutor"`
	Application        string `json:"aplicativo"`
	ResolvedAt         string `json:"fecha_resolucion"`
	Month              string `json:"mes"`
	ClosureCode        string `json:"cod_cierre"`
	ClosureDescription string `json:"descripcion_cierre"`
}
