package seeders

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Seed populates a fresh database with a small but realistic data set:
// a handful of applications with their closure codes and a spread of
// incidents across months, severities and resolver groups. Safe to run
// repeatedly, every insert is conflict-tolerant.
func Seed(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	if err := seedApplications(ctx, pool); err != nil {
		return fmt.Errorf("seeding applications: %w", err)
	}
	if err := seedClosureCodes(ctx, pool); err != nil {
		return fmt.Errorf("seeding closure codes: %w", err)
	}
	if err := seedIncidents(ctx, pool); err != nil {
		return fmt.Errorf("seeding incidents: %w", err)
	}
	logger.Info("seed data applied")
	return nil
}

var sampleApplications = []struct {
	Code        string
	Name        string
	Criticality string
}{
	{"APP-SAP", "SAP ERP", "Alta"},
	{"APP-CRM", "CRM Corporativo", "Alta"},
	{"APP-BI", "Plataforma BI", "Media"},
	{"APP-RRHH", "Portal RRHH", "Baja"},
	{"APP-PAGOS", "Pasarela de Pagos", "Alta"},
}

func seedApplications(ctx context.Context, pool *pgxpool.Pool) error {
	for _, app := range sampleApplications {
		_, err := pool.Exec(ctx,
			`INSERT INTO applications (code, name, criticality) VALUES ($1, $2, $3)
			 ON CONFLICT (code) DO NOTHING`,
			app.Code, app.Name, app.Criticality)
		if err != nil {
			return err
		}
	}
	return nil
}

var sampleClosureCodes = []struct {
	AppCode     string
	Code        string
	Description string
}{
	{"APP-SAP", "CC-001", "Error de configuración corregido"},
	{"APP-SAP", "CC-002", "Reinicio de servicio"},
	{"APP-SAP", "CC-003", "Datos corregidos manualmente"},
	{"APP-CRM", "CC-001", "Error de configuración corregido"},
	{"APP-CRM", "CC-010", "Problema de red resuelto"},
	{"APP-BI", "CC-020", "Carga reprocesada"},
	{"APP-PAGOS", "CC-030", "Timeout con proveedor externo"},
}

func seedClosureCodes(ctx context.Context, pool *pgxpool.Pool) error {
	for _, cc := range sampleClosureCodes {
		_, err := pool.Exec(ctx,
			`INSERT INTO closure_codes (application_id, code, description)
			 SELECT id, $2, $3 FROM applications WHERE code = $1
			 ON CONFLICT (application_id, code) DO NOTHING`,
			cc.AppCode, cc.Code, cc.Description)
		if err != nil {
			return err
		}
	}
	return nil
}

func seedIncidents(ctx context.Context, pool *pgxpool.Pool) error {
	type sample struct {
		Code       string
		AppCode    string
		Severity   string
		Group      string
		Closure    string
		ResolvedAt time.Time
	}

	base := time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC)
	samples := []sample{
		{"INC-0001", "APP-SAP", "Crítica", "INDRA_D", "CC-001", base},
		{"INC-0002", "APP-SAP", "Alta", "INDRA_D", "CC-002", base.AddDate(0, 0, 20)},
		{"INC-0003", "APP-SAP", "Media", "", "CC-003", base.AddDate(0, 1, 0)},
		{"INC-0004", "APP-CRM", "Alta", "INDRA_D", "CC-001", base.AddDate(0, 1, 10)},
		{"INC-0005", "APP-CRM", "Baja", "", "CC-010", base.AddDate(0, 2, 0)},
		{"INC-0006", "APP-BI", "Media", "", "CC-020", base.AddDate(0, 2, 15)},
		{"INC-0007", "APP-PAGOS", "Crítica", "INDRA_D", "CC-030", base.AddDate(0, 3, 0)},
		{"INC-0008", "APP-PAGOS", "Alta", "", "CC-030", base.AddDate(0, 3, 5)},
	}

	for _, s := range samples {
		_, err := pool.Exec(ctx,
			`INSERT INTO incidents (code, application_id, severity_id, resolver_group_id, closure_code_id, opened_at, resolved_at)
			 SELECT $1,
			        a.id,
			        (SELECT id FROM severities WHERE name = $3),
			        (SELECT id FROM resolver_groups WHERE name = NULLIF($4, '')),
			        (SELECT cc.id FROM closure_codes cc WHERE cc.application_id = a.id AND cc.code = $5),
			        $6::timestamp - interval '2 days',
			        $6
			 FROM applications a WHERE a.code = $2
			 ON CONFLICT (code) DO NOTHING`,
			s.Code, s.AppCode, s.Severity, s.Group, s.Closure, s.ResolvedAt)
		if err != nil {
			return err
		}
	}
	return nil
}
