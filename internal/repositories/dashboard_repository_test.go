package repositories

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cmdb-system/pkg/types"
	"cmdb-system/pkg/utils"
)

// setupTestDB connects to the database named by TEST_DATABASE_URL and resets
// it to the fixture in testdata/schema.sql. Tests are skipped when the
// variable is unset, so the suite stays runnable without infrastructure.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile("testdata/schema.sql")
	require.NoError(t, err)
	_, err = pool.Exec(context.Background(), string(schema))
	require.NoError(t, err)

	return pool
}

func TestCountAllAndFiltered(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewDashboardRepository(pool, zap.NewNop())
	ctx := context.Background()

	total, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)

	filtered, err := repo.CountFiltered(ctx, types.IncidentFilter{ApplicationID: utils.Uint64Ptr(1)})
	require.NoError(t, err)
	assert.Equal(t, int64(3), filtered)

	filtered, err = repo.CountFiltered(ctx, types.IncidentFilter{Severity: utils.StringPtr("Alta")})
	require.NoError(t, err)
	assert.Equal(t, int64(2), filtered)
}

func TestCountFilteredDateBounds(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewDashboardRepository(pool, zap.NewNop())
	ctx := context.Background()

	// date_to is inclusive of the whole day.
	filtered, err := repo.CountFiltered(ctx, types.IncidentFilter{
		DateFrom: utils.CoerceDate("2026-02-01"),
		DateTo:   utils.CoerceDate("2026-02-04"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), filtered)

	// Inverted ranges match nothing rather than failing.
	filtered, err = repo.CountFiltered(ctx, types.IncidentFilter{
		DateFrom: utils.CoerceDate("2026-06-01"),
		DateTo:   utils.CoerceDate("2026-01-01"),
	})
	require.NoError(t, err)
	assert.Zero(t, filtered)
}

func TestCountByApplicationOrdering(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewDashboardRepository(pool, zap.NewNop())

	rows, err := repo.CountByApplication(context.Background(), types.IncidentFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "SAP ERP", rows[0].GroupName)
	assert.Equal(t, int64(3), rows[0].Count)
	assert.Equal(t, "CRM Corporativo", rows[1].GroupName)
	assert.Equal(t, "Plataforma BI", rows[2].GroupName)
}

func TestCountByMonthChronological(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewDashboardRepository(pool, zap.NewNop())

	rows, err := repo.CountByMonth(context.Background(), types.IncidentFilter{})
	require.NoError(t, err)

	// Unresolved incidents carry no month bucket.
	require.Len(t, rows, 3)
	assert.Equal(t, "2026-01", rows[0].GroupName)
	assert.Equal(t, "2026-02", rows[1].GroupName)
	assert.Equal(t, int64(2), rows[1].Count)
	assert.Equal(t, "2026-03", rows[2].GroupName)
}

func TestCountBySeverityRankOrder(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewDashboardRepository(pool, zap.NewNop())

	rows, err := repo.CountBySeverity(context.Background(), types.IncidentFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"Crítica", "Alta", "Media", "Baja"},
		[]string{rows[0].GroupName, rows[1].GroupName, rows[2].GroupName, rows[3].GroupName})
	assert.Equal(t, int64(2), rows[1].Count)
}

func TestCountByClosureCode(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewDashboardRepository(pool, zap.NewNop())

	rows, err := repo.CountByClosureCode(context.Background(), types.IncidentFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "CC-001", rows[0].GroupName)
	assert.Equal(t, int64(2), rows[0].Count)
}

func TestCountByGroupFlag(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewDashboardRepository(pool, zap.NewNop())
	ctx := context.Background()

	inGroup, others, err := repo.CountByGroupFlag(ctx, types.IncidentFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), inGroup)
	// Incidents without a resolver group still count as others.
	assert.Equal(t, int64(4), others)

	inGroup, others, err = repo.CountByGroupFlag(ctx, types.IncidentFilter{GroupFlag: utils.BoolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), inGroup)
	assert.Zero(t, others)
}

func TestObservedByApplication(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewClosureCodeRepository(pool)
	ctx := context.Background()

	options, err := repo.ObservedByApplication(ctx, utils.Uint64Ptr(1))
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, "CC-001", options[0].Text)
	assert.Equal(t, "CC-002", options[1].Text)

	// Application without incidents that carry a closure code.
	options, err = repo.ObservedByApplication(ctx, utils.Uint64Ptr(3))
	require.NoError(t, err)
	assert.Empty(t, options)

	// Nil widens to every application; CC-001 of both apps are distinct rows.
	options, err = repo.ObservedByApplication(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, options, 3)
}

func TestIncidentListFilterAndSearch(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewIncidentRepository(pool, zap.NewNop())
	ctx := context.Background()

	incidents, total, err := repo.GetIncidents(ctx, types.ListFilter{
		IncidentFilter: types.IncidentFilter{ApplicationID: utils.Uint64Ptr(1)},
		Limit:          10,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	assert.Len(t, incidents, 3)

	incidents, total, err = repo.GetIncidents(ctx, types.ListFilter{
		CodeSearch: "inc-0004",
		Limit:      10,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, incidents, 1)
	assert.Equal(t, "INC-0004", incidents[0].Code)
	assert.Equal(t, "CRM Corporativo", incidents[0].Application)
}
