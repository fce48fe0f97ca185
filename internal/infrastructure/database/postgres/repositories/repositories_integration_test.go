//go:build integration

// Package repositories_test provides integration tests for the PostgreSQL
// repositories.  Tests require Docker and are gated behind the "integration"
// build tag.
package repositories_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jurisdesk/prazo-engine/internal/domain/calendar"
	"github.com/jurisdesk/prazo-engine/internal/domain/catalog"
	"github.com/jurisdesk/prazo-engine/internal/infrastructure/database/postgres"
	"github.com/jurisdesk/prazo-engine/internal/infrastructure/database/postgres/repositories"
	"github.com/jurisdesk/prazo-engine/pkg/errors"
)

// startPostgres launches a PostgreSQL 16 container, applies the repository
// migrations, and returns a connected handle.
func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "prazo_test",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://test:test@%s:%s/prazo_test?sslmode=disable", host, port.Port())
	require.NoError(t, postgres.RunMigrations(dsn, "file://../../../../../migrations"))

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestCalendarRepositoryRoundTrip(t *testing.T) {
	db := startPostgres(t)
	repo := repositories.NewCalendarRepository(db)
	ctx := context.Background()

	cal := &calendar.CourtCalendar{
		TribunalCode: "TJSP",
		TribunalName: "Tribunal de Justiça de São Paulo",
		Category:     calendar.CategoryStateCourt,
		StateCode:    "SP",
		Year:         2025,
		Holidays: []calendar.Holiday{{
			Date:             calendar.Date(2025, time.November, 20),
			Name:             "Dia da Consciência Negra",
			Category:         calendar.HolidayNational,
			SuspendsBusiness: true,
			ExtendsDeadlines: true,
		}},
		Suspensions: []calendar.Suspension{{
			Start:             calendar.Date(2025, time.December, 20),
			End:               calendar.Date(2026, time.January, 20),
			Name:              "Recesso forense",
			Category:          calendar.SuspensionYearEndRecess,
			SuspendsDeadlines: true,
		}},
	}
	require.NoError(t, repo.SaveCalendar(ctx, cal))

	got, err := repo.GetCalendar(ctx, "TJSP", 2025)
	require.NoError(t, err)
	assert.Equal(t, cal.TribunalName, got.TribunalName)
	require.Len(t, got.Holidays, 1)
	assert.Equal(t, calendar.Date(2025, time.November, 20), got.Holidays[0].Date)
	require.Len(t, got.Suspensions, 1)
	assert.Equal(t, calendar.Date(2026, time.January, 20), got.Suspensions[0].End)

	// Upsert replaces children instead of accumulating them.
	cal.Holidays = nil
	require.NoError(t, repo.SaveCalendar(ctx, cal))
	got, err = repo.GetCalendar(ctx, "TJSP", 2025)
	require.NoError(t, err)
	assert.Empty(t, got.Holidays)

	_, err = repo.GetCalendar(ctx, "TJSP", 1999)
	assert.True(t, errors.IsCode(err, errors.ErrCodeCalendarNotFound))
}

func TestCalendarRepositoryListByTribunal(t *testing.T) {
	db := startPostgres(t)
	repo := repositories.NewCalendarRepository(db)
	ctx := context.Background()

	for _, year := range []int{2024, 2025} {
		require.NoError(t, repo.SaveCalendar(ctx, &calendar.CourtCalendar{
			TribunalCode: "TRF2",
			Category:     calendar.CategoryFederalRegional,
			Year:         year,
		}))
	}

	cals, err := repo.ListCalendars(ctx, "TRF2")
	require.NoError(t, err)
	assert.Len(t, cals, 2)
}

func TestCatalogRepositorySeedAndLookup(t *testing.T) {
	db := startPostgres(t)
	repo := repositories.NewCatalogRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SeedDefaults(ctx))

	entry, err := repo.GetEntry(ctx, "CONTESTACAO")
	require.NoError(t, err)
	assert.Equal(t, 15, entry.BaseDays)
	assert.Equal(t, catalog.ModeBusinessDays, entry.Mode)

	entries, err := repo.ListEntries(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(entries), len(catalog.SeedEntries()))

	_, err = repo.GetEntry(ctx, "DOES_NOT_EXIST")
	assert.True(t, errors.IsCode(err, errors.ErrCodeCatalogEntryNotFound))
}
