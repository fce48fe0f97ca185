package repositories

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/jurisdesk/prazo-engine/internal/domain/calendar"
	"github.com/jurisdesk/prazo-engine/pkg/errors"
)

// CalendarRepository persists court calendars with their holidays and
// suspensions.  It implements calendar.Repository.
type CalendarRepository struct {
	db *sql.DB
}

// NewCalendarRepository builds the repository.
func NewCalendarRepository(db *sql.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

// GetCalendar loads one (tribunal, year) calendar with its holidays and
// suspensions, or a CAL_001 error when none is published.
func (r *CalendarRepository) GetCalendar(ctx context.Context, tribunalCode string, year int) (*calendar.CourtCalendar, error) {
	const q = `
		SELECT id, tribunal_code, tribunal_name, category, COALESCE(state_code, ''), year
		FROM court_calendars
		WHERE tribunal_code = $1 AND year = $2`

	var id int64
	cal := &calendar.CourtCalendar{}
	err := r.db.QueryRowContext(ctx, q, tribunalCode, year).Scan(
		&id, &cal.TribunalCode, &cal.TribunalName, &cal.Category, &cal.StateCode, &cal.Year)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.Newf(errors.ErrCodeCalendarNotFound,
			"no calendar published for %s/%d", tribunalCode, year)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load calendar")
	}

	if cal.Holidays, err = r.loadHolidays(ctx, r.db, id); err != nil {
		return nil, err
	}
	if cal.Suspensions, err = r.loadSuspensions(ctx, r.db, id); err != nil {
		return nil, err
	}
	return cal, nil
}

// ListCalendars returns every published calendar of a tribunal, most recent
// year first.
func (r *CalendarRepository) ListCalendars(ctx context.Context, tribunalCode string) ([]*calendar.CourtCalendar, error) {
	const q = `
		SELECT year FROM court_calendars
		WHERE tribunal_code = $1
		ORDER BY year DESC`

	rows, err := r.db.QueryContext(ctx, q, tribunalCode)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list calendars")
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan calendar year")
		}
		years = append(years, y)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate calendars")
	}

	out := make([]*calendar.CourtCalendar, 0, len(years))
	for _, y := range years {
		cal, err := r.GetCalendar(ctx, tribunalCode, y)
		if err != nil {
			return nil, err
		}
		out = append(out, cal)
	}
	return out, nil
}

// SaveCalendar upserts a calendar and atomically replaces its holidays and
// suspensions.
func (r *CalendarRepository) SaveCalendar(ctx context.Context, cal *calendar.CourtCalendar) error {
	if err := cal.Validate(); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to begin transaction")
	}
	defer tx.Rollback()

	const upsert = `
		INSERT INTO court_calendars (tribunal_code, tribunal_name, category, state_code, year)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)
		ON CONFLICT (tribunal_code, year) DO UPDATE
		SET tribunal_name = EXCLUDED.tribunal_name,
		    category      = EXCLUDED.category,
		    state_code    = EXCLUDED.state_code
		RETURNING id`

	var id int64
	if err := tx.QueryRowContext(ctx, upsert,
		cal.TribunalCode, cal.TribunalName, cal.Category, cal.StateCode, cal.Year).Scan(&id); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to upsert calendar")
	}

	for _, del := range []string{
		`DELETE FROM court_holidays WHERE calendar_id = $1`,
		`DELETE FROM court_suspensions WHERE calendar_id = $1`,
	} {
		if _, err := tx.ExecContext(ctx, del, id); err != nil {
			return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to clear calendar children")
		}
	}

	const insHoliday = `
		INSERT INTO court_holidays
			(calendar_id, holiday_date, name, category, state_code, suspends_business, extends_deadlines)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)`
	for _, h := range cal.Holidays {
		if _, err := tx.ExecContext(ctx, insHoliday,
			id, h.Date, h.Name, h.Category, h.StateCode, h.SuspendsBusiness, h.ExtendsDeadlines); err != nil {
			return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to insert holiday")
		}
	}

	const insSuspension = `
		INSERT INTO court_suspensions
			(calendar_id, start_date, end_date, name, category,
			 suspends_deadlines, suspends_hearings, suspends_sessions, emergency_duty)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, s := range cal.Suspensions {
		if _, err := tx.ExecContext(ctx, insSuspension,
			id, s.Start, s.End, s.Name, s.Category,
			s.SuspendsDeadlines, s.SuspendsHearings, s.SuspendsSessions, s.EmergencyDuty); err != nil {
			return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to insert suspension")
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to commit calendar")
	}
	return nil
}

func (r *CalendarRepository) loadHolidays(ctx context.Context, q queryExecutor, calendarID int64) ([]calendar.Holiday, error) {
	const query = `
		SELECT holiday_date, name, category, COALESCE(state_code, ''),
		       suspends_business, extends_deadlines
		FROM court_holidays
		WHERE calendar_id = $1
		ORDER BY holiday_date`

	rows, err := q.QueryContext(ctx, query, calendarID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load holidays")
	}
	defer rows.Close()

	var out []calendar.Holiday
	for rows.Next() {
		var h calendar.Holiday
		if err := rows.Scan(&h.Date, &h.Name, &h.Category, &h.StateCode,
			&h.SuspendsBusiness, &h.ExtendsDeadlines); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan holiday")
		}
		h.Date = calendar.DateOf(h.Date)
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *CalendarRepository) loadSuspensions(ctx context.Context, q queryExecutor, calendarID int64) ([]calendar.Suspension, error) {
	const query = `
		SELECT start_date, end_date, name, category,
		       suspends_deadlines, suspends_hearings, suspends_sessions, emergency_duty
		FROM court_suspensions
		WHERE calendar_id = $1
		ORDER BY start_date`

	rows, err := q.QueryContext(ctx, query, calendarID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load suspensions")
	}
	defer rows.Close()

	var out []calendar.Suspension
	for rows.Next() {
		var s calendar.Suspension
		if err := rows.Scan(&s.Start, &s.End, &s.Name, &s.Category,
			&s.SuspendsDeadlines, &s.SuspendsHearings, &s.SuspendsSessions, &s.EmergencyDuty); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan suspension")
		}
		s.Start = calendar.DateOf(s.Start)
		s.End = calendar.DateOf(s.End)
		out = append(out, s)
	}
	return out, rows.Err()
}
