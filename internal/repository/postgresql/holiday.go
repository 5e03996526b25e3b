package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

const holidayColumns = `id, name, date, year, is_recurring, description, created_at, updated_at, deleted_at`

func scanHoliday(row pgx.Row) (holiday.OfficialHoliday, error) {
	var h holiday.OfficialHoliday
	err := row.Scan(&h.ID, &h.Name, &h.Date, &h.Year, &h.IsRecurring, &h.Description, &h.CreatedAt, &h.UpdatedAt, &h.DeletedAt)
	return h, err
}

func translateHolidayError(err error, op string) error {
	if isNoRows(err) {
		return holiday.ErrHolidayNotFound
	}
	if _, ok := uniqueViolation(err); ok {
		return holiday.ErrHolidayNameExists
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.OfficialHoliday) (holiday.OfficialHoliday, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return holiday.OfficialHoliday{}, fmt.Errorf("failed to generate holiday id: %w", err)
	}

	query := `
		INSERT INTO official_holidays (id, name, date, year, is_recurring, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + holidayColumns
	created, err := scanHoliday(q.QueryRow(ctx, query, id.String(), h.Name, h.Date, h.Year, h.IsRecurring, h.Description))
	if err != nil {
		return holiday.OfficialHoliday{}, translateHolidayError(err, "create holiday")
	}
	return created, nil
}

// GetByID implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetByID(ctx context.Context, id string, includeDeleted bool) (holiday.OfficialHoliday, error) {
	q := GetQuerier(ctx, r.db)

	var where whereClause
	where.add("id = ?", id)
	where.live("", includeDeleted)
	h, err := scanHoliday(q.QueryRow(ctx, "SELECT "+holidayColumns+" FROM official_holidays "+where.String(), where.args...))
	if err != nil {
		return holiday.OfficialHoliday{}, translateHolidayError(err, "get holiday")
	}
	return h, nil
}

// FindAll implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) FindAll(ctx context.Context, filter holiday.HolidayFilter) ([]holiday.OfficialHoliday, error) {
	var where whereClause
	if filter.Year != nil {
		where.add("year = ?", *filter.Year)
	}
	where.live("", filter.IncludeDeleted)
	return r.list(ctx, "SELECT "+holidayColumns+" FROM official_holidays "+where.String()+" ORDER BY date", where.args...)
}

// FindForYear implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) FindForYear(ctx context.Context, year int) ([]holiday.OfficialHoliday, error) {
	query := "SELECT " + holidayColumns + " FROM official_holidays WHERE (year = $1 OR is_recurring) AND " + liveRows("") + " ORDER BY date"
	return r.list(ctx, query, year)
}

func (r *holidayRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]holiday.OfficialHoliday, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	holidays := make([]holiday.OfficialHoliday, 0)
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// Update implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Update(ctx context.Context, h holiday.OfficialHoliday) (holiday.OfficialHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE official_holidays
		SET name = $1, date = $2, year = $3, is_recurring = $4, description = $5, updated_at = NOW()
		WHERE id = $6 AND deleted_at IS NULL
		RETURNING ` + holidayColumns
	updated, err := scanHoliday(q.QueryRow(ctx, query, h.Name, h.Date, h.Year, h.IsRecurring, h.Description, h.ID))
	if err != nil {
		return holiday.OfficialHoliday{}, translateHolidayError(err, "update holiday")
	}
	return updated, nil
}

// SoftDelete implements holiday.HolidayRepository. The deleted row is returned so callers can
// invalidate its year.
func (r *holidayRepositoryImpl) SoftDelete(ctx context.Context, id string) (holiday.OfficialHoliday, error) {
	h, err := r.GetByID(ctx, id, false)
	if err != nil {
		return holiday.OfficialHoliday{}, err
	}
	if err := softDelete(ctx, GetQuerier(ctx, r.db), "official_holidays", "id", id, holiday.ErrHolidayNotFound); err != nil {
		return holiday.OfficialHoliday{}, err
	}
	return h, nil
}
