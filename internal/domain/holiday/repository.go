package holiday

import "context"

type HolidayFilter struct {
	Year           *int
	IncludeDeleted bool
}

type HolidayRepository interface {
	Create(ctx context.Context, h OfficialHoliday) (OfficialHoliday, error)
	GetByID(ctx context.Context, id string, includeDeleted bool) (OfficialHoliday, error)
	FindAll(ctx context.Context, filter HolidayFilter) ([]OfficialHoliday, error)
	// FindForYear returns the holidays of year and every recurring holiday.
	FindForYear(ctx context.Context, year int) ([]OfficialHoliday, error)
	Update(ctx context.Context, h OfficialHoliday) (OfficialHoliday, error)
	SoftDelete(ctx context.Context, id string) (OfficialHoliday, error)
}
