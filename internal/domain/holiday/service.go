package holiday

import (
	"context"
	"time"
)

type HolidayService interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	FindAll(ctx context.Context, filter HolidayFilter) ([]HolidayResponse, error)
	FindByID(ctx context.Context, id string) (HolidayResponse, error)
	Update(ctx context.Context, req UpdateHolidayRequest) (HolidayResponse, error)
	SoftDelete(ctx context.Context, id string) error
	GetByYear(ctx context.Context, year int) ([]HolidayResponse, error)
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
	// Calendar returns the holiday calendar of year.
	Calendar(ctx context.Context, year int) (Calendar, error)
}
