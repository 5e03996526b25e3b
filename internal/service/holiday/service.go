package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/calendar"
)

const cachePrefix = "holidays:"

func cacheKey(year int) string {
	return fmt.Sprintf("%s%d", cachePrefix, year)
}

type HolidayServiceImpl struct {
	holidayRepo holiday.HolidayRepository
	cache       *cache.Cache
}

// NewHolidayService returns a holiday service. The per-year holiday lists are
// cached when c is non-nil.
func NewHolidayService(holidayRepo holiday.HolidayRepository, c *cache.Cache) holiday.HolidayService {
	return &HolidayServiceImpl{holidayRepo: holidayRepo, cache: c}
}

// Create implements holiday.HolidayService.
func (s *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	date, err := time.Parse(calendar.DateLayout, req.Date)
	if err != nil {
		return holiday.HolidayResponse{}, fmt.Errorf("parse holiday date: %w", err)
	}

	created, err := s.holidayRepo.Create(ctx, holiday.OfficialHoliday{
		Name:        req.Name,
		Date:        date,
		Year:        req.Year,
		IsRecurring: req.IsRecurring,
		Description: req.Description,
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	s.invalidate(ctx, created)
	return holiday.NewHolidayResponse(created), nil
}

// FindAll implements holiday.HolidayService.
func (s *HolidayServiceImpl) FindAll(ctx context.Context, filter holiday.HolidayFilter) ([]holiday.HolidayResponse, error) {
	holidays, err := s.holidayRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	return toResponses(holidays), nil
}

// FindByID implements holiday.HolidayService.
func (s *HolidayServiceImpl) FindByID(ctx context.Context, id string) (holiday.HolidayResponse, error) {
	h, err := s.holidayRepo.GetByID(ctx, id, false)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	return holiday.NewHolidayResponse(h), nil
}

// Update implements holiday.HolidayService. A new date must lie in the
// holiday's year, whether that year is changed in the same request or not.
func (s *HolidayServiceImpl) Update(ctx context.Context, req holiday.UpdateHolidayRequest) (holiday.HolidayResponse, error) {
	existing, err := s.holidayRepo.GetByID(ctx, req.ID, false)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	previous := existing

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Year != nil {
		existing.Year = *req.Year
	}
	if req.Date != nil {
		date, err := time.Parse(calendar.DateLayout, *req.Date)
		if err != nil {
			return holiday.HolidayResponse{}, fmt.Errorf("parse holiday date: %w", err)
		}
		existing.Date = date
	}
	if existing.Date.Year() != existing.Year {
		return holiday.HolidayResponse{}, holiday.ErrHolidayYearMismatch
	}
	if req.IsRecurring != nil {
		existing.IsRecurring = *req.IsRecurring
	}
	if req.Description != nil {
		existing.Description = req.Description
	}

	updated, err := s.holidayRepo.Update(ctx, existing)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	s.invalidate(ctx, previous, updated)
	return holiday.NewHolidayResponse(updated), nil
}

// SoftDelete implements holiday.HolidayService.
func (s *HolidayServiceImpl) SoftDelete(ctx context.Context, id string) error {
	deleted, err := s.holidayRepo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	s.invalidate(ctx, deleted)
	return nil
}

// GetByYear implements holiday.HolidayService.
func (s *HolidayServiceImpl) GetByYear(ctx context.Context, year int) ([]holiday.HolidayResponse, error) {
	holidays, err := s.forYear(ctx, year)
	if err != nil {
		return nil, err
	}
	return toResponses(holidays), nil
}

// IsHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	cal, err := s.Calendar(ctx, date.Year())
	if err != nil {
		return false, err
	}
	return cal.IsHoliday(date), nil
}

// Calendar implements holiday.HolidayService.
func (s *HolidayServiceImpl) Calendar(ctx context.Context, year int) (holiday.Calendar, error) {
	holidays, err := s.forYear(ctx, year)
	if err != nil {
		return holiday.Calendar{}, err
	}
	return holiday.NewCalendar(holidays), nil
}

func (s *HolidayServiceImpl) forYear(ctx context.Context, year int) ([]holiday.OfficialHoliday, error) {
	holidays, err := cache.Remember(ctx, s.cache, cacheKey(year), func(ctx context.Context) ([]holiday.OfficialHoliday, error) {
		return s.holidayRepo.FindForYear(ctx, year)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load holidays for %d: %w", year, err)
	}
	return holidays, nil
}

// invalidate drops the cached years the given holidays appear in. A recurring
// holiday appears in every year.
func (s *HolidayServiceImpl) invalidate(ctx context.Context, holidays ...holiday.OfficialHoliday) {
	keys := make([]string, 0, len(holidays))
	for _, h := range holidays {
		if h.IsRecurring {
			s.cache.InvalidatePrefix(ctx, cachePrefix)
			return
		}
		keys = append(keys, cacheKey(h.Year))
	}
	s.cache.Invalidate(ctx, keys...)
}

func toResponses(holidays []holiday.OfficialHoliday) []holiday.HolidayResponse {
	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, holiday.NewHolidayResponse(h))
	}
	return responses
}
