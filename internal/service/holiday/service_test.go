package holiday

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/cache"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockHolidayRepository struct {
	mock.Mock
}

func (m *mockHolidayRepository) Create(ctx context.Context, h holiday.OfficialHoliday) (holiday.OfficialHoliday, error) {
	args := m.Called(ctx, h)
	return args.Get(0).(holiday.OfficialHoliday), args.Error(1)
}

func (m *mockHolidayRepository) GetByID(ctx context.Context, id string, includeDeleted bool) (holiday.OfficialHoliday, error) {
	args := m.Called(ctx, id, includeDeleted)
	return args.Get(0).(holiday.OfficialHoliday), args.Error(1)
}

func (m *mockHolidayRepository) FindAll(ctx context.Context, filter holiday.HolidayFilter) ([]holiday.OfficialHoliday, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]holiday.OfficialHoliday), args.Error(1)
}

func (m *mockHolidayRepository) FindForYear(ctx context.Context, year int) ([]holiday.OfficialHoliday, error) {
	args := m.Called(ctx, year)
	return args.Get(0).([]holiday.OfficialHoliday), args.Error(1)
}

func (m *mockHolidayRepository) Update(ctx context.Context, h holiday.OfficialHoliday) (holiday.OfficialHoliday, error) {
	args := m.Called(ctx, h)
	return args.Get(0).(holiday.OfficialHoliday), args.Error(1)
}

func (m *mockHolidayRepository) SoftDelete(ctx context.Context, id string) (holiday.OfficialHoliday, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(holiday.OfficialHoliday), args.Error(1)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsHoliday_WithoutCache(t *testing.T) {
	repo := new(mockHolidayRepository)
	repo.On("FindForYear", mock.Anything, 2024).Return([]holiday.OfficialHoliday{
		{ID: "h1", Name: "Revolution Day", Date: date(2024, time.July, 23), Year: 2024},
		{ID: "h2", Name: "New Year", Date: date(2010, time.January, 1), Year: 2010, IsRecurring: true},
	}, nil)
	svc := NewHolidayService(repo, nil)

	ok, err := svc.IsHoliday(context.Background(), date(2024, time.July, 23))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsHoliday(context.Background(), date(2024, time.January, 1))
	require.NoError(t, err)
	assert.True(t, ok, "recurring holidays match on month and day")

	ok, err = svc.IsHoliday(context.Background(), date(2024, time.July, 24))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCalendar_ServedFromCache(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()
	cached := []holiday.OfficialHoliday{{ID: "h1", Name: "Labour Day", Date: date(2024, time.May, 1), Year: 2024}}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)
	redisMock.ExpectGet("holidays:2024").SetVal(string(payload))

	repo := new(mockHolidayRepository)
	svc := NewHolidayService(repo, cache.New(rdb, time.Hour))

	cal, err := svc.Calendar(context.Background(), 2024)
	require.NoError(t, err)
	assert.True(t, cal.IsHoliday(date(2024, time.May, 1)))
	repo.AssertNotCalled(t, "FindForYear", mock.Anything, mock.Anything)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestCreate_InvalidatesYear(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()
	redisMock.ExpectDel("holidays:2024").SetVal(1)

	repo := new(mockHolidayRepository)
	created := holiday.OfficialHoliday{ID: "h1", Name: "Labour Day", Date: date(2024, time.May, 1), Year: 2024}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(h holiday.OfficialHoliday) bool {
		return h.Name == "Labour Day" && h.Date.Equal(date(2024, time.May, 1))
	})).Return(created, nil)

	svc := NewHolidayService(repo, cache.New(rdb, time.Hour))
	resp, err := svc.Create(context.Background(), holiday.CreateHolidayRequest{Name: "Labour Day", Date: "2024-05-01", Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", resp.Date)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestUpdate_DateOutsideYear(t *testing.T) {
	repo := new(mockHolidayRepository)
	repo.On("GetByID", mock.Anything, "h1", false).Return(holiday.OfficialHoliday{
		ID: "h1", Name: "Labour Day", Date: date(2024, time.May, 1), Year: 2024,
	}, nil)

	newDate := "2025-05-01"
	_, err := NewHolidayService(repo, nil).Update(context.Background(), holiday.UpdateHolidayRequest{ID: "h1", Date: &newDate})
	assert.ErrorIs(t, err, holiday.ErrHolidayYearMismatch)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSoftDelete_NotFound(t *testing.T) {
	repo := new(mockHolidayRepository)
	repo.On("SoftDelete", mock.Anything, "missing").Return(holiday.OfficialHoliday{}, holiday.ErrHolidayNotFound)

	err := NewHolidayService(repo, nil).SoftDelete(context.Background(), "missing")
	assert.ErrorIs(t, err, holiday.ErrHolidayNotFound)
}
