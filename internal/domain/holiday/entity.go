package holiday

import "time"

type OfficialHoliday struct {
	ID          string
	Name        string
	Date        time.Time
	Year        int
	IsRecurring bool
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

type monthDay struct {
	month time.Month
	day   int
}

// Calendar answers whether a date is an official holiday. Holidays match on
// month and day only.
type Calendar struct {
	days map[monthDay]string
}

// NewCalendar builds a calendar from the holidays of one year together with
// the recurring holidays of any year.
func NewCalendar(holidays []OfficialHoliday) Calendar {
	c := Calendar{days: make(map[monthDay]string, len(holidays))}
	for _, h := range holidays {
		c.days[monthDay{h.Date.Month(), h.Date.Day()}] = h.Name
	}
	return c
}

func (c Calendar) IsHoliday(date time.Time) bool {
	_, ok := c.days[monthDay{date.Month(), date.Day()}]
	return ok
}

// Name returns the holiday name for date, if any.
func (c Calendar) Name(date time.Time) (string, bool) {
	name, ok := c.days[monthDay{date.Month(), date.Day()}]
	return name, ok
}

func (c Calendar) Len() int {
	return len(c.days)
}
