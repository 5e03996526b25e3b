package department

import "time"

type Department struct {
	ID          string
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Aggregate
	EmployeeCount int
}

// ListCacheKey holds the cached department list. Employee writes change the
// employee counts and drop it too.
const ListCacheKey = "departments:all"
