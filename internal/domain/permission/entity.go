package permission

import "time"

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

var Actions = []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete}

type Resource string

const (
	ResourceEmployees        Resource = "employees"
	ResourceDepartments      Resource = "departments"
	ResourceAttendance       Resource = "attendance"
	ResourceSalaryReports    Resource = "salary-reports"
	ResourceSettings         Resource = "settings"
	ResourceUsers            Resource = "users"
	ResourceUserGroups       Resource = "user-groups"
	ResourcePermissions      Resource = "permissions"
	ResourceOfficialHolidays Resource = "official-holidays"
)

var Resources = []Resource{
	ResourceEmployees,
	ResourceDepartments,
	ResourceAttendance,
	ResourceSalaryReports,
	ResourceSettings,
	ResourceUsers,
	ResourceUserGroups,
	ResourcePermissions,
	ResourceOfficialHolidays,
}

func IsKnownResource(r string) bool {
	for _, known := range Resources {
		if string(known) == r {
			return true
		}
	}
	return false
}

func IsKnownAction(a string) bool {
	for _, known := range Actions {
		if string(known) == a {
			return true
		}
	}
	return false
}

// Grant is a (resource, action) capability pair. Matching is exact and case-sensitive.
type Grant struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

func NewGrant(resource Resource, action Action) Grant {
	return Grant{Resource: string(resource), Action: string(action)}
}

func (g Grant) String() string {
	return g.Resource + ":" + g.Action
}

type Permission struct {
	ID          string
	Name        string
	Resource    string
	Action      string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p Permission) Grant() Grant {
	return Grant{Resource: p.Resource, Action: p.Action}
}
