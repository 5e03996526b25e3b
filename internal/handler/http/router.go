package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/permission"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger            *slog.Logger
	AllowedOrigins    []string
	RequestsPerMinute int
}

type Handlers struct {
	Auth         AuthHandler
	Employee     EmployeeHandler
	Department   DepartmentHandler
	Attendance   AttendanceHandler
	SalaryReport SalaryReportHandler
	Holiday      HolidayHandler
	Setting      SettingHandler
	User         UserHandler
	UserGroup    UserGroupHandler
	Permission   PermissionHandler
}

func NewRouter(opts RouterOptions, jwtService jwt.Service, checker permission.AccessChecker, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(chiMiddleware.Heartbeat("/"))
	if opts.RequestsPerMinute > 0 {
		r.Use(httprate.LimitByIP(opts.RequestsPerMinute, time.Minute))
	}

	r.Handle("/metrics", metrics.Handler())

	// can wraps a handler in a permission check for (resource, action).
	can := func(resource permission.Resource, action permission.Action, fn http.HandlerFunc) http.Handler {
		return middleware.RequirePermission(checker, resource, action)(fn)
	}
	const (
		create = permission.ActionCreate
		read   = permission.ActionRead
		update = permission.ActionUpdate
		del    = permission.ActionDelete
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chiMiddleware.AllowContentType("application/json", "multipart/form-data"))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Auth.Signup)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			// Bearer header only; the revocation check reads the same header.
			r.Use(jwtauth.Verify(jwtService.JWTAuth(), jwtauth.TokenFromHeader))
			r.Use(middleware.AuthRequired(jwtService))

			r.Post("/auth/logout", h.Auth.Logout)
			r.Get("/auth/me", h.Auth.Me)
			r.Put("/auth/password", h.User.ChangePassword)

			r.Route("/employees", func(r chi.Router) {
				res := permission.ResourceEmployees
				r.Method(http.MethodGet, "/", can(res, read, h.Employee.List))
				r.Method(http.MethodGet, "/search", can(res, read, h.Employee.Search))
				r.Method(http.MethodPost, "/", can(res, create, h.Employee.Create))
				r.Method(http.MethodGet, "/{id}", can(res, read, h.Employee.Get))
				r.Method(http.MethodPut, "/{id}", can(res, update, h.Employee.Update))
				r.Method(http.MethodPatch, "/{id}/status", can(res, update, h.Employee.ToggleStatus))
				r.Method(http.MethodDelete, "/{id}", can(res, del, h.Employee.Delete))
			})

			r.Route("/departments", func(r chi.Router) {
				res := permission.ResourceDepartments
				r.Method(http.MethodGet, "/", can(res, read, h.Department.List))
				r.Method(http.MethodPost, "/", can(res, create, h.Department.Create))
				r.Method(http.MethodGet, "/{id}", can(res, read, h.Department.Get))
				r.Method(http.MethodGet, "/{id}/employees", can(permission.ResourceEmployees, read, h.Department.Employees))
				r.Method(http.MethodPut, "/{id}", can(res, update, h.Department.Update))
				r.Method(http.MethodDelete, "/{id}", can(res, del, h.Department.Delete))
			})

			r.Route("/attendance", func(r chi.Router) {
				res := permission.ResourceAttendance
				r.Method(http.MethodGet, "/", can(res, read, h.Attendance.List))
				r.Method(http.MethodGet, "/search", can(res, read, h.Attendance.Search))
				r.Method(http.MethodGet, "/statistics", can(res, read, h.Attendance.Statistics))
				r.Method(http.MethodGet, "/export", can(res, read, h.Attendance.Export))
				r.Method(http.MethodPost, "/import", can(res, create, h.Attendance.Import))
				r.Method(http.MethodPost, "/", can(res, create, h.Attendance.Create))
				r.Method(http.MethodGet, "/{id}", can(res, read, h.Attendance.Get))
				r.Method(http.MethodPut, "/{id}", can(res, update, h.Attendance.Update))
				r.Method(http.MethodDelete, "/{id}", can(res, del, h.Attendance.Delete))
			})

			r.Route("/salary-reports", func(r chi.Router) {
				res := permission.ResourceSalaryReports
				r.Method(http.MethodGet, "/", can(res, read, h.SalaryReport.List))
				r.Method(http.MethodGet, "/search", can(res, read, h.SalaryReport.Search))
				r.Method(http.MethodGet, "/summary", can(res, read, h.SalaryReport.Summary))
				r.Method(http.MethodPost, "/generate", can(res, create, h.SalaryReport.Generate))
				r.Method(http.MethodGet, "/{id}", can(res, read, h.SalaryReport.Get))
				r.Method(http.MethodDelete, "/{id}", can(res, del, h.SalaryReport.Delete))
			})

			r.Route("/official-holidays", func(r chi.Router) {
				res := permission.ResourceOfficialHolidays
				r.Method(http.MethodGet, "/", can(res, read, h.Holiday.List))
				r.Method(http.MethodGet, "/check", can(res, read, h.Holiday.Check))
				r.Method(http.MethodGet, "/year/{year}", can(res, read, h.Holiday.ByYear))
				r.Method(http.MethodPost, "/", can(res, create, h.Holiday.Create))
				r.Method(http.MethodGet, "/{id}", can(res, read, h.Holiday.Get))
				r.Method(http.MethodPut, "/{id}", can(res, update, h.Holiday.Update))
				r.Method(http.MethodDelete, "/{id}", can(res, del, h.Holiday.Delete))
			})

			r.Route("/settings", func(r chi.Router) {
				res := permission.ResourceSettings
				r.Method(http.MethodGet, "/", can(res, read, h.Setting.List))
				r.Method(http.MethodPost, "/", can(res, update, h.Setting.Upsert))
				r.Method(http.MethodGet, "/general", can(res, read, h.Setting.General))
				r.Method(http.MethodGet, "/overtime-deduction", can(res, read, h.Setting.GetOvertimeDeduction))
				r.Method(http.MethodPut, "/overtime-deduction", can(res, update, h.Setting.SaveOvertimeDeduction))
				r.Method(http.MethodGet, "/weekend", can(res, read, h.Setting.GetWeekend))
				r.Method(http.MethodPut, "/weekend", can(res, update, h.Setting.SaveWeekend))
				r.Method(http.MethodGet, "/{key}", can(res, read, h.Setting.Get))
				r.Method(http.MethodDelete, "/{key}", can(res, del, h.Setting.Delete))
			})

			r.Route("/users", func(r chi.Router) {
				res := permission.ResourceUsers
				r.Method(http.MethodGet, "/", can(res, read, h.User.List))
				r.Method(http.MethodGet, "/search", can(res, read, h.User.Search))
				r.Method(http.MethodPost, "/", can(res, create, h.User.Create))
				r.Method(http.MethodGet, "/{id}", can(res, read, h.User.Get))
				r.Method(http.MethodPut, "/{id}", can(res, update, h.User.Update))
				r.Method(http.MethodPatch, "/{id}/status", can(res, update, h.User.ToggleStatus))
				r.Method(http.MethodDelete, "/{id}", can(res, del, h.User.Delete))
			})

			r.Route("/user-groups", func(r chi.Router) {
				res := permission.ResourceUserGroups
				r.Method(http.MethodGet, "/", can(res, read, h.UserGroup.List))
				r.Method(http.MethodPost, "/", can(res, create, h.UserGroup.Create))
				r.Method(http.MethodGet, "/{id}", can(res, read, h.UserGroup.Get))
				r.Method(http.MethodPut, "/{id}", can(res, update, h.UserGroup.Update))
				r.Method(http.MethodDelete, "/{id}", can(res, del, h.UserGroup.Delete))
				r.Method(http.MethodGet, "/{id}/users", can(res, read, h.UserGroup.Members))
				r.Method(http.MethodPost, "/{id}/users", can(res, update, h.UserGroup.AddUsers))
				r.Method(http.MethodDelete, "/{id}/users", can(res, update, h.UserGroup.RemoveUsers))
				r.Method(http.MethodPost, "/{id}/permissions", can(res, update, h.UserGroup.AddPermissions))
				r.Method(http.MethodDelete, "/{id}/permissions", can(res, update, h.UserGroup.RemovePermissions))
			})

			r.Route("/permissions", func(r chi.Router) {
				res := permission.ResourcePermissions
				r.Method(http.MethodGet, "/", can(res, read, h.Permission.List))
				r.Method(http.MethodPost, "/", can(res, create, h.Permission.Create))
				r.Method(http.MethodGet, "/{id}", can(res, read, h.Permission.Get))
				r.Method(http.MethodPut, "/{id}", can(res, update, h.Permission.Update))
				r.Method(http.MethodDelete, "/{id}", can(res, del, h.Permission.Delete))
			})
		})
	})
	return r
}
