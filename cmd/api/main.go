package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/payroll-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/payroll-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/payroll-backend-go/internal/service/auth"
	departmentService "github.com/cmlabs-hris/payroll-backend-go/internal/service/department"
	employeeService "github.com/cmlabs-hris/payroll-backend-go/internal/service/employee"
	holidayService "github.com/cmlabs-hris/payroll-backend-go/internal/service/holiday"
	payrollService "github.com/cmlabs-hris/payroll-backend-go/internal/service/payroll"
	permissionService "github.com/cmlabs-hris/payroll-backend-go/internal/service/permission"
	settingService "github.com/cmlabs-hris/payroll-backend-go/internal/service/setting"
	userService "github.com/cmlabs-hris/payroll-backend-go/internal/service/user"
	userGroupService "github.com/cmlabs-hris/payroll-backend-go/internal/service/usergroup"
	"github.com/go-chi/httplog/v3"
)

const version = "v1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	// Redis is optional; a nil cache reads through to PostgreSQL.
	var appCache *cache.Cache
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			slog.Warn("Redis unavailable, caching disabled", "addr", cfg.Redis.Addr, "error", err)
		} else {
			defer rdb.Close()
			appCache = cache.New(rdb, cfg.Redis.CacheTTL)
		}
	}

	userRepo := postgresql.NewUserRepository(db)
	userGroupRepo := postgresql.NewUserGroupRepository(db)
	permissionRepo := postgresql.NewPermissionRepository(db)
	tokenRepo := postgresql.NewTokenRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	salaryReportRepo := postgresql.NewSalaryReportRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	settingRepo := postgresql.NewSettingRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	settings := settingService.NewSettingService(settingRepo)
	holidays := holidayService.NewHolidayService(holidayRepo, appCache)
	departments := departmentService.NewDepartmentService(departmentRepo, appCache)
	employees := employeeService.NewEmployeeService(employeeRepo, appCache)
	attendances := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, settings, holidays)
	salaryReports := payrollService.NewSalaryReportService(salaryReportRepo, employeeRepo, attendanceRepo, settings)
	permissions := permissionService.NewPermissionService(permissionRepo)
	checker := permissionService.NewAccessChecker(userRepo)
	users := userService.NewUserService(userRepo)
	userGroups := userGroupService.NewUserGroupService(userGroupRepo, userRepo)
	authService := serviceAuth.NewAuthService(userRepo, tokenRepo, JWTService)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:            logger,
			AllowedOrigins:    cfg.App.AllowedOrigins,
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		},
		JWTService,
		checker,
		appHTTP.Handlers{
			Auth:         appHTTP.NewAuthHandler(JWTService, authService),
			Employee:     appHTTP.NewEmployeeHandler(employees),
			Department:   appHTTP.NewDepartmentHandler(departments, employees),
			Attendance:   appHTTP.NewAttendanceHandler(attendances),
			SalaryReport: appHTTP.NewSalaryReportHandler(salaryReports),
			Holiday:      appHTTP.NewHolidayHandler(holidays),
			Setting:      appHTTP.NewSettingHandler(settings),
			User:         appHTTP.NewUserHandler(users),
			UserGroup:    appHTTP.NewUserGroupHandler(userGroups, users),
			Permission:   appHTTP.NewPermissionHandler(permissions),
		},
	)

	scheduler := cron.NewScheduler()
	if err := cron.NewTokenJobs(tokenRepo, JWTService).RegisterJobs(scheduler, cfg.Cron.TokenCleanupSchedule); err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(!cfg.IsProduction())
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       logLevel(cfg.App.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("version", version),
		slog.String("env", cfg.App.Env),
	)
}

func logLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
