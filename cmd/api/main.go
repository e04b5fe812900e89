package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/config"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	appHTTP "github.com/cmlabs-hris/hrms-lite/internal/handler/http"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/logger"
	"github.com/cmlabs-hris/hrms-lite/internal/repository/postgresql"
	"github.com/cmlabs-hris/hrms-lite/internal/repository/sqlite"
	attendanceService "github.com/cmlabs-hris/hrms-lite/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/hrms-lite/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hrms-lite/internal/service/employee"
)

const (
	appName    = "hrms-lite"
	appVersion = "v1.0.0"
)

// store bundles the repositories of whichever backend DB_DRIVER selects.
type store struct {
	tx             database.Transactor
	pinger         database.Pinger
	closer         io.Closer
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	dashboardRepo  dashboard.DashboardRepository
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		db, err := database.NewSQLiteDB(ctx, cfg.Database.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := sqlite.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return &store{
			tx:             sqlite.NewTransactor(db),
			pinger:         db,
			closer:         db,
			employeeRepo:   sqlite.NewEmployeeRepository(db),
			attendanceRepo: sqlite.NewAttendanceRepository(db),
			dashboardRepo:  sqlite.NewDashboardRepository(db),
		}, nil
	default:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, err
		}
		if err := postgresql.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return &store{
			tx:             postgresql.NewTransactor(db),
			pinger:         db,
			closer:         db,
			employeeRepo:   postgresql.NewEmployeeRepository(db),
			attendanceRepo: postgresql.NewAttendanceRepository(db),
			dashboardRepo:  postgresql.NewDashboardRepository(db),
		}, nil
	}
}

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup happens before exit.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		return 1
	}

	appLogger := logger.New(os.Stdout, appName, appVersion, cfg.App.Env, cfg.App.LogLevel)
	slog.SetDefault(appLogger)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second)
	st, err := openStore(startCtx, cfg)
	cancelStart()
	if err != nil {
		slog.Error("failed to initialize database", "driver", cfg.Database.Driver, "error", err)
		return 1
	}
	defer func() {
		if err := st.closer.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	presentDays := attendanceService.NewPresentDays(st.attendanceRepo)
	employeeSvc := employeeService.NewEmployeeService(st.tx, st.employeeRepo, presentDays)
	attendanceSvc := attendanceService.NewAttendanceService(st.tx, st.attendanceRepo, st.employeeRepo)
	dashboardSvc := dashboardService.NewDashboardService(st.dashboardRepo)

	router := appHTTP.NewRouter(
		appLogger,
		cfg.CORS.AllowedOrigins,
		appHTTP.NewHealthHandler(st.pinger, appName, appVersion),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewDashboardHandler(dashboardSvc),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	slog.Info("server starting", "port", cfg.App.Port, "driver", cfg.Database.Driver)
	if err := serve(server, quit, 30*time.Second); err != nil {
		slog.Error("server failed", "error", err)
		return 1
	}

	slog.Info("server stopped")
	return 0
}

// serve runs server until it fails or a signal arrives on quit, then drains
// in-flight requests for up to drain.
func serve(server *http.Server, quit <-chan os.Signal, drain time.Duration) error {
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), drain)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
