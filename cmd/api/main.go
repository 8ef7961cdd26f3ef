package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/qadam-hq/checkin-backend-go/internal/config"
	appHTTP "github.com/qadam-hq/checkin-backend-go/internal/handler/http"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/cron"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/database"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/faceapi"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/jwt"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/telegram"
	"github.com/qadam-hq/checkin-backend-go/internal/repository/postgresql"
	checkinService "github.com/qadam-hq/checkin-backend-go/internal/service/checkin"
	dashboardService "github.com/qadam-hq/checkin-backend-go/internal/service/dashboard"
	employeeService "github.com/qadam-hq/checkin-backend-go/internal/service/employee"
	leaveService "github.com/qadam-hq/checkin-backend-go/internal/service/leave"
	reportService "github.com/qadam-hq/checkin-backend-go/internal/service/report"
	scheduleService "github.com/qadam-hq/checkin-backend-go/internal/service/schedule"
	statusService "github.com/qadam-hq/checkin-backend-go/internal/service/status"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	versionRepo := postgresql.NewScheduleVersionRepository(db)
	eventRepo := postgresql.NewEventRepository(db)
	periodRepo := postgresql.NewLeavePeriodRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)

	tz := cfg.App.Timezone

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpirationTime)
	notifier := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.AdminChatIDs)
	verifier := faceapi.NewClient(cfg.CheckIn.FaceServiceURL)
	inTx := func(ctx context.Context, fn func(ctx context.Context) error) error {
		return postgresql.WithTransaction(ctx, db, fn)
	}

	loader := statusService.NewLoader(employeeRepo, versionRepo, eventRepo, periodRepo, holidayRepo, tz)

	employeeSvc := employeeService.NewService(employeeRepo)
	scheduleSvc := scheduleService.NewService(versionRepo, employeeRepo, inTx)
	leaveSvc := leaveService.NewService(periodRepo, holidayRepo, employeeRepo)
	checkinSvc := checkinService.NewService(employeeRepo, versionRepo, eventRepo, verifier, cfg.CheckIn, tz)
	statusSvc := statusService.NewService(loader, employeeRepo)
	dashboardSvc := dashboardService.NewService(loader)
	reportSvc := reportService.NewService(loader, eventRepo)

	scheduler := cron.NewScheduler()
	jobs := cron.NewNotificationJobs(employeeRepo, versionRepo, eventRepo, periodRepo, holidayRepo, notifier, reportSvc, tz)
	jobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Auth:      appHTTP.NewAuthHandler(employeeSvc, JWTService, cfg.Telegram),
		Checkin:   appHTTP.NewCheckinHandler(checkinSvc),
		Employee:  appHTTP.NewEmployeeHandler(employeeSvc),
		Schedule:  appHTTP.NewScheduleHandler(scheduleSvc),
		Leave:     appHTTP.NewLeaveHandler(leaveSvc),
		Status:    appHTTP.NewStatusHandler(statusSvc, tz),
		Dashboard: appHTTP.NewDashboardHandler(dashboardSvc),
		Report:    appHTTP.NewReportHandler(reportSvc, tz),
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Shutdown error:", err)
	}
}
