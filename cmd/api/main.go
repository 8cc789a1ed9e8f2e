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

	"github.com/cmlabs-hris/checkin-backend-go/internal/config"
	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/analytics"
	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/attendance"
	appHTTP "github.com/cmlabs-hris/checkin-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/geo"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/notify"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/session"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/checkin-backend-go/internal/repository/postgresql"
	analyticsService "github.com/cmlabs-hris/checkin-backend-go/internal/service/analytics"
	attendanceService "github.com/cmlabs-hris/checkin-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/checkin-backend-go/internal/service/auth"
	employeeService "github.com/cmlabs-hris/checkin-backend-go/internal/service/employee"
	reportService "github.com/cmlabs-hris/checkin-backend-go/internal/service/report"
	"github.com/go-chi/httplog/v3"
)

const (
	appName    = "checkin-backend"
	appVersion = "v1.0.0"
)

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// newNotifier posts to Slack when configured and otherwise only logs.
func newNotifier(options notify.SlackOption) analytics.Notifier {
	if !options.Enabled() {
		slog.Warn("Slack not configured, absentee notifications are logged only")
		return notify.Log{}
	}
	return notify.NewSlack(options)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	level := parseLevel(cfg.App.LogLevel)
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env == "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", appName),
		slog.String("version", appVersion),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zone, err := clock.NewZone(cfg.Attendance.Timezone)
	if err != nil {
		slog.Error("Invalid timezone", "error", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		slog.Error("Error applying schema", "error", err)
		os.Exit(1)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	clk := clock.System()
	tokens := session.NewTokenService(session.Options{
		Secret: []byte(cfg.Session.Secret),
		Window: cfg.Session.Window,
	})
	JWTService := jwt.NewJWTService(cfg.Admin.JWTSecret, cfg.Admin.AccessExpiration)
	renderer := export.NewRenderer(cfg.Report.Institution, zone)

	fence := geo.Fence{Office: cfg.OfficePoint(), MaxMeters: cfg.Office.MaxDistance}
	if !fence.Enabled() {
		slog.Warn("Office location not configured, geofence disabled")
	}

	hub := sse.NewHub()
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, tokens, clk, attendanceService.Config{
		Zone:     zone,
		Deadline: cfg.Attendance.Deadline,
		Fence:    fence,
		OnCheckIn: func(r attendance.AttendanceResponse) {
			hub.Publish(sse.Event{Event: appHTTP.EventCheckIn, Data: r})
		},
	})
	analyticsSvc := analyticsService.NewAnalyticsService(employeeRepo, attendanceRepo, clk, zone, cfg.Attendance.Midday)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, renderer, clk, cfg.Security.BcryptCost)
	reportSvc := reportService.NewReportService(attendanceSvc, analyticsSvc, employeeSvc, renderer, clk, zone)
	authSvc := serviceAuth.NewAuthService(JWTService, cfg.Admin.Password)
	if cfg.Admin.Password == "" {
		slog.Warn("ADMIN_PASSWORD not set, admin login disabled")
	}

	slackOptions := notify.SlackOption{
		WebhookURL: cfg.Notify.SlackWebhookURL,
		BotToken:   cfg.Notify.SlackBotToken,
		ChannelID:  cfg.Notify.SlackChannelID,
	}
	scheduler := cron.NewScheduler()
	absenteeJob := analyticsService.NewAbsenteeJob(analyticsSvc, newNotifier(slackOptions), clk, zone)
	cron.NewCheckinJobs(absenteeJob, JWTService, cfg.Notify.Interval).RegisterJobs(scheduler)
	scheduler.Start(ctx)

	router := appHTTP.NewRouter(JWTService, appHTTP.RouterOptions{
		AllowedOrigins: cfg.App.AllowedOrigins,
		Logger:         logger,
		LogLevel:       level,
	}, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Analytics:  appHTTP.NewAnalyticsHandler(analyticsSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		QRCode:     appHTTP.NewQRCodeHandler(cfg.App.PublicURL),
		Stream:     appHTTP.NewStreamHandler(hub),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "addr", server.Addr, "timezone", zone.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	scheduler.Stop()
}
