package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/techqilla/ems-backend-go/internal/config"
	appHTTP "github.com/techqilla/ems-backend-go/internal/handler/http"
	"github.com/techqilla/ems-backend-go/internal/pkg/cron"
	"github.com/techqilla/ems-backend-go/internal/pkg/database"
	"github.com/techqilla/ems-backend-go/internal/pkg/email"
	"github.com/techqilla/ems-backend-go/internal/pkg/jwt"
	"github.com/techqilla/ems-backend-go/internal/pkg/storage"
	"github.com/techqilla/ems-backend-go/internal/repository/postgresql"
	attendanceService "github.com/techqilla/ems-backend-go/internal/service/attendance"
	authService "github.com/techqilla/ems-backend-go/internal/service/auth"
	dashboardService "github.com/techqilla/ems-backend-go/internal/service/dashboard"
	departmentService "github.com/techqilla/ems-backend-go/internal/service/department"
	employeeService "github.com/techqilla/ems-backend-go/internal/service/employee"
	"github.com/techqilla/ems-backend-go/internal/service/file"
	leaveService "github.com/techqilla/ems-backend-go/internal/service/leave"
	salaryService "github.com/techqilla/ems-backend-go/internal/service/salary"
	shiftService "github.com/techqilla/ems-backend-go/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid timezone: ", cfg.App.Timezone)
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileService := file.NewFileService(fileStorage)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	authSvc := authService.NewAuthService(userRepo, jwtService)
	departmentSvc := departmentService.NewDepartmentService(departmentRepo)
	shiftSvc := shiftService.NewShiftService(shiftRepo)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, userRepo, departmentRepo, shiftRepo, fileService)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, loc)
	leaveSvc := leaveService.NewLeaveService(db, leaveRepo, employeeRepo, attendanceRepo, emailService, cfg.SMTP.AdminEmail, loc)
	salarySvc := salaryService.NewSalaryService(salaryRepo, employeeRepo, loc)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, employeeRepo, loc)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	departmentHandler := appHTTP.NewDepartmentHandler(departmentSvc)
	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, loc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	salaryHandler := appHTTP.NewSalaryHandler(salarySvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:         cfg.App.Env,
			FrontendURL: cfg.App.FrontendURL,
			UploadsDir:  cfg.Storage.BasePath,
		},
		jwtService,
		authHandler,
		departmentHandler,
		shiftHandler,
		employeeHandler,
		attendanceHandler,
		leaveHandler,
		salaryHandler,
		dashboardHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo, employeeRepo, loc).RegisterJobs(scheduler)
	scheduler.Start()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down...")
	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Forced shutdown:", err)
	}
}
