package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/staffdesk/staffdesk-backend-go/internal/config"
	appHTTP "github.com/staffdesk/staffdesk-backend-go/internal/handler/http"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/cron"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/database"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/jwt"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/storage"
	"github.com/staffdesk/staffdesk-backend-go/internal/repository/postgresql"
	announcementService "github.com/staffdesk/staffdesk-backend-go/internal/service/announcement"
	attendanceService "github.com/staffdesk/staffdesk-backend-go/internal/service/attendance"
	authService "github.com/staffdesk/staffdesk-backend-go/internal/service/auth"
	employeeService "github.com/staffdesk/staffdesk-backend-go/internal/service/employee"
	"github.com/staffdesk/staffdesk-backend-go/internal/service/file"
	leaveService "github.com/staffdesk/staffdesk-backend-go/internal/service/leave"
	payrollService "github.com/staffdesk/staffdesk-backend-go/internal/service/payroll"
	"github.com/staffdesk/staffdesk-backend-go/internal/service/payslip"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	leaveRepo := postgresql.NewLeaveRequestRepository(db)
	announcementRepo := postgresql.NewAnnouncementRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage: ", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileSvc := file.NewFileService(fileStorage)
	authSvc := authService.NewAuthService(db, userRepo, employeeRepo, jwtService, jwtRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, fileSvc)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, fileSvc)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, employeeRepo, attendanceRepo)
	payslipSvc := payslip.NewPayslipService(payrollRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, employeeRepo)
	announcementSvc := announcementService.NewAnnouncementService(announcementRepo)

	handlers := appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(jwtService, authSvc),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Payroll:      appHTTP.NewPayrollHandler(payrollSvc, payslipSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Announcement: appHTTP.NewAnnouncementHandler(announcementSvc),
	}

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(jwtService, handlers, cfg.Storage.BasePath, cfg.App.FrontendURL, cfg.App.Env)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error: ", err)
	}
}
