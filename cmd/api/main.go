package main

import (
	"fmt"
	"net/http"

	"github.com/hadirly/attendance-backend-go/internal/config"
	appHTTP "github.com/hadirly/attendance-backend-go/internal/handler/http"
	"github.com/hadirly/attendance-backend-go/internal/pkg/database"
	"github.com/hadirly/attendance-backend-go/internal/pkg/jwt"
	"github.com/hadirly/attendance-backend-go/internal/pkg/sse"
	"github.com/hadirly/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/hadirly/attendance-backend-go/internal/service/attendance"
	serviceAuth "github.com/hadirly/attendance-backend-go/internal/service/auth"
	deviceService "github.com/hadirly/attendance-backend-go/internal/service/device"
	"github.com/hadirly/attendance-backend-go/internal/service/master"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	branchRepo := postgresql.NewBranchRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	deviceRepo := postgresql.NewDeviceRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	hub := sse.NewHub()

	authSvc := serviceAuth.NewAuthService(userRepo, jwtService)
	deviceSvc := deviceService.NewDeviceService(deviceRepo, hub)
	branchSvc := master.NewBranchService(branchRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		attendanceRepo,
		employeeRepo,
		branchRepo,
		deviceSvc,
		hub,
		cfg.DeviceTrust.VerdictTimeout,
		nil,
	)

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtService)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	deviceHandler := appHTTP.NewDeviceHandler(deviceSvc)
	branchHandler := appHTTP.NewBranchHandler(branchSvc)
	eventsHandler := appHTTP.NewEventsHandler(hub, jwtService)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		attendanceHandler,
		deviceHandler,
		branchHandler,
		eventsHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
