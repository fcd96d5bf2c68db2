package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/arcadia-hr/hrm-backend-go/internal/config"
	appHTTP "github.com/arcadia-hr/hrm-backend-go/internal/handler/http"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/clock"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/cron"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/database"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/jwt"
	"github.com/arcadia-hr/hrm-backend-go/internal/repository/postgresql"
	authService "github.com/arcadia-hr/hrm-backend-go/internal/service/auth"
	gradeService "github.com/arcadia-hr/hrm-backend-go/internal/service/grade"
	leaveService "github.com/arcadia-hr/hrm-backend-go/internal/service/leave"
	orgService "github.com/arcadia-hr/hrm-backend-go/internal/service/org"
	userService "github.com/arcadia-hr/hrm-backend-go/internal/service/user"
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
	sessionRepo := postgresql.NewSessionRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	categoryRepo := postgresql.NewGradeCategoryRepository(db)
	gradeRepo := postgresql.NewGradeRepository(db)
	designationRepo := postgresql.NewDesignationRepository(db)
	ledgerRepo := postgresql.NewLedgerRepository(db)
	requestRepo := postgresql.NewRequestRepository(db)
	tx := postgresql.NewTransactor(db)

	clk := clock.System{}
	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiration)

	orgSvc := orgService.NewService(departmentRepo, categoryRepo, gradeRepo, designationRepo, userRepo)
	userSvc := userService.NewService(userRepo, departmentRepo, gradeRepo, designationRepo, ledgerRepo, sessionRepo, orgSvc, tx, clk)
	gradeSvc := gradeService.NewService(userRepo, gradeRepo, categoryRepo, designationRepo, orgSvc, tx, clk)
	leaveSvc := leaveService.NewService(ledgerRepo, requestRepo, userRepo, tx, clk)
	authSvc := authService.NewService(userRepo, sessionRepo, jwtSvc, clk)

	scheduler := cron.NewScheduler()
	cron.NewLeaveJobs(leaveSvc, clk).RegisterJobs(scheduler)
	scheduler.Start(context.Background())
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg,
		jwtSvc,
		authSvc,
		appHTTP.NewAuthHandler(authSvc),
		appHTTP.NewUserHandler(userSvc, gradeSvc),
		appHTTP.NewOrgHandler(orgSvc),
		appHTTP.NewLeaveHandler(leaveSvc),
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		slog.Info("server listening", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	_ = server.Close()
}
