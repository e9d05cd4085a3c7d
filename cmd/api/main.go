package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/astek-sistemas/participacao-backend-go/internal/config"
	appHTTP "github.com/astek-sistemas/participacao-backend-go/internal/handler/http"
	"github.com/astek-sistemas/participacao-backend-go/internal/pkg/database"
	"github.com/astek-sistemas/participacao-backend-go/internal/pkg/jwt"
	"github.com/astek-sistemas/participacao-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/astek-sistemas/participacao-backend-go/internal/service/auth"
	employeeService "github.com/astek-sistemas/participacao-backend-go/internal/service/employee"
	eventService "github.com/astek-sistemas/participacao-backend-go/internal/service/event"
	participationService "github.com/astek-sistemas/participacao-backend-go/internal/service/participation"
	reportService "github.com/astek-sistemas/participacao-backend-go/internal/service/report"
	ruleService "github.com/astek-sistemas/participacao-backend-go/internal/service/rule"
	sectorService "github.com/astek-sistemas/participacao-backend-go/internal/service/sector"
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

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	userRepo := postgresql.NewUserRepository(db)
	sectorRepo := postgresql.NewSectorRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	eventRepo := postgresql.NewEventRepository(db)
	ruleRepo := postgresql.NewRuleRepository(db)
	recordRepo := postgresql.NewRecordRepository(db)
	configRepo := postgresql.NewRevenueConfigRepository(db)
	approvalRepo := postgresql.NewApprovalRepository(db)

	txRunner := postgresql.NewTxRunner(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := serviceAuth.NewAuthService(userRepo, employeeRepo, JWTService)
	sectorSvc := sectorService.NewSectorService(sectorRepo, employeeRepo)
	participationSvc := participationService.NewParticipationService(
		txRunner,
		logger,
		recordRepo,
		configRepo,
		employeeRepo,
		sectorRepo,
		eventRepo,
		ruleRepo,
		cfg.Payout.GrossWarnThreshold,
	)
	approvalSvc := participationService.NewApprovalService(txRunner, logger, approvalRepo, recordRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, participationSvc)
	eventSvc := eventService.NewEventService(db, logger, eventRepo, employeeRepo, participationSvc)
	ruleSvc := ruleService.NewRuleService(ruleRepo)
	reportSvc := reportService.NewReportService(recordRepo, employeeRepo)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc)
	sectorHandler := appHTTP.NewSectorHandler(sectorSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	eventHandler := appHTTP.NewEventHandler(eventSvc)
	ruleHandler := appHTTP.NewRuleHandler(ruleSvc)
	participationHandler := appHTTP.NewParticipationHandler(participationSvc, approvalSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		sectorHandler,
		employeeHandler,
		eventHandler,
		ruleHandler,
		participationHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
