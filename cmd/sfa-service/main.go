package main

import (
	"fmt"
	"os"

	"github.com/caioln/sfa-service/internal/auth"
	"github.com/caioln/sfa-service/internal/config"
	"github.com/caioln/sfa-service/internal/db"
	"github.com/caioln/sfa-service/internal/excel"
	httphandler "github.com/caioln/sfa-service/internal/http"
	"github.com/caioln/sfa-service/internal/http/middleware"
	"github.com/caioln/sfa-service/internal/logger"
	"github.com/caioln/sfa-service/internal/pdf"
	"github.com/caioln/sfa-service/internal/repository"
	"github.com/caioln/sfa-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	contractRepo := repository.NewContractRepository(database)
	processRepo := repository.NewProcessRepository(database)
	agreementRepo := repository.NewAgreementRepository(database)
	accountabilityRepo := repository.NewAccountabilityRepository(database)
	statsRepo := repository.NewStatsRepository(database)

	pdfGenerator := pdf.NewGenerator()
	chartGenerator := excel.NewGenerator()

	contractService := service.NewContractService(contractRepo, pdfGenerator, cfg, log)
	processService := service.NewProcessService(processRepo)
	agreementService := service.NewAgreementService(agreementRepo, statsRepo, chartGenerator, cfg, log)
	accountabilityService := service.NewAccountabilityService(accountabilityRepo, statsRepo)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(contractService, processService, agreementService, accountabilityService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting sfa service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
