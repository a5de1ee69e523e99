package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "loan-origination-backend/internal/adapter/http"
	"loan-origination-backend/internal/adapter/middleware"
	"loan-origination-backend/internal/adapter/repository/mysql"
	"loan-origination-backend/internal/config"
	"loan-origination-backend/internal/domain/product"
	"loan-origination-backend/internal/infrastructure/cache"
	"loan-origination-backend/internal/infrastructure/db"
	"loan-origination-backend/internal/infrastructure/logger"
	ucApplication "loan-origination-backend/internal/usecase/application"
	ucApproval "loan-origination-backend/internal/usecase/approval"
	ucLoan "loan-origination-backend/internal/usecase/loan"
)

func main() {
	cfg := config.Load()
	lg, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	if err := run(cfg, lg); err != nil {
		lg.Fatal("api stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, lg *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), lg)
	if err != nil {
		return err
	}
	if err := mysql.AutoMigrate(gdb); err != nil {
		return err
	}
	rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	catalog, err := product.LoadCatalog(cfg.ProductCatalogPath)
	if err != nil {
		return err
	}
	lg.Info("product catalog loaded", zap.Strings("products", catalog.IDs()))

	loans := mysql.NewLoanRepository(gdb)
	tx := mysql.NewGormUoW(gdb)
	loanUC := ucLoan.NewUsecase(loans, tx, catalog, lg)
	approvalUC := ucApproval.NewUsecase(tx, lg)
	applicationUC := ucApplication.NewUsecase(catalog)

	h := httpadp.NewHandler()
	lh := httpadp.NewLoanHandler(loanUC, lg)
	ah := httpadp.NewApprovalHandler(approvalUC, lg)
	apph := httpadp.NewApplicationHandler(applicationUC, lg)
	idem := middleware.Idempotency(rdb, cfg.IdempotencyTTL(), lg)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	// routes
	e.GET("/health", h.Health)
	e.GET("/products", apph.ListProducts)
	e.POST("/applications/validate", apph.ValidateStep)
	e.GET("/emi", lh.Quote)
	e.POST("/records/normalize", lh.Normalize)

	e.POST("/loans", lh.SubmitLoan, idem)
	e.GET("/loans/:loan_id", lh.GetLoan)
	e.POST("/loans/:loan_id/approve", ah.ApproveLoan, idem)
	e.GET("/loans/:loan_id/summary", lh.Summary)
	e.GET("/loans/:loan_id/schedule", lh.Schedule)
	e.GET("/loans/:loan_id/schedule.xlsx", lh.ScheduleXLSX)
	e.GET("/borrowers/:borrower_id/loans", lh.ListByBorrower)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			lg.Warn("shutdown", zap.Error(err))
		}
	}()

	addr := ":" + cfg.AppPort
	lg.Info("listening", zap.String("addr", addr))
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
