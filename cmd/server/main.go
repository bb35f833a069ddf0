package main

//	@title			IRIS OS API
//	@version		1.0
//	@description	Agency operations API: clients, projects, tasks and their folder trees.
//	@schemes		http https
//	@BasePath		/api/v1

//  Bearer at Workspace level
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Workspace Bearer token (e.g., "Bearer sk-iris-xxxx")

//  Bearer at Root level
//	@securityDefinitions.apikey	RootBearerAuth
//	@in							header
//	@name						Authorization
//	@description				Root Bearer token for workspace administration

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iris-hq/iris-os/internal/bootstrap"
	"github.com/iris-hq/iris-os/internal/config"
	"github.com/iris-hq/iris-os/internal/infra/cache"
	dbpkg "github.com/iris-hq/iris-os/internal/infra/db"
	"github.com/iris-hq/iris-os/internal/modules/handler"
	"github.com/iris-hq/iris-os/internal/router"
	"github.com/iris-hq/iris-os/internal/telemetry"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// build dependency injection container
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	db := do.MustInvoke[*gorm.DB](inj)
	rdb := do.MustInvoke[*redis.Client](inj)

	// Setup OpenTelemetry tracing (using configuration system)
	tp, err := telemetry.SetupTracing(cfg)
	if err != nil {
		log.Sugar().Warnw("failed to setup tracing, continuing without tracing", "err", err)
	} else if tp != nil {
		log.Sugar().Infow("OpenTelemetry tracing enabled", "endpoint", cfg.Telemetry.OtlpEndpoint)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := telemetry.Shutdown(ctx); err != nil {
				log.Sugar().Errorw("failed to shutdown tracer", "err", err)
			}
		}()

		// Register GORM OpenTelemetry plugin after tracer provider is set
		if err := dbpkg.RegisterOpenTelemetryPlugin(db); err != nil {
			log.Sugar().Warnw("failed to register GORM OpenTelemetry plugin, continuing without database tracing", "err", err)
		} else {
			log.Sugar().Info("GORM OpenTelemetry plugin registered")
		}

		// Register Redis OpenTelemetry plugin after tracer provider is set
		if err := cache.RegisterOpenTelemetryPlugin(rdb); err != nil {
			log.Sugar().Warnw("failed to register Redis OpenTelemetry plugin, continuing without Redis tracing", "err", err)
		} else {
			log.Sugar().Info("Redis OpenTelemetry plugin registered")
		}
	}

	// init gin
	gin.SetMode(cfg.App.Env)

	// build handlers
	workspaceHandler := do.MustInvoke[*handler.WorkspaceHandler](inj)
	clientHandler := do.MustInvoke[*handler.ClientHandler](inj)
	projectHandler := do.MustInvoke[*handler.ProjectHandler](inj)
	taskHandler := do.MustInvoke[*handler.TaskHandler](inj)
	milestoneHandler := do.MustInvoke[*handler.MilestoneHandler](inj)
	folderHandler := do.MustInvoke[*handler.FolderHandler](inj)
	fileHandler := do.MustInvoke[*handler.FileHandler](inj)
	financeHandler := do.MustInvoke[*handler.FinanceHandler](inj)
	crmHandler := do.MustInvoke[*handler.CRMHandler](inj)
	teamHandler := do.MustInvoke[*handler.TeamHandler](inj)
	overviewHandler := do.MustInvoke[*handler.OverviewHandler](inj)

	engine := router.NewRouter(router.RouterDeps{
		Config:           cfg,
		DB:               db,
		Log:              log,
		WorkspaceHandler: workspaceHandler,
		ClientHandler:    clientHandler,
		ProjectHandler:   projectHandler,
		TaskHandler:      taskHandler,
		MilestoneHandler: milestoneHandler,
		FolderHandler:    folderHandler,
		FileHandler:      fileHandler,
		FinanceHandler:   financeHandler,
		CRMHandler:       crmHandler,
		TeamHandler:      teamHandler,
		OverviewHandler:  overviewHandler,
	})

	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	srv := &http.Server{Addr: addr, Handler: engine}

	go func() {
		log.Sugar().Infow("starting http server", "addr", addr)
		log.Sugar().Infow("swagger url", "url", addr+"/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Sugar().Fatalw("listen error", "err", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Sugar().Errorw("server shutdown", "err", err)
	}
	log.Sugar().Info("server exited")
}
