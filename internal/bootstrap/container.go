package bootstrap

import (
	"context"

	"github.com/iris-hq/iris-os/internal/config"
	"github.com/iris-hq/iris-os/internal/infra/blob"
	"github.com/iris-hq/iris-os/internal/infra/cache"
	"github.com/iris-hq/iris-os/internal/infra/db"
	"github.com/iris-hq/iris-os/internal/infra/logger"
	"github.com/iris-hq/iris-os/internal/modules/handler"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"github.com/iris-hq/iris-os/internal/modules/repo"
	"github.com/iris-hq/iris-os/internal/modules/service"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		// [optional] auto migrate
		if cfg.Database.AutoMigrate {
			_ = d.AutoMigrate(
				&model.Workspace{},
				&model.Client{},
				&model.Project{},
				&model.Task{},
				&model.Milestone{},
				&model.Folder{},
				&model.File{},
				&model.Invoice{},
				&model.Quotation{},
				&model.ClientApproval{},
				&model.Payment{},
				&model.SocialLink{},
				&model.Note{},
				&model.Meeting{},
				&model.Member{},
				&model.MarketingAsset{},
				&model.FreelancerAssignment{},
				&model.ActivityLog{},
			)
		}
		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.New(cfg), nil
	})

	// RabbitMQ Connection
	do.Provide(inj, func(i *do.Injector) (*amqp.Connection, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return amqp.Dial(cfg.RabbitMQ.URL)
	})

	// S3
	do.Provide(inj, func(i *do.Injector) (*blob.S3Deps, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return blob.NewS3(context.Background(), cfg)
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.WorkspaceRepo, error) {
		return repo.NewWorkspaceRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ClientRepo, error) {
		return repo.NewClientRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ProjectRepo, error) {
		return repo.NewProjectRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.TaskRepo, error) {
		return repo.NewTaskRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.MilestoneRepo, error) {
		return repo.NewMilestoneRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.FolderRepo, error) {
		return repo.NewFolderRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.FileRepo, error) {
		return repo.NewFileRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.CascadeRepo, error) {
		return repo.NewCascadeRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.FinanceRepo, error) {
		return repo.NewFinanceRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.CRMRepo, error) {
		return repo.NewCRMRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.TeamRepo, error) {
		return repo.NewTeamRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ActivityRepo, error) {
		return repo.NewActivityRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.OverviewRepo, error) {
		return repo.NewOverviewRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.ProvisionService, error) {
		return service.NewProvisionService(do.MustInvoke[repo.FolderRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.CascadeService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewCascadeService(
			do.MustInvoke[repo.CascadeRepo](i),
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[repo.FolderRepo](i),
			do.MustInvoke[repo.ActivityRepo](i),
			do.MustInvoke[service.ProvisionService](i),
			do.MustInvoke[*zap.Logger](i),
			do.MustInvoke[*amqp.Connection](i),
			cfg.RabbitMQ.AuditQueue,
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.WorkspaceService, error) {
		return service.NewWorkspaceService(
			do.MustInvoke[repo.WorkspaceRepo](i),
			do.MustInvoke[*config.Config](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ClientService, error) {
		return service.NewClientService(
			do.MustInvoke[repo.ClientRepo](i),
			do.MustInvoke[service.ProvisionService](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ProjectService, error) {
		return service.NewProjectService(
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[service.ProvisionService](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.MilestoneService, error) {
		return service.NewMilestoneService(
			do.MustInvoke[repo.MilestoneRepo](i),
			do.MustInvoke[repo.TaskRepo](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.TaskService, error) {
		return service.NewTaskService(
			do.MustInvoke[repo.TaskRepo](i),
			do.MustInvoke[repo.CascadeRepo](i),
			do.MustInvoke[service.MilestoneService](i),
			do.MustInvoke[service.ProvisionService](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.FolderService, error) {
		return service.NewFolderService(do.MustInvoke[repo.FolderRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.FileService, error) {
		return service.NewFileService(
			do.MustInvoke[repo.FileRepo](i),
			do.MustInvoke[repo.FolderRepo](i),
			do.MustInvoke[service.ProvisionService](i),
			do.MustInvoke[*blob.S3Deps](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.FinanceService, error) {
		return service.NewFinanceService(do.MustInvoke[repo.FinanceRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.CRMService, error) {
		return service.NewCRMService(
			do.MustInvoke[repo.CRMRepo](i),
			do.MustInvoke[service.ProvisionService](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.TeamService, error) {
		return service.NewTeamService(
			do.MustInvoke[repo.TeamRepo](i),
			do.MustInvoke[repo.ActivityRepo](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.OverviewService, error) {
		return service.NewOverviewService(
			do.MustInvoke[repo.OverviewRepo](i),
			do.MustInvoke[*redis.Client](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.WorkspaceHandler, error) {
		return handler.NewWorkspaceHandler(do.MustInvoke[service.WorkspaceService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ClientHandler, error) {
		return handler.NewClientHandler(
			do.MustInvoke[service.ClientService](i),
			do.MustInvoke[service.CascadeService](i),
			do.MustInvoke[service.OverviewService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ProjectHandler, error) {
		return handler.NewProjectHandler(
			do.MustInvoke[service.ProjectService](i),
			do.MustInvoke[service.CascadeService](i),
			do.MustInvoke[service.OverviewService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.TaskHandler, error) {
		return handler.NewTaskHandler(do.MustInvoke[service.TaskService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.MilestoneHandler, error) {
		return handler.NewMilestoneHandler(do.MustInvoke[service.MilestoneService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.FolderHandler, error) {
		return handler.NewFolderHandler(do.MustInvoke[service.FolderService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.FileHandler, error) {
		return handler.NewFileHandler(do.MustInvoke[service.FileService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.FinanceHandler, error) {
		return handler.NewFinanceHandler(do.MustInvoke[service.FinanceService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.CRMHandler, error) {
		return handler.NewCRMHandler(do.MustInvoke[service.CRMService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.TeamHandler, error) {
		return handler.NewTeamHandler(do.MustInvoke[service.TeamService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.OverviewHandler, error) {
		return handler.NewOverviewHandler(do.MustInvoke[service.OverviewService](i)), nil
	})

	return inj
}
