package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/iris-hq/iris-os/docs"
	"github.com/iris-hq/iris-os/internal/config"
	"github.com/iris-hq/iris-os/internal/middleware"
	"github.com/iris-hq/iris-os/internal/modules/handler"
	"github.com/iris-hq/iris-os/internal/modules/serializer"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	Config           *config.Config
	DB               *gorm.DB
	Log              *zap.Logger
	WorkspaceHandler *handler.WorkspaceHandler
	ClientHandler    *handler.ClientHandler
	ProjectHandler   *handler.ProjectHandler
	TaskHandler      *handler.TaskHandler
	MilestoneHandler *handler.MilestoneHandler
	FolderHandler    *handler.FolderHandler
	FileHandler      *handler.FileHandler
	FinanceHandler   *handler.FinanceHandler
	CRMHandler       *handler.CRMHandler
	TeamHandler      *handler.TeamHandler
	OverviewHandler  *handler.OverviewHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	// Initialize logger for serializer package
	serializer.SetLogger(d.Log)

	r := gin.New()
	r.Use(gin.Recovery())

	// Add OpenTelemetry middleware if enabled (using configuration system)
	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(middleware.OtelTracing(d.Config.App.Name))
		// Add trace ID to response header
		r.Use(middleware.TraceID())
	}

	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	admin := r.Group("/api/v1/admin")
	{
		admin.Use(middleware.RootAuth(d.Config))

		admin.POST("/workspace", d.WorkspaceHandler.CreateWorkspace)
		admin.DELETE("/workspace/:workspace_id", d.WorkspaceHandler.DeleteWorkspace)
	}

	v1 := r.Group("/api/v1")
	{
		v1.Use(middleware.WorkspaceAuth(d.Config, d.DB))

		// ping endpoint
		v1.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "pong"}) })

		client := v1.Group("/client")
		{
			client.GET("", d.ClientHandler.GetClients)
			client.POST("", d.ClientHandler.CreateClient)
			client.GET("/:client_id", d.ClientHandler.GetClient)
			client.PUT("/:client_id", d.ClientHandler.UpdateClient)
			client.DELETE("/:client_id", d.ClientHandler.DeleteClient)
		}

		project := v1.Group("/project")
		{
			project.GET("", d.ProjectHandler.GetProjects)
			project.POST("", d.ProjectHandler.CreateProject)
			project.GET("/:project_id", d.ProjectHandler.GetProject)
			project.PUT("/:project_id", d.ProjectHandler.UpdateProject)
			project.DELETE("/:project_id", d.ProjectHandler.DeleteProject)

			project.POST("/:project_id/archive", d.ProjectHandler.ArchiveProject)
			project.POST("/:project_id/unarchive", d.ProjectHandler.UnarchiveProject)
		}

		task := v1.Group("/task")
		{
			task.GET("", d.TaskHandler.GetTasks)
			task.POST("", d.TaskHandler.CreateTask)
			task.GET("/:task_id", d.TaskHandler.GetTask)
			task.PUT("/:task_id", d.TaskHandler.UpdateTask)
			task.DELETE("/:task_id", d.TaskHandler.DeleteTask)

			task.POST("/:task_id/restore", d.TaskHandler.RestoreTask)
		}

		milestone := v1.Group("/milestone")
		{
			milestone.GET("", d.MilestoneHandler.GetMilestones)
			milestone.POST("", d.MilestoneHandler.CreateMilestone)
			milestone.GET("/:milestone_id", d.MilestoneHandler.GetMilestone)
			milestone.PUT("/:milestone_id", d.MilestoneHandler.UpdateMilestone)

			milestone.POST("/:milestone_id/recalc", d.MilestoneHandler.RecalcMilestone)
		}

		folder := v1.Group("/folder")
		{
			folder.GET("", d.FolderHandler.GetFolders)
			folder.GET("/:folder_id", d.FolderHandler.GetFolder)
			folder.PUT("/:folder_id", d.FolderHandler.RenameFolder)
			folder.DELETE("/:folder_id", d.FolderHandler.DeleteFolder)
		}

		file := v1.Group("/file")
		{
			file.GET("", d.FileHandler.GetFiles)
			file.POST("", d.FileHandler.UploadFile)
			file.DELETE("/:file_id", d.FileHandler.DeleteFile)

			file.GET("/:file_id/url", d.FileHandler.GetFileURL)
			file.POST("/:file_id/move", d.FileHandler.MoveFile)
		}

		invoice := v1.Group("/invoice")
		{
			invoice.GET("", d.FinanceHandler.GetInvoices)
			invoice.POST("", d.FinanceHandler.CreateInvoice)
			invoice.DELETE("/:invoice_id", d.FinanceHandler.DeleteInvoice)
		}

		quotation := v1.Group("/quotation")
		{
			quotation.GET("", d.FinanceHandler.GetQuotations)
			quotation.POST("", d.FinanceHandler.CreateQuotation)
			quotation.DELETE("/:quotation_id", d.FinanceHandler.DeleteQuotation)
		}

		approval := v1.Group("/approval")
		{
			approval.GET("", d.FinanceHandler.GetApprovals)
			approval.POST("", d.FinanceHandler.CreateApproval)
			approval.POST("/:approval_id/decide", d.FinanceHandler.DecideApproval)
		}

		payment := v1.Group("/payment")
		{
			payment.GET("", d.FinanceHandler.GetPayments)
			payment.POST("", d.FinanceHandler.CreatePayment)
		}

		socialLink := v1.Group("/social-link")
		{
			socialLink.GET("", d.CRMHandler.GetSocialLinks)
			socialLink.POST("", d.CRMHandler.CreateSocialLink)
			socialLink.DELETE("/:link_id", d.CRMHandler.DeleteSocialLink)
		}

		note := v1.Group("/note")
		{
			note.GET("", d.CRMHandler.GetNotes)
			note.POST("", d.CRMHandler.CreateNote)
			note.DELETE("/:note_id", d.CRMHandler.DeleteNote)
		}

		meeting := v1.Group("/meeting")
		{
			meeting.GET("", d.CRMHandler.GetMeetings)
			meeting.POST("", d.CRMHandler.CreateMeeting)
			meeting.DELETE("/:meeting_id", d.CRMHandler.DeleteMeeting)
		}

		member := v1.Group("/member")
		{
			member.GET("", d.TeamHandler.GetMembers)
			member.POST("", d.TeamHandler.CreateMember)
			member.DELETE("/:member_id", d.TeamHandler.DeleteMember)
		}

		marketingAsset := v1.Group("/marketing-asset")
		{
			marketingAsset.GET("", d.TeamHandler.GetMarketingAssets)
			marketingAsset.POST("", d.TeamHandler.CreateMarketingAsset)
			marketingAsset.DELETE("/:asset_id", d.TeamHandler.DeleteMarketingAsset)
		}

		assignment := v1.Group("/assignment")
		{
			assignment.GET("", d.TeamHandler.GetAssignments)
			assignment.POST("", d.TeamHandler.CreateAssignment)
			assignment.DELETE("/:assignment_id", d.TeamHandler.DeleteAssignment)
		}

		v1.GET("/activity", d.TeamHandler.GetActivity)

		overview := v1.Group("/overview")
		{
			overview.GET("", d.OverviewHandler.GetOverview)
			overview.GET("/snapshot", d.OverviewHandler.GetSnapshot)
		}
	}

	return r
}
