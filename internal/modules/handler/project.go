package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"github.com/iris-hq/iris-os/internal/modules/serializer"
	"github.com/iris-hq/iris-os/internal/modules/service"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	svc      service.ProjectService
	cascades service.CascadeService
	overview service.OverviewService
}

func NewProjectHandler(s service.ProjectService, cascades service.CascadeService, overview service.OverviewService) *ProjectHandler {
	return &ProjectHandler{svc: s, cascades: cascades, overview: overview}
}

type CreateProjectReq struct {
	ClientID string                 `form:"client_id" json:"client_id" binding:"required,uuid"`
	Name     string                 `form:"name" json:"name" binding:"required"`
	Code     string                 `form:"code" json:"code"`
	Status   string                 `form:"status,default=active" json:"status" binding:"omitempty,oneof=active on_hold done"`
	Meta     map[string]interface{} `form:"meta" json:"meta"`
}

// CreateProject godoc
//
//	@Summary		Create project
//	@Description	Create a project under a client and provision its folder subtree
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateProjectReq	true	"CreateProject payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Project}
//	@Router			/project [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	req := CreateProjectReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	project := model.Project{
		WorkspaceID: ws.ID,
		ClientID:    clientID,
		Name:        req.Name,
		Code:        req.Code,
		Status:      req.Status,
		Meta:        datatypes.JSONMap(req.Meta),
	}
	if err := h.svc.Create(c.Request.Context(), &project); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: project})
}

type GetProjectsReq struct {
	ClientID        string `form:"client_id" json:"client_id" binding:"required,uuid"`
	IncludeArchived bool   `form:"include_archived,default=false" json:"include_archived"`
}

// GetProjects godoc
//
//	@Summary		List projects
//	@Description	List projects under a client. Archived projects are excluded unless include_archived is set.
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			client_id			query	string	true	"Client ID"	Format(uuid)
//	@Param			include_archived	query	boolean	false	"Include archived projects (default false)"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Project}
//	@Router			/project [get]
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	req := GetProjectsReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	projects, err := h.svc.ListByClient(c.Request.Context(), ws.ID, clientID, req.IncludeArchived)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: projects})
}

// GetProject godoc
//
//	@Summary		Get project
//	@Description	Get a project by its ID
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Project}
//	@Router			/project/{project_id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	project, err := h.svc.GetByID(c.Request.Context(), ws.ID, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: project})
}

type UpdateProjectReq struct {
	Name   string                 `form:"name" json:"name"`
	Code   string                 `form:"code" json:"code"`
	Status string                 `form:"status" json:"status" binding:"omitempty,oneof=active on_hold done"`
	Meta   map[string]interface{} `form:"meta" json:"meta"`
}

// UpdateProject godoc
//
//	@Summary		Update project
//	@Description	Update a project's fields. Archive state is managed by the archive endpoints, not here.
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	string						true	"Project ID"	Format(uuid)
//	@Param			payload		body	handler.UpdateProjectReq	true	"UpdateProject payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/project/{project_id} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	req := UpdateProjectReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	if err := h.svc.Update(c.Request.Context(), &model.Project{
		ID:          projectID,
		WorkspaceID: ws.ID,
		Name:        req.Name,
		Code:        req.Code,
		Status:      req.Status,
		Meta:        datatypes.JSONMap(req.Meta),
	}); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

type DeleteProjectReq struct {
	Actor string `form:"actor" json:"actor"`
}

// DeleteProject godoc
//
//	@Summary		Delete project
//	@Description	Delete a project and every record scoped to it in one transaction
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	Format(uuid)
//	@Param			actor		query	string	false	"Actor recorded in the audit trail"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=repo.ProjectCascadeCounts}
//	@Router			/project/{project_id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	req := DeleteProjectReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	counts, err := h.cascades.DeleteProject(c.Request.Context(), ws.ID, projectID, req.Actor)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	h.overview.Invalidate(c.Request.Context(), ws.ID)
	c.JSON(http.StatusOK, serializer.Response{Data: counts})
}

type ArchiveProjectReq struct {
	Actor string `form:"actor" json:"actor"`
}

// ArchiveProject godoc
//
//	@Summary		Archive project
//	@Description	Move a project's files into its archive folder and flag the project archived
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	Format(uuid)
//	@Param			actor		query	string	false	"Actor recorded on the archived files"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/project/{project_id}/archive [post]
func (h *ProjectHandler) ArchiveProject(c *gin.Context) {
	req := ArchiveProjectReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	if err := h.cascades.ArchiveProject(c.Request.Context(), ws.ID, projectID, req.Actor); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	h.overview.Invalidate(c.Request.Context(), ws.ID)
	c.JSON(http.StatusOK, serializer.Response{})
}

// UnarchiveProject godoc
//
//	@Summary		Unarchive project
//	@Description	Restore an archived project and clear its files' archive flags
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/project/{project_id}/unarchive [post]
func (h *ProjectHandler) UnarchiveProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	if err := h.cascades.UnarchiveProject(c.Request.Context(), ws.ID, projectID, ""); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	h.overview.Invalidate(c.Request.Context(), ws.ID)
	c.JSON(http.StatusOK, serializer.Response{})
}
