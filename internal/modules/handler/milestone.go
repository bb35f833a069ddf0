package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"github.com/iris-hq/iris-os/internal/modules/serializer"
	"github.com/iris-hq/iris-os/internal/modules/service"
	"gorm.io/gorm"
)

type MilestoneHandler struct {
	svc service.MilestoneService
}

func NewMilestoneHandler(s service.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{svc: s}
}

type CreateMilestoneReq struct {
	ProjectID string     `form:"project_id" json:"project_id" binding:"required,uuid"`
	Name      string     `form:"name" json:"name" binding:"required"`
	DueAt     *time.Time `form:"due_at" json:"due_at"`
}

// CreateMilestone godoc
//
//	@Summary		Create milestone
//	@Description	Create a milestone under a project. Progress always starts at zero.
//	@Tags			milestone
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateMilestoneReq	true	"CreateMilestone payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Milestone}
//	@Router			/milestone [post]
func (h *MilestoneHandler) CreateMilestone(c *gin.Context) {
	req := CreateMilestoneReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	m := model.Milestone{
		WorkspaceID: ws.ID,
		ProjectID:   projectID,
		Name:        req.Name,
		DueAt:       req.DueAt,
	}
	if err := h.svc.Create(c.Request.Context(), &m); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: m})
}

type GetMilestonesReq struct {
	ProjectID string `form:"project_id" json:"project_id" binding:"required,uuid"`
}

// GetMilestones godoc
//
//	@Summary		List milestones
//	@Description	List milestones under a project
//	@Tags			milestone
//	@Accept			json
//	@Produce		json
//	@Param			project_id	query	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Milestone}
//	@Router			/milestone [get]
func (h *MilestoneHandler) GetMilestones(c *gin.Context) {
	req := GetMilestonesReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	milestones, err := h.svc.ListByProject(c.Request.Context(), ws.ID, projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: milestones})
}

// GetMilestone godoc
//
//	@Summary		Get milestone
//	@Description	Get a milestone by its ID
//	@Tags			milestone
//	@Accept			json
//	@Produce		json
//	@Param			milestone_id	path	string	true	"Milestone ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Milestone}
//	@Router			/milestone/{milestone_id} [get]
func (h *MilestoneHandler) GetMilestone(c *gin.Context) {
	milestoneID, err := uuid.Parse(c.Param("milestone_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	m, err := h.svc.GetByID(c.Request.Context(), ws.ID, milestoneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: m})
}

type UpdateMilestoneReq struct {
	Name  string     `form:"name" json:"name"`
	DueAt *time.Time `form:"due_at" json:"due_at"`
}

// UpdateMilestone godoc
//
//	@Summary		Update milestone
//	@Description	Update a milestone's name or due date. Progress cannot be set here; it is derived from tasks.
//	@Tags			milestone
//	@Accept			json
//	@Produce		json
//	@Param			milestone_id	path	string						true	"Milestone ID"	Format(uuid)
//	@Param			payload			body	handler.UpdateMilestoneReq	true	"UpdateMilestone payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/milestone/{milestone_id} [put]
func (h *MilestoneHandler) UpdateMilestone(c *gin.Context) {
	req := UpdateMilestoneReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	milestoneID, err := uuid.Parse(c.Param("milestone_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	if err := h.svc.Update(c.Request.Context(), &model.Milestone{
		ID:          milestoneID,
		WorkspaceID: ws.ID,
		Name:        req.Name,
		DueAt:       req.DueAt,
	}); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

// RecalcMilestone godoc
//
//	@Summary		Recalculate milestone progress
//	@Description	Force a recomputation of the milestone's progress from its tasks
//	@Tags			milestone
//	@Accept			json
//	@Produce		json
//	@Param			milestone_id	path	string	true	"Milestone ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=int}
//	@Router			/milestone/{milestone_id}/recalc [post]
func (h *MilestoneHandler) RecalcMilestone(c *gin.Context) {
	milestoneID, err := uuid.Parse(c.Param("milestone_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	percent, err := h.svc.Recalc(c.Request.Context(), ws.ID, milestoneID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: percent})
}
