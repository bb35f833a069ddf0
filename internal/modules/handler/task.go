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
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TaskHandler struct {
	svc service.TaskService
}

func NewTaskHandler(s service.TaskService) *TaskHandler {
	return &TaskHandler{svc: s}
}

type CreateTaskReq struct {
	ProjectID   string                 `form:"project_id" json:"project_id" binding:"required,uuid"`
	ClientID    string                 `form:"client_id" json:"client_id" binding:"required,uuid"`
	MilestoneID string                 `form:"milestone_id" json:"milestone_id" binding:"omitempty,uuid"`
	Title       string                 `form:"title" json:"title" binding:"required"`
	Description string                 `form:"description" json:"description"`
	Status      string                 `form:"status,default=todo" json:"status" binding:"omitempty,oneof=todo in_progress review done"`
	Assignee    string                 `form:"assignee" json:"assignee"`
	DueAt       *time.Time             `form:"due_at" json:"due_at"`
	Meta        map[string]interface{} `form:"meta" json:"meta"`
}

// CreateTask godoc
//
//	@Summary		Create task
//	@Description	Create a task, provision its folder and recompute the linked milestone
//	@Tags			task
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateTaskReq	true	"CreateTask payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Task}
//	@Router			/task [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	req := CreateTaskReq{}
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
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	task := model.Task{
		WorkspaceID: ws.ID,
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Assignee:    req.Assignee,
		DueAt:       req.DueAt,
		Meta:        datatypes.JSONMap(req.Meta),
	}
	if req.MilestoneID != "" {
		mid, merr := uuid.Parse(req.MilestoneID)
		if merr != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("", merr))
			return
		}
		task.MilestoneID = &mid
	}

	if err := h.svc.Create(c.Request.Context(), &task, clientID); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: task})
}

type GetTasksReq struct {
	ProjectID      string `form:"project_id" json:"project_id" binding:"required,uuid"`
	IncludeDeleted bool   `form:"include_deleted,default=false" json:"include_deleted"`
}

// GetTasks godoc
//
//	@Summary		List tasks
//	@Description	List tasks under a project. Soft-deleted tasks are excluded unless include_deleted is set.
//	@Tags			task
//	@Accept			json
//	@Produce		json
//	@Param			project_id		query	string	true	"Project ID"	Format(uuid)
//	@Param			include_deleted	query	boolean	false	"Include soft-deleted tasks (default false)"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Task}
//	@Router			/task [get]
func (h *TaskHandler) GetTasks(c *gin.Context) {
	req := GetTasksReq{}
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

	tasks, err := h.svc.ListByProject(c.Request.Context(), ws.ID, projectID, req.IncludeDeleted)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: tasks})
}

// GetTask godoc
//
//	@Summary		Get task
//	@Description	Get a task by its ID. Soft-deleted tasks stay addressable here.
//	@Tags			task
//	@Accept			json
//	@Produce		json
//	@Param			task_id	path	string	true	"Task ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Task}
//	@Router			/task/{task_id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	task, err := h.svc.GetByID(c.Request.Context(), ws.ID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: task})
}

type UpdateTaskReq struct {
	MilestoneID string                 `form:"milestone_id" json:"milestone_id" binding:"omitempty,uuid"`
	Title       string                 `form:"title" json:"title"`
	Description string                 `form:"description" json:"description"`
	Status      string                 `form:"status" json:"status" binding:"omitempty,oneof=todo in_progress review done"`
	Assignee    string                 `form:"assignee" json:"assignee"`
	DueAt       *time.Time             `form:"due_at" json:"due_at"`
	Meta        map[string]interface{} `form:"meta" json:"meta"`
}

// UpdateTask godoc
//
//	@Summary		Update task
//	@Description	Update a task's fields and recompute the milestone it references
//	@Tags			task
//	@Accept			json
//	@Produce		json
//	@Param			task_id	path	string					true	"Task ID"	Format(uuid)
//	@Param			payload	body	handler.UpdateTaskReq	true	"UpdateTask payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/task/{task_id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	req := UpdateTaskReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	taskID, err := uuid.Parse(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	task := model.Task{
		ID:          taskID,
		WorkspaceID: ws.ID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Assignee:    req.Assignee,
		DueAt:       req.DueAt,
		Meta:        datatypes.JSONMap(req.Meta),
	}
	if req.MilestoneID != "" {
		mid, merr := uuid.Parse(req.MilestoneID)
		if merr != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("", merr))
			return
		}
		task.MilestoneID = &mid
	}

	if err := h.svc.Update(c.Request.Context(), &task); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

type DeleteTaskReq struct {
	Hard bool `form:"hard,default=false" json:"hard"`
}

// DeleteTask godoc
//
//	@Summary		Delete task
//	@Description	Soft-delete a task by default. With hard, remove the task together with its folder subtree and files.
//	@Tags			task
//	@Accept			json
//	@Produce		json
//	@Param			task_id	path	string	true	"Task ID"	Format(uuid)
//	@Param			hard	query	boolean	false	"Hard-delete the task and its folder subtree (default false)"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/task/{task_id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	req := DeleteTaskReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	taskID, err := uuid.Parse(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	if req.Hard {
		err = h.svc.HardDelete(c.Request.Context(), ws.ID, taskID)
	} else {
		err = h.svc.SoftDelete(c.Request.Context(), ws.ID, taskID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

// RestoreTask godoc
//
//	@Summary		Restore task
//	@Description	Clear a task's soft-delete flag
//	@Tags			task
//	@Accept			json
//	@Produce		json
//	@Param			task_id	path	string	true	"Task ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/task/{task_id}/restore [post]
func (h *TaskHandler) RestoreTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	if err := h.svc.Restore(c.Request.Context(), ws.ID, taskID); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}
