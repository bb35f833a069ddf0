package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/serializer"
	"github.com/iris-hq/iris-os/internal/modules/service"
)

type WorkspaceHandler struct {
	svc service.WorkspaceService
}

func NewWorkspaceHandler(s service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{svc: s}
}

type CreateWorkspaceReq struct {
	Name string `form:"name" json:"name" binding:"required"`
}

// CreateWorkspace godoc
//
//	@Summary		Create workspace
//	@Description	Create a workspace and mint its secret key. The key is returned only in this response.
//	@Tags			workspace
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateWorkspaceReq	true	"CreateWorkspace payload"
//	@Security		RootBearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Workspace}
//	@Router			/admin/workspace [post]
func (h *WorkspaceHandler) CreateWorkspace(c *gin.Context) {
	req := CreateWorkspaceReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, err := h.svc.Create(c.Request.Context(), req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: ws})
}

// DeleteWorkspace godoc
//
//	@Summary		Delete workspace
//	@Description	Delete a workspace by its ID
//	@Tags			workspace
//	@Accept			json
//	@Produce		json
//	@Param			workspace_id	path	string	true	"Workspace ID"	Format(uuid)
//	@Security		RootBearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/admin/workspace/{workspace_id} [delete]
func (h *WorkspaceHandler) DeleteWorkspace(c *gin.Context) {
	id, err := uuid.Parse(c.Param("workspace_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}
