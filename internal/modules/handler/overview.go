package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iris-hq/iris-os/internal/modules/serializer"
	"github.com/iris-hq/iris-os/internal/modules/service"
)

type OverviewHandler struct {
	svc service.OverviewService
}

func NewOverviewHandler(s service.OverviewService) *OverviewHandler {
	return &OverviewHandler{svc: s}
}

// GetOverview godoc
//
//	@Summary		Workspace overview
//	@Description	Per-client rollup of projects, open tasks and storage, composed from a consistent snapshot
//	@Tags			overview
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]views.ClientOverview}
//	@Router			/overview [get]
func (h *OverviewHandler) GetOverview(c *gin.Context) {
	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}

	rows, err := h.svc.Overview(c.Request.Context(), ws.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: rows})
}

// GetSnapshot godoc
//
//	@Summary		Workspace snapshot
//	@Description	One consistent read of every collection in the workspace
//	@Tags			overview
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=views.Snapshot}
//	@Router			/overview/snapshot [get]
func (h *OverviewHandler) GetSnapshot(c *gin.Context) {
	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}

	snap, err := h.svc.Snapshot(c.Request.Context(), ws.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: snap})
}
