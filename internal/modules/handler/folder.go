package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"github.com/iris-hq/iris-os/internal/modules/serializer"
	"github.com/iris-hq/iris-os/internal/modules/service"
	"gorm.io/gorm"
)

type FolderHandler struct {
	svc service.FolderService
}

func NewFolderHandler(s service.FolderService) *FolderHandler {
	return &FolderHandler{svc: s}
}

// GetFolder godoc
//
//	@Summary		Get folder
//	@Description	Get a folder by its ID
//	@Tags			folder
//	@Accept			json
//	@Produce		json
//	@Param			folder_id	path	string	true	"Folder ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Folder}
//	@Router			/folder/{folder_id} [get]
func (h *FolderHandler) GetFolder(c *gin.Context) {
	folderID := c.Param("folder_id")

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	folder, err := h.svc.Get(c.Request.Context(), ws.ID, folderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: folder})
}

type GetFoldersReq struct {
	ParentID string `form:"parent_id" json:"parent_id"`
	ClientID string `form:"client_id" json:"client_id" binding:"omitempty,uuid"`
}

// GetFolders godoc
//
//	@Summary		List folders
//	@Description	List the children of a folder, or every folder under a client
//	@Tags			folder
//	@Accept			json
//	@Produce		json
//	@Param			parent_id	query	string	false	"Parent folder ID"
//	@Param			client_id	query	string	false	"Client ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Folder}
//	@Router			/folder [get]
func (h *FolderHandler) GetFolders(c *gin.Context) {
	req := GetFoldersReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	var folders []model.Folder
	var err error
	switch {
	case req.ParentID != "":
		folders, err = h.svc.ListChildren(c.Request.Context(), ws.ID, req.ParentID)
	case req.ClientID != "":
		var clientID uuid.UUID
		clientID, err = uuid.Parse(req.ClientID)
		if err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
			return
		}
		folders, err = h.svc.ListByClient(c.Request.Context(), ws.ID, clientID)
	default:
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("parent_id or client_id is required")))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: folders})
}

type RenameFolderReq struct {
	Name string `form:"name" json:"name" binding:"required"`
}

// RenameFolder godoc
//
//	@Summary		Rename folder
//	@Description	Rename a folder. The folder's ID never changes.
//	@Tags			folder
//	@Accept			json
//	@Produce		json
//	@Param			folder_id	path	string					true	"Folder ID"
//	@Param			payload		body	handler.RenameFolderReq	true	"RenameFolder payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/folder/{folder_id} [put]
func (h *FolderHandler) RenameFolder(c *gin.Context) {
	req := RenameFolderReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	if err := h.svc.Rename(c.Request.Context(), ws.ID, c.Param("folder_id"), req.Name); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

// DeleteFolder godoc
//
//	@Summary		Delete folder tree
//	@Description	Delete a folder with all of its descendants and the files filed under them
//	@Tags			folder
//	@Accept			json
//	@Produce		json
//	@Param			folder_id	path	string	true	"Folder ID"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=repo.FolderTreeCounts}
//	@Router			/folder/{folder_id} [delete]
func (h *FolderHandler) DeleteFolder(c *gin.Context) {
	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	counts, err := h.svc.DeleteTree(c.Request.Context(), ws.ID, c.Param("folder_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: counts})
}
