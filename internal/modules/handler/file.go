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

type FileHandler struct {
	svc service.FileService
}

func NewFileHandler(s service.FileService) *FileHandler {
	return &FileHandler{svc: s}
}

type UploadFileReq struct {
	ClientID  string `form:"client_id" binding:"required,uuid"`
	ProjectID string `form:"project_id" binding:"omitempty,uuid"`
	TaskID    string `form:"task_id" binding:"omitempty,uuid"`
	Category  string `form:"category,default=document" binding:"omitempty,oneof=document design presentation video image"`
}

// UploadFile godoc
//
//	@Summary		Upload file
//	@Description	Upload a file. The destination folder is resolved from the task, project and category; files with no matching folder are stored unfiled.
//	@Tags			file
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file		formData	file	true	"File payload"
//	@Param			client_id	formData	string	true	"Client ID"	Format(uuid)
//	@Param			project_id	formData	string	false	"Project ID"	Format(uuid)
//	@Param			task_id		formData	string	false	"Task ID"	Format(uuid)
//	@Param			category	formData	string	false	"File category (default document)"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.File}
//	@Router			/file [post]
func (h *FileHandler) UploadFile(c *gin.Context) {
	req := UploadFileReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
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

	upload := service.UploadRequest{
		WorkspaceID: ws.ID,
		ClientID:    clientID,
		Category:    req.Category,
		Header:      fh,
	}
	if req.ProjectID != "" {
		pid, perr := uuid.Parse(req.ProjectID)
		if perr != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("", perr))
			return
		}
		upload.ProjectID = &pid
	}
	if req.TaskID != "" {
		tid, terr := uuid.Parse(req.TaskID)
		if terr != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("", terr))
			return
		}
		upload.TaskID = &tid
	}

	f, err := h.svc.Upload(c.Request.Context(), upload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "upload failed", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: f})
}

type GetFilesReq struct {
	FolderID  string `form:"folder_id" json:"folder_id"`
	ProjectID string `form:"project_id" json:"project_id" binding:"omitempty,uuid"`
}

// GetFiles godoc
//
//	@Summary		List files
//	@Description	List files under a folder or under a project
//	@Tags			file
//	@Accept			json
//	@Produce		json
//	@Param			folder_id	query	string	false	"Folder ID"
//	@Param			project_id	query	string	false	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.File}
//	@Router			/file [get]
func (h *FileHandler) GetFiles(c *gin.Context) {
	req := GetFilesReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	var files []*model.File
	var err error
	switch {
	case req.FolderID != "":
		files, err = h.svc.ListByFolder(c.Request.Context(), ws.ID, req.FolderID)
	case req.ProjectID != "":
		var projectID uuid.UUID
		projectID, err = uuid.Parse(req.ProjectID)
		if err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
			return
		}
		files, err = h.svc.ListByProject(c.Request.Context(), ws.ID, projectID)
	default:
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("folder_id or project_id is required")))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: files})
}

type GetFileURLReq struct {
	ExpireSeconds int `form:"expire_seconds,default=900" json:"expire_seconds" binding:"omitempty,min=60,max=86400"`
}

// GetFileURL godoc
//
//	@Summary		Get file download URL
//	@Description	Get a time-limited presigned download URL for a file
//	@Tags			file
//	@Accept			json
//	@Produce		json
//	@Param			file_id			path	string	true	"File ID"	Format(uuid)
//	@Param			expire_seconds	query	integer	false	"URL lifetime in seconds, default 900"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=string}
//	@Router			/file/{file_id}/url [get]
func (h *FileHandler) GetFileURL(c *gin.Context) {
	req := GetFileURLReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	fileID, err := uuid.Parse(c.Param("file_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	url, err := h.svc.GetURL(c.Request.Context(), ws.ID, fileID, time.Duration(req.ExpireSeconds)*time.Second)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: url})
}

type MoveFileReq struct {
	FolderID *string `form:"folder_id" json:"folder_id"`
}

// MoveFile godoc
//
//	@Summary		Move file
//	@Description	Re-file a file into another folder. A null folder_id detaches the file.
//	@Tags			file
//	@Accept			json
//	@Produce		json
//	@Param			file_id	path	string				true	"File ID"	Format(uuid)
//	@Param			payload	body	handler.MoveFileReq	true	"MoveFile payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/file/{file_id}/move [post]
func (h *FileHandler) MoveFile(c *gin.Context) {
	req := MoveFileReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	fileID, err := uuid.Parse(c.Param("file_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	if err := h.svc.Move(c.Request.Context(), ws.ID, fileID, req.FolderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

// DeleteFile godoc
//
//	@Summary		Delete file
//	@Description	Delete a file's record and its stored payload
//	@Tags			file
//	@Accept			json
//	@Produce		json
//	@Param			file_id	path	string	true	"File ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/file/{file_id} [delete]
func (h *FileHandler) DeleteFile(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("file_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), ws.ID, fileID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}
