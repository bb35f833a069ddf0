package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"github.com/iris-hq/iris-os/internal/modules/serializer"
	"github.com/iris-hq/iris-os/internal/modules/service"
	"gorm.io/datatypes"
)

type CRMHandler struct {
	svc service.CRMService
}

func NewCRMHandler(s service.CRMService) *CRMHandler {
	return &CRMHandler{svc: s}
}

type CreateSocialLinkReq struct {
	ClientID string `form:"client_id" json:"client_id" binding:"required,uuid"`
	Platform string `form:"platform" json:"platform" binding:"required"`
	URL      string `form:"url" json:"url" binding:"required,url"`
	Handle   string `form:"handle" json:"handle"`
}

// CreateSocialLink godoc
//
//	@Summary		Create social link
//	@Tags			crm
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateSocialLinkReq	true	"CreateSocialLink payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.SocialLink}
//	@Router			/social-link [post]
func (h *CRMHandler) CreateSocialLink(c *gin.Context) {
	req := CreateSocialLinkReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	link := model.SocialLink{
		WorkspaceID: ws.ID,
		ClientID:    clientID,
		Platform:    req.Platform,
		URL:         req.URL,
		Handle:      req.Handle,
	}
	if err := h.svc.CreateSocialLink(c.Request.Context(), &link); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: link})
}

// GetSocialLinks godoc
//
//	@Summary		List social links
//	@Tags			crm
//	@Accept			json
//	@Produce		json
//	@Param			client_id	query	string	true	"Client ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.SocialLink}
//	@Router			/social-link [get]
func (h *CRMHandler) GetSocialLinks(c *gin.Context) {
	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}
	clientID, ok := parseClientIDQuery(c)
	if !ok {
		return
	}

	links, err := h.svc.ListSocialLinks(c.Request.Context(), ws.ID, clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: links})
}

// DeleteSocialLink godoc
//
//	@Summary		Delete social link
//	@Tags			crm
//	@Accept			json
//	@Produce		json
//	@Param			link_id	path	string	true	"Social link ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/social-link/{link_id} [delete]
func (h *CRMHandler) DeleteSocialLink(c *gin.Context) {
	linkID, err := uuid.Parse(c.Param("link_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteSocialLink(c.Request.Context(), ws.ID, linkID); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

type CreateNoteReq struct {
	ClientID string                 `form:"client_id" json:"client_id" binding:"required,uuid"`
	Title    string                 `form:"title" json:"title"`
	Body     string                 `form:"body" json:"body" binding:"required"`
	Author   string                 `form:"author" json:"author"`
	Meta     map[string]interface{} `form:"meta" json:"meta"`
}

// CreateNote godoc
//
//	@Summary		Create note
//	@Tags			crm
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateNoteReq	true	"CreateNote payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Note}
//	@Router			/note [post]
func (h *CRMHandler) CreateNote(c *gin.Context) {
	req := CreateNoteReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	note := model.Note{
		WorkspaceID: ws.ID,
		ClientID:    clientID,
		Title:       req.Title,
		Body:        req.Body,
		Author:      req.Author,
		Meta:        datatypes.JSONMap(req.Meta),
	}
	if err := h.svc.CreateNote(c.Request.Context(), &note); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: note})
}

// GetNotes godoc
//
//	@Summary		List notes
//	@Tags			crm
//	@Accept			json
//	@Produce		json
//	@Param			client_id	query	string	true	"Client ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Note}
//	@Router			/note [get]
func (h *CRMHandler) GetNotes(c *gin.Context) {
	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}
	clientID, ok := parseClientIDQuery(c)
	if !ok {
		return
	}

	notes, err := h.svc.ListNotes(c.Request.Context(), ws.ID, clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: notes})
}

// DeleteNote godoc
//
//	@Summary		Delete note
//	@Tags			crm
//	@Accept			json
//	@Produce		json
//	@Param			note_id	path	string	true	"Note ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/note/{note_id} [delete]
func (h *CRMHandler) DeleteNote(c *gin.Context) {
	noteID, err := uuid.Parse(c.Param("note_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteNote(c.Request.Context(), ws.ID, noteID); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

type CreateMeetingReq struct {
	ClientID    string     `form:"client_id" json:"client_id" binding:"required,uuid"`
	Title       string     `form:"title" json:"title" binding:"required"`
	ScheduledAt *time.Time `form:"scheduled_at" json:"scheduled_at"`
	Location    string     `form:"location" json:"location"`
	Notes       string     `form:"notes" json:"notes"`
}

// CreateMeeting godoc
//
//	@Summary		Create meeting
//	@Description	Create a meeting and provision its folder under the client's meetings root
//	@Tags			crm
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateMeetingReq	true	"CreateMeeting payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Meeting}
//	@Router			/meeting [post]
func (h *CRMHandler) CreateMeeting(c *gin.Context) {
	req := CreateMeetingReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	meeting := model.Meeting{
		WorkspaceID: ws.ID,
		ClientID:    clientID,
		Title:       req.Title,
		ScheduledAt: req.ScheduledAt,
		Location:    req.Location,
		Notes:       req.Notes,
	}
	if err := h.svc.CreateMeeting(c.Request.Context(), &meeting); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: meeting})
}

// GetMeetings godoc
//
//	@Summary		List meetings
//	@Tags			crm
//	@Accept			json
//	@Produce		json
//	@Param			client_id	query	string	true	"Client ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Meeting}
//	@Router			/meeting [get]
func (h *CRMHandler) GetMeetings(c *gin.Context) {
	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}
	clientID, ok := parseClientIDQuery(c)
	if !ok {
		return
	}

	meetings, err := h.svc.ListMeetings(c.Request.Context(), ws.ID, clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: meetings})
}

// DeleteMeeting godoc
//
//	@Summary		Delete meeting
//	@Tags			crm
//	@Accept			json
//	@Produce		json
//	@Param			meeting_id	path	string	true	"Meeting ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/meeting/{meeting_id} [delete]
func (h *CRMHandler) DeleteMeeting(c *gin.Context) {
	meetingID, err := uuid.Parse(c.Param("meeting_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteMeeting(c.Request.Context(), ws.ID, meetingID); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}
