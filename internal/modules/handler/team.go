package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"github.com/iris-hq/iris-os/internal/modules/serializer"
	"github.com/iris-hq/iris-os/internal/modules/service"
	"github.com/iris-hq/iris-os/internal/pkg/paging"
	"gorm.io/datatypes"
)

type TeamHandler struct {
	svc service.TeamService
}

func NewTeamHandler(s service.TeamService) *TeamHandler {
	return &TeamHandler{svc: s}
}

func parseProjectIDQuery(c *gin.Context) (uuid.UUID, bool) {
	projectID, err := uuid.Parse(c.Query("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return uuid.Nil, false
	}
	return projectID, true
}

type CreateMemberReq struct {
	ProjectID string `form:"project_id" json:"project_id" binding:"required,uuid"`
	Name      string `form:"name" json:"name" binding:"required"`
	Email     string `form:"email" json:"email" binding:"omitempty,email"`
	Role      string `form:"role,default=member" json:"role"`
}

// CreateMember godoc
//
//	@Summary		Add project member
//	@Tags			team
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateMemberReq	true	"CreateMember payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Member}
//	@Router			/member [post]
func (h *TeamHandler) CreateMember(c *gin.Context) {
	req := CreateMemberReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	m := model.Member{
		WorkspaceID: ws.ID,
		ProjectID:   projectID,
		Name:        req.Name,
		Email:       req.Email,
		Role:        req.Role,
	}
	if err := h.svc.CreateMember(c.Request.Context(), &m); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: m})
}

// GetMembers godoc
//
//	@Summary		List project members
//	@Tags			team
//	@Accept			json
//	@Produce		json
//	@Param			project_id	query	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Member}
//	@Router			/member [get]
func (h *TeamHandler) GetMembers(c *gin.Context) {
	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}
	projectID, ok := parseProjectIDQuery(c)
	if !ok {
		return
	}

	members, err := h.svc.ListMembers(c.Request.Context(), ws.ID, projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: members})
}

// DeleteMember godoc
//
//	@Summary		Remove project member
//	@Tags			team
//	@Accept			json
//	@Produce		json
//	@Param			member_id	path	string	true	"Member ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/member/{member_id} [delete]
func (h *TeamHandler) DeleteMember(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("member_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteMember(c.Request.Context(), ws.ID, memberID); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

type CreateMarketingAssetReq struct {
	ProjectID string                 `form:"project_id" json:"project_id" binding:"required,uuid"`
	Name      string                 `form:"name" json:"name" binding:"required"`
	Channel   string                 `form:"channel" json:"channel"`
	URL       string                 `form:"url" json:"url" binding:"omitempty,url"`
	Meta      map[string]interface{} `form:"meta" json:"meta"`
}

// CreateMarketingAsset godoc
//
//	@Summary		Create marketing asset
//	@Tags			team
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateMarketingAssetReq	true	"CreateMarketingAsset payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.MarketingAsset}
//	@Router			/marketing-asset [post]
func (h *TeamHandler) CreateMarketingAsset(c *gin.Context) {
	req := CreateMarketingAssetReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	a := model.MarketingAsset{
		WorkspaceID: ws.ID,
		ProjectID:   projectID,
		Name:        req.Name,
		Channel:     req.Channel,
		URL:         req.URL,
		Meta:        datatypes.JSONMap(req.Meta),
	}
	if err := h.svc.CreateMarketingAsset(c.Request.Context(), &a); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: a})
}

// GetMarketingAssets godoc
//
//	@Summary		List marketing assets
//	@Tags			team
//	@Accept			json
//	@Produce		json
//	@Param			project_id	query	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.MarketingAsset}
//	@Router			/marketing-asset [get]
func (h *TeamHandler) GetMarketingAssets(c *gin.Context) {
	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}
	projectID, ok := parseProjectIDQuery(c)
	if !ok {
		return
	}

	assets, err := h.svc.ListMarketingAssets(c.Request.Context(), ws.ID, projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: assets})
}

// DeleteMarketingAsset godoc
//
//	@Summary		Delete marketing asset
//	@Tags			team
//	@Accept			json
//	@Produce		json
//	@Param			asset_id	path	string	true	"Asset ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/marketing-asset/{asset_id} [delete]
func (h *TeamHandler) DeleteMarketingAsset(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("asset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteMarketingAsset(c.Request.Context(), ws.ID, assetID); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

type CreateAssignmentReq struct {
	ProjectID  string     `form:"project_id" json:"project_id" binding:"required,uuid"`
	Freelancer string     `form:"freelancer" json:"freelancer" binding:"required"`
	RateCents  int64      `form:"rate_cents" json:"rate_cents" binding:"min=0"`
	StartsAt   *time.Time `form:"starts_at" json:"starts_at"`
	EndsAt     *time.Time `form:"ends_at" json:"ends_at"`
}

// CreateAssignment godoc
//
//	@Summary		Create freelancer assignment
//	@Tags			team
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateAssignmentReq	true	"CreateAssignment payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.FreelancerAssignment}
//	@Router			/assignment [post]
func (h *TeamHandler) CreateAssignment(c *gin.Context) {
	req := CreateAssignmentReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	a := model.FreelancerAssignment{
		WorkspaceID: ws.ID,
		ProjectID:   projectID,
		Freelancer:  req.Freelancer,
		RateCents:   req.RateCents,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}
	if err := h.svc.CreateAssignment(c.Request.Context(), &a); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: a})
}

// GetAssignments godoc
//
//	@Summary		List freelancer assignments
//	@Tags			team
//	@Accept			json
//	@Produce		json
//	@Param			project_id	query	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.FreelancerAssignment}
//	@Router			/assignment [get]
func (h *TeamHandler) GetAssignments(c *gin.Context) {
	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}
	projectID, ok := parseProjectIDQuery(c)
	if !ok {
		return
	}

	assignments, err := h.svc.ListAssignments(c.Request.Context(), ws.ID, projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: assignments})
}

// DeleteAssignment godoc
//
//	@Summary		Delete freelancer assignment
//	@Tags			team
//	@Accept			json
//	@Produce		json
//	@Param			assignment_id	path	string	true	"Assignment ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/assignment/{assignment_id} [delete]
func (h *TeamHandler) DeleteAssignment(c *gin.Context) {
	assignmentID, err := uuid.Parse(c.Param("assignment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteAssignment(c.Request.Context(), ws.ID, assignmentID); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

type GetActivityReq struct {
	Limit  int    `form:"limit,default=50" json:"limit" binding:"required,min=1,max=200"`
	Cursor string `form:"cursor" json:"cursor"`
}

type ListActivityOutput struct {
	Entries    []*model.ActivityLog `json:"entries"`
	NextCursor string               `json:"next_cursor,omitempty"`
}

// GetActivity godoc
//
//	@Summary		List activity log
//	@Description	List the workspace audit trail, newest first
//	@Tags			team
//	@Accept			json
//	@Produce		json
//	@Param			limit	query	integer	false	"Limit of entries to return, default 50. Max 200."
//	@Param			cursor	query	string	false	"Cursor for pagination"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=handler.ListActivityOutput}
//	@Router			/activity [get]
func (h *TeamHandler) GetActivity(c *gin.Context) {
	req := GetActivityReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := workspaceFromCtx(c)
	if !ok {
		return
	}

	var afterCreatedAt time.Time
	afterID := uuid.Nil
	if req.Cursor != "" {
		var err error
		afterCreatedAt, afterID, err = paging.DecodeCursor(req.Cursor)
		if err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
			return
		}
	}

	entries, err := h.svc.ListActivity(c.Request.Context(), ws.ID, afterCreatedAt, afterID, req.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	out := ListActivityOutput{Entries: entries}
	if len(entries) == req.Limit {
		last := entries[len(entries)-1]
		out.NextCursor = paging.EncodeCursor(last.CreatedAt, last.ID)
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}
