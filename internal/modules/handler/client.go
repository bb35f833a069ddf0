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
	"github.com/iris-hq/iris-os/internal/pkg/paging"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ClientHandler struct {
	svc      service.ClientService
	cascades service.CascadeService
	overview service.OverviewService
}

func NewClientHandler(s service.ClientService, cascades service.CascadeService, overview service.OverviewService) *ClientHandler {
	return &ClientHandler{svc: s, cascades: cascades, overview: overview}
}

type CreateClientReq struct {
	Name    string                 `form:"name" json:"name" binding:"required"`
	Company string                 `form:"company" json:"company"`
	Email   string                 `form:"email" json:"email" binding:"omitempty,email"`
	Phone   string                 `form:"phone" json:"phone"`
	Meta    map[string]interface{} `form:"meta" json:"meta"`
}

// CreateClient godoc
//
//	@Summary		Create client
//	@Description	Create a client and provision its folder subtree
//	@Tags			client
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateClientReq	true	"CreateClient payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Client}
//	@Router			/client [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	req := CreateClientReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	client := model.Client{
		WorkspaceID: ws.ID,
		Name:        req.Name,
		Company:     req.Company,
		Email:       req.Email,
		Phone:       req.Phone,
		Meta:        datatypes.JSONMap(req.Meta),
	}
	if err := h.svc.Create(c.Request.Context(), &client); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: client})
}

type GetClientsReq struct {
	Limit    int    `form:"limit,default=20" json:"limit" binding:"required,min=1,max=200" example:"20"`
	Cursor   string `form:"cursor" json:"cursor"`
	TimeDesc bool   `form:"time_desc,default=false" json:"time_desc" example:"false"`
}

type ListClientsOutput struct {
	Clients    []*model.Client `json:"clients"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

// GetClients godoc
//
//	@Summary		List clients
//	@Description	List clients under the workspace with cursor pagination
//	@Tags			client
//	@Accept			json
//	@Produce		json
//	@Param			limit		query	integer	false	"Limit of clients to return, default 20. Max 200."
//	@Param			cursor		query	string	false	"Cursor for pagination. Use the cursor from the previous response to get the next page."
//	@Param			time_desc	query	string	false	"Order by created_at descending if true, ascending if false (default false)"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=handler.ListClientsOutput}
//	@Router			/client [get]
func (h *ClientHandler) GetClients(c *gin.Context) {
	req := GetClientsReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
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

	clients, err := h.svc.ListWithCursor(c.Request.Context(), ws.ID, afterCreatedAt, afterID, req.Limit, req.TimeDesc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	out := ListClientsOutput{Clients: clients}
	if len(clients) == req.Limit {
		last := clients[len(clients)-1]
		out.NextCursor = paging.EncodeCursor(last.CreatedAt, last.ID)
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// GetClient godoc
//
//	@Summary		Get client
//	@Description	Get a client by its ID
//	@Tags			client
//	@Accept			json
//	@Produce		json
//	@Param			client_id	path	string	true	"Client ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Client}
//	@Router			/client/{client_id} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("client_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	client, err := h.svc.GetByID(c.Request.Context(), ws.ID, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: client})
}

type UpdateClientReq struct {
	Name    string                 `form:"name" json:"name"`
	Company string                 `form:"company" json:"company"`
	Email   string                 `form:"email" json:"email" binding:"omitempty,email"`
	Phone   string                 `form:"phone" json:"phone"`
	Meta    map[string]interface{} `form:"meta" json:"meta"`
}

// UpdateClient godoc
//
//	@Summary		Update client
//	@Description	Update a client's fields
//	@Tags			client
//	@Accept			json
//	@Produce		json
//	@Param			client_id	path	string					true	"Client ID"	Format(uuid)
//	@Param			payload		body	handler.UpdateClientReq	true	"UpdateClient payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/client/{client_id} [put]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	req := UpdateClientReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	clientID, err := uuid.Parse(c.Param("client_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	if err := h.svc.Update(c.Request.Context(), &model.Client{
		ID:          clientID,
		WorkspaceID: ws.ID,
		Name:        req.Name,
		Company:     req.Company,
		Email:       req.Email,
		Phone:       req.Phone,
		Meta:        datatypes.JSONMap(req.Meta),
	}); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

type DeleteClientReq struct {
	DeleteAssets bool   `form:"delete_assets,default=false" json:"delete_assets"`
	Actor        string `form:"actor" json:"actor"`
}

// DeleteClientOutput reports the two deletion phases separately. Records is
// always present on success; Assets is nil unless asset deletion was
// requested, and AssetsError carries a phase-two failure that left the
// record deletion intact.
type DeleteClientOutput struct {
	Records     *service.ClientDeleteResult `json:"records"`
	Assets      *service.AssetDeleteResult  `json:"assets,omitempty"`
	AssetsError string                      `json:"assets_error,omitempty"`
}

// DeleteClient godoc
//
//	@Summary		Delete client
//	@Description	Delete a client and every record under it. With delete_assets, also remove its folders and files in a second independent phase.
//	@Tags			client
//	@Accept			json
//	@Produce		json
//	@Param			client_id		path	string	true	"Client ID"	Format(uuid)
//	@Param			delete_assets	query	boolean	false	"Also delete the client's folders and files (default false)"
//	@Param			actor			query	string	false	"Actor recorded in the audit trail"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=handler.DeleteClientOutput}
//	@Router			/client/{client_id} [delete]
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	req := DeleteClientReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	clientID, err := uuid.Parse(c.Param("client_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ws, ok := c.MustGet("workspace").(*model.Workspace)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("workspace not found")))
		return
	}

	records, err := h.cascades.DeleteClient(c.Request.Context(), ws.ID, clientID, req.Actor, req.DeleteAssets)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	out := DeleteClientOutput{Records: records}
	if req.DeleteAssets {
		assets, aerr := h.cascades.DeleteClientAssets(c.Request.Context(), ws.ID, clientID, req.Actor)
		if aerr != nil {
			// phase one already committed; report the asset failure in-band
			out.AssetsError = aerr.Error()
		} else {
			out.Assets = assets
		}
	}

	h.overview.Invalidate(c.Request.Context(), ws.ID)
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}
