package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mgleavitt/lockquests/internal/catalog"
	appErrors "github.com/mgleavitt/lockquests/pkg/errors"
	"github.com/mgleavitt/lockquests/pkg/response"
	"github.com/mgleavitt/lockquests/pkg/validator"
)

// RoomHandler serves the room list, detail, and stats endpoints.
type RoomHandler struct {
	svc *catalog.Service
}

// NewRoomHandler constructs a room handler over the catalog service.
func NewRoomHandler(svc *catalog.Service) (*RoomHandler, error) {
	if svc == nil {
		return nil, errors.New("room handler: catalog service is required")
	}
	return &RoomHandler{svc: svc}, nil
}

// listRoomsQuery mirrors the filter query parameters a directory page pushes
// back into the filter engine.
type listRoomsQuery struct {
	Search       string   `form:"q"`
	Organization string   `form:"organization"`
	Region       string   `form:"region"`
	MinRating    *float64 `form:"min_rating" validate:"omitempty,gte=0,lte=5"`
	Genre        string   `form:"genre"`
	Theme        string   `form:"theme"`
}

// List returns rooms matching the query filters, ordered by id descending.
func (h *RoomHandler) List(c *gin.Context) {
	var query listRoomsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.NewBadRequest("invalid filter parameters"))
		return
	}
	if err := validator.ValidateStruct(query); err != nil {
		response.Error(c, appErrors.NewBadRequest(err.Error()))
		return
	}

	criteria := catalog.Criteria{
		Search:       query.Search,
		Organization: query.Organization,
		Region:       query.Region,
		MinRating:    query.MinRating,
		Genre:        query.Genre,
		Theme:        query.Theme,
	}

	rooms, total, err := h.svc.List(c.Request.Context(), criteria)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, rooms, &response.Meta{
		Total:    total,
		Filtered: len(rooms),
	})
}

// Get returns a single room by its id path parameter.
func (h *RoomHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.NewBadRequest("room id must be an integer"))
		return
	}

	room, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, room)
}

// Stats returns aggregate counts over the full record set.
func (h *RoomHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}
