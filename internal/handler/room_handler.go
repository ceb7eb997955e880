package handler

import (
	"net/http"
	"strconv"

	"clinic-room-allocation/internal/service"
	"clinic-room-allocation/pkg/utils"

	"github.com/gin-gonic/gin"
)

const defaultHistoryLimit = 50

type RoomHandler struct {
	inventory *service.InventoryService
	occupancy *service.OccupancyService
}

func NewRoomHandler(inventory *service.InventoryService, occupancy *service.OccupancyService) *RoomHandler {
	return &RoomHandler{
		inventory: inventory,
		occupancy: occupancy,
	}
}

// CheckInRequest is the body of a manual check-in
type CheckInRequest struct {
	Occupant string `json:"occupant" binding:"required"`
}

// AssistedCheckInRequest is the body of an assisted check-in
type AssistedCheckInRequest struct {
	Professional string `json:"professional" binding:"required"`
	Specialty    string `json:"specialty"`
}

// GetRooms lists every room with its live status
func (h *RoomHandler) GetRooms(c *gin.Context) {
	rooms, err := h.inventory.ListRooms(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to fetch rooms")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"rooms": rooms,
		"count": len(rooms),
	})
}

// GetFreeRooms lists rooms that can take an occupant right now
func (h *RoomHandler) GetFreeRooms(c *gin.Context) {
	rooms, err := h.inventory.ListFreeRooms(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to fetch free rooms")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"rooms": rooms,
		"count": len(rooms),
	})
}

func (h *RoomHandler) GetSpecialties(c *gin.Context) {
	index, err := h.inventory.SpecialtyIndex(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to fetch specialty index")
		return
	}

	utils.SuccessResponse(c, index)
}

// Import loads rooms from an uploaded xlsx file (form field "file")
func (h *RoomHandler) Import(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "File is required")
		return
	}
	file, err := fh.Open()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Cannot read uploaded file")
		return
	}
	defer file.Close()

	report, err := h.inventory.ImportRooms(c.Request.Context(), file)
	if err != nil {
		handleServiceError(c, err, "Failed to import rooms")
		return
	}

	utils.SuccessResponse(c, report)
}

func (h *RoomHandler) CheckIn(c *gin.Context) {
	id, ok := parseRoomID(c)
	if !ok {
		return
	}

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	room, err := h.occupancy.CheckIn(c.Request.Context(), id, req.Occupant)
	if err != nil {
		handleServiceError(c, err, "Failed to check in")
		return
	}

	utils.SuccessResponse(c, room)
}

func (h *RoomHandler) CheckOut(c *gin.Context) {
	id, ok := parseRoomID(c)
	if !ok {
		return
	}

	room, err := h.occupancy.CheckOut(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Failed to check out")
		return
	}

	utils.SuccessResponse(c, room)
}

// AssistedCheckIn picks the best free room for a specialty and occupies it
func (h *RoomHandler) AssistedCheckIn(c *gin.Context) {
	var req AssistedCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.occupancy.AssistedCheckIn(c.Request.Context(), req.Professional, req.Specialty)
	if err != nil {
		handleServiceError(c, err, "Failed to run assisted check-in")
		return
	}

	utils.SuccessResponse(c, result)
}

// GetHistory lists the latest live-status transitions of a room
func (h *RoomHandler) GetHistory(c *gin.Context) {
	id, ok := parseRoomID(c)
	if !ok {
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	events, err := h.occupancy.History(c.Request.Context(), id, limit)
	if err != nil {
		handleServiceError(c, err, "Failed to fetch room history")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"events": events,
		"count":  len(events),
	})
}
