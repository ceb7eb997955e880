package handler

import (
	"net/http"

	"clinic-room-allocation/internal/service"
	"clinic-room-allocation/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DemandHandler struct {
	demands *service.DemandService
}

func NewDemandHandler(demands *service.DemandService) *DemandHandler {
	return &DemandHandler{demands: demands}
}

// CreateDemandRequest is the body of a manual demand
type CreateDemandRequest struct {
	ProfessionalName string `json:"professional_name" binding:"required"`
	Specialty        string `json:"specialty"`
	Weekday          string `json:"weekday" binding:"required"`
	Shift            string `json:"shift" binding:"required"`
	ResourceType     string `json:"resource_type"`
}

func (h *DemandHandler) GetDemands(c *gin.Context) {
	demands, err := h.demands.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to fetch demands")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"demands": demands,
		"count":   len(demands),
	})
}

// CreateDemand adds a manual demand; it is planned on the next allocation run
func (h *DemandHandler) CreateDemand(c *gin.Context) {
	var req CreateDemandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	demand, err := h.demands.AddManual(c.Request.Context(), service.DemandInput{
		ProfessionalName: req.ProfessionalName,
		Specialty:        req.Specialty,
		Weekday:          req.Weekday,
		Shift:            req.Shift,
		ResourceType:     req.ResourceType,
	})
	if err != nil {
		handleServiceError(c, err, "Failed to create demand")
		return
	}

	utils.CreatedResponse(c, demand)
}

// Import appends demands from an uploaded xlsx file (form field "file")
func (h *DemandHandler) Import(c *gin.Context) {
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

	report, err := h.demands.ImportDemands(c.Request.Context(), file)
	if err != nil {
		handleServiceError(c, err, "Failed to import demands")
		return
	}

	utils.SuccessResponse(c, report)
}
