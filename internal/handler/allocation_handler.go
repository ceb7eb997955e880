package handler

import (
	"clinic-room-allocation/internal/service"
	"clinic-room-allocation/pkg/utils"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AllocationHandler struct {
	planning  *service.PlanningService
	occupancy *service.OccupancyService
}

func NewAllocationHandler(planning *service.PlanningService, occupancy *service.OccupancyService) *AllocationHandler {
	return &AllocationHandler{
		planning:  planning,
		occupancy: occupancy,
	}
}

// PeriodRequest optionally overrides the current weekday/shift, for simulation
type PeriodRequest struct {
	Weekday string `json:"weekday" binding:"omitempty,oneof=MON TUE WED THU FRI SAT SUN"`
	Shift   string `json:"shift" binding:"omitempty,oneof=MORNING AFTERNOON NIGHT"`
}

// Run rebuilds the weekly plan and projects it onto the rooms
func (h *AllocationHandler) Run(c *gin.Context) {
	var req PeriodRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	result, err := h.planning.Reallocate(c.Request.Context(), req.Weekday, req.Shift)
	if err != nil {
		handleServiceError(c, err, "Failed to run allocation")
		return
	}

	utils.SuccessResponse(c, result)
}

// Summary returns the per-specialty rollup of the current plan
func (h *AllocationHandler) Summary(c *gin.Context) {
	summary, err := h.planning.Summary(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to fetch plan summary")
		return
	}

	utils.SuccessResponse(c, summary)
}

func (h *AllocationHandler) Assignments(c *gin.Context) {
	assignments, err := h.planning.Assignments(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to fetch assignments")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"assignments": assignments,
		"count":       len(assignments),
	})
}

func (h *AllocationHandler) Conflicts(c *gin.Context) {
	conflicts, err := h.planning.Conflicts(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to fetch conflicts")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"conflicts": conflicts,
		"count":     len(conflicts),
	})
}

// Export downloads the current plan as an xlsx workbook
func (h *AllocationHandler) Export(c *gin.Context) {
	buf, filename, err := h.planning.ExportPlan(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to export plan")
		return
	}

	utils.AttachmentResponse(c, filename, xlsxContentType, buf.Bytes())
}

// Sync projects the plan of the current (or given) period onto the rooms
func (h *AllocationHandler) Sync(c *gin.Context) {
	var req PeriodRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	result, err := h.occupancy.Sync(c.Request.Context(), req.Weekday, req.Shift)
	if err != nil {
		handleServiceError(c, err, "Failed to synchronize occupancy")
		return
	}

	utils.SuccessResponse(c, result)
}
