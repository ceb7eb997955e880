package handler

import (
	"clinic-room-allocation/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler of the service
type Handlers struct {
	Allocation *AllocationHandler
	Room       *RoomHandler
	Demand     *DemandHandler
}

// RegisterRoutes mounts the API on r
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "clinic-room-allocation",
		})
	})

	allocation := r.Group("/allocation")
	{
		allocation.POST("/run", h.Allocation.Run)
		allocation.GET("/summary", h.Allocation.Summary)
		allocation.GET("/assignments", h.Allocation.Assignments)
		allocation.GET("/conflicts", h.Allocation.Conflicts)
		allocation.GET("/export", h.Allocation.Export)
	}

	rooms := r.Group("/rooms")
	{
		rooms.GET("", h.Room.GetRooms)
		rooms.GET("/free", h.Room.GetFreeRooms)
		rooms.GET("/specialties", h.Room.GetSpecialties)
		rooms.POST("/import", h.Room.Import)
		rooms.POST("/assisted-checkin", h.Room.AssistedCheckIn)
		rooms.POST("/:id/checkin", h.Room.CheckIn)
		rooms.POST("/:id/checkout", h.Room.CheckOut)
		rooms.GET("/:id/history", h.Room.GetHistory)
	}

	r.POST("/occupancy/sync", h.Allocation.Sync)

	demands := r.Group("/demands")
	{
		demands.GET("", h.Demand.GetDemands)
		demands.POST("", h.Demand.CreateDemand)
		demands.POST("/import", h.Demand.Import)
	}
}
