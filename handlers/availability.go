package handlers

import (
	"net/http"
	"time"

	"zagroda/utils"

	"github.com/gin-gonic/gin"
)

// GetAvailability lists bookable rooms with computed pricing for a stay.
// GET /api/booking/availability?checkIn=YYYY-MM-DD&checkOut=YYYY-MM-DD
func GetAvailability(c *gin.Context) {
	checkIn := c.Query("checkIn")
	checkOut := c.Query("checkOut")
	if checkIn == "" || checkOut == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "checkIn and checkOut are required"})
		return
	}
	if _, err := time.Parse("2006-01-02", checkIn); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkIn date, expected YYYY-MM-DD"})
		return
	}
	if _, err := time.Parse("2006-01-02", checkOut); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkOut date, expected YYYY-MM-DD"})
		return
	}
	if checkOut <= checkIn {
		c.JSON(http.StatusBadRequest, gin.H{"error": "checkOut must be after checkIn"})
		return
	}

	result, err := PMS.Availability(c.Request.Context(), checkIn, checkOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "failed to fetch availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetRoomImages returns a room's photo gallery.
// GET /api/booking/rooms/:roomId/images?type=gallery
func GetRoomImages(c *gin.Context) {
	roomID := c.Param("roomId")
	images, err := PMS.RoomImages(c.Request.Context(), roomID, c.Query("type"))
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "failed to fetch room images", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": images})
}
