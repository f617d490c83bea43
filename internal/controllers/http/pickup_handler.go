package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListPickupPoints(c *gin.Context) {
	points, err := h.pickups.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

func (h *Handler) NearbyPickupPoints(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	points, err := h.pickups.Nearby(c.Request.Context(), c.Query("postalCode"), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

func (h *Handler) GetExchangeRate(c *gin.Context) {
	rate, err := h.rates.Latest(c.Request.Context(), c.Param("target"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rate)
}
