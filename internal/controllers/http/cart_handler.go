package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetMyCart(c *gin.Context) {
	actor := actorFromGin(c)
	cart, err := h.carts.GetOrCreateCart(c.Request.Context(), actor.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"cartId": cart.ID,
		"userId": cart.UserID,
		"items":  cart.Items,
		"total":  cart.Total(),
	})
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := actorFromGin(c)
	cart, err := h.carts.AddItem(c.Request.Context(), actor.ID, req.ProductID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"items": cart.Items, "total": cart.Total()})
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	var req RemoveFromCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := actorFromGin(c)
	cart, err := h.carts.RemoveItem(c.Request.Context(), actor.ID, req.ProductID, req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": cart.Items, "total": cart.Total()})
}

func (h *Handler) ClearCart(c *gin.Context) {
	actor := actorFromGin(c)
	if err := h.carts.Clear(c.Request.Context(), actor.ID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
