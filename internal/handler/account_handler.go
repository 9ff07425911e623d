package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tabsplit/internal/port"
)

// AccountHandler exposes the broker's ledger and provider catalog.
type AccountHandler struct {
	broker port.ComputeBroker
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(broker port.ComputeBroker) *AccountHandler {
	return &AccountHandler{broker: broker}
}

// Balance handles GET /account/balance
// @Summary Get prepaid ledger balance
// @Tags account
// @Produce json
// @Success 200 {object} map[string]interface{} "Ledger state"
// @Failure 502 {object} ErrorResponse "Broker unreachable"
// @Security BearerAuth
// @Router /account/balance [get]
func (h *AccountHandler) Balance(c *gin.Context) {
	balance, err := h.broker.Balance(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "balance": balance})
}

// Services handles GET /services
// @Summary List known inference providers
// @Tags account
// @Produce json
// @Success 200 {object} map[string]interface{} "Provider catalog"
// @Failure 502 {object} ErrorResponse "Broker unreachable"
// @Security BearerAuth
// @Router /services [get]
func (h *AccountHandler) Services(c *gin.Context) {
	services, err := h.broker.Services(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "services": services})
}
