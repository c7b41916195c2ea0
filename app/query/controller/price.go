package controller

import (
	"net/http"

	"go.uber.org/zap"
)

// HandlePrice returns the token's USD price, normally served from cache.
// Endpoint: GET /api/price
func (c *Controller) HandlePrice(w http.ResponseWriter, r *http.Request) {
	price, err := c.App.Price.Price(r.Context())
	if err != nil {
		c.App.Logger.Error("price fetch failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "price feed unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"price": price.String(),
	})
}
