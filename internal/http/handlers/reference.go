package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cruisebooking/internal/services"
	"cruisebooking/internal/upstream"
)

type ReferenceHandler struct {
	Client *upstream.Client
	Wizard services.WizardService
}

// GET /api/itineraries
func (h ReferenceHandler) Itineraries(c *gin.Context) {
	list, err := h.Client.Itineraries(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/cabin-pricing
func (h ReferenceHandler) CabinPricing(c *gin.Context) {
	list, err := h.Client.CabinPricing(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/destinations/:route/cabin-options
// The step-2 selector data: cabin types annotated with unit price and
// live availability.
func (h ReferenceHandler) CabinOptions(c *gin.Context) {
	route := strings.TrimSpace(c.Param("route"))
	if route == "" {
		RespondError(c, http.StatusBadRequest, "destination is required", nil)
		return
	}
	options, err := h.Wizard.CabinOptions(c.Request.Context(), route)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}
