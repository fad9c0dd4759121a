package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"cruisebooking/internal/domain/models"
	"cruisebooking/internal/http/middleware"
	"cruisebooking/internal/services"
	"cruisebooking/internal/utils"
)

type WizardHandler struct {
	Wizard services.WizardService
	Docs   services.DocsService
}

func (h WizardHandler) svc(c *gin.Context) services.WizardService {
	s := h.Wizard
	s.RequestID = middleware.GetRequestID(c)
	return s
}

// draftResponse wraps the draft with its derived total. The total is
// display data recomputed on demand, never stored on the draft.
func (h WizardHandler) draftResponse(c *gin.Context, draft *models.BookingDraft) gin.H {
	total := decimal.Zero
	if t, err := h.svc(c).Quote(c.Request.Context(), draft); err == nil {
		total = t
	} else {
		utils.LogEvent(middleware.GetRequestID(c), "wizard", "quote_failed", err.Error())
	}
	return gin.H{
		"draft":          draft,
		"totalPrice":     total,
		"totalFormatted": utils.FormatUSD(total),
	}
}

// POST /api/booking/drafts
// Opens the wizard: a fresh draft, prefilled from the session user when
// one is present.
func (h WizardHandler) Open(c *gin.Context) {
	draft, err := h.svc(c).Open(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.draftResponse(c, draft))
}

// GET /api/booking/drafts/:id
func (h WizardHandler) Get(c *gin.Context) {
	draft, err := h.svc(c).Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.draftResponse(c, draft))
}

// PUT /api/booking/drafts/:id/trip
func (h WizardHandler) UpdateTrip(c *gin.Context) {
	var upd services.TripUpdate
	if !BindJSONOrError(c, &upd) {
		return
	}
	draft, err := h.svc(c).UpdateTrip(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.draftResponse(c, draft))
}

// PUT /api/booking/drafts/:id/passengers
func (h WizardHandler) UpdatePassengers(c *gin.Context) {
	var upd services.PassengersUpdate
	if !BindJSONOrError(c, &upd) {
		return
	}
	draft, err := h.svc(c).UpdatePassengers(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.draftResponse(c, draft))
}

// PUT /api/booking/drafts/:id/payment
func (h WizardHandler) UpdatePayment(c *gin.Context) {
	var upd services.PaymentUpdate
	if !BindJSONOrError(c, &upd) {
		return
	}
	draft, err := h.svc(c).UpdatePayment(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.draftResponse(c, draft))
}

// POST /api/booking/drafts/:id/next
func (h WizardHandler) Next(c *gin.Context) {
	draft, err := h.svc(c).Next(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.draftResponse(c, draft))
}

// POST /api/booking/drafts/:id/back
func (h WizardHandler) Back(c *gin.Context) {
	draft, err := h.svc(c).Back(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.draftResponse(c, draft))
}

// POST /api/booking/drafts/:id/submit
func (h WizardHandler) Submit(c *gin.Context) {
	result, err := h.svc(c).Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"stage":        result.Stage,
		"booking_id":   result.BookingID,
		"cabin_number": result.CabinNumber,
		"message":      result.Message,
		"warnings":     result.Warnings,
	})
}

// DELETE /api/booking/drafts/:id
// Closing the modal. Resets everything regardless of outcome.
func (h WizardHandler) Close(c *gin.Context) {
	if err := h.svc(c).Close(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "draft discarded"})
}

// GET /api/booking/drafts/:id/confirmation.pdf
func (h WizardHandler) ConfirmationPDF(c *gin.Context) {
	docs := h.Docs
	docs.RequestID = middleware.GetRequestID(c)
	docs.Wizard = h.svc(c)

	pdf, filename, err := docs.GenerateConfirmation(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
