package handlers

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"cruisebooking/internal/http/middleware"
	"cruisebooking/internal/upstream"
	"cruisebooking/internal/utils"
)

// The admin dashboards are plain list/filter/modal-edit screens over the
// remote CRUD endpoints, so they reduce to an authenticated pass-through
// with a resource allowlist.
var adminResources = map[string]string{
	"itineraries":   "itineraries.php",
	"cabins":        "cabins.php",
	"cabin-pricing": "cabin_pricing.php",
	"inventory":     "inventory.php",
	"bookings":      "bookings.php",
	"passengers":    "passengers.php",
	"facilities":    "facilities.php",
	"meals":         "meals.php",
	"enquiries":     "enquiries.php",
}

type AdminHandler struct {
	Client *upstream.Client
}

// Any /api/admin/:resource and /api/admin/:resource/:id
func (h AdminHandler) Forward(c *gin.Context) {
	resource := strings.TrimSpace(c.Param("resource"))
	endpoint, ok := adminResources[resource]
	if !ok {
		RespondError(c, http.StatusNotFound, "unknown admin resource", nil)
		return
	}

	query := url.Values{}
	for key, vals := range c.Request.URL.Query() {
		for _, v := range vals {
			query.Add(key, v)
		}
	}
	if id := strings.TrimSpace(c.Param("id")); id != "" {
		query.Set("id", id)
	}

	var body []byte
	if c.Request.Body != nil {
		data, err := io.ReadAll(c.Request.Body)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "failed to read request body", err)
			return
		}
		body = data
	}

	status, data, err := h.Client.Forward(c.Request.Context(), c.Request.Method, endpoint, query, body)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "admin", "forward",
		c.Request.Method+" "+resource)
	c.Data(status, "application/json", data)
}

// POST /api/enquiries
// The public contact form; persisted by the same remote endpoint the
// admin enquiries screen reads.
func (h AdminHandler) CreateEnquiry(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		RespondError(c, http.StatusBadRequest, "empty body", err)
		return
	}
	status, data, err := h.Client.Forward(c.Request.Context(), http.MethodPost, adminResources["enquiries"], nil, body)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Data(status, "application/json", data)
}
