package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"inforequests/internal/models"
	"inforequests/internal/services"

	"github.com/gin-gonic/gin"
)

// SentAlertHandler exposes sent alert records to the services that deliver alerts
type SentAlertHandler struct {
	sentAlerts *services.SentAlertService
}

func NewSentAlertHandler(sentAlerts *services.SentAlertService) *SentAlertHandler {
	return &SentAlertHandler{sentAlerts: sentAlerts}
}

// Register mounts the sent alert routes on the given router group
func (h *SentAlertHandler) Register(r gin.IRoutes) {
	r.POST("/sent-alerts", h.CreateSentAlert)
	r.GET("/sent-alerts/exists", h.SentAlertExists)
	r.GET("/info-requests/:id/sent-alerts", h.ListSentAlerts)
}

// CreateSentAlert records that an alert was sent
func (h *SentAlertHandler) CreateSentAlert(c *gin.Context) {
	var req models.CreateSentAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input", err)
		return
	}

	alert, err := h.sentAlerts.Create(c.Request.Context(), req.UserID, req.InfoRequestID, req.AlertType)
	if err != nil {
		if errors.Is(err, models.ErrInvalidAlertType) {
			handleError(c, http.StatusUnprocessableEntity, err.Error(), err)
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to record sent alert", err)
		return
	}

	c.JSON(http.StatusCreated, alert)
}

// SentAlertExists reports whether an alert has already been sent
func (h *SentAlertHandler) SentAlertExists(c *gin.Context) {
	userID, err := parseID(c.Query("user_id"))
	if err != nil {
		handleError(c, http.StatusBadRequest, "Invalid user_id", err)
		return
	}
	infoRequestID, err := parseID(c.Query("info_request_id"))
	if err != nil {
		handleError(c, http.StatusBadRequest, "Invalid info_request_id", err)
		return
	}
	alertType := models.AlertType(c.Query("alert_type"))

	exists, err := h.sentAlerts.Exists(c.Request.Context(), userID, infoRequestID, alertType)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to look up sent alert", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

// ListSentAlerts returns every alert sent for an info request
func (h *SentAlertHandler) ListSentAlerts(c *gin.Context) {
	infoRequestID, err := parseID(c.Param("id"))
	if err != nil {
		handleError(c, http.StatusBadRequest, "Invalid info request id", err)
		return
	}

	alerts, err := h.sentAlerts.ListForInfoRequest(c.Request.Context(), infoRequestID)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to list sent alerts", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sent_alerts": alerts})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, strconv.ErrRange
	}
	return uint(id), nil
}
