package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront/internal/database"
	"storefront/internal/metrics"
	"storefront/internal/models"
)

type ContactStore interface {
	Insert(ctx context.Context, contact models.Contact) (models.Contact, error)
	ListRecent(ctx context.Context, limit int64) ([]models.Contact, error)
}

// createContactRequest binds JSON bodies and plain HTML form posts alike.
type createContactRequest struct {
	Name    string `json:"name" form:"name" binding:"required"`
	Email   string `json:"email" form:"email" binding:"required"`
	Message string `json:"message" form:"message" binding:"required"`
}

func CreateContact(store ContactStore, logger zerolog.Logger, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/contact"
		defer handlePanic(c, route, logger)

		var req createContactRequest
		if err := c.ShouldBind(&req); err != nil {
			metrics.SubmissionsTotal.WithLabelValues("contact", "invalid").Inc()
			respondValidationError(c, logger, route, "All fields are required.", validationProblems(err))
			return
		}

		contact := models.NewContact(req.Name, req.Email, req.Message, now)
		created, err := store.Insert(c.Request.Context(), contact)
		if err != nil {
			metrics.SubmissionsTotal.WithLabelValues("contact", "failed").Inc()
			respondWithError(c, logger, http.StatusInternalServerError, route, "Server error. Please try again later.", err)
			return
		}

		metrics.SubmissionsTotal.WithLabelValues("contact", "created").Inc()
		logger.Info().Str("route", route).Str("contact_id", created.ID.Hex()).Msg("contact stored")
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Message sent successfully! We will get back to you soon.",
		})
	}
}

// GetContacts lists the most recent submissions, newest first.
func GetContacts(store ContactStore, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/contacts"
		defer handlePanic(c, route, logger)

		contacts, err := store.ListRecent(c.Request.Context(), database.RecentLimit)
		if err != nil {
			respondWithError(c, logger, http.StatusInternalServerError, route, "Failed to fetch contacts.", err)
			return
		}
		if contacts == nil {
			contacts = []models.Contact{}
		}

		logger.Debug().Str("route", route).Int("count", len(contacts)).Msg("returning contacts")
		c.JSON(http.StatusOK, gin.H{"success": true, "data": contacts})
	}
}
