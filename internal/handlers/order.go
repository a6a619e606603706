package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront/internal/database"
	"storefront/internal/events"
	"storefront/internal/metrics"
	"storefront/internal/models"
	"storefront/internal/pricing"
)

type OrderStore interface {
	Insert(ctx context.Context, order models.Order) (models.Order, error)
	ListRecent(ctx context.Context, limit int64) ([]models.Order, error)
}

// Items are only read from JSON bodies; a form-encoded order has no items
// and fails the required check.
type createOrderRequest struct {
	Name  string              `json:"name" form:"name" binding:"required"`
	Email string              `json:"email" form:"email" binding:"required"`
	Phone string              `json:"phone" form:"phone" binding:"required"`
	Items []*models.OrderItem `json:"items" form:"-" binding:"required,min=1"`
}

var errItemsNotObjects = ValidationError{Field: "items", Reason: "must be an array of objects"}

// orderItems rejects null elements, which decode to nil pointers.
func (r createOrderRequest) orderItems() ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		if item == nil {
			return nil, errItemsNotObjects
		}
		items = append(items, *item)
	}
	return items, nil
}

var errNonFiniteTotal = errors.New("order total is not a finite number")

func CreateOrder(store OrderStore, publisher events.Publisher, logger zerolog.Logger, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders"
		defer handlePanic(c, route, logger)

		var req createOrderRequest
		if err := c.ShouldBind(&req); err != nil {
			metrics.SubmissionsTotal.WithLabelValues("order", "invalid").Inc()
			respondValidationError(c, logger, route, "All required fields must be provided.", validationProblems(err))
			return
		}
		items, err := req.orderItems()
		if err != nil {
			metrics.SubmissionsTotal.WithLabelValues("order", "invalid").Inc()
			respondValidationError(c, logger, route, "All required fields must be provided.", validationProblems(err))
			return
		}

		total := pricing.OrderTotal(items)
		if math.IsInf(total, 0) || math.IsNaN(total) {
			metrics.SubmissionsTotal.WithLabelValues("order", "failed").Inc()
			respondWithError(c, logger, http.StatusInternalServerError, route, "Failed to place order.", errNonFiniteTotal)
			return
		}

		order := models.NewOrder(req.Name, req.Email, req.Phone, items, total, now)
		created, err := store.Insert(c.Request.Context(), order)
		if err != nil {
			metrics.SubmissionsTotal.WithLabelValues("order", "failed").Inc()
			respondWithError(c, logger, http.StatusInternalServerError, route, "Failed to place order.", err)
			return
		}
		metrics.SubmissionsTotal.WithLabelValues("order", "created").Inc()

		// The order is already stored; a broker problem must not fail the request.
		if err := publisher.PublishOrderReceived(c.Request.Context(), created); err != nil {
			logger.Warn().Err(err).Str("route", route).Str("order_id", created.ID.Hex()).Msg("order event not published")
		}

		logger.Info().
			Str("route", route).
			Str("order_id", created.ID.Hex()).
			Int("items", len(created.Items)).
			Float64("total", created.Total).
			Msg("order stored")
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Order placed! We will contact you shortly.",
		})
	}
}

func GetOrders(store OrderStore, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders"
		defer handlePanic(c, route, logger)

		orders, err := store.ListRecent(c.Request.Context(), database.RecentLimit)
		if err != nil {
			respondWithError(c, logger, http.StatusInternalServerError, route, "Failed to fetch orders.", err)
			return
		}
		if orders == nil {
			orders = []models.Order{}
		}

		logger.Debug().Str("route", route).Int("count", len(orders)).Msg("returning orders")
		c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
	}
}
