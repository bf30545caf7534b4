// Package handlers adapts the farm services to HTTP. Each handler binds the
// request, calls one service operation and maps domain errors to statuses.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/thuanlv/eelfarm/internal/domain/models"
)

// writeError maps a domain error onto an HTTP status with a JSON body.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		notFound     *models.NotFoundError
		invalidState *models.InvalidStateError
		insufficient *models.InsufficientStockError
		validation   *models.ValidationError
		transient    *models.TransientStoreError
	)

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error(), "field": validation.Field})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &invalidState):
		c.JSON(http.StatusConflict, gin.H{"error": invalidState.Error()})
	case errors.As(err, &insufficient):
		c.JSON(http.StatusConflict, gin.H{
			"error":     insufficient.Error(),
			"available": insufficient.Available,
			"requested": insufficient.Requested,
		})
	case errors.As(err, &transient):
		logger.Error("store failure", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage temporarily unavailable, retry"})
	default:
		logger.Error("unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// pathID parses the :id path parameter. A malformed id is a validation error.
func pathID(c *gin.Context) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, models.NewValidationError("id", "malformed object id")
	}
	return id, nil
}

// parseID parses a required hex id from a request body field.
func parseID(field, value string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return primitive.NilObjectID, models.NewValidationError(field, "malformed object id")
	}
	return id, nil
}

// parseOptionalID parses a nullable tank reference. The empty string means
// "not tied to a tank" and comes back nil.
func parseOptionalID(field, value string) (*primitive.ObjectID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return nil, models.NewValidationError(field, "malformed object id")
	}
	return &id, nil
}

// bindJSON binds the body and converts bind failures to validation errors.
func bindJSON(c *gin.Context, out any) error {
	if err := c.ShouldBindJSON(out); err != nil {
		return models.NewValidationError("body", err.Error())
	}
	return nil
}
