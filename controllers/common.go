// controllers/common.go
package controllers

import (
	"errors"
	"net/http"

	"garagepro-backend/services"
	"garagepro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentActor rebuilds the acting principal from the context keys set
// by the auth middleware.
func currentActor(c *gin.Context) (services.Actor, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return services.Actor{}, false
	}
	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return services.Actor{}, false
	}

	actor := services.Actor{UserID: userUUID}
	if role, ok := c.Get("role"); ok {
		actor.Role, _ = role.(string)
	}
	if customerID, ok := c.Get("customerId"); ok {
		if s, ok := customerID.(string); ok && s != "" {
			if customerUUID, err := uuid.Parse(s); err == nil {
				actor.CustomerID = &customerUUID
			}
		}
	}
	return actor, true
}

// respondServiceError maps the typed error taxonomy onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch services.KindOf(err) {
	case services.KindValidation:
		status = http.StatusBadRequest
	case services.KindUnauthorized:
		status = http.StatusForbidden
	case services.KindNotFound:
		status = http.StatusNotFound
	case services.KindInvalidTransition, services.KindInvalidState:
		status = http.StatusUnprocessableEntity
	case services.KindAlreadyExists, services.KindAlreadyPaid, services.KindConflict:
		status = http.StatusConflict
	}

	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		body := gin.H{"error": svcErr.Message, "code": string(svcErr.Kind)}
		if svcErr.Field != "" {
			body["field"] = svcErr.Field
		}
		if svcErr.Expected != "" {
			body["expected"] = svcErr.Expected
			body["actual"] = svcErr.Actual
		}
		c.JSON(status, body)
		return
	}
	utils.RespondWithError(c, status, err.Error())
}

// parseIDParam reads a uuid path parameter or writes a 400.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}
