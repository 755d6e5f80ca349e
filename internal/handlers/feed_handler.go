package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sandycove/clubapi/internal/helpers"
	"github.com/sandycove/clubapi/internal/models"
	"github.com/sandycove/clubapi/internal/services"
)

func currentUser(c *gin.Context) (*helpers.EnhancedClaims, bool) {
	claims, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("Unauthorized"))
		return nil, false
	}
	userClaims, ok := claims.(*helpers.EnhancedClaims)
	if !ok {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("Invalid user claims"))
		return nil, false
	}
	return userClaims, true
}

func GetUpcomingEvents(f *services.FeedService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUser(c); !ok {
			return
		}

		limit := 0
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("limit must be a positive integer"))
				return
			}
			limit = parsed
		}

		events, err := f.UpcomingFeed(c.Request.Context(), time.Now(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.ListResponse(events, len(events)))
	}
}

func GetUpcomingMusic(f *services.FeedService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUser(c); !ok {
			return
		}

		events := f.UpcomingMusic(c.Request.Context(), time.Now(), 0)
		c.JSON(http.StatusOK, models.ListResponse(events, len(events)))
	}
}

func RSVPToEvent(f *services.FeedService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		eventId := helpers.StringTrim(c.Param("id"))

		var reqBody struct {
			DisplayName string `json:"display_name"`
		}
		// Body is optional; the display name falls back to the claims.
		_ = c.ShouldBindJSON(&reqBody)

		displayName := reqBody.DisplayName
		if displayName == "" {
			displayName = user.DisplayName
		}

		result := f.RSVP(c.Request.Context(), eventId, user.UserID, displayName)
		switch {
		case result.SignInRequired:
			c.JSON(http.StatusUnauthorized, result)
		case !result.Success:
			c.JSON(http.StatusInternalServerError, result)
		default:
			c.JSON(http.StatusOK, result)
		}
	}
}

func GetEventAttendees(a *services.AttendanceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUser(c); !ok {
			return
		}
		eventId := helpers.StringTrim(c.Param("id"))

		attendees, err := a.Attendees(c.Request.Context(), eventId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.ListResponse(attendees, len(attendees)))
	}
}
