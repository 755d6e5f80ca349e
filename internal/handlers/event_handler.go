package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sandycove/clubapi/internal/models"
	"github.com/sandycove/clubapi/internal/services"
)

func AddBand(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		var band models.BandRecord
		if err := c.ShouldBindJSON(&band); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("Invalid request body"))
			return
		}
		band.AddedBy = user.Email

		created, err := es.AddBand(c.Request.Context(), &band)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Band added"))
	}
}

func AddTournament(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		var tournament models.TournamentRecord
		if err := c.ShouldBindJSON(&tournament); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("Invalid request body"))
			return
		}
		tournament.CreatedBy = user.Email

		created, err := es.AddTournament(c.Request.Context(), &tournament)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Tournament added"))
	}
}

func CreateEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUser(c); !ok {
			return
		}

		var input models.RemoteEventInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("Invalid request body"))
			return
		}

		token := c.GetString("access_token")
		if err := es.CreateRemoteEvent(c.Request.Context(), token, &input); err != nil {
			c.JSON(http.StatusBadGateway, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(nil, "Event created"))
	}
}
