package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spycce/SmartTrip/models"
)

type ItineraryService interface {
	Proxy(ctx context.Context, prompt string) (string, error)
	Generate(ctx context.Context, req models.GenerateRequest) (*models.GenerateResponse, error)
}

type GenerateController struct {
	itinerary ItineraryService
}

func NewGenerateController(itinerary ItineraryService) *GenerateController {
	return &GenerateController{itinerary: itinerary}
}

// GenerateTrip proxies {prompt} verbatim, or builds the prompt from
// {from, to, startDate, endDate, mode} and returns the parsed plan as well.
func (ctl *GenerateController) GenerateTrip() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var req models.GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request body: "+err.Error())
			return
		}

		if req.Prompt != "" {
			text, err := ctl.itinerary.Proxy(ctx, req.Prompt)
			if err != nil {
				respondError(c, err, "Failed to generate trip plan")
				return
			}
			c.JSON(http.StatusOK, models.GenerateResponse{Text: text})
			return
		}

		if err := validate.Struct(req); err != nil {
			badRequest(c, "Validation error: "+err.Error())
			return
		}
		if req.StartDate.IsZero() || req.EndDate.IsZero() {
			badRequest(c, "startDate and endDate are required")
			return
		}

		res, err := ctl.itinerary.Generate(ctx, req)
		if err != nil {
			respondError(c, err, "Failed to generate trip plan")
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
