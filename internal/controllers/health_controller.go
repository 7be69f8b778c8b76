package controllers

import (
	"net/http"

	"github.com/carevantage/staffing-service/internal/dtos"
	"github.com/carevantage/staffing-service/internal/utils"
)

type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

// GET /health
func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthResponse{Status: "ok"})
}
