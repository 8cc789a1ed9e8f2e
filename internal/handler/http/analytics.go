package http

import (
	"net/http"

	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/analytics"
	"github.com/cmlabs-hris/checkin-backend-go/internal/handler/http/response"
)

type AnalyticsHandler interface {
	GetMonthly(w http.ResponseWriter, r *http.Request)
}

type analyticsHandlerImpl struct {
	analyticsService analytics.AnalyticsService
}

func NewAnalyticsHandler(analyticsService analytics.AnalyticsService) AnalyticsHandler {
	return &analyticsHandlerImpl{analyticsService: analyticsService}
}

func (h *analyticsHandlerImpl) GetMonthly(w http.ResponseWriter, r *http.Request) {
	result, err := h.analyticsService.GetMonthly(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
