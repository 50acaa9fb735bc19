package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"currency-converter/internal/api/middlew"
	"currency-converter/internal/custom_err"
	"currency-converter/internal/service"
	"currency-converter/pkg/response"
)

type RatesHandler struct {
	service service.Rates
}

func NewRatesHandler(service service.Rates) *RatesHandler {
	return &RatesHandler{
		service: service,
	}
}

// GetRates godoc
// @Summary      Текущие курсы
// @Description  Возвращает текущий снимок таблицы курсов относительно базовой валюты
// @Tags         rates
// @Produce      json
// @Success      200 {object} models.RatesResponse
// @Router       /rates [get]
func (h *RatesHandler) GetRates(w http.ResponseWriter, r *http.Request) {
	log := middlew.GetLogger(r.Context())
	response.WriteJSONSuccess(w, log, http.StatusOK, h.service.Current())
}

// Refresh godoc
// @Summary      Обновить курсы
// @Description  Загружает свежий курс ЕЦБ и публикует новое поколение таблицы
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} models.RefreshResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      502 {object} response.ErrorResponse
// @Router       /admin/rates/refresh [post]
func (h *RatesHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	const op = "handler.RefreshRates"
	log := middlew.GetLogger(r.Context())

	log.Info("принудительное обновление курсов", slog.String("op", op))

	resp, err := h.service.Refresh(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, custom_err.ErrRatesNotLoaded):
			log.Warn("rate feed returned no rates", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONError(w, log, http.StatusBadGateway, response.CodeRatesUnavailable, "Rate feed returned no rates")
		default:
			log.Error("failed to refresh rates", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONError(w, log, http.StatusBadGateway, response.CodeRatesUnavailable, "Failed to refresh rates")
		}
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, resp)
}
