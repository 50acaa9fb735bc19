package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"currency-converter/internal/api/middlew"
	"currency-converter/internal/custom_err"
	"currency-converter/internal/models"
	"currency-converter/internal/service"
	"currency-converter/pkg/response"

	"github.com/go-chi/chi/v5"
)

const (
	defaultPageSize = 20
	localISOLayout  = "2006-01-02T15:04:05"
)

type ConversionHandler struct {
	service service.Conversion
}

func NewConversionHandler(service service.Conversion) *ConversionHandler {
	return &ConversionHandler{
		service: service,
	}
}

// Submit godoc
// @Summary      Создать конвертацию
// @Description  Сохраняет конвертацию в статусе PENDING и возвращает её id. Курс и результат рассчитываются асинхронно
// @Tags         conversion
// @Accept       json
// @Produce      json
// @Param        request body models.ConversionRequest true "Данные конвертации"
// @Success      200 {object} models.ConversionCreatedResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /conversion [post]
func (h *ConversionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	const op = "handler.SubmitConversion"
	log := middlew.GetLogger(r.Context())

	defer r.Body.Close()

	var req models.ConversionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, response.CodeInvalidJSON, "Invalid JSON body")
		return
	}

	if err := req.Validate(); err != nil {
		log.Warn("invalid conversion request", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, response.CodeInvalidInput, err.Error())
		return
	}

	id, err := h.service.Submit(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, custom_err.ErrShuttingDown):
			log.Warn("service is shutting down", slog.String("op", op))
			response.WriteJSONError(w, log, http.StatusServiceUnavailable, response.CodeUnavailable, "Service is shutting down")
		default:
			log.Error("failed to submit conversion", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONError(w, log, http.StatusInternalServerError, response.CodeInternal, "An internal error occurred")
		}
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, models.ConversionCreatedResponse{ID: id})
}

// GetByID godoc
// @Summary      Получить конвертацию
// @Description  Возвращает конвертацию по id. Курс и результат заполнены только в статусе DONE
// @Tags         conversion
// @Produce      json
// @Param        id path int true "ID конвертации"
// @Success      200 {object} models.ConversionResult
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /conversion/{id} [get]
func (h *ConversionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	const op = "handler.GetConversion"
	log := middlew.GetLogger(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.WriteJSONError(w, log, http.StatusBadRequest, response.CodeInvalidInput, "Invalid conversion id")
		return
	}

	result, err := h.service.Result(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, custom_err.ErrNotFound):
			log.Info("conversion not found", slog.String("op", op), slog.Int64("conversion_id", id))
			response.WriteJSONError(w, log, http.StatusNotFound, response.CodeNotFound, err.Error())
		default:
			log.Error("failed to get conversion", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONError(w, log, http.StatusInternalServerError, response.CodeInternal, "An internal error occurred")
		}
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, result)
}

// Page godoc
// @Summary      Список конвертаций
// @Description  Возвращает страницу конвертаций, новые первыми. Границы времени включительные
// @Tags         conversion
// @Produce      json
// @Param        page query int false "Номер страницы (с 0)" default(0)
// @Param        size query int false "Размер страницы" default(20)
// @Param        startTime query string false "Начало периода (RFC3339 или 2006-01-02T15:04:05)"
// @Param        endTime query string false "Конец периода (RFC3339 или 2006-01-02T15:04:05)"
// @Success      200 {object} models.ConversionPage
// @Failure      400 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /conversion/page [get]
func (h *ConversionHandler) Page(w http.ResponseWriter, r *http.Request) {
	const op = "handler.ConversionPage"
	log := middlew.GetLogger(r.Context())
	q := r.URL.Query()

	page, err := intParam(q.Get("page"), 0)
	if err != nil || page < 0 {
		response.WriteJSONError(w, log, http.StatusBadRequest, response.CodeInvalidInput, "page must be a non-negative integer")
		return
	}
	size, err := intParam(q.Get("size"), defaultPageSize)
	if err != nil || size <= 0 {
		response.WriteJSONError(w, log, http.StatusBadRequest, response.CodeInvalidInput, "size must be a positive integer")
		return
	}
	if page > math.MaxInt/size {
		response.WriteJSONError(w, log, http.StatusBadRequest, response.CodeInvalidInput, "page is out of range")
		return
	}

	start, err := timeParam(q.Get("startTime"))
	if err != nil {
		response.WriteJSONError(w, log, http.StatusBadRequest, response.CodeInvalidInput, err.Error())
		return
	}
	end, err := timeParam(q.Get("endTime"))
	if err != nil {
		response.WriteJSONError(w, log, http.StatusBadRequest, response.CodeInvalidInput, err.Error())
		return
	}

	result, err := h.service.Page(r.Context(), page, size, start, end)
	if err != nil {
		switch {
		case errors.Is(err, custom_err.ErrInvalidInput):
			response.WriteJSONError(w, log, http.StatusBadRequest, response.CodeInvalidInput, err.Error())
		default:
			log.Error("failed to list conversions", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONError(w, log, http.StatusInternalServerError, response.CodeInternal, "An internal error occurred")
		}
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, result)
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// timeParam принимает RFC3339 или локальное время без зоны.
func timeParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(localISOLayout, raw, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid time %q", raw)
	}
	return &t, nil
}
