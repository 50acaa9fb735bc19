package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"currency-converter/internal/api/middlew"
	"currency-converter/internal/custom_err"
	"currency-converter/internal/models"
	"currency-converter/internal/service"
	"currency-converter/pkg/response"
)

type AdminHandler struct {
	service service.Auth
}

func NewAdminHandler(service service.Auth) *AdminHandler {
	return &AdminHandler{
		service: service,
	}
}

// Login godoc
// @Summary      Авторизация администратора
// @Description  Проверяет пароль администратора и возвращает JWT токен
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body models.AdminLoginRequest true "Пароль администратора"
// @Success      200 {object} models.LoginResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /admin/login [post]
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "handler.AdminLogin"
	log := middlew.GetLogger(r.Context())

	defer r.Body.Close()

	var req models.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid JSON body", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, response.CodeInvalidJSON, "Invalid JSON body")
		return
	}

	if req.Password == "" {
		log.Warn("password is required", slog.String("op", op))
		response.WriteJSONError(w, log, http.StatusBadRequest, response.CodeInvalidField, "password is required")
		return
	}

	log.Info("admin login attempt", slog.String("op", op))

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, custom_err.ErrInvalidCredentials):
			log.Info("invalid credentials", slog.String("op", op))
			response.WriteJSONError(w, log, http.StatusUnauthorized, response.CodeInvalidCredentials, "Invalid password")
		case errors.Is(err, custom_err.ErrInvalidInput):
			log.Warn("invalid input", slog.String("op", op))
			response.WriteJSONError(w, log, http.StatusBadRequest, response.CodeInvalidInput, "Invalid input data")
		default:
			log.Error("failed to login admin", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONError(w, log, http.StatusInternalServerError, response.CodeInternal, "An internal error occurred")
		}
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, resp)
}
