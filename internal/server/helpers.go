package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"indusrobotix/storefront/internal/controller"
	"indusrobotix/storefront/internal/domain"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func toHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, domain.ErrProductNotFound.Error()
	case errors.Is(err, controller.ErrCompareFull):
		return http.StatusConflict, controller.ErrCompareFull.Error()
	case errors.Is(err, domain.ErrUnknownDiscount):
		return http.StatusBadRequest, domain.ErrUnknownDiscount.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func writeError(w http.ResponseWriter, err error) {
	code, msg := toHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ErrorResponse{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
