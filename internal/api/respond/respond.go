// Package respond centralizes JSON responses for the HTTP API.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/wb-go/wbf/zlog"
)

type errorResponse struct {
	Error string `json:"error"`
}

type createdResponse struct {
	ID any `json:"id"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

// OK writes v as-is with status 200.
func OK(w http.ResponseWriter, v any) {
	JSON(w, http.StatusOK, v)
}

// Created writes {"id": id} with status 201.
func Created(w http.ResponseWriter, id any) {
	JSON(w, http.StatusCreated, createdResponse{ID: id})
}

// Fail writes {"error": msg} with the given status code.
func Fail(w http.ResponseWriter, code int, err error) {
	JSON(w, code, errorResponse{Error: err.Error()})
}
