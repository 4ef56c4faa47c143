package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"retirement-calc/domain"
	"retirement-calc/service"
)

// maxBodyBytes limita el tamaño del body de edición de parámetros
const maxBodyBytes = 64 << 10

type RetirementHandler struct {
	service *service.RetirementService
	logger  *slog.Logger
}

func NewRetirementHandler(service *service.RetirementService, logger *slog.Logger) *RetirementHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RetirementHandler{service: service, logger: logger}
}

// GetRetirement returns the current parameters, projection and display form.
func (h *RetirementHandler) GetRetirement(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, h.service.View())
}

// UpdateParameters applies edits. POST takes raw field text
// ({"currentAge": "40"}) and PUT takes a complete typed parameter set.
func (h *RetirementHandler) UpdateParameters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Validar Content-Type
	contentType := r.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var (
		view domain.RetirementView
		err  error
	)
	if r.Method == http.MethodPost {
		var edits map[string]string
		if err := json.NewDecoder(r.Body).Decode(&edits); err != nil {
			h.logger.Debug("invalid parameter edit body", "error", err)
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		view, err = h.service.Apply(edits)
	} else {
		var params domain.Parameters
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			h.logger.Debug("invalid parameter set body", "error", err)
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		view, err = h.service.Set(params)
	}

	if err != nil {
		if errors.Is(err, service.ErrUnknownField) || errors.Is(err, service.ErrInvalidFrequency) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("updating parameters", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, view)
}

// GetSchedule returns the year-by-year balances up to the retirement age.
func (h *RetirementHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, h.service.Schedule())
}

// Codificar JSON en buffer primero para evitar escribir header si falla
func (h *RetirementHandler) writeJSON(w http.ResponseWriter, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		h.logger.Error("encoding response", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("writing response", "error", err)
	}
}
