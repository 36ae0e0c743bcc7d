// Package api provides HTTP API handlers for the Kinetrack motion tracking system.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/adikms/kinetrack/internal/store"
)

// AlertHandler handles HTTP requests for alert rule resources.
type AlertHandler struct {
	store *store.Store

	// onChange is invoked after any rule mutation so the notifier can
	// refresh its cached rule set. May be nil.
	onChange func()
}

// NewAlertHandler creates a new AlertHandler with the given store.
func NewAlertHandler(s *store.Store, onChange func()) *AlertHandler {
	return &AlertHandler{store: s, onChange: onChange}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *AlertHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/alerts or /api/alerts/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/alerts")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createAlertRequest struct {
	ClassName string `json:"className"`
	Action    string `json:"action"`
	Command   string `json:"command"`
	Enabled   *bool  `json:"enabled"`
}

type updateAlertRequest struct {
	ClassName string `json:"className"`
	Action    string `json:"action"`
	Command   string `json:"command"`
	Enabled   *bool  `json:"enabled"`
}

type alertResponse struct {
	ID        string `json:"id"`
	ClassName string `json:"className"`
	Action    string `json:"action"`
	Command   string `json:"command"`
	Enabled   bool   `json:"enabled"`
	CreatedAt string `json:"created_at"`
}

type listAlertsResponse struct {
	Alerts []alertResponse `json:"alerts"`
}

// toAlertResponse converts a store.AlertRule to an alertResponse.
func toAlertResponse(rule *store.AlertRule) alertResponse {
	return alertResponse{
		ID:        rule.ID,
		ClassName: rule.ClassName,
		Action:    rule.Action,
		Command:   rule.Command,
		Enabled:   rule.Enabled,
		CreatedAt: rule.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// notifyChange runs the onChange hook if one is set.
func (h *AlertHandler) notifyChange() {
	if h.onChange != nil {
		h.onChange()
	}
}

// list handles GET /api/alerts and returns all alert rules.
func (h *AlertHandler) list(w http.ResponseWriter, r *http.Request) {
	rules, err := h.store.AlertRules().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list alert rules")
		return
	}

	response := listAlertsResponse{
		Alerts: make([]alertResponse, 0, len(rules)),
	}
	for _, rule := range rules {
		response.Alerts = append(response.Alerts, toAlertResponse(rule))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/alerts/{id} and returns a single alert rule.
func (h *AlertHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	rule, err := h.store.AlertRules().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Alert rule not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get alert rule")
		return
	}

	writeJSON(w, http.StatusOK, toAlertResponse(rule))
}

// create handles POST /api/alerts and creates a new alert rule.
func (h *AlertHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ClassName == "" {
		writeError(w, http.StatusBadRequest, "ClassName is required")
		return
	}
	if req.Action == "" {
		writeError(w, http.StatusBadRequest, "Action is required")
		return
	}
	if req.Command == "" {
		writeError(w, http.StatusBadRequest, "Command is required")
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	rule := &store.AlertRule{
		ID:        uuid.New().String(),
		ClassName: req.ClassName,
		Action:    req.Action,
		Command:   req.Command,
		Enabled:   enabled,
	}

	if err := h.store.AlertRules().Create(rule); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create alert rule")
		return
	}

	h.notifyChange()
	writeJSON(w, http.StatusCreated, toAlertResponse(rule))
}

// update handles PUT /api/alerts/{id} and updates an existing alert rule.
func (h *AlertHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	rule, err := h.store.AlertRules().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Alert rule not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get alert rule")
		return
	}

	var req updateAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ClassName != "" {
		rule.ClassName = req.ClassName
	}
	if req.Action != "" {
		rule.Action = req.Action
	}
	if req.Command != "" {
		rule.Command = req.Command
	}
	if req.Enabled != nil {
		rule.Enabled = *req.Enabled
	}

	if err := h.store.AlertRules().Update(rule); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update alert rule")
		return
	}

	h.notifyChange()
	writeJSON(w, http.StatusOK, toAlertResponse(rule))
}

// delete handles DELETE /api/alerts/{id} and removes an alert rule.
func (h *AlertHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.AlertRules().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Alert rule not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete alert rule")
		return
	}

	h.notifyChange()
	w.WriteHeader(http.StatusNoContent)
}
