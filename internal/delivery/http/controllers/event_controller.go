package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"communitypulse/internal/delivery/http/helpers"
	"communitypulse/internal/delivery/http/middleware"
	"communitypulse/internal/domain"
)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Description string `json:"description"`
	UserID      string `json:"userId"` // optional: absent for unauthenticated submissions
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	for field, value := range map[string]string{
		"title":       c.Title,
		"category":    c.Category,
		"date":        c.Date,
		"time":        c.Time,
		"location":    c.Location,
		"description": c.Description,
	} {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, field+" is required")
		}
	}
	if c.Date != "" {
		if _, err := time.Parse("2006-01-02", c.Date); err != nil {
			errs = append(errs, "date must be YYYY-MM-DD")
		}
	}
	if c.Time != "" {
		if _, err := time.Parse("15:04", c.Time); err != nil {
			errs = append(errs, "time must be HH:MM")
		}
	}
	return errs
}

// PatchEventRequest is the request body for PATCH /events/{id}. All fields
// are optional; a present status triggers an organizer notification.
type PatchEventRequest struct {
	Title       *string `json:"title"`
	Category    *string `json:"category"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// Validate implements Validator.
func (p PatchEventRequest) Validate() []string {
	var errs []string
	if p.Status != nil && !domain.EventStatus(*p.Status).Valid() {
		errs = append(errs, "status must be \"pending\", \"approved\", or \"rejected\"")
	}
	if p.Date != nil {
		if _, err := time.Parse("2006-01-02", *p.Date); err != nil {
			errs = append(errs, "date must be YYYY-MM-DD")
		}
	}
	if p.Time != nil {
		if _, err := time.Parse("15:04", *p.Time); err != nil {
			errs = append(errs, "time must be HH:MM")
		}
	}
	return errs
}

// RegisterInterestRequest is the request body for POST /events/{id}/interest.
type RegisterInterestRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	People int    `json:"people"`
}

// Validate implements Validator.
func (i RegisterInterestRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(i.Email) == "" {
		errs = append(errs, "email is required")
	}
	if i.People < 1 {
		errs = append(errs, "people must be at least 1")
	}
	return errs
}

// EventSuccessResponse is the success response envelope for single-event endpoints.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListResponse is the data object for GET /events.
type EventListResponse struct {
	Events     []*domain.Event        `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// InterestSuccessResponse is the success response envelope for POST /events/{id}/interest.
type InterestSuccessResponse struct {
	Data  *domain.Interest  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventController handles event lifecycle and interest endpoints.
type EventController struct {
	Logger          *slog.Logger
	Service         domain.EventService
	InterestService domain.InterestService
}

// NewEventController creates an EventController with the given logger and services.
func NewEventController(logger *slog.Logger, svc domain.EventService, interestSvc domain.InterestService) *EventController {
	return &EventController{
		Logger:          logger,
		Service:         svc,
		InterestService: interestSvc,
	}
}

// Create godoc
// @Summary Submit a new event
// @Description Create an event with the required fields. The event starts in status "pending" and is not announced to anyone. userId is optional.
// @Tags events
// @Accept json
// @Produce json
// @Param body body CreateEventRequest true "Event fields"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := &domain.Event{
		Title:       strings.TrimSpace(req.Title),
		Category:    strings.TrimSpace(req.Category),
		Date:        req.Date,
		Time:        req.Time,
		Location:    strings.TrimSpace(req.Location),
		Description: req.Description,
		UserID:      req.UserID,
	}
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// List godoc
// @Summary List events
// @Description Paginated list of events, optionally filtered by moderation status.
// @Tags events
// @Produce json
// @Param status query string false "Filter by status: pending, approved, or rejected"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains events and pagination"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	status := r.URL.Query().Get("status")
	events, total, err := c.Service.ListEvents(r.Context(), status, params)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventListResponse{
		Events:     events,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// Get godoc
// @Summary Get an event
// @Description Returns the event with its interests in submission order.
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.GetEventByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Patch godoc
// @Summary Update an event
// @Description Merge the supplied fields into the event. If status is present the organizer is notified by email, even when the value is unchanged. Admin only.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param body body PatchEventRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [patch]
func (c *EventController) Patch(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req PatchEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	patch := domain.EventPatch{
		Title:       req.Title,
		Category:    req.Category,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Description: req.Description,
	}
	if req.Status != nil {
		status := domain.EventStatus(*req.Status)
		patch.Status = &status
	}
	event, err := c.Service.PatchEvent(r.Context(), r.PathValue("id"), callerID, patch)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "admin access required")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Delete godoc
// @Summary Delete an event
// @Description Hard-delete the event and its interests. Idempotent: deleting an unknown id also returns 204. Admin only.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), r.PathValue("id"), callerID); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "admin access required")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RegisterInterest godoc
// @Summary Register interest in an event
// @Description Append an interest submission to the event. No de-duplication and no notification to the organizer.
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param body body RegisterInterestRequest true "Interest fields"
// @Success 201 {object} controllers.InterestSuccessResponse "data contains the stored interest"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id}/interest [post]
func (c *EventController) RegisterInterest(w http.ResponseWriter, r *http.Request) {
	var req RegisterInterestRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	interest := &domain.Interest{
		Name:   strings.TrimSpace(req.Name),
		Email:  strings.TrimSpace(strings.ToLower(req.Email)),
		Phone:  strings.TrimSpace(req.Phone),
		People: req.People,
	}
	stored, err := c.InterestService.RegisterInterest(r.Context(), r.PathValue("id"), interest)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, stored)
}
