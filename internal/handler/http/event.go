package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/event"
	"github.com/astek-sistemas/participacao-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EventHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Import(w http.ResponseWriter, r *http.Request)
}

type eventHandlerImpl struct {
	eventService event.EventService
}

func NewEventHandler(eventService event.EventService) EventHandler {
	return &eventHandlerImpl{
		eventService: eventService,
	}
}

func (h *eventHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req event.CreateEventRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.eventService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance event created successfully", result)
}

func (h *eventHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	quarter := r.URL.Query().Get("quarter")
	if quarter == "" {
		response.BadRequest(w, "quarter query parameter is required", nil)
		return
	}

	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		results, err := h.eventService.ListByEmployeeAndQuarter(r.Context(), employeeID, quarter)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, results)
		return
	}

	results, err := h.eventService.ListByQuarter(r.Context(), quarter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *eventHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.eventService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance event deleted successfully", nil)
}

func (h *eventHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	var req event.ImportEventsRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	summary, err := h.eventService.Import(r.Context(), req)
	if err != nil {
		slog.Error("Import events service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance events imported successfully", summary)
}
