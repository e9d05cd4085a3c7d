package http

import (
	"encoding/json"
	"net/http"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/sector"
	"github.com/astek-sistemas/participacao-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SectorHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type sectorHandlerImpl struct {
	sectorService sector.SectorService
}

func NewSectorHandler(sectorService sector.SectorService) SectorHandler {
	return &sectorHandlerImpl{
		sectorService: sectorService,
	}
}

func (h *sectorHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req sector.CreateSectorRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.sectorService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Sector created successfully", result)
}

func (h *sectorHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.sectorService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *sectorHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.sectorService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *sectorHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req sector.UpdateSectorRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.sectorService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sector updated successfully", result)
}

func (h *sectorHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.sectorService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sector deleted successfully", nil)
}
