package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/participation"
	"github.com/astek-sistemas/participacao-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ParticipationHandler interface {
	RecomputeQuarter(w http.ResponseWriter, r *http.Request)
	ListRecords(w http.ResponseWriter, r *http.Request)
	GetRecord(w http.ResponseWriter, r *http.Request)
	UpdateRecord(w http.ResponseWriter, r *http.Request)

	UpsertRevenueConfig(w http.ResponseWriter, r *http.Request)
	GetRevenueConfig(w http.ResponseWriter, r *http.Request)
	ListRevenueConfigs(w http.ResponseWriter, r *http.Request)

	Approve(w http.ResponseWriter, r *http.Request)
	Revoke(w http.ResponseWriter, r *http.Request)
	ListApprovals(w http.ResponseWriter, r *http.Request)
}

type participationHandlerImpl struct {
	participationService participation.ParticipationService
	approvalService      participation.ApprovalService
}

func NewParticipationHandler(
	participationService participation.ParticipationService,
	approvalService participation.ApprovalService,
) ParticipationHandler {
	return &participationHandlerImpl{
		participationService: participationService,
		approvalService:      approvalService,
	}
}

func (h *participationHandlerImpl) RecomputeQuarter(w http.ResponseWriter, r *http.Request) {
	quarter := chi.URLParam(r, "quarter")

	result, err := h.participationService.RecomputeQuarter(r.Context(), quarter)
	if err != nil {
		slog.Error("RecomputeQuarter service error", "error", err, "quarter", quarter)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Quarter recomputed successfully", result)
}

func (h *participationHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	quarter := chi.URLParam(r, "quarter")

	if sectorID := r.URL.Query().Get("sector_id"); sectorID != "" {
		results, err := h.participationService.ListBySectorAndQuarter(r.Context(), sectorID, quarter)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, results)
		return
	}

	results, err := h.participationService.ListByQuarter(r.Context(), quarter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *participationHandlerImpl) GetRecord(w http.ResponseWriter, r *http.Request) {
	quarter := chi.URLParam(r, "quarter")
	employeeID := chi.URLParam(r, "employeeId")

	result, err := h.participationService.GetRecord(r.Context(), employeeID, quarter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *participationHandlerImpl) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	var req participation.UpdateRecordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Quarter = chi.URLParam(r, "quarter")
	req.EmployeeID = chi.URLParam(r, "employeeId")

	result, err := h.participationService.UpdateRecord(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Participation record updated successfully", result)
}

func (h *participationHandlerImpl) UpsertRevenueConfig(w http.ResponseWriter, r *http.Request) {
	var req participation.UpsertRevenueConfigRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.participationService.UpsertRevenueConfig(r.Context(), req)
	if err != nil {
		slog.Error("UpsertRevenueConfig service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Revenue configuration saved successfully", result)
}

func (h *participationHandlerImpl) GetRevenueConfig(w http.ResponseWriter, r *http.Request) {
	quarter := chi.URLParam(r, "quarter")

	result, err := h.participationService.GetRevenueConfig(r.Context(), quarter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *participationHandlerImpl) ListRevenueConfigs(w http.ResponseWriter, r *http.Request) {
	results, err := h.participationService.ListRevenueConfigs(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *participationHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	quarter := chi.URLParam(r, "quarter")
	sectorID := chi.URLParam(r, "sectorId")

	result, err := h.approvalService.Approve(r.Context(), sectorID, quarter)
	if err != nil {
		slog.Error("Approve service error", "error", err, "sector_id", sectorID, "quarter", quarter)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sector approved successfully", result)
}

func (h *participationHandlerImpl) Revoke(w http.ResponseWriter, r *http.Request) {
	quarter := chi.URLParam(r, "quarter")
	sectorID := chi.URLParam(r, "sectorId")

	result, err := h.approvalService.Revoke(r.Context(), sectorID, quarter)
	if err != nil {
		slog.Error("Revoke service error", "error", err, "sector_id", sectorID, "quarter", quarter)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sector approval revoked successfully", result)
}

func (h *participationHandlerImpl) ListApprovals(w http.ResponseWriter, r *http.Request) {
	quarter := chi.URLParam(r, "quarter")

	results, err := h.approvalService.ListByQuarter(r.Context(), quarter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}
