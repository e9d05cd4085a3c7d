package http

import (
	"fmt"
	"net/http"

	"github.com/astek-sistemas/participacao-backend-go/internal/handler/http/response"
	"github.com/astek-sistemas/participacao-backend-go/internal/service/report"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	QuarterSpreadsheet(w http.ResponseWriter, r *http.Request)
	EmployeeStatement(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// QuarterSpreadsheet handles GET /reports/participation/{quarter}/spreadsheet
func (h *reportHandlerImpl) QuarterSpreadsheet(w http.ResponseWriter, r *http.Request) {
	quarter := chi.URLParam(r, "quarter")

	data, err := h.reportService.QuarterSpreadsheet(r.Context(), quarter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=participation-%s.xlsx", quarter))
	w.Write(data)
}

// EmployeeStatement handles GET /reports/participation/{quarter}/statement/{employeeId}
func (h *reportHandlerImpl) EmployeeStatement(w http.ResponseWriter, r *http.Request) {
	quarter := chi.URLParam(r, "quarter")
	employeeID := chi.URLParam(r, "employeeId")

	data, err := h.reportService.EmployeeStatement(r.Context(), employeeID, quarter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=statement-%s.pdf", quarter))
	w.Write(data)
}
