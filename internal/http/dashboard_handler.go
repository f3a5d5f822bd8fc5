package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/example/sounddesk/internal/application"
)

type dashboardService interface {
	Overview(ctx context.Context) (application.DashboardData, error)
	RoomUtilization(ctx context.Context, year int, month time.Month) ([]application.RoomUtilizationItem, error)
	RevenueByMonth(ctx context.Context, year int) ([]application.RevenueDataItem, error)
}

// DashboardHandler serves the dashboard overview and reporting endpoints.
type DashboardHandler struct {
	service   dashboardService
	responder responder
	logger    *slog.Logger
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(service dashboardService, logger *slog.Logger) *DashboardHandler {
	base := defaultLogger(logger)
	return &DashboardHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *DashboardHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "DashboardHandler", operation, attrs...)
}

// Overview serves GET /dashboard.
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "Overview")
	data, err := h.service.Overview(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "dashboard aggregation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "dashboard served")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toDashboardDTO(data))
}

// RoomUtilization serves GET /reports/room-utilization with required year and
// month query parameters.
func (h *DashboardHandler) RoomUtilization(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	year, err := strconv.Atoi(query.Get("year"))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, &application.ValidationError{FieldErrors: map[string]string{"year": "must be a number"}})
		return
	}
	month, err := strconv.Atoi(query.Get("month"))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, &application.ValidationError{FieldErrors: map[string]string{"month": "must be a number"}})
		return
	}

	logger := h.log(r.Context(), "RoomUtilization", "year", year, "month", month)
	items, err := h.service.RoomUtilization(r.Context(), year, time.Month(month))
	if err != nil {
		logger.ErrorContext(r.Context(), "room utilization report failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(items)).InfoContext(r.Context(), "room utilization served")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, roomUtilizationResponse{Rooms: toRoomUtilizationDTOs(items)})
}

// Revenue serves GET /reports/revenue with a required year query parameter.
func (h *DashboardHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, &application.ValidationError{FieldErrors: map[string]string{"year": "must be a number"}})
		return
	}

	logger := h.log(r.Context(), "Revenue", "year", year)
	items, err := h.service.RevenueByMonth(r.Context(), year)
	if err != nil {
		logger.ErrorContext(r.Context(), "revenue report failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "revenue report served")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, revenueResponse{Months: toRevenueDTOs(items)})
}

type dashboardDTO struct {
	TodaySessions         []sessionDTO  `json:"todaySessions"`
	WeekSessions          []sessionDTO  `json:"weekSessions"`
	MonthRevenue          float64       `json:"monthRevenue"`
	MonthRevenueLastMonth float64       `json:"monthRevenueLastMonth"`
	ActiveAlbums          []albumDTO    `json:"activeAlbums"`
	RecentActivities      []activityDTO `json:"recentActivities"`
}

func toDashboardDTO(data application.DashboardData) dashboardDTO {
	return dashboardDTO{
		TodaySessions:         toSessionDTOs(data.TodaySessions),
		WeekSessions:          toSessionDTOs(data.WeekSessions),
		MonthRevenue:          data.MonthRevenue,
		MonthRevenueLastMonth: data.MonthRevenueLastMonth,
		ActiveAlbums:          toAlbumDTOs(data.ActiveAlbums),
		RecentActivities:      toActivityDTOs(data.RecentActivities),
	}
}

type activityDTO struct {
	Type        string `json:"type"`
	ID          string `json:"id"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

func toActivityDTOs(items []application.ActivityItem) []activityDTO {
	out := make([]activityDTO, 0, len(items))
	for _, item := range items {
		out = append(out, activityDTO{
			Type:        item.Type,
			ID:          item.ID,
			Description: item.Description,
			Date:        item.Date.UTC().Format(time.RFC3339Nano),
		})
	}
	return out
}

type roomUtilizationResponse struct {
	Rooms []roomUtilizationDTO `json:"rooms"`
}

type roomUtilizationDTO struct {
	RoomID      string  `json:"roomId"`
	RoomName    string  `json:"roomName"`
	Utilization float64 `json:"utilization"`
}

func toRoomUtilizationDTOs(items []application.RoomUtilizationItem) []roomUtilizationDTO {
	out := make([]roomUtilizationDTO, 0, len(items))
	for _, item := range items {
		out = append(out, roomUtilizationDTO{
			RoomID:      item.RoomID,
			RoomName:    item.RoomName,
			Utilization: item.UtilizationPct,
		})
	}
	return out
}

type revenueResponse struct {
	Months []revenueDTO `json:"months"`
}

type revenueDTO struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

func toRevenueDTOs(items []application.RevenueDataItem) []revenueDTO {
	out := make([]revenueDTO, 0, len(items))
	for _, item := range items {
		out = append(out, revenueDTO{Month: item.Month, Revenue: item.Revenue})
	}
	return out
}
