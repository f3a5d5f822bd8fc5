package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/example/sounddesk/internal/scheduler"
)

// SessionLister exposes session queries for reporting.
type SessionLister interface {
	ListSessions(ctx context.Context, filter SessionFilter) ([]Session, error)
}

// InvoiceLister exposes invoice queries for reporting.
type InvoiceLister interface {
	ListInvoices(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)
}

// AlbumLister exposes album queries for reporting.
type AlbumLister interface {
	ListAlbums(ctx context.Context, filter AlbumFilter) ([]Album, error)
}

// RoomLister exposes room queries for reporting.
type RoomLister interface {
	ListRooms(ctx context.Context, filter RoomFilter) ([]Room, error)
}

// StudioProvider exposes the studio profile, used for operating hours.
type StudioProvider interface {
	GetStudio(ctx context.Context) (Studio, error)
}

// ActivityItem is one entry in the recent activity feed.
type ActivityItem struct {
	Type        string
	ID          string
	Description string
	Date        time.Time
}

// DashboardData aggregates the widgets shown on the dashboard.
type DashboardData struct {
	TodaySessions         []Session
	WeekSessions          []Session
	MonthRevenue          float64
	MonthRevenueLastMonth float64
	ActiveAlbums          []Album
	RecentActivities      []ActivityItem
}

// RoomUtilizationItem reports how heavily one room was used in a month.
type RoomUtilizationItem struct {
	RoomID         string
	RoomName       string
	UtilizationPct float64
}

// RevenueDataItem is one month's paid revenue.
type RevenueDataItem struct {
	Month   string
	Revenue float64
}

// DashboardService aggregates data across the entity services to power the
// dashboard widgets and reports.
type DashboardService struct {
	sessions SessionLister
	invoices InvoiceLister
	albums   AlbumLister
	rooms    RoomLister
	studio   StudioProvider
	now      func() time.Time
	logger   *slog.Logger
}

// NewDashboardService wires dependencies for dashboard aggregation.
func NewDashboardService(sessions SessionLister, invoices InvoiceLister, albums AlbumLister, rooms RoomLister, studio StudioProvider, now func() time.Time) *DashboardService {
	return NewDashboardServiceWithLogger(sessions, invoices, albums, rooms, studio, now, nil)
}

// NewDashboardServiceWithLogger constructs a dashboard service with a specified logger.
func NewDashboardServiceWithLogger(sessions SessionLister, invoices InvoiceLister, albums AlbumLister, rooms RoomLister, studio StudioProvider, now func() time.Time, logger *slog.Logger) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{
		sessions: sessions,
		invoices: invoices,
		albums:   albums,
		rooms:    rooms,
		studio:   studio,
		now:      now,
		logger:   defaultLogger(logger),
	}
}

// weekRange returns the Monday and Sunday of the week containing the date.
// Weeks start on Monday per ISO convention.
func weekRange(date time.Time) (string, string) {
	offset := int(date.Weekday()) - 1
	if offset < 0 {
		offset = 6 // Sunday
	}
	monday := date.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format("2006-01-02"), sunday.Format("2006-01-02")
}

// revenueReference picks the date a paid invoice counts toward: the paid
// date when recorded, otherwise the creation time.
func revenueReference(invoice Invoice) (int, time.Month, bool) {
	if invoice.PaidDate != nil && scheduler.ValidDate(*invoice.PaidDate) {
		parsed, err := time.Parse("2006-01-02", *invoice.PaidDate)
		if err == nil {
			return parsed.Year(), parsed.Month(), true
		}
	}
	if invoice.CreatedAt.IsZero() {
		return 0, 0, false
	}
	return invoice.CreatedAt.Year(), invoice.CreatedAt.Month(), true
}

// Overview aggregates today's and this week's sessions, paid revenue for the
// current and previous month, active albums, and the recent activity feed.
func (s *DashboardService) Overview(ctx context.Context) (data DashboardData, err error) {
	if s == nil {
		err = fmt.Errorf("DashboardService is nil")
		return
	}

	logger := serviceLogger(ctx, s.logger, "DashboardService", "Overview")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to build dashboard", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	now := s.now()
	today := now.Format("2006-01-02")
	weekStart, weekEnd := weekRange(now)

	if data.TodaySessions, err = s.sessions.ListSessions(ctx, SessionFilter{DateFrom: today, DateTo: today}); err != nil {
		return
	}
	if data.WeekSessions, err = s.sessions.ListSessions(ctx, SessionFilter{DateFrom: weekStart, DateTo: weekEnd}); err != nil {
		return
	}

	var paid []Invoice
	if paid, err = s.invoices.ListInvoices(ctx, InvoiceFilter{Status: InvoiceStatusPaid}); err != nil {
		return
	}
	lastMonthDate := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	for _, invoice := range paid {
		year, month, ok := revenueReference(invoice)
		if !ok {
			continue
		}
		if year == now.Year() && month == now.Month() {
			data.MonthRevenue += invoice.Total
		}
		if year == lastMonthDate.Year() && month == lastMonthDate.Month() {
			data.MonthRevenueLastMonth += invoice.Total
		}
	}

	var albums []Album
	if albums, err = s.albums.ListAlbums(ctx, AlbumFilter{}); err != nil {
		return
	}
	data.ActiveAlbums = []Album{}
	for _, album := range albums {
		switch album.Status {
		case AlbumStatusRecording, AlbumStatusMixing, AlbumStatusMastering:
			data.ActiveAlbums = append(data.ActiveAlbums, album)
		}
	}

	if data.RecentActivities, err = s.recentActivities(ctx, albums); err != nil {
		return
	}
	return
}

// recentActivities merges the newest sessions, invoices, and albums into a
// single feed of at most ten entries, newest first.
func (s *DashboardService) recentActivities(ctx context.Context, albums []Album) ([]ActivityItem, error) {
	sessions, err := s.sessions.ListSessions(ctx, SessionFilter{})
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoices.ListInvoices(ctx, InvoiceFilter{})
	if err != nil {
		return nil, err
	}

	sort.Slice(sessions, func(i, j int) bool { return sessions[i].CreatedAt.After(sessions[j].CreatedAt) })
	sort.Slice(invoices, func(i, j int) bool { return invoices[i].CreatedAt.After(invoices[j].CreatedAt) })
	ordered := append([]Album(nil), albums...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].CreatedAt.After(ordered[j].CreatedAt) })

	items := []ActivityItem{}
	for i, session := range sessions {
		if i == 5 {
			break
		}
		items = append(items, ActivityItem{
			Type:        "session",
			ID:          session.ID,
			Description: fmt.Sprintf("세션 예약 (%s %s~%s)", session.Date, session.StartTime, session.EndTime),
			Date:        session.CreatedAt,
		})
	}
	for i, invoice := range invoices {
		if i == 3 {
			break
		}
		verb := "발행"
		if invoice.Status == InvoiceStatusPaid {
			verb = "결제 완료"
		}
		items = append(items, ActivityItem{
			Type:        "invoice",
			ID:          invoice.ID,
			Description: fmt.Sprintf("인보이스 %s (%.0f원)", verb, invoice.Total),
			Date:        invoice.CreatedAt,
		})
	}
	for i, album := range ordered {
		if i == 2 {
			break
		}
		verb := "작업 중"
		if album.Status == AlbumStatusReleased {
			verb = "발매"
		}
		items = append(items, ActivityItem{
			Type:        "album",
			ID:          album.ID,
			Description: fmt.Sprintf("앨범 %q %s", album.Title, verb),
			Date:        album.CreatedAt,
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	if len(items) > 10 {
		items = items[:10]
	}
	return items, nil
}

// RoomUtilization reports, per room, the share of the studio's operating
// minutes booked by non-cancelled sessions in the given month. The studio's
// open and close times bound the daily capacity; without a configured studio
// profile a ten hour day is assumed.
func (s *DashboardService) RoomUtilization(ctx context.Context, year int, month time.Month) (items []RoomUtilizationItem, err error) {
	if s == nil {
		err = fmt.Errorf("DashboardService is nil")
		return
	}

	logger := serviceLogger(ctx, s.logger, "DashboardService", "RoomUtilization", "year", year, "month", int(month))
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to build room utilization", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	if year < 1 || month < time.January || month > time.December {
		vErr := &ValidationError{}
		vErr.add("month", "year and month must name a calendar month")
		err = vErr
		return
	}

	dailyMinutes := 600
	studio, studioErr := s.studio.GetStudio(ctx)
	if studioErr == nil {
		openMin := scheduler.MinuteOfDay(studio.OpenTime)
		closeMin := scheduler.MinuteOfDay(studio.CloseTime)
		if closeMin > openMin {
			dailyMinutes = closeMin - openMin
		}
	} else if !errors.Is(studioErr, ErrNotFound) {
		err = studioErr
		return
	}

	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)
	totalAvailable := dailyMinutes * lastOfMonth.Day()

	var sessions []Session
	sessions, err = s.sessions.ListSessions(ctx, SessionFilter{
		DateFrom: firstOfMonth.Format("2006-01-02"),
		DateTo:   lastOfMonth.Format("2006-01-02"),
	})
	if err != nil {
		return
	}

	minutesByRoom := map[string]int{}
	for _, session := range sessions {
		if session.Status == scheduler.StatusCancelled {
			continue
		}
		if duration := scheduler.DurationMinutes(session.StartTime, session.EndTime); duration > 0 {
			minutesByRoom[session.RoomID] += duration
		}
	}

	var rooms []Room
	rooms, err = s.rooms.ListRooms(ctx, RoomFilter{})
	if err != nil {
		return
	}

	items = make([]RoomUtilizationItem, 0, len(rooms))
	for _, room := range rooms {
		pct := float64(minutesByRoom[room.ID]) / float64(totalAvailable) * 100
		if pct > 100 {
			pct = 100
		}
		items = append(items, RoomUtilizationItem{
			RoomID:         room.ID,
			RoomName:       room.Name,
			UtilizationPct: math.Round(pct*10) / 10,
		})
	}
	return
}

// RevenueByMonth sums paid invoice totals per calendar month of the year.
// The result always has twelve entries, January through December.
func (s *DashboardService) RevenueByMonth(ctx context.Context, year int) ([]RevenueDataItem, error) {
	if s == nil {
		return nil, fmt.Errorf("DashboardService is nil")
	}

	paid, err := s.invoices.ListInvoices(ctx, InvoiceFilter{Status: InvoiceStatusPaid})
	if err != nil {
		return nil, err
	}

	byMonth := make([]float64, 12)
	for _, invoice := range paid {
		invoiceYear, month, ok := revenueReference(invoice)
		if !ok || invoiceYear != year {
			continue
		}
		byMonth[int(month)-1] += invoice.Total
	}

	items := make([]RevenueDataItem, 12)
	for i := range items {
		items[i] = RevenueDataItem{
			Month:   fmt.Sprintf("%02d월", i+1),
			Revenue: byMonth[i],
		}
	}
	return items, nil
}
