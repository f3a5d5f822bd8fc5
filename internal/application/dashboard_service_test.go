package application

import (
	"context"
	"testing"
	"time"

	"github.com/example/sounddesk/internal/scheduler"
)

type albumListerStub []Album

func (a albumListerStub) ListAlbums(ctx context.Context, filter AlbumFilter) ([]Album, error) {
	matched := []Album{}
	for _, album := range a {
		if filter.Status != "" && album.Status != filter.Status {
			continue
		}
		matched = append(matched, album)
	}
	return matched, nil
}

type roomListerStub []Room

func (r roomListerStub) ListRooms(ctx context.Context, filter RoomFilter) ([]Room, error) {
	return append([]Room{}, r...), nil
}

type studioProviderStub struct {
	studio Studio
	err    error
}

func (s studioProviderStub) GetStudio(ctx context.Context) (Studio, error) {
	if s.err != nil {
		return Studio{}, s.err
	}
	return s.studio, nil
}

func dashboardFixture() *DashboardService {
	// fixedNow is 2025-03-10, a Monday.
	sessions := &sessionRepoStub{sessions: []Session{
		{ID: "s-today", RoomID: "room-1", Date: "2025-03-10", StartTime: "10:00", EndTime: "12:00", Status: scheduler.StatusScheduled, CreatedAt: fixedNow()},
		{ID: "s-week", RoomID: "room-1", Date: "2025-03-15", StartTime: "14:00", EndTime: "16:00", Status: scheduler.StatusScheduled, CreatedAt: fixedNow().Add(-time.Hour)},
		{ID: "s-later", RoomID: "room-2", Date: "2025-03-20", StartTime: "10:00", EndTime: "11:00", Status: scheduler.StatusScheduled, CreatedAt: fixedNow().Add(-2 * time.Hour)},
		{ID: "s-cancelled", RoomID: "room-1", Date: "2025-03-11", StartTime: "10:00", EndTime: "20:00", Status: scheduler.StatusCancelled, CreatedAt: fixedNow().Add(-3 * time.Hour)},
	}}

	feb := "2025-02-10"
	mar := "2025-03-20"
	invoices := &invoiceRepoStub{invoices: []Invoice{
		{ID: "inv-mar", Status: InvoiceStatusPaid, PaidDate: &mar, Total: 110000, CreatedAt: fixedNow()},
		{ID: "inv-feb", Status: InvoiceStatusPaid, PaidDate: &feb, Total: 55000, CreatedAt: fixedNow()},
		{ID: "inv-fallback", Status: InvoiceStatusPaid, Total: 33000, CreatedAt: fixedNow()},
		{ID: "inv-draft", Status: InvoiceStatusDraft, Total: 999999, CreatedAt: fixedNow()},
	}}

	albums := albumListerStub{
		{ID: "album-active", Title: "First Light", Status: AlbumStatusMixing, CreatedAt: fixedNow()},
		{ID: "album-done", Title: "Archive", Status: AlbumStatusReleased, CreatedAt: fixedNow().Add(-time.Hour)},
	}

	rooms := roomListerStub{
		{ID: "room-1", Name: "A"},
		{ID: "room-2", Name: "B"},
	}

	studio := studioProviderStub{studio: Studio{Name: "SoundDesk", OpenTime: "09:00", CloseTime: "22:00"}}

	return NewDashboardService(sessions, invoices, albums, rooms, studio, fixedNow)
}

func TestDashboardOverview(t *testing.T) {
	service := dashboardFixture()

	data, err := service.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview returned error: %v", err)
	}

	t.Run("today and week windows", func(t *testing.T) {
		if len(data.TodaySessions) != 1 || data.TodaySessions[0].ID != "s-today" {
			t.Fatalf("expected only today's session, got %+v", data.TodaySessions)
		}
		// The Monday..Sunday window spans 03-10 to 03-16.
		if len(data.WeekSessions) != 3 {
			t.Fatalf("expected three sessions this week, got %+v", data.WeekSessions)
		}
	})

	t.Run("monthly revenue uses paid date with created-at fallback", func(t *testing.T) {
		if !almostEqual(data.MonthRevenue, 143000) {
			t.Fatalf("expected March revenue 143000 (paid + fallback), got %v", data.MonthRevenue)
		}
		if !almostEqual(data.MonthRevenueLastMonth, 55000) {
			t.Fatalf("expected February revenue 55000, got %v", data.MonthRevenueLastMonth)
		}
	})

	t.Run("active albums exclude released", func(t *testing.T) {
		if len(data.ActiveAlbums) != 1 || data.ActiveAlbums[0].ID != "album-active" {
			t.Fatalf("expected only the in-production album, got %+v", data.ActiveAlbums)
		}
	})

	t.Run("recent activity feed is newest first and capped", func(t *testing.T) {
		if len(data.RecentActivities) == 0 || len(data.RecentActivities) > 10 {
			t.Fatalf("unexpected feed size %d", len(data.RecentActivities))
		}
		for i := 1; i < len(data.RecentActivities); i++ {
			if data.RecentActivities[i].Date.After(data.RecentActivities[i-1].Date) {
				t.Fatalf("feed not sorted newest first: %+v", data.RecentActivities)
			}
		}
	})
}

func TestRoomUtilization(t *testing.T) {
	service := dashboardFixture()

	items, err := service.RoomUtilization(context.Background(), 2025, time.March)
	if err != nil {
		t.Fatalf("RoomUtilization returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected an entry per room, got %+v", items)
	}

	// Studio hours 09:00-22:00 give 780 minutes/day, 24180 for March.
	// Room A hosts 120 + 120 scheduled minutes; the cancelled session's 600
	// minutes must not count.
	if items[0].RoomID != "room-1" || !almostEqual(items[0].UtilizationPct, 1.0) {
		t.Fatalf("unexpected utilization for room-1: %+v", items[0])
	}
	if items[1].RoomID != "room-2" || !almostEqual(items[1].UtilizationPct, 0.2) {
		t.Fatalf("unexpected utilization for room-2: %+v", items[1])
	}

	t.Run("defaults to ten hour days without a studio profile", func(t *testing.T) {
		bare := NewDashboardService(&sessionRepoStub{}, &invoiceRepoStub{}, albumListerStub{}, roomListerStub{{ID: "room-1", Name: "A"}}, studioProviderStub{err: ErrNotFound}, fixedNow)
		items, err := bare.RoomUtilization(context.Background(), 2025, time.March)
		if err != nil {
			t.Fatalf("RoomUtilization returned error: %v", err)
		}
		if len(items) != 1 || !almostEqual(items[0].UtilizationPct, 0) {
			t.Fatalf("expected zero utilization, got %+v", items)
		}
	})

	t.Run("rejects nonsense months", func(t *testing.T) {
		if _, err := service.RoomUtilization(context.Background(), 2025, time.Month(13)); err == nil {
			t.Fatalf("expected validation error for month 13")
		}
	})
}

func TestRevenueByMonth(t *testing.T) {
	service := dashboardFixture()

	items, err := service.RevenueByMonth(context.Background(), 2025)
	if err != nil {
		t.Fatalf("RevenueByMonth returned error: %v", err)
	}
	if len(items) != 12 {
		t.Fatalf("expected twelve months, got %d", len(items))
	}
	if items[0].Month != "01월" || items[11].Month != "12월" {
		t.Fatalf("unexpected month labels: %q %q", items[0].Month, items[11].Month)
	}
	if !almostEqual(items[1].Revenue, 55000) {
		t.Fatalf("expected February revenue 55000, got %v", items[1].Revenue)
	}
	if !almostEqual(items[2].Revenue, 143000) {
		t.Fatalf("expected March revenue 143000, got %v", items[2].Revenue)
	}
	if !almostEqual(items[0].Revenue, 0) {
		t.Fatalf("expected no January revenue, got %v", items[0].Revenue)
	}
}
