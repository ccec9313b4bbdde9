package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-appointment-booking/internal/domain"
	"github.com/KasumiMercury/primind-appointment-booking/internal/service/booking"
	"github.com/KasumiMercury/primind-appointment-booking/internal/service/calendar"
	"github.com/KasumiMercury/primind-appointment-booking/internal/service/normalize"
	"github.com/KasumiMercury/primind-appointment-booking/internal/service/provider"
	"github.com/KasumiMercury/primind-appointment-booking/internal/service/slot"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var feedRecords = []domain.RawAvailability{
	{Name: "Dr. Test", Timezone: "UTC", DayOfWeek: "Monday", AvailableAt: "9:00AM", AvailableUntil: "10:00AM"},
	{Name: "Dr. Test", Timezone: "UTC", DayOfWeek: "Monday", AvailableAt: "noon", AvailableUntil: "1:00PM"},
	{Name: "Dr. Other", Timezone: "UTC", DayOfWeek: "Tuesday", AvailableAt: "1:00PM", AvailableUntil: "2:00PM"},
}

func sequentialIDs(prefix string) domain.IDGenerator {
	n := 0
	return func() string {
		n++
		return prefix + "-" + string(rune('0'+n))
	}
}

type testServer struct {
	router  *gin.Engine
	catalog *provider.Catalog
	ledger  *booking.Ledger
}

func newTestServer(t *testing.T, feed domain.ProviderFeed) *testServer {
	t.Helper()

	catalog := provider.NewCatalog(feed, normalize.NewNormalizer(sequentialIDs("id")), time.Minute, nil)
	ledger := booking.NewLedger(nil)
	window := calendar.NewWindow(7, func() time.Time {
		return time.Date(2026, 1, 20, 15, 0, 0, 0, time.UTC)
	}, time.UTC)
	service := booking.NewService(catalog, slot.NewGenerator(), window, ledger, sequentialIDs("b"), nil, nil, nil)

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"),
		NewProviderHandler(catalog, service),
		NewCalendarHandler(window),
		NewBookingHandler(service),
	)

	return &testServer{router: router, catalog: catalog, ledger: ledger}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func loadedServer(t *testing.T) *testServer {
	t.Helper()
	ctrl := gomock.NewController(t)
	feed := domain.NewMockProviderFeed(ctrl)
	feed.EXPECT().FetchAvailability(gomock.Any()).Return(feedRecords, nil).Times(1)

	s := newTestServer(t, feed)
	if err := s.catalog.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	s.ledger.Hydrate(nil)
	return s
}

func TestProviderHandler_ListWhileLoading(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := newTestServer(t, domain.NewMockProviderFeed(ctrl))

	w := s.do(http.MethodGet, "/api/v1/providers", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	if got := decode[ErrorResponse](t, w); got.Error != "loading" {
		t.Errorf("error = %q, want loading", got.Error)
	}
}

func TestProviderHandler_ListFeedFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := domain.NewMockProviderFeed(ctrl)
	feed.EXPECT().FetchAvailability(gomock.Any()).Return(nil, &domain.FetchError{
		URL:        "http://feed",
		StatusCode: http.StatusInternalServerError,
	})

	s := newTestServer(t, feed)
	_ = s.catalog.Load(context.Background())

	w := s.do(http.MethodGet, "/api/v1/providers", "")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	if got := decode[ErrorResponse](t, w); got.Error != "feed_error" {
		t.Errorf("error = %q, want feed_error", got.Error)
	}
}

func TestProviderHandler_ListWithBookedCount(t *testing.T) {
	s := loadedServer(t)
	s.ledger.Hydrate([]domain.Booking{
		{ID: "x", ProviderID: "id-1", Date: "2026-01-26", StartTime: "09:00", EndTime: "09:30"},
	})

	w := s.do(http.MethodGet, "/api/v1/providers", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	got := decode[providerListResponse](t, w)
	if len(got.Providers) != 2 {
		t.Fatalf("got %d providers, want 2", len(got.Providers))
	}

	first := got.Providers[0]
	if first.ID != "id-1" || first.Name != "Dr. Test" || first.BookedCount != 1 {
		t.Errorf("first provider = %+v", first)
	}
	if len(first.Availability) != 2 || first.Availability[0].DayOfWeek != "Monday" {
		t.Errorf("availability = %+v", first.Availability)
	}
	if got.Providers[1].BookedCount != 0 {
		t.Errorf("second provider booked_count = %d, want 0", got.Providers[1].BookedCount)
	}
}

func TestProviderHandler_RefreshThrottled(t *testing.T) {
	s := loadedServer(t)

	w := s.do(http.MethodPost, "/api/v1/providers/refresh", "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
}

func TestProviderHandler_Get(t *testing.T) {
	s := loadedServer(t)

	tests := []struct {
		name       string
		id         string
		wantStatus int
	}{
		{name: "known provider", id: "id-2", wantStatus: http.StatusOK},
		{name: "unknown provider", id: "missing", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodGet, "/api/v1/providers/"+tt.id, "")
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestCalendarHandler_Days(t *testing.T) {
	s := loadedServer(t)

	w := s.do(http.MethodGet, "/api/v1/days", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	got := decode[daysResponse](t, w)
	if len(got.Days) != 7 {
		t.Fatalf("got %d days, want 7", len(got.Days))
	}
	if got.Days[0] != (domain.CalendarDay{Date: "2026-01-20", Label: "Tue 20"}) {
		t.Errorf("first day = %+v", got.Days[0])
	}
	if got.Days[6] != (domain.CalendarDay{Date: "2026-01-26", Label: "Mon 26"}) {
		t.Errorf("last day = %+v", got.Days[6])
	}
}

func TestProviderHandler_Slots(t *testing.T) {
	s := loadedServer(t)
	s.ledger.Hydrate([]domain.Booking{
		{ID: "x", ProviderID: "id-1", Date: "2026-01-26", StartTime: "09:30", EndTime: "10:00"},
	})

	tests := []struct {
		name        string
		path        string
		wantStatus  int
		wantError   string
		wantMessage string
	}{
		{name: "missing date", path: "/api/v1/providers/id-1/slots", wantStatus: http.StatusBadRequest, wantMessage: "date is required"},
		{name: "malformed date", path: "/api/v1/providers/id-1/slots?date=26-01-2026", wantStatus: http.StatusBadRequest, wantMessage: "date must be a date in YYYY-MM-DD format"},
		{name: "unknown provider", path: "/api/v1/providers/nope/slots?date=2026-01-26", wantStatus: http.StatusNotFound},
		{name: "before window", path: "/api/v1/providers/id-1/slots?date=1999-01-04", wantStatus: http.StatusUnprocessableEntity, wantError: "slot_unavailable"},
		{name: "after window", path: "/api/v1/providers/id-1/slots?date=2026-02-02", wantStatus: http.StatusUnprocessableEntity, wantError: "slot_unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodGet, tt.path, "")
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			got := decode[ErrorResponse](t, w)
			if tt.wantError != "" && got.Error != tt.wantError {
				t.Errorf("error = %q, want %q", got.Error, tt.wantError)
			}
			if tt.wantMessage != "" && got.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}

	t.Run("monday slots", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/providers/id-1/slots?date=2026-01-26", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}

		got := decode[providerSlotsResponse](t, w)
		want := []slotResponse{
			{StartTime: "09:00", EndTime: "09:30", Booked: false},
			{StartTime: "09:30", EndTime: "10:00", Booked: true},
		}
		if len(got.Slots) != len(want) {
			t.Fatalf("got %d slots, want %d", len(got.Slots), len(want))
		}
		for i := range want {
			if got.Slots[i] != want[i] {
				t.Errorf("slot %d = %+v, want %+v", i, got.Slots[i], want[i])
			}
		}
		if len(got.SkippedWindows) != 1 || got.SkippedWindows[0].AvailableAt != "noon" {
			t.Errorf("skipped = %+v", got.SkippedWindows)
		}
	})

	t.Run("day without windows", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/providers/id-1/slots?date=2026-01-21", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		if got := decode[providerSlotsResponse](t, w); len(got.Slots) != 0 {
			t.Errorf("got %d slots, want 0", len(got.Slots))
		}
	})
}

func TestProviderHandler_SlotsBeforeHydration(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := domain.NewMockProviderFeed(ctrl)
	feed.EXPECT().FetchAvailability(gomock.Any()).Return(feedRecords, nil)

	s := newTestServer(t, feed)
	_ = s.catalog.Load(context.Background())

	w := s.do(http.MethodGet, "/api/v1/providers/id-1/slots?date=2026-01-26", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func TestBookingHandler_Create(t *testing.T) {
	s := loadedServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "not json",
			body:       "{",
			wantStatus: http.StatusBadRequest,
			wantError:  "validation_error",
		},
		{
			name:       "missing provider",
			body:       `{"date":"2026-01-26","start_time":"09:00"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "validation_error",
		},
		{
			name:       "twelve hour start time",
			body:       `{"provider_id":"id-1","date":"2026-01-26","start_time":"9:00AM"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "validation_error",
		},
		{
			name:       "unknown provider",
			body:       `{"provider_id":"nope","date":"2026-01-26","start_time":"09:00"}`,
			wantStatus: http.StatusNotFound,
			wantError:  "not_found",
		},
		{
			name:       "monday before window",
			body:       `{"provider_id":"id-1","date":"1999-01-04","start_time":"09:00"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "slot_unavailable",
		},
		{
			name:       "monday after window",
			body:       `{"provider_id":"id-1","date":"2099-01-05","start_time":"09:00"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "slot_unavailable",
		},
		{
			name:       "slot not offered",
			body:       `{"provider_id":"id-1","date":"2026-01-26","start_time":"10:00"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "slot_unavailable",
		},
		{
			name:       "confirmed",
			body:       `{"provider_id":"id-1","date":"2026-01-26","start_time":"09:00"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "duplicate",
			body:       `{"provider_id":"id-1","date":"2026-01-26","start_time":"09:00"}`,
			wantStatus: http.StatusConflict,
			wantError:  "duplicate_booking",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/api/v1/bookings", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantError != "" {
				if got := decode[ErrorResponse](t, w); got.Error != tt.wantError {
					t.Errorf("error = %q, want %q", got.Error, tt.wantError)
				}
			}
		})
	}

	w := s.do(http.MethodGet, "/api/v1/bookings", "")
	got := decode[bookingListResponse](t, w)
	if len(got.Bookings) != 1 {
		t.Fatalf("got %d bookings, want 1", len(got.Bookings))
	}
	b := got.Bookings[0]
	if b.ID != "b-1" || b.ProviderName != "Dr. Test" || b.EndTime != "09:30" {
		t.Errorf("booking = %+v", b)
	}
}

func TestBookingHandler_CreateBeforeHydration(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := domain.NewMockProviderFeed(ctrl)
	feed.EXPECT().FetchAvailability(gomock.Any()).Return(feedRecords, nil)

	s := newTestServer(t, feed)
	_ = s.catalog.Load(context.Background())

	w := s.do(http.MethodPost, "/api/v1/bookings", `{"provider_id":"id-1","date":"2026-01-26","start_time":"09:00"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func TestValidationMessage(t *testing.T) {
	if got := validationMessage(errors.New("boom")); got != "boom" {
		t.Errorf("validationMessage(plain) = %q", got)
	}
}
