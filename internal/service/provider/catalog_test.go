package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-appointment-booking/internal/domain"
	"github.com/KasumiMercury/primind-appointment-booking/internal/service/normalize"
)

func sequentialIDs() domain.IDGenerator {
	n := 0
	return func() string {
		n++
		return "id-" + string(rune('0'+n))
	}
}

var feedRecords = []domain.RawAvailability{
	{Name: "Dr. Test", Timezone: "UTC", DayOfWeek: "Monday", AvailableAt: "9:00AM", AvailableUntil: "10:00AM"},
	{Name: "Dr. Other", Timezone: "UTC", DayOfWeek: "Tuesday", AvailableAt: "1:00PM", AvailableUntil: "3:00PM"},
	{Name: "Dr. Test", Timezone: "UTC", DayOfWeek: "Wednesday", AvailableAt: "9:00AM", AvailableUntil: "11:00AM"},
}

func TestCatalog_InitialStateIsLoading(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := NewCatalog(domain.NewMockProviderFeed(ctrl), normalize.NewNormalizer(nil), time.Minute, nil)

	s := c.State()
	if !s.Loading || s.Err != nil || len(s.Providers) != 0 {
		t.Errorf("unexpected initial state %+v", s)
	}
}

func TestCatalog_LoadFetchesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := domain.NewMockProviderFeed(ctrl)
	feed.EXPECT().FetchAvailability(gomock.Any()).Return(feedRecords, nil).Times(1)

	c := NewCatalog(feed, normalize.NewNormalizer(sequentialIDs()), time.Minute, nil)

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("second Load: %v", err)
	}

	s := c.State()
	if s.Loading || s.Err != nil {
		t.Fatalf("unexpected state %+v", s)
	}
	if len(s.Providers) != 2 {
		t.Fatalf("got %d providers, want 2", len(s.Providers))
	}
	if s.Providers[0].Name != "Dr. Test" || len(s.Providers[0].Availability) != 2 {
		t.Errorf("unexpected first provider %+v", s.Providers[0])
	}

	p, err := c.Get(s.Providers[1].ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Name != "Dr. Other" {
		t.Errorf("Get returned %s, want Dr. Other", p.Name)
	}
}

func TestCatalog_GetUnknown(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := NewCatalog(domain.NewMockProviderFeed(ctrl), normalize.NewNormalizer(nil), time.Minute, nil)

	if _, err := c.Get("missing"); !errors.Is(err, domain.ErrProviderNotFound) {
		t.Errorf("Get = %v, want ErrProviderNotFound", err)
	}
}

func TestCatalog_LoadFailureIsKeptInState(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := domain.NewMockProviderFeed(ctrl)
	fetchErr := &domain.FetchError{URL: "http://feed", StatusCode: 500}
	feed.EXPECT().FetchAvailability(gomock.Any()).Return(nil, fetchErr).Times(1)

	c := NewCatalog(feed, normalize.NewNormalizer(nil), time.Minute, nil)

	err := c.Load(context.Background())
	if !errors.Is(err, domain.ErrProviderFeedFailed) {
		t.Fatalf("Load = %v, want ErrProviderFeedFailed", err)
	}
	// No automatic retry.
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("second Load = %v, want nil", err)
	}

	s := c.State()
	if s.Loading {
		t.Error("still loading after failure")
	}
	var got *domain.FetchError
	if !errors.As(s.Err, &got) || got.StatusCode != 500 {
		t.Errorf("state error = %v, want the fetch error", s.Err)
	}
}

func TestCatalog_RefreshIsThrottled(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := domain.NewMockProviderFeed(ctrl)
	feed.EXPECT().FetchAvailability(gomock.Any()).Return(feedRecords, nil).Times(1)

	c := NewCatalog(feed, normalize.NewNormalizer(nil), time.Hour, nil)

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := c.Refresh(context.Background()); !errors.Is(err, ErrRefreshThrottled) {
		t.Errorf("Refresh = %v, want ErrRefreshThrottled", err)
	}
}

func TestCatalog_RefreshRecoversAndKeepsIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := domain.NewMockProviderFeed(ctrl)
	gomock.InOrder(
		feed.EXPECT().FetchAvailability(gomock.Any()).Return(feedRecords, nil),
		feed.EXPECT().FetchAvailability(gomock.Any()).Return(nil, &domain.FetchError{URL: "http://feed", Err: errors.New("timeout")}),
		feed.EXPECT().FetchAvailability(gomock.Any()).Return(feedRecords[:1], nil),
	)

	c := NewCatalog(feed, normalize.NewNormalizer(sequentialIDs()), time.Millisecond, nil)

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	firstID := c.State().Providers[0].ID

	time.Sleep(5 * time.Millisecond)
	if err := c.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh failure")
	}
	if got := len(c.State().Providers); got != 2 {
		t.Errorf("failed refresh dropped providers: got %d, want 2", got)
	}

	time.Sleep(5 * time.Millisecond)
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	s := c.State()
	if s.Err != nil {
		t.Errorf("error not cleared: %v", s.Err)
	}
	if len(s.Providers) != 1 || s.Providers[0].ID != firstID {
		t.Errorf("provider identity changed across refetch: %+v (want id %s)", s.Providers, firstID)
	}
}
