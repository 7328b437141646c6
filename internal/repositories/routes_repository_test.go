package repositories

import (
	"context"
	"errors"
	"testing"

	"bdvail/internal/api/apitest"
	"bdvail/internal/domain/models"
)

var testRoutes = []models.Route{
	{ID: 1, Name: "Airport Express", From: "Denver Airport", To: "Vail, CO", BasePrice: 189, Currency: "USD", DurationMinutes: 150},
	{ID: 2, Name: "Eagle Shuttle", From: "Eagle County Airport", To: "Vail, CO", BasePrice: 95, Currency: "USD", DurationMinutes: 45},
}

func TestGetRoutesCachesFirstFetch(t *testing.T) {
	fake := &apitest.Fake{Routes: testRoutes}
	repo := NewRoutesRepository(fake)

	got, err := repo.GetRoutes(context.Background(), false)
	if err != nil {
		t.Fatalf("first GetRoutes error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(got))
	}
	if calls, _, _, _ := fake.Calls(); calls != 1 {
		t.Fatalf("expected 1 remote call, got %d", calls)
	}

	fake.Set(func(f *apitest.Fake) { f.Routes = nil })
	got, err = repo.GetRoutes(context.Background(), false)
	if err != nil {
		t.Fatalf("second GetRoutes error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("cache hit returned %d routes", len(got))
	}
	if calls, _, _, _ := fake.Calls(); calls != 1 {
		t.Fatalf("cache hit must not call remote, calls=%d", calls)
	}
}

func TestGetRoutesForceRefreshAlwaysFetches(t *testing.T) {
	fake := &apitest.Fake{Routes: testRoutes}
	repo := NewRoutesRepository(fake)

	for i := 1; i <= 3; i++ {
		if _, err := repo.GetRoutes(context.Background(), true); err != nil {
			t.Fatalf("refresh %d error: %v", i, err)
		}
		if calls, _, _, _ := fake.Calls(); calls != i {
			t.Fatalf("after refresh %d expected %d calls, got %d", i, i, calls)
		}
	}
}

func TestGetRoutesFailedRefreshKeepsCache(t *testing.T) {
	fake := &apitest.Fake{Routes: testRoutes}
	repo := NewRoutesRepository(fake)

	if _, err := repo.GetRoutes(context.Background(), false); err != nil {
		t.Fatalf("initial fetch error: %v", err)
	}

	boom := errors.New("network down")
	fake.Set(func(f *apitest.Fake) { f.RoutesErr = boom })

	if _, err := repo.GetRoutes(context.Background(), true); !errors.Is(err, boom) {
		t.Fatalf("expected error to propagate unchanged, got %v", err)
	}

	got, err := repo.GetRoutes(context.Background(), false)
	if err != nil {
		t.Fatalf("cached read error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("failed refresh wiped the cache: %d routes", len(got))
	}
	if _, ok := repo.GetRouteByID(2); !ok {
		t.Fatalf("route 2 should still be cached")
	}
}

func TestGetRoutesFailureOnEmptyCacheStaysUnset(t *testing.T) {
	fake := &apitest.Fake{RoutesErr: errors.New("timeout")}
	repo := NewRoutesRepository(fake)

	if _, err := repo.GetRoutes(context.Background(), false); err == nil {
		t.Fatalf("expected error")
	}

	fake.Set(func(f *apitest.Fake) { f.RoutesErr = nil; f.Routes = testRoutes })
	if _, err := repo.GetRoutes(context.Background(), false); err != nil {
		t.Fatalf("retry error: %v", err)
	}
	if calls, _, _, _ := fake.Calls(); calls != 2 {
		t.Fatalf("failed fetch must not populate the cache, calls=%d", calls)
	}
}

func TestEmptyListIsCached(t *testing.T) {
	fake := &apitest.Fake{}
	repo := NewRoutesRepository(fake)

	for i := 0; i < 2; i++ {
		got, err := repo.GetRoutes(context.Background(), false)
		if err != nil {
			t.Fatalf("GetRoutes error: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil list, got %#v", got)
		}
	}
	if calls, _, _, _ := fake.Calls(); calls != 1 {
		t.Fatalf("empty result should still be cached, calls=%d", calls)
	}
}

func TestGetRouteByID(t *testing.T) {
	fake := &apitest.Fake{Routes: testRoutes}
	repo := NewRoutesRepository(fake)

	if _, ok := repo.GetRouteByID(1); ok {
		t.Fatalf("lookup before any fetch must find nothing")
	}

	if _, err := repo.GetRoutes(context.Background(), false); err != nil {
		t.Fatalf("GetRoutes error: %v", err)
	}

	rt, ok := repo.GetRouteByID(2)
	if !ok {
		t.Fatalf("route 2 not found after fetch")
	}
	if rt.Name != "Eagle Shuttle" {
		t.Fatalf("wrong route returned: %+v", rt)
	}
	if _, ok := repo.GetRouteByID(99); ok {
		t.Fatalf("unknown id must not match")
	}
	if calls, _, _, _ := fake.Calls(); calls != 1 {
		t.Fatalf("lookup must not call remote, calls=%d", calls)
	}
}
