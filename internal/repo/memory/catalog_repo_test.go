package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/volunteerhub/api/internal/domain/service"
	"github.com/volunteerhub/api/internal/repo/memory"
)

func seedCatalog(t *testing.T) (*memory.Catalog, service.Service) {
	t.Helper()

	catalog := memory.NewCatalog()

	created, err := catalog.Create(context.Background(), service.CreateServiceRequest{
		Name:             "Park Cleanup",
		Description:      "Pick up litter in Riverside Park",
		Location:         service.Location{Lat: 40.8, Lng: -73.97, Address: "Riverside Park"},
		Category:         "Environment",
		VolunteersNeeded: 2,
		Date:             "2026-09-15",
		Time:             "09:00",
		Organizer:        "Green City",
	}, "creator-1")
	if err != nil {
		t.Fatalf("seed create: %v", err)
	}

	return catalog, created
}

func TestRegisterVolunteer_DecrementsOncePerUser(t *testing.T) {
	catalog, svc := seedCatalog(t)
	ctx := context.Background()

	first, err := catalog.RegisterVolunteer(ctx, "user-a", svc.ID)
	if err != nil {
		t.Fatalf("first signup: %v", err)
	}

	if first.AlreadyRegistered {
		t.Fatal("first signup reported as a repeat")
	}

	got, err := catalog.GetByID(ctx, svc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.VolunteersNeeded != 1 {
		t.Fatalf("want needed 1 after first signup, got %d", got.VolunteersNeeded)
	}

	repeat, err := catalog.RegisterVolunteer(ctx, "user-a", svc.ID)
	if err != nil {
		t.Fatalf("repeat signup: %v", err)
	}

	if !repeat.AlreadyRegistered {
		t.Fatal("repeat signup not reported as such")
	}

	if repeat.Registration.ID != first.Registration.ID {
		t.Fatal("repeat signup must return the original registration")
	}

	got, _ = catalog.GetByID(ctx, svc.ID)
	if got.VolunteersNeeded != 1 {
		t.Fatalf("repeat signup must not decrement again, got %d", got.VolunteersNeeded)
	}

	count, err := catalog.CountForService(ctx, svc.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}

	if count != 1 {
		t.Fatalf("want 1 registration, got %d", count)
	}
}

func TestRegisterVolunteer_NeededFloorsAtZero(t *testing.T) {
	catalog, svc := seedCatalog(t)
	ctx := context.Background()

	for _, uid := range []string{"user-a", "user-b", "user-c"} {
		if _, err := catalog.RegisterVolunteer(ctx, uid, svc.ID); err != nil {
			t.Fatalf("signup %s: %v", uid, err)
		}
	}

	got, err := catalog.GetByID(ctx, svc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.VolunteersNeeded != 0 {
		t.Fatalf("needed count must floor at zero, got %d", got.VolunteersNeeded)
	}

	count, _ := catalog.CountForService(ctx, svc.ID)
	if count != 3 {
		t.Fatalf("signups past zero still register, want 3 got %d", count)
	}
}

func TestRegisterVolunteer_UnknownService(t *testing.T) {
	catalog := memory.NewCatalog()

	_, err := catalog.RegisterVolunteer(context.Background(), "user-a", "missing-id")
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestCatalogList_Filters(t *testing.T) {
	catalog, _ := seedCatalog(t)
	ctx := context.Background()

	if _, err := catalog.Create(ctx, service.CreateServiceRequest{
		Name:             "Food Drive",
		Description:      "Sort donations at the pantry",
		Location:         service.Location{Lat: 40.7, Lng: -74.0, Address: "Community Pantry"},
		Category:         "Community",
		VolunteersNeeded: 5,
		Date:             "2026-09-10",
		Time:             "10:00",
		Organizer:        "Food Bank",
	}, "creator-2"); err != nil {
		t.Fatalf("create: %v", err)
	}

	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name      string
		filter    service.ListFilter
		wantNames []string
	}{
		{
			name:      "no filter returns all date-ordered",
			filter:    service.ListFilter{},
			wantNames: []string{"Food Drive", "Park Cleanup"},
		},
		{
			name:      "category is case-insensitive",
			filter:    service.ListFilter{Category: strPtr("environment")},
			wantNames: []string{"Park Cleanup"},
		},
		{
			name:      "category all means no filter",
			filter:    service.ListFilter{Category: strPtr("All")},
			wantNames: []string{"Food Drive", "Park Cleanup"},
		},
		{
			name:      "search matches description",
			filter:    service.ListFilter{Search: strPtr("LITTER")},
			wantNames: []string{"Park Cleanup"},
		},
		{
			name:      "search matches address",
			filter:    service.ListFilter{Search: strPtr("pantry")},
			wantNames: []string{"Food Drive"},
		},
		{
			name:      "no match",
			filter:    service.ListFilter{Search: strPtr("kayaking")},
			wantNames: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			items, total, err := catalog.List(ctx, tc.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}

			if total != len(tc.wantNames) {
				t.Fatalf("want total %d, got %d", len(tc.wantNames), total)
			}

			if len(items) != len(tc.wantNames) {
				t.Fatalf("want %d items, got %d", len(tc.wantNames), len(items))
			}

			for i, name := range tc.wantNames {
				if items[i].Name != name {
					t.Errorf("item %d: want %q, got %q", i, name, items[i].Name)
				}
			}
		})
	}
}

func TestCatalogList_Pagination(t *testing.T) {
	catalog, _ := seedCatalog(t)
	ctx := context.Background()

	if _, err := catalog.Create(ctx, service.CreateServiceRequest{
		Name:             "Food Drive",
		Description:      "Sort donations",
		Location:         service.Location{Address: "Pantry"},
		Category:         "Community",
		VolunteersNeeded: 5,
		Date:             "2026-09-10",
		Time:             "10:00",
		Organizer:        "Food Bank",
	}, ""); err != nil {
		t.Fatalf("create: %v", err)
	}

	items, total, err := catalog.List(ctx, service.ListFilter{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if total != 2 {
		t.Fatalf("total must count all matches, got %d", total)
	}

	if len(items) != 1 || items[0].Name != "Park Cleanup" {
		t.Fatalf("unexpected page %+v", items)
	}

	items, total, err = catalog.List(ctx, service.ListFilter{Offset: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if total != 2 || len(items) != 0 {
		t.Fatalf("offset past the end must return an empty page, got %+v", items)
	}
}
