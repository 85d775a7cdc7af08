package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/KartikZCoding/campusgate/internal/core"
)

func TestStudentStore(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStudentStore()

	created, err := s.Create(ctx, core.Student{
		Name:    "Venkat",
		Email:   "venkat@example.edu",
		Address: "Chennai",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == "" {
		t.Fatal("Create() assigned no ID")
	}
	if created.CreatedAt.IsZero() || created.ModifiedAt.IsZero() {
		t.Error("Create() did not set timestamps")
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if diff := cmp.Diff(created, got); diff != "" {
		t.Errorf("Get() mismatch (-want +got):\n%s", diff)
	}

	// update keeps the creation time, the rest is replaced
	got.Address = "Hyderabad"
	got.CreatedAt = got.CreatedAt.AddDate(-1, 0, 0)
	updated, err := s.Update(ctx, got)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Address != "Hyderabad" {
		t.Errorf("Update() Address = %q, want Hyderabad", updated.Address)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("Update() changed CreatedAt: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}
	if updated.ModifiedAt.Before(created.ModifiedAt) {
		t.Error("Update() did not advance ModifiedAt")
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []core.Student{updated}
	if diff := cmp.Diff(want, list, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}

	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, created.ID); !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrStudentNotFound", err)
	}
}

func TestStudentStore_NotFound(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStudentStore()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("Get() error = %v, want ErrStudentNotFound", err)
	}
	if _, err := s.Update(ctx, core.Student{ID: "missing"}); !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("Update() error = %v, want ErrStudentNotFound", err)
	}
	if err := s.Delete(ctx, "missing"); !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("Delete() error = %v, want ErrStudentNotFound", err)
	}
}
