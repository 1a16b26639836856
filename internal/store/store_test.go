package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"datepick-cli/internal/model"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	base := time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC)
	n := 0
	return Store{
		Dir: t.TempDir(),
		Now: func() time.Time {
			n++
			return base.Add(time.Duration(n) * time.Second)
		},
	}
}

func TestStore_SetGetList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.Set(ctx, "program.start", model.ModeDateTime, "2025-02-01T09:00"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := s.Set(ctx, "academy.founded", model.ModeDate, "1998-08-17"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	f, err := s.Get(ctx, "program.start")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if f.Mode != model.ModeDateTime || f.Value != "2025-02-01T09:00" {
		t.Fatalf("unexpected field %+v", f)
	}

	all, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 || all[0].Name != "academy.founded" || all[1].Name != "program.start" {
		t.Fatalf("expected two fields sorted by name, got %+v", all)
	}
}

func TestStore_SetKeepsExistingMode(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.Set(ctx, "birthdate", model.ModeDate, "2001-04-03"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	_, err := s.Set(ctx, "birthdate", model.ModeDateTime, "2001-04-03T10:00")
	var inv InvalidValueError
	if !errors.As(err, &inv) {
		t.Fatalf("expected InvalidValueError, got %v", err)
	}
	if inv.Mode != model.ModeDate {
		t.Fatalf("expected field's stored mode to be used, got %s", inv.Mode)
	}
}

func TestStore_RejectsMalformedValues(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	for _, v := range []string{"2025-02-30", "tomorrow", "2025-01-01T09:00"} {
		if _, err := s.Set(ctx, "x", model.ModeDate, v); err == nil {
			t.Fatalf("expected %q to be rejected", v)
		}
	}
	if _, err := s.Get(ctx, "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected rejected writes to leave nothing behind, got %v", err)
	}
}

func TestStore_ClearAndHistory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	for _, v := range []string{"2025-01-10", "2025-01-11", ""} {
		if _, err := s.Set(ctx, "deadline", model.ModeDate, v); err != nil {
			t.Fatalf("Set(%q): %v", v, err)
		}
	}
	f, err := s.Get(ctx, "deadline")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if f.Value != "" {
		t.Fatalf("expected cleared value, got %q", f.Value)
	}

	hist, err := s.History(ctx, "deadline", 2)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 2 || hist[0].Value != "" || hist[1].Value != "2025-01-11" {
		t.Fatalf("expected newest-first history, got %+v", hist)
	}
	if hist[0].ID == "" || hist[0].ID == hist[1].ID {
		t.Fatalf("expected unique history ids, got %+v", hist)
	}
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.Delete(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.Set(ctx, "trial", model.ModeDate, "2025-06-01"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Delete(ctx, "trial"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "trial"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected field gone, got %v", err)
	}
	hist, err := s.History(ctx, "trial", 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 0 {
		t.Fatalf("expected history removed, got %+v", hist)
	}
}

func TestStore_EmptyFieldName(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	if _, err := s.Set(context.Background(), "  ", model.ModeDate, ""); err == nil {
		t.Fatalf("expected empty field name to be rejected")
	}
}
