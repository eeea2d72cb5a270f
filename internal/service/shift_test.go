package service

import (
	"errors"
	"testing"

	"github.com/peopledesk/peopledesk/internal/adapter/outbound/store"
	"github.com/peopledesk/peopledesk/internal/domain/hr"
)

func newShiftService(t *testing.T) *ShiftService {
	t.Helper()
	return NewShiftService(store.NewMemoryStore(), testLogger())
}

func TestShiftAssign_OnePerUserPerDate(t *testing.T) {
	svc := newShiftService(t)

	first, err := svc.Assign("u1", "2026-09-01", hr.ShiftMorning)
	if err != nil {
		t.Fatalf("Assign() returned unexpected error: %v", err)
	}

	// Reassigning the same user and date replaces the slot, keeping the ID.
	second, err := svc.Assign("u1", "2026-09-01", hr.ShiftNight)
	if err != nil {
		t.Fatalf("Assign() returned unexpected error: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected replacement to keep ID %s, got %s", first.ID, second.ID)
	}

	roster, err := svc.Roster("2026-09-01")
	if err != nil {
		t.Fatalf("Roster() returned unexpected error: %v", err)
	}
	if len(roster) != 1 {
		t.Fatalf("expected 1 assignment after replacement, got %d", len(roster))
	}
	if roster[0].Shift != hr.ShiftNight {
		t.Errorf("expected night shift after replacement, got %s", roster[0].Shift)
	}
}

func TestShiftAssign_InvalidInputs(t *testing.T) {
	svc := newShiftService(t)

	if _, err := svc.Assign("u1", "2026-09-01", "graveyard"); !errors.Is(err, ErrInvalidShift) {
		t.Errorf("expected ErrInvalidShift, got %v", err)
	}
	if _, err := svc.Assign("u1", "09/01/2026", hr.ShiftMorning); err == nil {
		t.Error("expected bad date to be rejected")
	}
}

func TestShiftRoster_OnlyGivenDateSorted(t *testing.T) {
	svc := newShiftService(t)

	if _, err := svc.Assign("u2", "2026-09-01", hr.ShiftMorning); err != nil {
		t.Fatalf("Assign() returned unexpected error: %v", err)
	}
	if _, err := svc.Assign("u1", "2026-09-01", hr.ShiftMorning); err != nil {
		t.Fatalf("Assign() returned unexpected error: %v", err)
	}
	if _, err := svc.Assign("u3", "2026-09-02", hr.ShiftEvening); err != nil {
		t.Fatalf("Assign() returned unexpected error: %v", err)
	}

	roster, err := svc.Roster("2026-09-01")
	if err != nil {
		t.Fatalf("Roster() returned unexpected error: %v", err)
	}
	if len(roster) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(roster))
	}
	if roster[0].UserID != "u1" || roster[1].UserID != "u2" {
		t.Errorf("expected user-sorted roster [u1 u2], got [%s %s]", roster[0].UserID, roster[1].UserID)
	}
}

func TestShiftForUser_SortedByDate(t *testing.T) {
	svc := newShiftService(t)

	if _, err := svc.Assign("u1", "2026-09-03", hr.ShiftGeneral); err != nil {
		t.Fatalf("Assign() returned unexpected error: %v", err)
	}
	if _, err := svc.Assign("u1", "2026-09-01", hr.ShiftMorning); err != nil {
		t.Fatalf("Assign() returned unexpected error: %v", err)
	}
	if _, err := svc.Assign("u2", "2026-09-02", hr.ShiftEvening); err != nil {
		t.Fatalf("Assign() returned unexpected error: %v", err)
	}

	mine, err := svc.ForUser("u1")
	if err != nil {
		t.Fatalf("ForUser() returned unexpected error: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(mine))
	}
	if mine[0].Date != "2026-09-01" || mine[1].Date != "2026-09-03" {
		t.Errorf("expected date-sorted order, got [%s %s]", mine[0].Date, mine[1].Date)
	}
}
