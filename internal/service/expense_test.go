package service

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/peopledesk/peopledesk/internal/adapter/outbound/store"
	"github.com/peopledesk/peopledesk/internal/domain/hr"
)

func newExpenseService(t *testing.T) *ExpenseService {
	t.Helper()
	return NewExpenseService(store.NewMemoryStore(), testLogger())
}

func submitClaim(t *testing.T, svc *ExpenseService, userID, amount string) *hr.ExpenseClaim {
	t.Helper()
	claim, err := svc.Submit(userID, hr.ExpenseTravel, decimal.RequireFromString(amount), "2026-08-20", "client visit")
	if err != nil {
		t.Fatalf("Submit() returned unexpected error: %v", err)
	}
	return claim
}

// ---------------------------------------------------------------------------
// Submit
// ---------------------------------------------------------------------------

func TestExpenseSubmit_StartsPending(t *testing.T) {
	svc := newExpenseService(t)

	claim := submitClaim(t, svc, "u1", "1250.50")
	if claim.Status != hr.ExpensePending {
		t.Errorf("expected pending status, got %s", claim.Status)
	}
	if !claim.Amount.Equal(decimal.RequireFromString("1250.50")) {
		t.Errorf("expected amount 1250.50, got %s", claim.Amount)
	}
}

func TestExpenseSubmit_RejectsNonPositiveAmounts(t *testing.T) {
	svc := newExpenseService(t)

	for _, amount := range []string{"0", "-10"} {
		if _, err := svc.Submit("u1", hr.ExpenseFood, decimal.RequireFromString(amount), "2026-08-20", ""); !errors.Is(err, ErrNonPositiveAmount) {
			t.Errorf("amount %s: expected ErrNonPositiveAmount, got %v", amount, err)
		}
	}
}

func TestExpenseSubmit_RejectsUnknownCategory(t *testing.T) {
	svc := newExpenseService(t)

	if _, err := svc.Submit("u1", "entertainment", decimal.NewFromInt(10), "2026-08-20", ""); !errors.Is(err, ErrInvalidExpenseCategory) {
		t.Errorf("expected ErrInvalidExpenseCategory, got %v", err)
	}
}

func TestExpenseSubmit_RejectsBadDate(t *testing.T) {
	svc := newExpenseService(t)

	if _, err := svc.Submit("u1", hr.ExpenseFood, decimal.NewFromInt(10), "20/08/2026", ""); !errors.Is(err, ErrInvalidExpense) {
		t.Errorf("expected ErrInvalidExpense, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Transition lifecycle
// ---------------------------------------------------------------------------

func TestExpenseTransition_ApproveThenPay(t *testing.T) {
	svc := newExpenseService(t)
	claim := submitClaim(t, svc, "u1", "100")

	approved, err := svc.Transition(claim.ID, hr.ExpenseApproved, "mgr1")
	if err != nil {
		t.Fatalf("Transition() returned unexpected error: %v", err)
	}
	if approved.Status != hr.ExpenseApproved || approved.DecidedBy != "mgr1" {
		t.Errorf("expected approved by mgr1, got %s by %q", approved.Status, approved.DecidedBy)
	}

	paid, err := svc.Transition(claim.ID, hr.ExpensePaid, "mgr1")
	if err != nil {
		t.Fatalf("Transition() returned unexpected error: %v", err)
	}
	if paid.Status != hr.ExpensePaid {
		t.Errorf("expected paid status, got %s", paid.Status)
	}
}

func TestExpenseTransition_IllegalMoves(t *testing.T) {
	svc := newExpenseService(t)

	tests := []struct {
		name  string
		setup func(id string)
		next  hr.ExpenseStatus
	}{
		{"pending to paid", func(string) {}, hr.ExpensePaid},
		{"rejected is terminal", func(id string) {
			if _, err := svc.Transition(id, hr.ExpenseRejected, "mgr1"); err != nil {
				t.Fatalf("Transition() returned unexpected error: %v", err)
			}
		}, hr.ExpenseApproved},
		{"paid is terminal", func(id string) {
			for _, next := range []hr.ExpenseStatus{hr.ExpenseApproved, hr.ExpensePaid} {
				if _, err := svc.Transition(id, next, "mgr1"); err != nil {
					t.Fatalf("Transition() returned unexpected error: %v", err)
				}
			}
		}, hr.ExpensePending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim := submitClaim(t, svc, "u1", "50")
			tt.setup(claim.ID)
			if _, err := svc.Transition(claim.ID, tt.next, "mgr1"); !errors.Is(err, ErrIllegalStatusChange) {
				t.Errorf("expected ErrIllegalStatusChange, got %v", err)
			}
		})
	}
}

func TestExpenseTransition_UnknownClaim(t *testing.T) {
	svc := newExpenseService(t)

	if _, err := svc.Transition("missing", hr.ExpenseApproved, "mgr1"); !errors.Is(err, ErrExpenseNotFound) {
		t.Errorf("expected ErrExpenseNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// List and totals
// ---------------------------------------------------------------------------

func TestExpensePendingTotal_SumsOnlyPending(t *testing.T) {
	svc := newExpenseService(t)

	submitClaim(t, svc, "u1", "100.25")
	submitClaim(t, svc, "u2", "49.75")
	approved := submitClaim(t, svc, "u1", "500")
	if _, err := svc.Transition(approved.ID, hr.ExpenseApproved, "mgr1"); err != nil {
		t.Fatalf("Transition() returned unexpected error: %v", err)
	}

	total, err := svc.PendingTotal()
	if err != nil {
		t.Fatalf("PendingTotal() returned unexpected error: %v", err)
	}
	if !total.Equal(decimal.RequireFromString("150.00")) {
		t.Errorf("expected pending total 150.00, got %s", total)
	}
}

func TestExpenseList_Filters(t *testing.T) {
	svc := newExpenseService(t)

	submitClaim(t, svc, "u1", "10")
	submitClaim(t, svc, "u2", "20")

	mine, err := svc.List("u1", "")
	if err != nil {
		t.Fatalf("List() returned unexpected error: %v", err)
	}
	if len(mine) != 1 || mine[0].UserID != "u1" {
		t.Errorf("expected only u1's claim, got %v", mine)
	}

	all, err := svc.List("", hr.ExpensePending)
	if err != nil {
		t.Fatalf("List() returned unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 pending claims, got %d", len(all))
	}
}
