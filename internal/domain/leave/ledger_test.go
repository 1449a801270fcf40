package leave

import (
	"testing"
	"time"
)

func TestMonthAccrualCarryForward(t *testing.T) {
	// No leave in January, a 3-day leave in February: January's unused day
	// rolls over, so February allows 2 and 1 day goes unpaid.
	ledger := NewMonthAccrualLedger()
	taken := map[time.Month]float64{time.February: 3}

	result := ledger.Apportion(taken, time.February)
	feb := result.Months[1]
	if feb.Allowed != 2 {
		t.Fatalf("allowed = %v, want 2", feb.Allowed)
	}
	if feb.PaidUsed != 2 || feb.UnpaidUsed != 1 {
		t.Fatalf("paid/unpaid = %v/%v, want 2/1", feb.PaidUsed, feb.UnpaidUsed)
	}
	if result.TotalPaidUsed != 2 || result.TotalUnpaid != 1 {
		t.Fatalf("totals = %v/%v, want 2/1", result.TotalPaidUsed, result.TotalUnpaid)
	}
	if result.CarryForward != 0 {
		t.Fatalf("carry = %v, want 0", result.CarryForward)
	}
}

func TestMonthAccrualNoBorrowingFromFuture(t *testing.T) {
	// Overuse in January must not drive the carry-forward negative or eat
	// into February's allowance.
	ledger := NewMonthAccrualLedger()
	taken := map[time.Month]float64{time.January: 5}

	result := ledger.Apportion(taken, time.February)
	jan, feb := result.Months[0], result.Months[1]
	if jan.PaidUsed != 1 || jan.UnpaidUsed != 4 {
		t.Fatalf("january paid/unpaid = %v/%v", jan.PaidUsed, jan.UnpaidUsed)
	}
	if jan.CarryForward != 0 {
		t.Fatalf("january carry = %v, want 0", jan.CarryForward)
	}
	if feb.Allowed != 1 {
		t.Fatalf("february allowed = %v, want 1", feb.Allowed)
	}
}

func TestMonthAccrualIdempotent(t *testing.T) {
	ledger := NewMonthAccrualLedger()
	taken := map[time.Month]float64{
		time.January: 0.5, time.March: 2, time.May: 1.5,
	}

	first := ledger.Apportion(taken, time.June)
	second := ledger.Apportion(taken, time.June)
	if first.TotalPaidUsed != second.TotalPaidUsed ||
		first.TotalUnpaid != second.TotalUnpaid ||
		first.CarryForward != second.CarryForward {
		t.Fatalf("fold not deterministic: %+v vs %+v", first, second)
	}
}

func TestMonthAccrualMonotonicAllowance(t *testing.T) {
	// allowed(M) must equal 1 + carryForward(M-1): the fold never looks at
	// later months.
	ledger := NewMonthAccrualLedger()
	taken := map[time.Month]float64{time.February: 1, time.April: 3}

	result := ledger.Apportion(taken, time.June)
	carry := 0.0
	for _, m := range result.Months {
		if m.Allowed != 1+carry {
			t.Fatalf("%s allowed = %v, want %v", m.Month, m.Allowed, 1+carry)
		}
		if m.CarryForward < 0 {
			t.Fatalf("%s carry negative: %v", m.Month, m.CarryForward)
		}
		carry = m.CarryForward
	}
}

func TestMonthAccrualHalfDays(t *testing.T) {
	ledger := NewMonthAccrualLedger()
	taken := map[time.Month]float64{time.January: 0.5, time.February: 0.5}

	result := ledger.Apportion(taken, time.February)
	if result.TotalPaidUsed != 1 || result.TotalUnpaid != 0 {
		t.Fatalf("totals = %v/%v", result.TotalPaidUsed, result.TotalUnpaid)
	}
	if result.CarryForward != 1 {
		t.Fatalf("carry = %v, want 1", result.CarryForward)
	}
}

func TestAnnualPoolDrainsThenUnpaid(t *testing.T) {
	ledger := AnnualPoolLedger{Pool: 2}
	taken := map[time.Month]float64{time.January: 1, time.February: 2}

	result := ledger.Apportion(taken, time.February)
	if result.TotalPaidUsed != 2 {
		t.Fatalf("paid = %v, want 2", result.TotalPaidUsed)
	}
	if result.TotalUnpaid != 1 {
		t.Fatalf("unpaid = %v, want 1", result.TotalUnpaid)
	}
	if result.CarryForward != 0 {
		t.Fatalf("remaining = %v, want 0", result.CarryForward)
	}
}

func TestAnnualPoolNegativePoolTreatedAsEmpty(t *testing.T) {
	ledger := AnnualPoolLedger{Pool: -3}
	result := ledger.Apportion(map[time.Month]float64{time.January: 2}, time.January)
	if result.TotalPaidUsed != 0 || result.TotalUnpaid != 2 {
		t.Fatalf("totals = %v/%v, want 0/2", result.TotalPaidUsed, result.TotalUnpaid)
	}
}
