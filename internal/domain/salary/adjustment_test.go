package salary

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	cryptoutil "leaveadmin/internal/platform/crypto"
)

func TestAdjustPoolFirstSave(t *testing.T) {
	if got := AdjustPool(12, 0, 1.5); got != 10.5 {
		t.Fatalf("pool = %v, want 10.5", got)
	}
}

func TestAdjustPoolRollbackThenReapply(t *testing.T) {
	// Saving freeLeavesUsed=1.5 then editing to 0.5 must net to +1.0 on the
	// pool, exactly.
	pool := 10.0
	pool = AdjustPool(pool, 0, 1.5)
	if pool != 8.5 {
		t.Fatalf("after first save = %v, want 8.5", pool)
	}
	pool = AdjustPool(pool, 1.5, 0.5)
	if pool != 9.5 {
		t.Fatalf("after edit = %v, want 9.5", pool)
	}
}

func TestAdjustPoolClampsAtZero(t *testing.T) {
	if got := AdjustPool(1, 0, 5); got != 0 {
		t.Fatalf("pool = %v, want 0", got)
	}
}

func TestAdjustPoolRoundsToOneDecimal(t *testing.T) {
	if got := AdjustPool(10, 0, 1.25); got != 8.8 {
		t.Fatalf("pool = %v, want 8.8", got)
	}
}

func TestBuildHistoryRowsSplitsFullAndHalf(t *testing.T) {
	adj := SalaryAdjustment{
		EmployeeID:         "e1",
		Year:               2025,
		Month:              time.March,
		FreeLeavesUsed:     2.5,
		PaidLeavesDeducted: 1.5,
		OneDaySalary:       decimal.NewFromInt(100),
	}
	rows := BuildHistoryRows(adj)
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	byKey := map[string]AdjustmentHistory{}
	for _, row := range rows {
		byKey[row.Category+"/"+row.DayKind] = row
	}
	if byKey[HistoryFreeLeave+"/"+DayKindFull].Days != 2 {
		t.Fatalf("free full days = %v", byKey[HistoryFreeLeave+"/"+DayKindFull].Days)
	}
	if byKey[HistoryFreeLeave+"/"+DayKindHalf].Days != 0.5 {
		t.Fatalf("free half days = %v", byKey[HistoryFreeLeave+"/"+DayKindHalf].Days)
	}
	paidFull := byKey[HistoryPaidDeduct+"/"+DayKindFull]
	if paidFull.Amount.StringFixed(2) != "100.00" {
		t.Fatalf("paid full amount = %s", paidFull.Amount.StringFixed(2))
	}
	paidHalf := byKey[HistoryPaidDeduct+"/"+DayKindHalf]
	if paidHalf.Amount.StringFixed(2) != "50.00" {
		t.Fatalf("paid half amount = %s", paidHalf.Amount.StringFixed(2))
	}
}

func TestBuildHistoryRowsSkipsZeroCombinations(t *testing.T) {
	adj := SalaryAdjustment{
		EmployeeID:     "e1",
		Year:           2025,
		Month:          time.March,
		FreeLeavesUsed: 1,
	}
	rows := BuildHistoryRows(adj)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Category != HistoryFreeLeave || rows[0].DayKind != DayKindFull {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
}

func TestBuildHistoryRowsNoDeduction(t *testing.T) {
	adj := SalaryAdjustment{EmployeeID: "e1", Year: 2025, Month: time.March}
	rows := BuildHistoryRows(adj)
	if len(rows) != 1 {
		t.Fatalf("expected single no-deduction row, got %d", len(rows))
	}
	if rows[0].Category != HistoryNoDeduction {
		t.Fatalf("category = %s", rows[0].Category)
	}
}

func TestEncodeHistoryRowsRoundTrips(t *testing.T) {
	crypto, err := cryptoutil.New("00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff")
	if err != nil {
		t.Fatalf("crypto setup: %v", err)
	}
	adj := SalaryAdjustment{
		EmployeeID:         "e1",
		Year:               2025,
		Month:              time.March,
		FreeLeavesUsed:     1.5,
		PaidLeavesDeducted: 2,
		OneDaySalary:       decimal.NewFromInt(100),
	}

	inserts, err := encodeHistoryRows(crypto, adj)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(inserts) != len(BuildHistoryRows(adj)) {
		t.Fatalf("expected one insert per history row, got %d", len(inserts))
	}
	for _, ins := range inserts {
		if ins.amountEnc == "" {
			t.Fatalf("empty encoded amount for %s/%s", ins.row.Category, ins.row.DayKind)
		}
		got, err := crypto.DecodeDecimal(ins.amountEnc)
		if err != nil {
			t.Fatalf("decode %s/%s: %v", ins.row.Category, ins.row.DayKind, err)
		}
		if !got.Equal(ins.row.Amount) {
			t.Fatalf("amount round trip = %s, want %s", got, ins.row.Amount)
		}
	}
}
