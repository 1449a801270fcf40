package leave

import (
	"testing"
	"time"
)

func TestNewRequestNormalizesDates(t *testing.T) {
	// The persisted row is what downstream recomputation reads, so timestamps
	// must collapse to calendar days and status must be stamped in.
	params := SubmitParams{
		EmployeeID:  "e1",
		LeaveTypeID: "t1",
		StartDate:   time.Date(2025, time.March, 10, 15, 4, 5, 0, time.UTC),
		EndDate:     time.Date(2025, time.March, 12, 8, 30, 0, 0, time.UTC),
		IsHalfDay:   true,
		Reason:      "trip",
	}
	now := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)

	req := newRequest(params, StatusApproved, now)
	if !req.StartDate.Equal(day(2025, time.March, 10)) || !req.EndDate.Equal(day(2025, time.March, 12)) {
		t.Fatalf("dates not normalized: %s .. %s", req.StartDate, req.EndDate)
	}
	if req.Status != StatusApproved {
		t.Fatalf("status = %s, want %s", req.Status, StatusApproved)
	}
	if !req.AppliedOn.Equal(now) {
		t.Fatalf("appliedOn = %s, want %s", req.AppliedOn, now)
	}
	if !req.IsHalfDay || req.EmployeeID != "e1" || req.LeaveTypeID != "t1" || req.Reason != "trip" {
		t.Fatalf("fields dropped: %+v", req)
	}
}
