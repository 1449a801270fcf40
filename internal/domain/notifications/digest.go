package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"leaveadmin/internal/domain/leave"
)

// DailyDigest gathers today's birthdays, work anniversaries, and employees on
// approved leave into one email to the manager address. Returns a summary for
// the job-run record.
func (s *Service) DailyDigest(ctx context.Context) (any, error) {
	now := time.Now().UTC()

	birthdays, err := s.namesWhere(ctx, `
    SELECT COALESCE(full_name, email) FROM employees
    WHERE is_active = true AND birth_date IS NOT NULL
      AND EXTRACT(MONTH FROM birth_date) = $1 AND EXTRACT(DAY FROM birth_date) = $2
    ORDER BY full_name
  `, int(now.Month()), now.Day())
	if err != nil {
		return nil, err
	}

	anniversaries, err := s.namesWhere(ctx, `
    SELECT COALESCE(full_name, email) FROM employees
    WHERE is_active = true
      AND EXTRACT(MONTH FROM joining_date) = $1 AND EXTRACT(DAY FROM joining_date) = $2
      AND EXTRACT(YEAR FROM joining_date) < $3
    ORDER BY full_name
  `, int(now.Month()), now.Day(), now.Year())
	if err != nil {
		return nil, err
	}

	onLeave, err := s.namesWhere(ctx, `
    SELECT COALESCE(e.full_name, e.email) FROM leave_requests r
    JOIN employees e ON e.id = r.employee_id
    WHERE r.status = $1 AND r.start_date <= $2 AND r.end_date >= $2
    ORDER BY e.full_name
  `, leave.StatusApproved, time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC))
	if err != nil {
		return nil, err
	}

	summary := map[string]any{
		"birthdays":     len(birthdays),
		"anniversaries": len(anniversaries),
		"onLeave":       len(onLeave),
	}
	if len(birthdays)+len(anniversaries)+len(onLeave) == 0 {
		return summary, nil
	}

	var b strings.Builder
	writeSection(&b, "Birthdays today", birthdays)
	writeSection(&b, "Work anniversaries today", anniversaries)
	writeSection(&b, "On leave today", onLeave)

	s.send(ctx, Message{
		To:      s.ManagerNotify,
		Subject: "Daily team digest for " + now.Format("2006-01-02"),
		Body:    b.String(),
	})
	return summary, nil
}

// MonthlyLeaveCheck mails the manager each employee's remaining-leave summary.
// Scheduled daily but only acts on the first of the month.
func (s *Service) MonthlyLeaveCheck(ctx context.Context) (any, error) {
	now := time.Now().UTC()
	if now.Day() != 1 {
		return map[string]any{"skipped": true}, nil
	}

	summaries, err := s.Leaves.SummarizeAll(ctx, now)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("Remaining leave as of " + now.Format("2006-01-02") + ":\n\n")
	for _, sum := range summaries {
		fmt.Fprintf(&b, "- %s: used %.1f, remaining %.1f, unpaid %.1f\n",
			sum.FullName, sum.Used, sum.Remaining, sum.Unpaid)
	}

	s.send(ctx, Message{
		To:      s.ManagerNotify,
		Subject: "Monthly leave balance summary",
		Body:    b.String(),
	})
	return map[string]any{"employees": len(summaries)}, nil
}

func (s *Service) namesWhere(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

func writeSection(b *strings.Builder, title string, names []string) {
	if len(names) == 0 {
		return
	}
	b.WriteString(title + ":\n")
	for _, name := range names {
		b.WriteString("- " + name + "\n")
	}
	b.WriteString("\n")
}
