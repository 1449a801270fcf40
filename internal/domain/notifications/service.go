package notifications

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"leaveadmin/internal/domain/leave"
)

// Service sends the portal's outbound email. Every send is fire-and-forget:
// a failure is logged and swallowed, and the business operation that
// triggered it still succeeds.
type Service struct {
	DB            *pgxpool.Pool
	Mailer        Mailer
	Leaves        *leave.Service
	ManagerNotify string
}

func New(db *pgxpool.Pool, mailer Mailer, leaves *leave.Service, managerNotify string) *Service {
	return &Service{DB: db, Mailer: mailer, Leaves: leaves, ManagerNotify: managerNotify}
}

func (s *Service) send(ctx context.Context, msg Message) {
	if msg.To == "" {
		return
	}
	if err := s.Mailer.Send(ctx, msg); err != nil {
		slog.Warn("email send failed", "to", msg.To, "subject", msg.Subject, "err", err)
	}
}

// NotifyLeaveSubmitted tells the manager a new request is waiting.
func (s *Service) NotifyLeaveSubmitted(ctx context.Context, employeeName string, req leave.LeaveRequest) {
	s.send(ctx, Message{
		To:      s.ManagerNotify,
		Subject: "New leave request from " + employeeName,
		Body: fmt.Sprintf("%s requested leave from %s to %s.\nReason: %s",
			employeeName, req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"), req.Reason),
	})
}

// NotifyLeaveDecision tells the employee their request was approved or rejected.
func (s *Service) NotifyLeaveDecision(ctx context.Context, employeeEmail string, req leave.LeaveRequest) {
	s.send(ctx, Message{
		To:      employeeEmail,
		Subject: "Your leave request was " + req.Status,
		Body: fmt.Sprintf("Your leave from %s to %s is now %s.",
			req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"), req.Status),
	})
}
