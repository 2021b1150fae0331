package reminder

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"laundryhub/internal/repository"
)

type BillingReader interface {
	ListOverdueInvoices(ctx context.Context, asOf time.Time) ([]repository.OverdueInvoice, error)
}

type Notifier interface {
	Notify(phone, message string) bool
}

// Service texts customers whose invoices are past due. It runs on a
// daily schedule and can also be triggered manually.
type Service struct {
	billing BillingReader
	sms     Notifier
	cron    *cron.Cron
	spec    string
}

// NewService schedules the reminder run with the given cron spec, for
// example "0 9 * * *" for every day at 09:00.
func NewService(billing BillingReader, sms Notifier, spec string) *Service {
	if spec == "" {
		spec = "0 9 * * *"
	}
	return &Service{
		billing: billing,
		sms:     sms,
		cron:    cron.New(),
		spec:    spec,
	}
}

func (s *Service) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := s.Run(ctx); err != nil {
			log.Printf("overdue_reminder_failed error=%q", err)
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("overdue reminder scheduled spec=%q", s.spec)
	return nil
}

func (s *Service) Stop() {
	s.cron.Stop()
}

// Run sends one reminder per overdue invoice and returns how many texts
// went out. Send failures are logged and skipped, never fatal.
func (s *Service) Run(ctx context.Context) (int, error) {
	overdue, err := s.billing.ListOverdueInvoices(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, inv := range overdue {
		msg := fmt.Sprintf(
			"Hello %s, your laundry invoice %s (order %s) is overdue. Outstanding balance: %s. Please settle it at your earliest convenience.",
			inv.CustomerName, inv.InvoiceNumber, inv.OrderNumber, inv.BalanceDue.StringFixed(2),
		)
		if s.sms.Notify(inv.CustomerPhone, msg) {
			sent++
		}
	}

	if len(overdue) > 0 {
		log.Printf("overdue reminders sent=%d of=%d", sent, len(overdue))
	}
	return sent, nil
}
