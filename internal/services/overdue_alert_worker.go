package services

import (
	"context"
	"fmt"
	"time"

	"inforequests/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultOverdueAlertInterval is how often the worker looks for overdue requests
const DefaultOverdueAlertInterval = time.Minute * 5

// OverdueAlertWorker emails users whose info requests have become overdue, once per request
type OverdueAlertWorker struct {
	db         *gorm.DB
	sentAlerts *SentAlertService
	mailer     AlertMailer
	interval   time.Duration
	now        func() time.Time
}

// TickResult summarises one pass over the overdue requests
type TickResult struct {
	Sent    int
	Skipped int
	Failed  int
}

func NewOverdueAlertWorker(db *gorm.DB, sentAlerts *SentAlertService, mailer AlertMailer, interval time.Duration) *OverdueAlertWorker {
	if interval <= 0 {
		interval = DefaultOverdueAlertInterval
	}
	return &OverdueAlertWorker{
		db:         db,
		sentAlerts: sentAlerts,
		mailer:     mailer,
		interval:   interval,
		now:        time.Now,
	}
}

// Start runs the worker in the background until ctx is cancelled.
// The returned channel is closed once the pass in progress has finished.
func (w *OverdueAlertWorker) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.run(ctx)
	}()
	return done
}

func (w *OverdueAlertWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("overdue alert worker stopped")
			return
		case <-ticker.C:
			result, err := w.CheckOverdueRequests(ctx)
			if err != nil {
				zap.L().Error("overdue alert check failed", zap.Error(err))
				continue
			}
			if result.Sent > 0 || result.Failed > 0 {
				zap.L().Info("overdue alert check finished",
					zap.Int("sent", result.Sent),
					zap.Int("skipped", result.Skipped),
					zap.Int("failed", result.Failed))
			}
		}
	}
}

// CheckOverdueRequests alerts the owner of every overdue request that has not been alerted yet.
// A failed send is not recorded, so the next pass tries again.
func (w *OverdueAlertWorker) CheckOverdueRequests(ctx context.Context) (TickResult, error) {
	var result TickResult
	now := w.now()

	var requests []models.InfoRequest
	err := w.db.WithContext(ctx).
		Preload("User").
		Where("described_state = ? AND date_response_required_by < ?", models.WaitingResponse, now).
		Order("id").
		Find(&requests).Error
	if err != nil {
		return result, fmt.Errorf("failed to load overdue info requests: %w", err)
	}

	for _, request := range requests {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		if !request.IsOverdue(now) {
			continue
		}

		sent, err := w.alertOwner(ctx, request)
		switch {
		case err != nil:
			result.Failed++
			zap.L().Warn("failed to alert user about overdue request",
				zap.Uint("info_request_id", request.ID),
				zap.Uint("user_id", request.UserID),
				zap.Error(err))
		case sent:
			result.Sent++
		default:
			result.Skipped++
		}
	}

	return result, nil
}

// alertOwner sends the overdue alert unless it has already gone out, reporting whether it sent one
func (w *OverdueAlertWorker) alertOwner(ctx context.Context, request models.InfoRequest) (bool, error) {
	alreadySent, err := w.sentAlerts.Exists(ctx, request.UserID, request.ID, models.AlertTypeOverdue1)
	if err != nil {
		return false, err
	}
	if alreadySent {
		return false, nil
	}

	if err := w.mailer.SendOverdueAlert(request.User, request); err != nil {
		return false, fmt.Errorf("failed to send overdue alert: %w", err)
	}

	// The email is out, so record it even if shutdown has started.
	// A failure here means it may be sent again next pass.
	if _, err := w.sentAlerts.Create(context.WithoutCancel(ctx), request.UserID, request.ID, models.AlertTypeOverdue1); err != nil {
		return false, err
	}
	return true, nil
}
