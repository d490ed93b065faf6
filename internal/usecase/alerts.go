package usecase

import (
	"context"
	"fmt"
	"time"

	"IndexPulse/internal/domain/models"
	domrepo "IndexPulse/internal/domain/repository"
	xhttp "IndexPulse/pkg/http"
	"IndexPulse/pkg/logger"
	"IndexPulse/pkg/queue"
)

// AlertMessageType is the queue message type for action-flip alerts.
const AlertMessageType = "signal.alert"

// QueueAlertSink pushes alerts onto the Redis queue for async dispatch.
// Evaluation latency stays flat no matter how slow the notification path is.
type QueueAlertSink struct {
	q queue.QueueService
}

func NewQueueAlertSink(q queue.QueueService) *QueueAlertSink {
	return &QueueAlertSink{q: q}
}

func (s *QueueAlertSink) Enqueue(ctx context.Context, a *models.Alert) error {
	if a == nil {
		return fmt.Errorf("alert is nil")
	}
	return s.q.PublishMessage(ctx, AlertMessageType, a)
}

var _ domrepo.AlertSink = (*QueueAlertSink)(nil)

// AlertDispatchJob consumes alerts off the queue. Every alert is logged;
// when a webhook URL is configured it is also POSTed there.
type AlertDispatchJob struct {
	l          *logger.Logger
	client     *xhttp.Client
	webhookURL string
}

func NewAlertDispatchJob(l *logger.Logger, webhookURL string) *AlertDispatchJob {
	return &AlertDispatchJob{
		l:          l,
		client:     xhttp.NewClient(xhttp.WithTimeout(10 * time.Second)),
		webhookURL: webhookURL,
	}
}

func (j *AlertDispatchJob) Name() string { return "alert_dispatch" }
func (j *AlertDispatchJob) Type() string { return AlertMessageType }

func (j *AlertDispatchJob) Handle(ctx context.Context, payload interface{}) error {
	a, err := queue.ParsePayload[models.Alert](payload)
	if err != nil {
		return fmt.Errorf("parse alert: %w", err)
	}
	j.l.Info("signal alert",
		logger.String("symbol", a.Symbol),
		logger.String("action", string(a.Action)),
		logger.String("previous", string(a.Previous)),
		logger.Int("confidence", a.Confidence),
		logger.Any("total_score", a.TotalScore),
	)
	if j.webhookURL == "" {
		return nil
	}
	resp, err := j.client.SendRequest(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    j.webhookURL,
		Body:   a,
	})
	if err != nil {
		return fmt.Errorf("alert webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("alert webhook: status %d", resp.StatusCode)
	}
	return nil
}

var _ queue.Job = (*AlertDispatchJob)(nil)
