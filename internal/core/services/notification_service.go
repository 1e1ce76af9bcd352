package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"
)

// Notifier delivers user-facing messages. Delivery failures never fail the caller.
type Notifier interface {
	VerificationCode(ctx context.Context, email, name, code string)
	RequestDecided(ctx context.Context, userID, requestID, status, comment string)
	GrievanceResolved(ctx context.Context, userID, grievanceID, response string)
}

// NotificationService posts notifications to a webhook in the background
type NotificationService struct {
	webhookURL string
	client     *http.Client
	enabled    bool
	inflight   sync.WaitGroup
}

// NewNotificationService creates a new notification service. An empty URL disables delivery.
func NewNotificationService(webhookURL string) *NotificationService {
	return &NotificationService{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 5 * time.Second},
		enabled:    webhookURL != "",
	}
}

// IsEnabled checks if notification is enabled
func (s *NotificationService) IsEnabled() bool {
	return s.enabled
}

type notification struct {
	Event   string            `json:"event"`
	Message string            `json:"message"`
	Data    map[string]string `json:"data"`
}

// Wait blocks until every notification already sent has been delivered or has failed
func (s *NotificationService) Wait() {
	s.inflight.Wait()
}

// send queues one notification and returns at once. Delivery outlives the caller's
// request context.
func (s *NotificationService) send(ctx context.Context, n notification) {
	if !s.enabled {
		return
	}

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.deliver(context.WithoutCancel(ctx), n)
	}()
}

// deliver posts one notification to the webhook
func (s *NotificationService) deliver(ctx context.Context, n notification) {
	body, err := json.Marshal(n)
	if err != nil {
		log.Printf("⚠️ Notification %s: %v", n.Event, err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		log.Printf("⚠️ Notification %s: %v", n.Event, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("⚠️ Notification %s: %v", n.Event, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Printf("⚠️ Notification %s: webhook returned %d", n.Event, resp.StatusCode)
	}
}

// VerificationCode sends the email verification code
func (s *NotificationService) VerificationCode(ctx context.Context, email, name, code string) {
	s.send(ctx, notification{
		Event:   "verification_code",
		Message: fmt.Sprintf("Hello %s, your verification code is %s", name, code),
		Data:    map[string]string{"email": email, "code": code},
	})
}

// RequestDecided tells a citizen their certificate request was decided
func (s *NotificationService) RequestDecided(ctx context.Context, userID, requestID, status, comment string) {
	s.send(ctx, notification{
		Event:   "request_decided",
		Message: fmt.Sprintf("Certificate request %s was %s", requestID, status),
		Data:    map[string]string{"user_id": userID, "request_id": requestID, "status": status, "comment": comment},
	})
}

// GrievanceResolved tells a citizen their grievance was answered
func (s *NotificationService) GrievanceResolved(ctx context.Context, userID, grievanceID, response string) {
	s.send(ctx, notification{
		Event:   "grievance_resolved",
		Message: fmt.Sprintf("Grievance %s was resolved", grievanceID),
		Data:    map[string]string{"user_id": userID, "grievance_id": grievanceID, "response": response},
	})
}
