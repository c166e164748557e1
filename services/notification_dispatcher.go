package services

import (
	"context"
	"log"
	"sync"
	"time"

	"zenflowAPI/internal/mailer"
	"zenflowAPI/internal/notification"
	"zenflowAPI/middleware"
)

// PushProvider is the optional push channel (FCM in production).
type PushProvider interface {
	SendPush(ctx context.Context, token, platform, title, body string, data map[string]string) error
}

// NotificationDispatcher is the asynchronous boundary for all outbound
// notifications. Callers submit and forget; delivery failures are logged
// and counted, never returned to the request path.
type NotificationDispatcher struct {
	mailer       mailer.Mailer
	pushProvider PushProvider
	workers      int
	jobQueue     chan *DispatchJob
	stopChan     chan struct{}
	wg           sync.WaitGroup
}

type DispatchJob struct {
	Email *notification.Email
	Push  *PushMessage
}

type PushMessage struct {
	Token    string
	Platform string
	Title    string
	Body     string
	Data     map[string]string
}

func NewNotificationDispatcher(m mailer.Mailer) *NotificationDispatcher {
	dispatcher := &NotificationDispatcher{
		mailer:   m,
		workers:  5,
		jobQueue: make(chan *DispatchJob, 100),
		stopChan: make(chan struct{}),
	}

	dispatcher.startWorkers()

	return dispatcher
}

// Allow injecting the real FCM provider from main.go
func (d *NotificationDispatcher) SetPushProvider(provider PushProvider) {
	d.pushProvider = provider
}

func (d *NotificationDispatcher) startWorkers() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

func (d *NotificationDispatcher) worker() {
	defer d.wg.Done()
	for {
		select {
		case job := <-d.jobQueue:
			d.processJob(job)
		case <-d.stopChan:
			return
		}
	}
}

func (d *NotificationDispatcher) processJob(job *DispatchJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if job.Email != nil {
		email := job.Email
		if err := d.mailer.SendEmail(ctx, email.To, email.Subject, email.Body); err != nil {
			log.Printf("Email %s to %s failed: %v", email.Type, email.To, err)
			middleware.EmailDeliveryFailures.WithLabelValues(string(email.Type)).Inc()
		}
	}

	if job.Push != nil {
		if d.pushProvider == nil {
			log.Printf("Skipping push to %s: no push provider configured", job.Push.Token)
			return
		}
		push := job.Push
		if err := d.pushProvider.SendPush(ctx, push.Token, push.Platform, push.Title, push.Body, push.Data); err != nil {
			log.Printf("Push to token %s failed: %v", push.Token, err)
		}
	}
}

// Dispatch queues a job. Drops it with a log line when the queue stays
// full, so a slow SMTP relay can never block a request handler.
func (d *NotificationDispatcher) Dispatch(job *DispatchJob) {
	select {
	case d.jobQueue <- job:
	case <-time.After(5 * time.Second):
		log.Printf("Failed to queue notification job: queue full")
	}
}

func (d *NotificationDispatcher) DispatchEmail(email *notification.Email) {
	email.QueuedAt = time.Now()
	d.Dispatch(&DispatchJob{Email: email})
}

// Stop the dispatcher gracefully
func (d *NotificationDispatcher) Stop() {
	log.Println("Stopping notification dispatcher...")
	close(d.stopChan)
	d.wg.Wait()
	log.Println("Notification dispatcher stopped")
}
