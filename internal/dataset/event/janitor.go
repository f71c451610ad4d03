package event

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/tranthaituong/DataAnalystAssistant/internal/dataset/entity"
	"github.com/tranthaituong/DataAnalystAssistant/internal/pkg/pkgerror"
)

type Handler interface {
	Handle(ctx context.Context, event entity.CleanupEvent) error
}

type JanitorConfig struct {
	Workers     int
	MaxRetries  int
	BaseBackoff time.Duration
}

type Janitor struct {
	bus         *Bus
	handler     Handler
	workers     int
	maxRetries  int
	baseBackoff time.Duration
	seen        sync.Map
	wg          sync.WaitGroup
}

func NewJanitor(bus *Bus, handler Handler, cfg JanitorConfig) *Janitor {
	workers := cfg.Workers
	if workers < 1 {
		workers = 2
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	baseBackoff := cfg.BaseBackoff
	if baseBackoff <= 0 {
		baseBackoff = 100 * time.Millisecond
	}

	return &Janitor{
		bus:         bus,
		handler:     handler,
		workers:     workers,
		maxRetries:  maxRetries,
		baseBackoff: baseBackoff,
	}
}

func (j *Janitor) Start() {
	for i := 0; i < j.workers; i++ {
		j.wg.Add(1)
		go j.worker()
	}
}

func (j *Janitor) Stop(ctx context.Context) error {
	if j.bus != nil {
		j.bus.Close()
	}

	done := make(chan struct{})
	go func() {
		j.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (j *Janitor) worker() {
	defer j.wg.Done()

	for event := range j.bus.Subscribe() {
		j.processEvent(event)
	}
}

func (j *Janitor) processEvent(event entity.CleanupEvent) {
	if j.handler == nil {
		return
	}

	if event.EventID != "" {
		if _, loaded := j.seen.LoadOrStore(event.EventID, struct{}{}); loaded {
			slog.Info("skip duplicate cleanup event", "event_id", event.EventID, "token", event.Token)
			return
		}
	}

	backoff := j.baseBackoff
	for attempt := 0; attempt <= j.maxRetries; attempt++ {
		err := j.handler.Handle(context.Background(), event)
		if err == nil {
			return
		}

		if attempt == j.maxRetries {
			slog.Error("failed to clean up temp file after retries", "event_id", event.EventID, "token", event.Token, "error", err)
			return
		}

		if !sleepBackoff(backoff) {
			return
		}
		backoff *= 2
	}
}

func sleepBackoff(d time.Duration) bool {
	if d <= 0 {
		return false
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	<-timer.C
	return true
}

type Remover interface {
	Remove(ctx context.Context, token string) error
}

type FileCleaner struct {
	Store Remover
}

func (c FileCleaner) Handle(ctx context.Context, event entity.CleanupEvent) error {
	if event.Token == "" {
		return errors.New("missing token")
	}

	err := c.Store.Remove(ctx, event.Token)
	if errors.Is(err, pkgerror.ErrNotFound) {
		slog.Info("temp file already removed", "event_id", event.EventID, "token", event.Token)
		return nil
	}
	if err != nil {
		return err
	}

	slog.Info("removed temp file", "event_id", event.EventID, "token", event.Token)
	return nil
}
