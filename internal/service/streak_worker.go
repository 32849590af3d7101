package service

import (
	"context"
	"sync"
	"time"

	"playreel/internal/middleware"
)

const (
	streakQueueDepth    = 256
	streakRetryAttempts = 3
	streakRetryBase     = 100 * time.Millisecond
)

// StreakWorker applies streak increments off the request path. Clip
// creation enqueues and moves on; a full queue drops the increment
// (logged and counted) rather than blocking the request.
type StreakWorker struct {
	streaks *StreakService
	queue   chan string
	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup

	// sleep is swapped in tests to skip real backoff.
	sleep func(time.Duration)
}

func NewStreakWorker(streaks *StreakService) *StreakWorker {
	return &StreakWorker{
		streaks: streaks,
		queue:   make(chan string, streakQueueDepth),
		done:    make(chan struct{}),
		sleep:   time.Sleep,
	}
}

// Start launches the consumer goroutine.
func (w *StreakWorker) Start() {
	w.wg.Add(1)
	go w.run()
}

// Enqueue schedules a streak increment for the user. Never blocks.
func (w *StreakWorker) Enqueue(userID string) {
	select {
	case w.queue <- userID:
	default:
		middleware.StreakEnqueueFailures.WithLabelValues("queue_full").Inc()
		middleware.Logger.Warn("streak queue full, dropping increment", "user_id", userID)
	}
}

func (w *StreakWorker) run() {
	defer w.wg.Done()
	for {
		select {
		case userID := <-w.queue:
			w.process(userID)
		case <-w.done:
			// Drain what is already queued before exiting.
			for {
				select {
				case userID := <-w.queue:
					w.process(userID)
				default:
					return
				}
			}
		}
	}
}

func (w *StreakWorker) process(userID string) {
	var lastErr error
	for attempt := 0; attempt < streakRetryAttempts; attempt++ {
		if attempt > 0 {
			w.sleep(streakRetryBase << (attempt - 1))
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, lastErr = w.streaks.Increment(ctx, userID)
		cancel()
		if lastErr == nil {
			return
		}
	}
	middleware.StreakEnqueueFailures.WithLabelValues("exhausted").Inc()
	middleware.Logger.Error("streak increment failed after retries",
		"user_id", userID, "error", lastErr)
}

// Shutdown stops the consumer after draining the queue.
func (w *StreakWorker) Shutdown() {
	w.once.Do(func() { close(w.done) })
	w.wg.Wait()
}
