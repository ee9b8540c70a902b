package cron

import (
	"context"
	"log"
	"time"

	"conjunto/config"

	"github.com/hibiken/asynq"
)

const TypeStoreFlush = "store:flush"

// Flusher is implemented by the in-memory repositories that snapshot their
// state to disk.
type Flusher interface {
	Flush() error
}

// InitFlushWorker runs the periodic snapshot of the in-memory stores through
// asynq: a scheduler enqueues a flush task on the configured cadence and the
// worker executes it. Only wired when the memory storage driver is active.
func InitFlushWorker(flushers []Flusher) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeStoreFlush, handleFlushTask(flushers))

	// Start the worker with retry logic.
	go func() {
		log.Println("[FlushWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[FlushWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[FlushWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	// Schedule the periodic flush.
	scheduler := asynq.NewScheduler(redisOpts, nil)
	if _, err := scheduler.Register(config.AppConfig.FlushSpec, asynq.NewTask(TypeStoreFlush, nil)); err != nil {
		log.Fatalf("[FlushWorker] failed to register flush schedule: %v", err)
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[FlushWorker] scheduler stopped: %v", err)
		}
	}()
}

func handleFlushTask(flushers []Flusher) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		for _, f := range flushers {
			if err := f.Flush(); err != nil {
				log.Printf("[FlushWorker] snapshot failed: %v", err)
				return err
			}
		}
		return nil
	}
}
