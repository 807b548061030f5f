package cron

import (
	"context"
	"encoding/json"
	"time"

	"telecare/config"
	"telecare/models"
	"telecare/services/notification"
	"telecare/services/tasks"
	"telecare/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReminderWorker runs the asynq reminder worker in background.
func InitReminderWorker(notifSvc notification.NotificationService) {
	logger := utils.GetLogger()

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReminderSend, handleReminderTask(notifSvc, logger))

	// Start worker with retry logic; the portal stays usable without it.
	go func() {
		logger.Info("reminder worker starting")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("reminder worker failed to start",
					zap.Int("attempt", attempts),
					zap.Int("maxAttempts", maxAttempts),
					zap.Error(err))

				if attempts == maxAttempts {
					logger.Error("reminder worker giving up")
					return
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("reminder task has invalid payload", zap.Error(err))
			return err
		}

		if err := notifSvc.SendReminder(ctx, p); err != nil {
			logger.Error("failed to send reminder",
				zap.String("rendezVousId", p.RendezVousID),
				zap.Error(err))
			return err
		}
		return nil
	}
}
