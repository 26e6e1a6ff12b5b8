package cli

// This file contains the webhook notification step. Notification is always
// best effort: a run whose render already succeeded is a success regardless
// of the notification outcome.

import (
	"github.com/ATOMIC09/chunky-timelapse/cli/webhook"
	"github.com/ATOMIC09/chunky-timelapse/model"
)

// notify posts the snapshot image and world summary to the configured
// webhook. Returns nil when no webhook is configured.
func (a *App) notify(cfg *Config, summary, snapshotPath string) *model.Notification {
	if cfg.WebhookURL == "" {
		a.logger.Debug().Msg("No webhook configured, skipping notification")
		return nil
	}

	notification := &model.Notification{WebhookURL: cfg.WebhookURL}

	if snapshotPath == "" {
		a.logger.Warn().Msg("No snapshot artifact to post, notification skipped")
		return notification
	}

	msg := webhook.Message{
		Content:   summary,
		Username:  cfg.WebhookUsername,
		AvatarURL: cfg.WebhookAvatarURL,
	}

	if err := webhook.New(cfg.WebhookURL).Send(msg, snapshotPath); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to send notification, skipped")
		return notification
	}

	notification.Sent = true
	a.logger.Info().Str("snapshot", snapshotPath).Msg("Notification sent")
	return notification
}
