package helper

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"wedding_manager/config"
	"wedding_manager/constants"
	"wedding_manager/model"
	"wedding_manager/utils"
)

var (
	reminderScheduler gocron.Scheduler
	sweepScheduler    *cron.Cron
)

// StartReminderScheduler sends a daily RSVP reminder to guests who have not
// answered while the wedding is less than two weeks away.
func StartReminderScheduler(db *gorm.DB) {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Error().Err(err).Msg("reminder scheduler init failed")
		return
	}
	reminderScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(8, 0, 0))),
		gocron.NewTask(func() { SendRSVPReminders(db) }),
	)
	if err != nil {
		log.Error().Err(err).Msg("reminder job registration failed")
		return
	}

	s.Start()
	log.Info().Msg("RSVP reminder scheduler started (daily 08:00)")
}

func StopReminderScheduler() {
	if reminderScheduler != nil {
		_ = reminderScheduler.Shutdown()
	}
}

func SendRSVPReminders(db *gorm.DB) {
	now := time.Now()
	horizon := now.AddDate(0, 0, 14)

	var couples []model.Couple
	err := db.Where("is_active = ? AND is_published = ? AND wedding_date BETWEEN ? AND ?",
		true, true, now, horizon).
		Preload("Guests", "status = ? AND email <> ''", constants.RSVP_PENDING).
		Find(&couples).Error
	if err != nil {
		log.Error().Err(err).Msg("reminder sweep query failed")
		return
	}

	base := config.ConfigOr("PUBLIC_BASE_URL", "http://localhost:8002")
	sent := 0
	for _, couple := range couples {
		names := couple.GroomName + " & " + couple.BrideName
		for _, guest := range couple.Guests {
			utils.SendRSVPReminder(guest.Email, utils.RSVPReminderData{
				GuestName:   guest.FullName,
				CoupleNames: names,
				WeddingDate: couple.WeddingDate.Format("January 2, 2006"),
				RsvpUrl:     fmt.Sprintf("%s/%s?code=%s", base, couple.Slug, guest.Code),
			}, constants.RSVP_REMINDER_SUBJECT)
			sent++
		}
	}
	if sent > 0 {
		log.Info().Int("reminders", sent).Msg("RSVP reminders queued")
	}
}

// StartTokenSweep deletes expired verification and password reset tokens
// every 10 minutes.
func StartTokenSweep(db *gorm.DB) {
	sweepScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := sweepScheduler.AddFunc("*/10 * * * *", func() {
		res := db.Where("expires_at < ?", time.Now()).Delete(&model.VerificationToken{})
		if res.Error != nil {
			log.Error().Err(res.Error).Msg("verification token sweep failed")
			return
		}
		if res.RowsAffected > 0 {
			log.Info().Int64("deleted", res.RowsAffected).Msg("expired verification tokens removed")
		}

		res = db.Where("expires_at < ?", time.Now()).Delete(&model.PasswordResetToken{})
		if res.Error != nil {
			log.Error().Err(res.Error).Msg("reset token sweep failed")
			return
		}
		if res.RowsAffected > 0 {
			log.Info().Int64("deleted", res.RowsAffected).Msg("expired reset tokens removed")
		}
	})
	if err != nil {
		log.Error().Err(err).Msg("token sweep registration failed")
		return
	}

	sweepScheduler.Start()
}

func StopTokenSweep() {
	if sweepScheduler != nil {
		sweepScheduler.Stop()
	}
}
