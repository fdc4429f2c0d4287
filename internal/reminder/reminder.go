// Package reminder runs the scheduled review job for system cost rates.
// Overhead rates go stale quietly; the job nags until someone reviews them.
package reminder

import (
	"os"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/heinrichnel/fleetops/internal/models"
)

const defaultSchedule = "0 8 * * 1" // Monday 08:00

// reviewAfterDays is how long rates may go unreviewed before the job
// starts reporting them as due.
const reviewAfterDays = 90

// Job checks the system cost rates on a cron schedule and logs when a
// review is due.
type Job struct {
	cron  *cron.Cron
	rates map[models.Currency]models.SystemCostRates
}

// New builds the reminder job over the given rate tables.
func New(rates map[models.Currency]models.SystemCostRates) *Job {
	return &Job{
		cron:  cron.New(),
		rates: rates,
	}
}

// Start schedules the check using COST_REMINDER_SCHEDULE, or weekly on
// Monday morning by default.
func (j *Job) Start() error {
	schedule := os.Getenv("COST_REMINDER_SCHEDULE")
	if schedule == "" {
		schedule = defaultSchedule
	}
	if _, err := j.cron.AddFunc(schedule, j.check); err != nil {
		return err
	}
	j.cron.Start()
	log.WithField("schedule", schedule).Info("system cost reminder scheduled")
	return nil
}

// Stop halts the scheduler.
func (j *Job) Stop() {
	j.cron.Stop()
}

func (j *Job) check() {
	now := time.Now()
	for currency, rates := range j.rates {
		age := now.Sub(rates.LastUpdated)
		if age < reviewAfterDays*24*time.Hour {
			continue
		}
		log.WithFields(log.Fields{
			"currency":     currency,
			"last_updated": rates.LastUpdated.Format("2006-01-02"),
			"age_days":     int(age.Hours() / 24),
		}).Warn("system cost rates due for review")
	}
}
