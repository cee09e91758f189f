package config

import (
	"gorm.io/gorm"

	"coilgen.GO/cron/jobs"
)

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

// CronJobs returns the built-in jobs, configured from AppConfig.
func CronJobs() map[string]CronJob {
	cfg, err := LoadAppConfig()
	if err != nil {
		cfg = defaults()
	}
	var openDB func() (*gorm.DB, error)
	if cfg.RegenPersist {
		openDB = NewDB
	}
	return map[string]CronJob{
		"regenerate": {
			Schedule: cfg.RegenSchedule,
			Job: jobs.RegenerateJob(jobs.RegenerateOptions{
				OutputDir: cfg.OutputDir,
				Count:     cfg.RegenCount,
				OpenDB:    openDB,
				Redis:     InitRedis(),
				TTL:       cfg.CoverageTTL(),
				Log:       NewLogger(),
			}),
		},
	}
}
