package cron

import (
	"fmt"
	"sort"
	"strings"

	"github.com/robfig/cron/v3"

	"coilgen.GO/config"
	"coilgen.GO/core/logger"
)

// AllJobs merges the built-in config jobs with jobs registered by custom
// packages. Names are lower-cased; a registered job may not shadow a built-in.
func AllJobs() (map[string]Job, error) {
	out := make(map[string]Job)
	for name, j := range config.CronJobs() {
		out[strings.ToLower(name)] = Job{Schedule: j.Schedule, Run: j.Job}
	}
	for name, j := range Jobs() {
		name = strings.ToLower(name)
		if _, ok := out[name]; ok {
			return nil, fmt.Errorf("cron job %q registered twice", name)
		}
		out[name] = j
	}
	return out, nil
}

// Lookup finds a job by name, case-insensitively.
func Lookup(name string) (Job, bool, error) {
	jobs, err := AllJobs()
	if err != nil {
		return Job{}, false, err
	}
	j, ok := jobs[strings.ToLower(name)]
	return j, ok, nil
}

// StartCron schedules every job and starts the scheduler. Panics inside a job
// are recovered and logged.
func StartCron(log *logger.Logger) (*cron.Cron, error) {
	jobs, err := AllJobs()
	if err != nil {
		return nil, err
	}
	c := cron.New(cron.WithChain(cron.Recover(cronLogger{log})), cron.WithLogger(cronLogger{log}))

	names := make([]string, 0, len(jobs))
	for name := range jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		run := jobs[name].Run
		if _, err := c.AddFunc(jobs[name].Schedule, func() { run() }); err != nil {
			return nil, fmt.Errorf("register job %s: %w", name, err)
		}
		log.Info("cron job scheduled", "job", name, "schedule", jobs[name].Schedule)
	}
	c.Start()
	return c, nil
}

// cronLogger adapts logger.Logger to cron.Logger.
type cronLogger struct {
	l *logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error(msg, append(keysAndValues, "error", err)...)
}
