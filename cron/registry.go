package cron

import (
	"strings"
	"sync"

	"github.com/robfig/cron/v3"

	"coilgen.GO/core/registry"
)

// Job is a schedule plus the function it triggers. args come from
// `cron:start -j <name> [args...]` and are empty on scheduled runs.
type Job struct {
	Schedule string
	Run      func(...string)
}

var mu sync.Mutex

// Register adds a job from a custom package's init. Names are case-insensitive.
// It panics on a duplicate name, an unparsable schedule, or once the jobs have
// been read by the scheduler.
func Register(name string, schedule string, run func(...string)) {
	mu.Lock()
	defer mu.Unlock()
	name = strings.ToLower(name)
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCron) {
		panic("cron: Register(" + name + ") after the scheduler read the jobs")
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		panic("cron: job " + name + ": " + err.Error())
	}
	jobs := getJobs()
	if _, ok := jobs[name]; ok {
		panic("cron: duplicate job " + name)
	}
	jobs[name] = Job{Schedule: schedule, Run: run}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCron, jobs)
}

// Unregister removes a job and unlocks the registry. Tests only.
func Unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCron)
	jobs := getJobs()
	delete(jobs, strings.ToLower(name))
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCron, jobs)
}

func getJobs() map[string]Job {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCron); ok && v != nil {
		return v.(map[string]Job)
	}
	return make(map[string]Job)
}

// Jobs returns a copy of the registered jobs and locks the registry.
func Jobs() map[string]Job {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]Job)
	for k, v := range getJobs() {
		out[k] = v
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryCron)
	return out
}
