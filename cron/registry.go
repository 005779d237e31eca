package cron

import (
	"sync"
)

// Job holds schedule and run function.
type Job struct {
	Schedule string
	Run      func(...string) error
}

var (
	mu     sync.Mutex
	jobs   = make(map[string]Job)
	locked bool
)

// Register adds a cron job. Call before StartCron. Panics if registry is locked.
func Register(name string, schedule string, run func(...string) error) {
	mu.Lock()
	defer mu.Unlock()
	if locked {
		panic("cron/registry: locked (register only before StartCron)")
	}
	if _, ok := jobs[name]; ok {
		panic("cron/registry: duplicate job " + name)
	}
	jobs[name] = Job{Schedule: schedule, Run: run}
}

// Unregister removes a job (for tests).
func Unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	locked = false
	delete(jobs, name)
}

// Jobs returns a copy of all registered jobs.
// Locks the registry on first call (immutable after).
func Jobs() map[string]Job {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]Job, len(jobs))
	for k, v := range jobs {
		out[k] = v
	}
	locked = true
	return out
}
