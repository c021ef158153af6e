package utils

import (
	"go-home.io/x/ttlock/providers"
	"gopkg.in/robfig/cron.v2"
)

// Scheduler backed by robfig cron.
type cronProvider struct {
	cron *cron.Cron
}

// NewCron creates and starts a new scheduler.
func NewCron() providers.ICronProvider {
	p := &cronProvider{
		cron: cron.New(),
	}

	p.cron.Start()
	return p
}

// AddFunc schedules a new job.
func (p *cronProvider) AddFunc(spec string, cmd func()) (int, error) {
	id, err := p.cron.AddFunc(spec, cmd)
	return int(id), err
}

// RemoveFunc removes scheduled job from cron.
func (p *cronProvider) RemoveFunc(id int) {
	p.cron.Remove(cron.EntryID(id))
}
