package market

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler runs the drift cycle on a fixed wall-clock interval. Cycles
// never overlap: a firing that lands while the previous cycle is still
// running is skipped.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler(interval time.Duration, cycle func()) (*Scheduler, error) {
	logger := cron.PrintfLogger(logrus.StandardLogger())
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(logger),
		cron.Recover(logger),
	))

	if _, err := c.AddFunc(fmt.Sprintf("@every %s", interval), cycle); err != nil {
		return nil, fmt.Errorf("schedule drift cycle: %w", err)
	}
	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for an in-flight cycle to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
