package jobs

import (
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/teamflow/finance-service/internal/service"
)

// Scheduler runs the recurring background jobs: a nightly fund-depletion
// scan and a monthly trend-report mailing.
type Scheduler struct {
	cron *cron.Cron
	svc  *service.Service
	log  *logrus.Logger
}

// NewScheduler initializes the cron scheduler
func NewScheduler(svc *service.Service, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		svc:  svc,
		log:  log,
	}
}

// Start registers the jobs and starts the cron loop
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 2 * * *", s.svc.ScanFundDepletion); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 6 1 * *", s.svc.SendMonthlyReports); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("Scheduler started: nightly depletion scan, monthly reports")
	return nil
}

// Stop halts the cron loop, waiting for running jobs
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
