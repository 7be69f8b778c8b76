package services

import (
	"context"
	"time"

	cron "github.com/robfig/cron/v3"

	"github.com/carevantage/staffing-service/internal/constants"
	"github.com/carevantage/staffing-service/internal/repositories"
	"github.com/carevantage/staffing-service/internal/utils"
)

// ExpirySchedulerService runs the daily sweep that nags workers whose
// fully-completed credentials are inside the expiry warning window.
type ExpirySchedulerService struct {
	credRepo   repositories.CredentialRepository
	workerRepo repositories.WorkerRepository
	notifier   *NotificationService
	cron       *cron.Cron
}

func NewExpirySchedulerService(
	credRepo repositories.CredentialRepository,
	workerRepo repositories.WorkerRepository,
	notifier *NotificationService,
) *ExpirySchedulerService {
	return &ExpirySchedulerService{
		credRepo:   credRepo,
		workerRepo: workerRepo,
		notifier:   notifier,
		cron:       cron.New(),
	}
}

// Start registers the daily job and kicks off the cron loop.
func (s *ExpirySchedulerService) Start() error {
	_, err := s.cron.AddFunc(constants.ExpirySweepCronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := s.RunSweep(ctx); err != nil {
			utils.Logger.WithError(err).Error("credential expiry sweep failed")
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	utils.Logger.Infof("credential expiry sweep scheduled (%s)", constants.ExpirySweepCronSpec)
	return nil
}

func (s *ExpirySchedulerService) Stop() {
	s.cron.Stop()
}

// RunSweep sends one reminder per credential currently expiring soon.
func (s *ExpirySchedulerService) RunSweep(ctx context.Context) error {
	now := time.Now().UTC()
	creds, err := s.credRepo.ListExpiringBetween(ctx, now, now.Add(constants.ExpiryReminderLookahead))
	if err != nil {
		return err
	}

	reminded := 0
	for _, cred := range creds {
		worker, err := s.workerRepo.GetByID(ctx, cred.OwnerID)
		if err != nil || worker == nil {
			continue
		}
		daysLeft := DaysUntilExpiry(cred.ExpiryDate, now)
		if daysLeft < 0 {
			continue
		}
		s.notifier.NotifyCredentialExpiring(worker, cred, daysLeft)
		reminded++
	}
	utils.Logger.Infof("expiry sweep complete: %d credentials expiring, %d reminders sent", len(creds), reminded)
	return nil
}
