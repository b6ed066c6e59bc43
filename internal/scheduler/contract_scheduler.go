package scheduler

import (
	"encoding/json"
	"fmt"
	"time"

	"hostel-be-svc/internal/models"
	"hostel-be-svc/internal/repository"
	"hostel-be-svc/internal/service"
	"hostel-be-svc/pkg/logger"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// ContractScheduler runs the periodic contract-end watch
type ContractScheduler struct {
	residentService  service.ResidentService
	schedulerLogRepo repository.SchedulerLogRepository
	logger           *logger.Logger
	cron             *cron.Cron
	cronExpression   string
}

// contractWatchResult summarizes one scheduled run
type contractWatchResult struct {
	ContractEnded int    `json:"contract_ended"`
	ResidentIDs   []uint `json:"resident_ids"`
}

// NewContractScheduler creates a new contract scheduler
func NewContractScheduler(residentService service.ResidentService, schedulerLogRepo repository.SchedulerLogRepository, logger *logger.Logger, cronExpression string) *ContractScheduler {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &ContractScheduler{
		residentService:  residentService,
		schedulerLogRepo: schedulerLogRepo,
		logger:           logger,
		cron:             c,
		cronExpression:   cronExpression,
	}
}

// Start initializes and starts all scheduled jobs
func (s *ContractScheduler) Start() error {
	s.logger.Info("Starting contract scheduler...")

	// Cron format: "seconds minutes hours day-of-month month day-of-week"
	s.logger.WithField("cron_expression", s.cronExpression).Info("Scheduling contract-end watch job")
	_, err := s.cron.AddFunc(s.cronExpression, s.watchContractEnds)
	if err != nil {
		return fmt.Errorf("failed to schedule contract-end watch job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Contract scheduler started successfully")

	return nil
}

// Stop gracefully stops the scheduler
func (s *ContractScheduler) Stop() {
	s.logger.Info("Stopping contract scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Contract scheduler stopped successfully")
}

// watchContractEnds is the scheduled job that reports residents whose contract
// has run out
func (s *ContractScheduler) watchContractEnds() {
	schedulerCode := "CONTRACT_END_WATCH"
	now := time.Now()
	docID := uuid.New().String()

	s.logScheduler(schedulerCode, docID, "Starting scheduled contract-end watch", "START", &now)
	s.logger.Info("Starting scheduled contract-end watch...")

	s.logScheduler(schedulerCode, docID, "Contract-end watch in progress", "RUNNING", &now)

	residents, err := s.residentService.GetContractEndedResidents()
	if err != nil {
		failedMessage := fmt.Sprintf("Failed to list contract-ended residents: %v", err)
		s.logScheduler(schedulerCode, docID, failedMessage, "FAILED", &now)
		s.logger.WithError(err).Error("Failed to list contract-ended residents")
		return
	}

	result := contractWatchResult{ContractEnded: len(residents)}
	for _, resident := range residents {
		result.ResidentIDs = append(result.ResidentIDs, resident.ID)
		s.logger.WithFields(map[string]interface{}{
			"resident_id":       resident.ID,
			"contract_end_date": resident.ContractEndDate.Format("2006-01-02"),
		}).Info("Resident contract has ended")
	}

	resultJSON, _ := json.Marshal(result)
	successMessage := fmt.Sprintf("Contract-end watch completed: %s", string(resultJSON))
	s.logScheduler(schedulerCode, docID, successMessage, "SUCCESS", &now)

	s.logger.WithField("contract_ended", len(residents)).Info("Scheduled contract-end watch completed")
}

// logScheduler creates a new log entry in the database
func (s *ContractScheduler) logScheduler(schedulerCode, documentID, message, status string, createdAt *time.Time) {
	logEntry := &models.SchedulerLog{
		DocumentID:    &documentID,
		SchedulerCode: &schedulerCode,
		Message:       &message,
		Status:        &status,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}

	if err := s.schedulerLogRepo.CreateSchedulerLog(logEntry); err != nil {
		s.logger.WithError(err).WithField("status", status).Error("Failed to create scheduler log entry")
	}
}
