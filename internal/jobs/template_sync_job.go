package jobs

import (
	"context"
	"time"

	"github.com/crestline-remodeling/proposal-api/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TemplateSyncJobName is the name of the proposal template sync job.
const TemplateSyncJobName = "template_sync"

// TemplateSyncer pulls template additions into a single proposal.
// This interface allows the job to call the service without importing
// the service package directly.
type TemplateSyncer interface {
	SyncWithTemplate(ctx context.Context, proposalID uuid.UUID) (*domain.SyncReportDTO, error)
}

// ProposalLister lists proposals that still reference a template.
type ProposalLister interface {
	ListTemplateLinked(ctx context.Context) ([]uuid.UUID, error)
}

// TemplateSyncJob re-syncs every template-linked proposal so that
// additions made to a template after cloning reach existing proposals
// without manual intervention.
type TemplateSyncJob struct {
	syncer  TemplateSyncer
	lister  ProposalLister
	logger  *zap.Logger
	timeout time.Duration
}

// NewTemplateSyncJob creates a new template sync job.
// The timeout bounds a full pass over all template-linked proposals.
func NewTemplateSyncJob(syncer TemplateSyncer, lister ProposalLister, logger *zap.Logger, timeout time.Duration) *TemplateSyncJob {
	return &TemplateSyncJob{
		syncer:  syncer,
		lister:  lister,
		logger:  logger,
		timeout: timeout,
	}
}

// Run executes one sync pass. A failure on one proposal does not stop
// the pass; it is logged and counted.
func (j *TemplateSyncJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	j.logger.Info("starting template sync job")

	ids, err := j.lister.ListTemplateLinked(ctx)
	if err != nil {
		j.logger.Error("failed to list template-linked proposals",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	synced := 0
	failed := 0
	addedVariables := 0
	addedElements := 0

	for _, id := range ids {
		if ctx.Err() != nil {
			j.logger.Warn("template sync job timed out",
				zap.Int("remaining", len(ids)-synced-failed))
			break
		}

		report, err := j.syncer.SyncWithTemplate(ctx, id)
		if err != nil {
			failed++
			j.logger.Warn("proposal sync failed",
				zap.String("proposal_id", id.String()),
				zap.Error(err))
			continue
		}

		synced++
		addedVariables += len(report.AddedVariables)
		addedElements += len(report.AddedElements)
	}

	j.logger.Info("template sync job completed",
		zap.Int("proposals_synced", synced),
		zap.Int("proposals_failed", failed),
		zap.Int("variables_added", addedVariables),
		zap.Int("elements_added", addedElements),
		zap.Duration("duration", time.Since(start)))
}

// RegisterTemplateSyncJob registers the template sync job with the scheduler.
// The cronExpr should be a valid cron expression (e.g., "@every 6h").
func RegisterTemplateSyncJob(scheduler *Scheduler, syncer TemplateSyncer, lister ProposalLister, logger *zap.Logger, cronExpr string, timeout time.Duration) error {
	job := NewTemplateSyncJob(syncer, lister, logger, timeout)
	return scheduler.AddJob(TemplateSyncJobName, cronExpr, job.Run)
}
