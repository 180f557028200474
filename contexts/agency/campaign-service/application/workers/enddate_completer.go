package workers

import (
	"context"
	"log/slog"
	"time"

	application "socialdesk/contexts/agency/campaign-service/application"
	"socialdesk/contexts/agency/campaign-service/domain/normalize"
	"socialdesk/contexts/agency/campaign-service/ports"
)

// EndDateCompleter sweeps active campaigns whose wrap-up date has passed
// and marks them completed. The comparison is at day granularity: a
// campaign ending today stays active until tomorrow's sweep.
type EndDateCompleter struct {
	Campaigns ports.CampaignRepository
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (j EndDateCompleter) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(j.Logger)
	now := time.Now().UTC()
	if j.Clock != nil {
		now = j.Clock.Now().UTC()
	}

	limit := j.BatchSize
	if limit <= 0 {
		limit = 100
	}

	completed, err := j.Campaigns.CompletePastEndDate(ctx, normalize.ToDateOnly(now), limit)
	if err != nil {
		logger.Error("end date completion sweep failed",
			"event", "campaign_end_date_completion_failed",
			"module", "agency/campaign-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if len(completed) > 0 {
		logger.Info("end date completion sweep completed",
			"event", "campaign_end_date_completion_completed",
			"module", "agency/campaign-service",
			"layer", "worker",
			"completed_count", len(completed),
		)
	}
	return nil
}
