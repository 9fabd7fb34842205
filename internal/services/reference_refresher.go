package services

import (
	"context"
	"fmt"

	"github.com/maxaizer/hh-vacancy-search/internal/clients/hh"
	"github.com/maxaizer/hh-vacancy-search/internal/domain/models"
	"github.com/maxaizer/hh-vacancy-search/internal/logger"
	"github.com/maxaizer/hh-vacancy-search/internal/mapper"
	"github.com/maxaizer/hh-vacancy-search/internal/metrics"
	"github.com/robfig/cron/v3"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type referenceClient interface {
	GetAreas(ctx context.Context) ([]hh.Area, error)
	GetIndustries(ctx context.Context) ([]hh.Industry, error)
}

type areasStore interface {
	Count(ctx context.Context) (int64, error)
	Replace(ctx context.Context, areas []models.Area) error
}

type industriesStore interface {
	Count(ctx context.Context) (int64, error)
	Replace(ctx context.Context, industries []models.Industry) error
}

// ReferenceRefresher keeps the local copy of hh.ru areas and industries used by the filters dialog.
type ReferenceRefresher struct {
	client      referenceClient
	areas       areasStore
	industries  industriesStore
	cron        *cron.Cron
	ctx         context.Context
	onRefreshed func()
}

func NewReferenceRefresher(client referenceClient, areas areasStore, industries industriesStore,
	onRefreshed func()) *ReferenceRefresher {
	if onRefreshed == nil {
		onRefreshed = func() {}
	}
	return &ReferenceRefresher{
		client:      client,
		areas:       areas,
		industries:  industries,
		cron:        cron.New(),
		ctx:         context.Background(),
		onRefreshed: onRefreshed,
	}
}

// Start fills empty tables right away and schedules a periodic refresh.
func (r *ReferenceRefresher) Start(ctx context.Context, schedule string) error {

	r.ctx = ctx

	if err := r.populateIfEmpty(ctx); err != nil {
		return err
	}

	if _, err := r.cron.AddFunc(schedule, r.scheduledRefresh); err != nil {
		return err
	}

	r.cron.Start()
	log.Infof("reference data refresher started, schedule: %s", schedule)
	return nil
}

func (r *ReferenceRefresher) Stop() {
	<-r.cron.Stop().Done()
}

func (r *ReferenceRefresher) Refresh(ctx context.Context) error {

	areas, err := r.client.GetAreas(ctx)
	if err != nil {
		return fmt.Errorf("failed to get areas: %w", err)
	}

	industries, err := r.client.GetIndustries(ctx)
	if err != nil {
		return fmt.Errorf("failed to get industries: %w", err)
	}

	if err = r.areas.Replace(ctx, lo.Map(areas, func(a hh.Area, _ int) models.Area { return mapper.ToArea(a) })); err != nil {
		return fmt.Errorf("failed to save areas: %w", err)
	}

	if err = r.industries.Replace(ctx, lo.Map(industries, func(i hh.Industry, _ int) models.Industry {
		return mapper.ToIndustry(i)
	})); err != nil {
		return fmt.Errorf("failed to save industries: %w", err)
	}

	r.onRefreshed()
	log.Infof("reference data refreshed: %d areas, %d industries", len(areas), len(industries))
	return nil
}

func (r *ReferenceRefresher) populateIfEmpty(ctx context.Context) error {

	areasCount, err := r.areas.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count areas: %w", err)
	}

	industriesCount, err := r.industries.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count industries: %w", err)
	}

	if areasCount > 0 && industriesCount > 0 {
		return nil
	}

	return r.refreshWithMetrics(ctx)
}

func (r *ReferenceRefresher) scheduledRefresh() {
	if err := r.refreshWithMetrics(r.ctx); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHhApi).Errorf("scheduled reference refresh failed: %v", err)
	}
}

func (r *ReferenceRefresher) refreshWithMetrics(ctx context.Context) error {
	err := r.Refresh(ctx)
	if err != nil {
		metrics.ReferenceRefreshCounter.WithLabelValues("failure").Inc()
		return err
	}
	metrics.ReferenceRefreshCounter.WithLabelValues("success").Inc()
	return nil
}
