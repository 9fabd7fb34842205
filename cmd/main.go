package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/hh-vacancy-search/internal/bot"
	"github.com/maxaizer/hh-vacancy-search/internal/clients/hh"
	"github.com/maxaizer/hh-vacancy-search/internal/config"
	"github.com/maxaizer/hh-vacancy-search/internal/logger"
	"github.com/maxaizer/hh-vacancy-search/internal/metrics"
	"github.com/maxaizer/hh-vacancy-search/internal/repositories"
	"github.com/maxaizer/hh-vacancy-search/internal/search"
	"github.com/maxaizer/hh-vacancy-search/internal/services"
	log "github.com/sirupsen/logrus"
)

func newHHClient(cfg config.HHConfig) *hh.Client {
	client := hh.NewClient()
	client.SetBaseURL(cfg.BaseURL)
	client.SetUserAgent(cfg.UserAgent)
	client.SetRateLimit(cfg.MaxRequestsPerSecond)
	client.SetTimeout(cfg.Timeout)
	return client
}

func runReferenceRefresher(ctx context.Context, cfg *config.Config, hhClient *hh.Client,
	areas *repositories.Areas, industries *repositories.Industries, cachedAreas *repositories.CachedAreas) *services.ReferenceRefresher {

	refresher := services.NewReferenceRefresher(hhClient, areas, industries, cachedAreas.Flush)
	if err := refresher.Start(ctx, cfg.Search.ReferenceRefreshCron); err != nil {
		log.Fatalf("can't start reference data refresher: %v", err)
	}
	return refresher
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(ctx, cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(cfg.Metrics.Port)

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString, cfg.DB.MaxOpenConnections)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	hhClient := newHHClient(cfg.HH)

	areas := repositories.NewAreasRepository(dbContext.DB)
	cachedAreas := repositories.NewCachedAreas(areas)
	industries := repositories.NewIndustriesRepository(dbContext.DB)
	favorites := repositories.NewFavoritesRepository(dbContext.DB)
	filters := repositories.NewFiltersRepository(dbContext.DB)
	vacancies := repositories.NewVacanciesRepository(hhClient, cfg.Search.PerPage)

	refresher := runReferenceRefresher(ctx, cfg, hhClient, areas, industries, cachedAreas)
	defer refresher.Stop()

	bus := EventBus.New()

	deps := bot.Dependencies{
		Searcher:   services.NewVacanciesInteractor(vacancies),
		Filters:    services.NewFiltersInteractor(filters, bus),
		Details:    services.NewVacancyDetailsInteractor(vacancies, favorites, bus),
		Areas:      cachedAreas,
		Industries: industries,
	}

	tgbot, err := bot.NewBot(cfg.Bot.Token, bus, deps, bot.Options{
		Search:        search.Options{PerPage: cfg.Search.PerPage, Debounce: cfg.Search.Debounce},
		ClickDebounce: cfg.Search.ClickDebounce,
	})
	if err != nil {
		log.Fatalf("can't create bot: %v", err)
	}
	go tgbot.Run()

	<-ctx.Done()

	log.Info("Shutting down services...")
	tgbot.Stop()
	log.Info("Services stopped.")
}
