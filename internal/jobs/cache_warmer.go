package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"minishop/internal/caching"
	"minishop/internal/repositories"

	"github.com/go-co-op/gocron/v2"
)

const productCacheTTL = 15 * time.Minute

// CacheWarmer periodically re-primes the product cache from the catalog so
// read-heavy traffic keeps hitting Redis between invalidations.
type CacheWarmer struct {
	scheduler   gocron.Scheduler
	productRepo repositories.ProductRepository
	cacheSvc    caching.CacheService
	interval    time.Duration
}

func NewCacheWarmer(productRepo repositories.ProductRepository, cacheSvc caching.CacheService, interval time.Duration) (*CacheWarmer, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	w := &CacheWarmer{
		scheduler:   scheduler,
		productRepo: productRepo,
		cacheSvc:    cacheSvc,
		interval:    interval,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(w.warm, context.Background()),
		gocron.WithName("product-cache-warm"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("create cache warm job: %w", err)
	}

	return w, nil
}

func (w *CacheWarmer) Start() {
	log.Printf("Starting product cache warmer (every %s)", w.interval)
	w.scheduler.Start()
}

func (w *CacheWarmer) Stop() error {
	return w.scheduler.Shutdown()
}

func (w *CacheWarmer) warm(ctx context.Context) {
	products, err := w.productRepo.List(ctx)
	if err != nil {
		log.Printf("Cache warm: list products failed: %v", err)
		return
	}

	warmed := 0
	for _, product := range products {
		if err := w.cacheSvc.SetProduct(ctx, product, productCacheTTL); err != nil {
			log.Printf("Cache warm: set product %d failed: %v", product.ID, err)
			continue
		}
		warmed++
	}
	log.Printf("Cache warm: primed %d of %d products", warmed, len(products))
}
