package donation

import (
	"gorm.io/gorm"

	httpDelivery "github.com/tair/donation-tracker/internal/donation/delivery/http"
	"github.com/tair/donation-tracker/internal/donation/domain"
	"github.com/tair/donation-tracker/internal/donation/repository"
	"github.com/tair/donation-tracker/internal/donation/usecase/command"
	"github.com/tair/donation-tracker/internal/donation/usecase/query"
	"github.com/tair/donation-tracker/kafka"
	"github.com/tair/donation-tracker/pkg/cache"
	"github.com/tair/donation-tracker/pkg/metrics"
)

// ProvideUnitOfWork provides the gorm unit of work
func ProvideUnitOfWork(db *gorm.DB) domain.UnitOfWork {
	return repository.NewGormUnitOfWork(db)
}

// ProvideRepositories provides the non-transactional repositories used by queries
func ProvideRepositories(uow domain.UnitOfWork) domain.Repositories {
	return uow.Repos()
}

// ProvideLifecycle assembles the command collaborators. A nil publisher or cache
// disables events or invalidation.
func ProvideLifecycle(uow domain.UnitOfWork, publisher *kafka.Publisher, m *metrics.Metrics, pageCache *cache.PageCache) command.Lifecycle {
	lc := command.Lifecycle{
		UoW:     uow,
		Clock:   domain.UTCClock,
		Metrics: m,
	}
	if publisher != nil {
		lc.Events = publisher
	}
	if pageCache != nil {
		lc.Cache = pageCache
	}
	return lc
}

// ProvidePageCache exposes the redis page cache to the query side
func ProvidePageCache(pageCache *cache.PageCache) query.PageCache {
	return pageCache
}

// ProvidePinger exposes the pooled connection for health checks
func ProvidePinger(db *gorm.DB) (httpDelivery.Pinger, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return sqlDB, nil
}
