//go:build wireinject
// +build wireinject

package donation

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	httpDelivery "github.com/tair/donation-tracker/internal/donation/delivery/http"
	"github.com/tair/donation-tracker/internal/donation/domain"
	"github.com/tair/donation-tracker/internal/donation/usecase/command"
	"github.com/tair/donation-tracker/internal/donation/usecase/query"
	"github.com/tair/donation-tracker/kafka"
	"github.com/tair/donation-tracker/pkg/auth"
	"github.com/tair/donation-tracker/pkg/cache"
	"github.com/tair/donation-tracker/pkg/metrics"
)

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUnitOfWork,
	ProvideRepositories,
	wire.FieldsOf(new(domain.Repositories),
		"Donors", "Products", "Donations", "Inventory", "Waste", "Audit", "Shifts"),
)

var CommandSet = wire.NewSet(
	ProvideLifecycle,
	command.NewCreateDonationHandler,
	command.NewAddItemHandler,
	command.NewRecordInspectionHandler,
	command.NewRecordDispositionHandler,
	command.NewUpdateStatusHandler,
	command.NewGenerateReceiptHandler,
	command.NewReissueReceiptHandler,
	command.NewDeleteDonationHandler,
	command.NewAdjustInventoryHandler,
	command.NewSetBlockedHandler,
	command.NewLogWasteHandler,
	command.NewCreateDonorHandler,
	command.NewUpdateDonorHandler,
	command.NewSetDonorActiveHandler,
	command.NewCreateProductHandler,
	command.NewUpdateProductHandler,
	command.NewDeleteProductHandler,
	command.NewScheduleShiftHandler,
	command.NewCloseShiftHandler,
	wire.Struct(new(httpDelivery.Commands), "*"),
)

var QuerySet = wire.NewSet(
	ProvidePageCache,
	query.NewGetDonationHandler,
	query.NewListDonationsHandler,
	query.NewGetAuditTrailHandler,
	query.NewGetDonorHandler,
	query.NewListDonorsHandler,
	query.NewGetProductHandler,
	query.NewListProductsHandler,
	query.NewGetInventoryHandler,
	query.NewListInventoryHandler,
	query.NewListWasteHandler,
	query.NewListShiftsHandler,
	wire.Struct(new(httpDelivery.Queries), "*"),
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(
	db *gorm.DB,
	authenticator *auth.Authenticator,
	m *metrics.Metrics,
	publisher *kafka.Publisher,
	pageCache *cache.PageCache,
) (*httpDelivery.DonationHandler, error) {
	wire.Build(
		RepositorySet,
		CommandSet,
		QuerySet,
		ProvidePinger,
		httpDelivery.NewDonationHandler,
	)
	return nil, nil
}
