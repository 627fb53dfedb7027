package cmd

import (
	httpin "fleetdelivery/internal/adapters/in/http"
	"fleetdelivery/internal/adapters/out/postgres"
	"fleetdelivery/internal/core/application/usecases/commands"
	"fleetdelivery/internal/core/application/usecases/queries"
	"fleetdelivery/internal/core/domain/services"
	"fleetdelivery/internal/core/ports"
	"fleetdelivery/internal/jobs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the infrastructure collaborators the use cases run on.
type Dependencies struct {
	DB         *gorm.DB
	Locker     ports.Locker
	References ports.ReferenceChecker
	Publisher  ports.EventPublisher
	Clock      ports.Clock
	Logger     *zap.Logger
}

type CompositionRoot struct {
	cfg        Config
	deps       Dependencies
	uowFactory *postgres.GormUnitOfWorkFactory
	mutator    *commands.OrderMutator
}

func NewCompositionRoot(cfg Config, deps Dependencies) CompositionRoot {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	c := CompositionRoot{
		cfg:        cfg,
		deps:       deps,
		uowFactory: postgres.NewGormUnitOfWorkFactory(deps.DB),
	}
	c.mutator = commands.NewOrderMutator(c.orderUoWFactory(), deps.Locker, deps.Clock, deps.Publisher, deps.Logger)
	return c
}

func (c *CompositionRoot) orderUoWFactory() commands.DeliveryOrderUoWFactory {
	return FuncDeliveryOrderUoWFactory(func() commands.DeliveryOrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) etaUoWFactory() commands.ETAUoWFactory {
	return FuncETAUoWFactory(func() commands.ETAUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateDeliveryOrderCommandHandler() commands.CreateDeliveryOrderCommandHandler {
	return commands.NewCreateDeliveryOrderCommandHandler(
		c.orderUoWFactory(), c.deps.Locker, c.deps.References, c.deps.Clock, c.cfg.Orders.CreateAttempts, c.deps.Logger,
	)
}

func (c *CompositionRoot) CreateAssignDeliveryOrderCommandHandler() commands.AssignDeliveryOrderCommandHandler {
	return commands.NewAssignDeliveryOrderCommandHandler(c.mutator, c.deps.References)
}

func (c *CompositionRoot) CreateStartDeliveryOrderCommandHandler() commands.StartDeliveryOrderCommandHandler {
	return commands.NewStartDeliveryOrderCommandHandler(c.mutator)
}

func (c *CompositionRoot) CreateCompleteDeliveryOrderCommandHandler() commands.CompleteDeliveryOrderCommandHandler {
	return commands.NewCompleteDeliveryOrderCommandHandler(c.mutator)
}

func (c *CompositionRoot) CreateCancelDeliveryOrderCommandHandler() commands.CancelDeliveryOrderCommandHandler {
	return commands.NewCancelDeliveryOrderCommandHandler(c.mutator)
}

func (c *CompositionRoot) CreateFailDeliveryOrderCommandHandler() commands.FailDeliveryOrderCommandHandler {
	return commands.NewFailDeliveryOrderCommandHandler(c.mutator)
}

func (c *CompositionRoot) CreateReopenDeliveryOrderCommandHandler() commands.ReopenDeliveryOrderCommandHandler {
	return commands.NewReopenDeliveryOrderCommandHandler(c.mutator)
}

func (c *CompositionRoot) CreateAddDeliveryItemCommandHandler() commands.AddDeliveryItemCommandHandler {
	return commands.NewAddDeliveryItemCommandHandler(c.mutator, c.deps.References)
}

func (c *CompositionRoot) CreateRemoveDeliveryItemCommandHandler() commands.RemoveDeliveryItemCommandHandler {
	return commands.NewRemoveDeliveryItemCommandHandler(c.mutator)
}

func (c *CompositionRoot) CreateSetRouteEndpointsCommandHandler() commands.SetRouteEndpointsCommandHandler {
	return commands.NewSetRouteEndpointsCommandHandler(c.mutator)
}

func (c *CompositionRoot) CreateOptimizeRouteCommandHandler() commands.OptimizeRouteCommandHandler {
	return commands.NewOptimizeRouteCommandHandler(c.mutator, services.NewRoutePlanner(c.cfg.Geo.Params(), nil))
}

func (c *CompositionRoot) CreateArriveAtStopCommandHandler() commands.ArriveAtStopCommandHandler {
	return commands.NewArriveAtStopCommandHandler(c.mutator)
}

func (c *CompositionRoot) CreateRecordProofOfDeliveryCommandHandler() commands.RecordProofOfDeliveryCommandHandler {
	return commands.NewRecordProofOfDeliveryCommandHandler(c.mutator)
}

func (c *CompositionRoot) CreateRecordCODPaymentCommandHandler() commands.RecordCODPaymentCommandHandler {
	return commands.NewRecordCODPaymentCommandHandler(c.mutator)
}

func (c *CompositionRoot) CreateRecordDeliveryFailureCommandHandler() commands.RecordDeliveryFailureCommandHandler {
	return commands.NewRecordDeliveryFailureCommandHandler(c.mutator)
}

func (c *CompositionRoot) CreateUpdateTrackingLocationCommandHandler() commands.UpdateTrackingLocationCommandHandler {
	return commands.NewUpdateTrackingLocationCommandHandler(c.mutator, c.cfg.Geo.Params())
}

func (c *CompositionRoot) CreateUpdateETACommandHandler() commands.UpdateETACommandHandler {
	return commands.NewUpdateETACommandHandler(c.etaUoWFactory(), c.deps.Locker, c.deps.Clock)
}

func (c *CompositionRoot) CreateGetDeliveryOrderQueryHandler() queries.GetDeliveryOrderQueryHandler {
	return queries.NewGetDeliveryOrderQueryHandler(c.uowFactory.Create().DeliveryOrderRepository())
}

func (c *CompositionRoot) CreateListActiveOrdersQueryHandler() queries.ListActiveOrdersQueryHandler {
	return queries.NewListActiveOrdersQueryHandler(c.deps.DB)
}

// HTTPHandlers collects every use case served by the HTTP adapter.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateDeliveryOrder:    c.CreateCreateDeliveryOrderCommandHandler(),
		AssignDeliveryOrder:    c.CreateAssignDeliveryOrderCommandHandler(),
		StartDeliveryOrder:     c.CreateStartDeliveryOrderCommandHandler(),
		CompleteDeliveryOrder:  c.CreateCompleteDeliveryOrderCommandHandler(),
		CancelDeliveryOrder:    c.CreateCancelDeliveryOrderCommandHandler(),
		FailDeliveryOrder:      c.CreateFailDeliveryOrderCommandHandler(),
		ReopenDeliveryOrder:    c.CreateReopenDeliveryOrderCommandHandler(),
		AddDeliveryItem:        c.CreateAddDeliveryItemCommandHandler(),
		RemoveDeliveryItem:     c.CreateRemoveDeliveryItemCommandHandler(),
		SetRouteEndpoints:      c.CreateSetRouteEndpointsCommandHandler(),
		OptimizeRoute:          c.CreateOptimizeRouteCommandHandler(),
		ArriveAtStop:           c.CreateArriveAtStopCommandHandler(),
		RecordProofOfDelivery:  c.CreateRecordProofOfDeliveryCommandHandler(),
		RecordCODPayment:       c.CreateRecordCODPaymentCommandHandler(),
		RecordDeliveryFailure:  c.CreateRecordDeliveryFailureCommandHandler(),
		UpdateTrackingLocation: c.CreateUpdateTrackingLocationCommandHandler(),
		UpdateETA:              c.CreateUpdateETACommandHandler(),
		GetDeliveryOrder:       c.CreateGetDeliveryOrderQueryHandler(),
		ListActiveOrders:       c.CreateListActiveOrdersQueryHandler(),
	}
}

// CreateJobManager returns the scheduled jobs, or none when they are disabled.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	if !c.cfg.Jobs.Enabled {
		return jobs.NewJobManager(c.deps.Logger)
	}
	report := jobs.NewActiveOrdersReportJob(c.CreateListActiveOrdersQueryHandler(), c.cfg.Jobs.ActiveOrdersReport, c.deps.Logger)
	return jobs.NewJobManager(c.deps.Logger, report)
}

type FuncDeliveryOrderUoWFactory func() commands.DeliveryOrderUoW

func (f FuncDeliveryOrderUoWFactory) Create() commands.DeliveryOrderUoW {
	return f()
}

type FuncETAUoWFactory func() commands.ETAUoW

func (f FuncETAUoWFactory) Create() commands.ETAUoW {
	return f()
}
