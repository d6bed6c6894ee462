package cmd

import (
	"sync"

	httpin "shipping/internal/adapters/in/http"
	"shipping/internal/adapters/out/postgres"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
	"shipping/internal/jobs"
	"shipping/internal/pkg/logger"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// CompositionRoot builds the handlers, jobs and HTTP server from one configuration and one
// connection pool. The tracking dispatcher is shared by every handler that schedules work.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	log        zerolog.Logger

	simulator services.RouteSimulator
	plant     kernel.GeoPoint
	fallback  kernel.GeoPoint

	dispatcherOnce sync.Once
	dispatcher     *jobs.TrackingDispatcher
}

func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	log zerolog.Logger,
) (*CompositionRoot, error) {
	simulator, err := services.NewRouteSimulator(cfg.TrackingPoints, cfg.TrackingMinSpeed, cfg.TrackingMaxSpeed, nil)
	if err != nil {
		return nil, err
	}
	plant, err := kernel.NewGeoPoint(cfg.PlantLatitude, cfg.PlantLongitude)
	if err != nil {
		return nil, err
	}
	fallback, err := kernel.NewGeoPoint(cfg.DefaultDestinationLatitude, cfg.DefaultDestinationLongitude)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		log:        log,
		simulator:  simulator,
		plant:      plant,
		fallback:   fallback,
	}, nil
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(c.shipmentUoWFactory(), c.component("create_shipment"))
}

func (c *CompositionRoot) CreateAssignShipmentCommandHandler() commands.AssignShipmentCommandHandler {
	return commands.NewAssignShipmentCommandHandler(
		c.shipmentUoWFactory(), c.publisher, c.component("assign_shipment"), c.cfg.VehicleExclusiveAssignment,
	)
}

func (c *CompositionRoot) CreateAcceptAssignmentCommandHandler() commands.AcceptAssignmentCommandHandler {
	return commands.NewAcceptAssignmentCommandHandler(c.shipmentUoWFactory(), c.publisher, c.component("accept_assignment"))
}

func (c *CompositionRoot) CreateRejectAssignmentCommandHandler() commands.RejectAssignmentCommandHandler {
	return commands.NewRejectAssignmentCommandHandler(c.shipmentUoWFactory(), c.publisher, c.component("reject_assignment"))
}

func (c *CompositionRoot) CreateStartTransitCommandHandler() commands.StartTransitCommandHandler {
	return commands.NewStartTransitCommandHandler(
		c.shipmentUoWFactory(), c.TrackingDispatcher(), c.publisher, c.component("start_transit"),
	)
}

func (c *CompositionRoot) CreateCancelShipmentCommandHandler() commands.CancelShipmentCommandHandler {
	return commands.NewCancelShipmentCommandHandler(c.shipmentUoWFactory(), c.publisher, c.component("cancel_shipment"))
}

func (c *CompositionRoot) CreateSimulateTrackingCommandHandler() commands.SimulateTrackingCommandHandler {
	var f commands.TrackingUoWFactory = FuncTrackingUoWFactory(func() commands.TrackingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSimulateTrackingCommandHandler(f, c.simulator, c.plant, c.fallback, c.component("simulate_tracking"))
}

func (c *CompositionRoot) CreateIssueSalesNoteCommandHandler() commands.IssueSalesNoteCommandHandler {
	var f commands.SalesNoteUoWFactory = FuncSalesNoteUoWFactory(func() commands.SalesNoteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewIssueSalesNoteCommandHandler(f, c.component("issue_sales_note"))
}

func (c *CompositionRoot) CreateDeliverShipmentCommandHandler() commands.DeliverShipmentCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeliverShipmentCommandHandler(
		f, c.CreateIssueSalesNoteCommandHandler(), c.publisher, c.component("deliver_shipment"),
	)
}

func (c *CompositionRoot) CreateResumeSideEffectsCommandHandler() commands.ResumeSideEffectsCommandHandler {
	return commands.NewResumeSideEffectsCommandHandler(
		c.shipmentUoWFactory(),
		c.CreateSimulateTrackingCommandHandler(),
		c.CreateIssueSalesNoteCommandHandler(),
		c.cfg.TrackingRetryConcurrency,
		0,
		c.component("resume_side_effects"),
	)
}

func (c *CompositionRoot) CreateCreateChecklistCommandHandler() commands.CreateChecklistCommandHandler {
	return commands.NewCreateChecklistCommandHandler(c.checklistUoWFactory())
}

func (c *CompositionRoot) CreateUpdateChecklistCommandHandler() commands.UpdateChecklistCommandHandler {
	return commands.NewUpdateChecklistCommandHandler(c.checklistUoWFactory())
}

func (c *CompositionRoot) checklistUoWFactory() commands.ChecklistUoWFactory {
	return FuncChecklistUoWFactory(func() commands.ChecklistUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListCarrierShipmentsQueryHandler() queries.ListCarrierShipmentsQueryHandler {
	return queries.NewListCarrierShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTrackingQueryHandler() queries.GetTrackingQueryHandler {
	return queries.NewGetTrackingQueryHandler(c.gormDB, c.cfg.TrackingReadLimit)
}

func (c *CompositionRoot) CreateGetSalesNoteQueryHandler() queries.GetSalesNoteQueryHandler {
	return queries.NewGetSalesNoteQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetChecklistQueryHandler() queries.GetChecklistQueryHandler {
	return queries.NewGetChecklistQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListShipmentChecklistsQueryHandler() queries.ListShipmentChecklistsQueryHandler {
	return queries.NewListShipmentChecklistsQueryHandler(c.gormDB)
}

// TrackingDispatcher returns the shared dispatcher. It is not started here; JobManager does that.
func (c *CompositionRoot) TrackingDispatcher() *jobs.TrackingDispatcher {
	c.dispatcherOnce.Do(func() {
		c.dispatcher = jobs.NewTrackingDispatcher(
			c.CreateSimulateTrackingCommandHandler(),
			c.cfg.TrackingQueueSize,
			c.cfg.TrackingWorkers,
			c.log,
		)
	})
	return c.dispatcher
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	resume := jobs.NewResumeSideEffectsJob(
		c.CreateResumeSideEffectsCommandHandler(),
		c.cfg.TrackingRetrySchedule,
		c.log,
	)
	return jobs.NewJobManager(c.TrackingDispatcher(), resume)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateShipment:  c.CreateCreateShipmentCommandHandler(),
		AssignShipment:  c.CreateAssignShipmentCommandHandler(),
		AcceptShipment:  c.CreateAcceptAssignmentCommandHandler(),
		RejectShipment:  c.CreateRejectAssignmentCommandHandler(),
		StartTransit:    c.CreateStartTransitCommandHandler(),
		DeliverShipment: c.CreateDeliverShipmentCommandHandler(),
		CancelShipment:  c.CreateCancelShipmentCommandHandler(),
		CreateChecklist: c.CreateCreateChecklistCommandHandler(),
		UpdateChecklist: c.CreateUpdateChecklistCommandHandler(),

		GetShipment:            c.CreateGetShipmentQueryHandler(),
		ListCarrierShipments:   c.CreateListCarrierShipmentsQueryHandler(),
		GetTracking:            c.CreateGetTrackingQueryHandler(),
		GetSalesNote:           c.CreateGetSalesNoteQueryHandler(),
		GetChecklist:           c.CreateGetChecklistQueryHandler(),
		ListShipmentChecklists: c.CreateListShipmentChecklistsQueryHandler(),
	})
}

func (c *CompositionRoot) component(name string) zerolog.Logger {
	return logger.Component(c.log, name)
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncTrackingUoWFactory func() commands.TrackingUoW

func (f FuncTrackingUoWFactory) Create() commands.TrackingUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncSalesNoteUoWFactory func() commands.SalesNoteUoW

func (f FuncSalesNoteUoWFactory) Create() commands.SalesNoteUoW {
	return f()
}

type FuncChecklistUoWFactory func() commands.ChecklistUoW

func (f FuncChecklistUoWFactory) Create() commands.ChecklistUoW {
	return f()
}
