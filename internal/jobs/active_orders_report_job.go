package jobs

import (
	"context"
	"fmt"
	"time"

	"fleetdelivery/internal/core/application/usecases/queries"
	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultActiveOrdersReportSpec runs the report every five minutes.
const DefaultActiveOrdersReportSpec = "0 */5 * * * *"

const reportTimeout = 30 * time.Second

// ActiveOrdersLister is the read side the report is built from.
type ActiveOrdersLister interface {
	Handle(ctx context.Context, query queries.ListActiveOrdersQuery) ([]queries.ActiveOrder, error)
}

// ActiveOrdersReport summarizes the orders that are still in flight.
type ActiveOrdersReport struct {
	Orders         int
	ByStatus       map[order.Status]int
	TotalItems     int
	DeliveredItems int
	PendingItems   int
	FailedItems    int
	CODExpected    kernel.Money
	CODCollected   kernel.Money
}

// ActiveOrdersReportJob periodically logs how much work is left across all
// active delivery orders.
type ActiveOrdersReportJob struct {
	lister ActiveOrdersLister
	spec   string
	cron   *cron.Cron
	logger *zap.Logger
}

// NewActiveOrdersReportJob creates the job. An empty spec selects
// DefaultActiveOrdersReportSpec.
func NewActiveOrdersReportJob(lister ActiveOrdersLister, spec string, logger *zap.Logger) *ActiveOrdersReportJob {
	if spec == "" {
		spec = DefaultActiveOrdersReportSpec
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActiveOrdersReportJob{
		lister: lister,
		spec:   spec,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With(zap.String("component", "active_orders_report_job")),
	}
}

// Start schedules the report.
func (j *ActiveOrdersReportJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()

		if _, err := j.Run(ctx); err != nil {
			j.logger.Error("active orders report failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", j.spec, err)
	}

	j.cron.Start()
	j.logger.Info("active orders report job started", zap.String("schedule", j.spec))
	return nil
}

// Stop stops the scheduler and waits for a running report to finish.
func (j *ActiveOrdersReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("active orders report job stopped")
}

// Run builds and logs one report.
func (j *ActiveOrdersReportJob) Run(ctx context.Context) (ActiveOrdersReport, error) {
	query, err := queries.NewListActiveOrdersQuery(queries.ActiveOrdersFilter{})
	if err != nil {
		return ActiveOrdersReport{}, err
	}
	orders, err := j.lister.Handle(ctx, query)
	if err != nil {
		return ActiveOrdersReport{}, fmt.Errorf("list active orders: %w", err)
	}

	report := buildReport(orders)
	fields := []zap.Field{
		zap.Int("orders", report.Orders),
		zap.Int("total_items", report.TotalItems),
		zap.Int("delivered_items", report.DeliveredItems),
		zap.Int("pending_items", report.PendingItems),
		zap.Int("failed_items", report.FailedItems),
		zap.String("cod_expected", report.CODExpected.String()),
		zap.String("cod_collected", report.CODCollected.String()),
	}
	for status, count := range report.ByStatus {
		fields = append(fields, zap.Int("status_"+status.String(), count))
	}
	j.logger.Info("active delivery orders", fields...)
	return report, nil
}

func buildReport(orders []queries.ActiveOrder) ActiveOrdersReport {
	report := ActiveOrdersReport{
		Orders:       len(orders),
		ByStatus:     make(map[order.Status]int),
		CODExpected:  kernel.ZeroMoney(),
		CODCollected: kernel.ZeroMoney(),
	}
	for _, o := range orders {
		report.ByStatus[o.Status]++
		report.TotalItems += o.TotalItems
		report.DeliveredItems += o.DeliveredCount
		report.PendingItems += o.PendingCount
		report.FailedItems += o.FailedCount
		report.CODExpected = report.CODExpected.Add(o.CODExpectedAmount)
		report.CODCollected = report.CODCollected.Add(o.CODCollectedAmount)
	}
	return report
}
