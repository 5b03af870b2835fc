package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"upkeep-server/internal/infra/async"
	"upkeep-server/internal/infra/notification"
	"upkeep-server/internal/records/domain"
	"upkeep-server/internal/records/table"
)

const (
	PlansEntity      = "pm-plans"
	WorkOrdersEntity = "work-orders"

	// LastGeneratedKey is a system managed key on plans holding the RFC3339
	// time of the last occurrence that produced a work order.
	LastGeneratedKey = "last_generated_at"

	_planActive           = "Active"
	_workOrderOpen        = "Open"
	_workOrderCompleted   = "Completed"
	_workOrderCancelled   = "Cancelled"
	_maxOccurrencesPerRun = 1
)

// MaintenanceScheduler turns due preventive maintenance plans into work
// orders and warns about open work orders past their due date.
type MaintenanceScheduler struct {
	ticker     *time.Ticker
	records    RecordService
	notifier   Notifier
	cronParser cron.Parser
	now        func() time.Time

	mu       sync.Mutex
	overdue  map[domain.ID]struct{}
	shutdown chan struct{}
	once     sync.Once
}

func NewMaintenanceScheduler(ticker *time.Ticker, records RecordService, notifier Notifier) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		ticker:     ticker,
		records:    records,
		notifier:   notifier,
		cronParser: cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
		now:        time.Now,
		overdue:    make(map[domain.ID]struct{}),
		shutdown:   make(chan struct{}),
	}
}

var _ async.Worker = (*MaintenanceScheduler)(nil)

func (w *MaintenanceScheduler) Run(ctx context.Context, done func()) {
	slog.Info("maintenance scheduler started")
	defer done()

	for {
		select {
		case <-ctx.Done():
			slog.Info("maintenance scheduler cancelled")
			return
		case <-w.shutdown:
			slog.Info("maintenance scheduler stopped")
			return
		case <-w.ticker.C:
			w.Tick(ctx)
		}
	}
}

func (w *MaintenanceScheduler) Shutdown() {
	w.once.Do(func() {
		w.ticker.Stop()
		close(w.shutdown)
	})
}

func (w *MaintenanceScheduler) Tick(ctx context.Context) {
	w.ScheduleAt(ctx, w.now())
}

// ScheduleAt runs one scheduling pass as if the current time were now.
func (w *MaintenanceScheduler) ScheduleAt(ctx context.Context, now time.Time) {
	now = now.UTC()
	w.generateWorkOrders(ctx, now)
	w.flagOverdueWorkOrders(ctx, now)
}

func (w *MaintenanceScheduler) generateWorkOrders(ctx context.Context, now time.Time) {
	plans, _, err := w.records.ListRecords(ctx, PlansEntity, Filter{Equals: map[string]string{"status": _planActive}})
	if err != nil {
		slog.Error("listing maintenance plans", slog.String("error", err.Error()))
		return
	}

	for _, plan := range plans {
		w.processPlan(ctx, plan, now)
	}
}

func (w *MaintenanceScheduler) processPlan(ctx context.Context, plan domain.Record, now time.Time) {
	raw, _ := plan.Value("schedule")
	schedule, err := w.cronParser.Parse(table.Stringify(raw))
	if err != nil {
		slog.Error("parsing plan schedule",
			slog.String("plan_id", string(plan.ID)),
			slog.String("error", err.Error()))
		w.notifier.Notify(ctx, notification.Toast{
			Level:    notification.LevelWarning,
			Title:    "Invalid maintenance schedule",
			Message:  fmt.Sprintf("plan %s: %s", plan.ID, err.Error()),
			Entity:   PlansEntity,
			RecordID: string(plan.ID),
		})
		return
	}

	last := plan.CreatedAt.Time.UTC()
	if v, ok := plan.Value(LastGeneratedKey); ok {
		if t, err := time.Parse(time.RFC3339, table.Stringify(v)); err == nil {
			last = t
		}
	}

	occurrence := schedule.Next(last)
	if occurrence.After(now) {
		return
	}

	// catch up to the latest missed occurrence instead of one per tick
	for next := schedule.Next(occurrence); !next.After(now); next = schedule.Next(next) {
		occurrence = next
	}

	workOrder, err := w.records.CreateRecord(ctx, WorkOrdersEntity, workOrderFor(plan, occurrence))
	if err != nil {
		slog.Error("creating preventive work order",
			slog.String("plan_id", string(plan.ID)),
			slog.String("error", err.Error()))
		return
	}

	values := plan.Values.Clone()
	values[LastGeneratedKey] = occurrence.Format(time.RFC3339)
	if _, err := w.records.UpdateRecord(ctx, PlansEntity, plan.ID, values); err != nil {
		slog.Error("updating plan after generation",
			slog.String("plan_id", string(plan.ID)),
			slog.String("error", err.Error()))
		return
	}

	slog.Info("preventive work order generated",
		slog.String("plan_id", string(plan.ID)),
		slog.String("work_order_id", string(workOrder.ID)),
		slog.Time("occurrence", occurrence))
}

func workOrderFor(plan domain.Record, occurrence time.Time) domain.Values {
	name, _ := plan.Value("name")
	values := domain.Values{
		"title":    fmt.Sprintf("PM: %s", table.Stringify(name)),
		"status":   _workOrderOpen,
		"due_date": occurrence.Format(domain.DateLayout),
		"plan_id":  string(plan.ID),
	}
	for _, key := range []string{"asset_id", "priority", "assignee", "description"} {
		if v, ok := plan.Value(key); ok {
			values[key] = v
		}
	}
	return values
}

func (w *MaintenanceScheduler) flagOverdueWorkOrders(ctx context.Context, now time.Time) {
	orders, _, err := w.records.ListRecords(ctx, WorkOrdersEntity, Filter{})
	if err != nil {
		slog.Error("listing work orders", slog.String("error", err.Error()))
		return
	}

	today := now.Format(domain.DateLayout)

	w.mu.Lock()
	defer w.mu.Unlock()

	for _, order := range orders {
		status, _ := order.Value("status")
		due, hasDue := order.Value("due_date")
		closed := table.Stringify(status) == _workOrderCompleted || table.Stringify(status) == _workOrderCancelled
		if closed || !hasDue || table.Stringify(due) >= today {
			delete(w.overdue, order.ID)
			continue
		}
		if _, seen := w.overdue[order.ID]; seen {
			continue
		}
		w.overdue[order.ID] = struct{}{}

		title, _ := order.Value("title")
		w.notifier.Notify(ctx, notification.Toast{
			Level:    notification.LevelWarning,
			Title:    "Work order overdue",
			Message:  fmt.Sprintf("%s was due on %s", table.Stringify(title), table.Stringify(due)),
			Entity:   WorkOrdersEntity,
			RecordID: string(order.ID),
		})
	}
}
