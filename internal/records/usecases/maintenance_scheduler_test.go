package usecases_test

import (
	"context"
	"time"

	"upkeep-server/internal/infra/notification"
	"upkeep-server/internal/records/domain"
	"upkeep-server/internal/records/usecases"
	mockusecases "upkeep-server/test/unit/doubles/records/usecases"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("MaintenanceScheduler", func() {
	var (
		ctrl      *gomock.Controller
		ticker    *time.Ticker
		records   *mockusecases.MockRecordService
		notifier  *mockusecases.MockNotifier
		scheduler *usecases.MaintenanceScheduler
		ctx       context.Context
		now       time.Time
	)

	plan := func(schedule, lastGenerated string) domain.Record {
		values := domain.Values{
			"name":     "Chiller service",
			"schedule": schedule,
			"status":   "Active",
			"asset_id": "A001",
			"priority": "High",
		}
		if lastGenerated != "" {
			values[usecases.LastGeneratedKey] = lastGenerated
		}
		record, _ := domain.NewRecordBuilder().
			WithEntity(usecases.PlansEntity).
			WithID("PM-001").
			WithValues(values).
			Build()
		return record
	}

	workOrder := func(id, status, due string) domain.Record {
		record, _ := domain.NewRecordBuilder().
			WithEntity(usecases.WorkOrdersEntity).
			WithID(domain.ID(id)).
			WithValues(domain.Values{"title": "Replace filter", "status": status, "due_date": due}).
			Build()
		return record
	}

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		ticker = time.NewTicker(time.Hour)
		records = mockusecases.NewMockRecordService(ctrl)
		notifier = mockusecases.NewMockNotifier(ctrl)
		ctx = context.Background()
		now = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

		scheduler = usecases.NewMaintenanceScheduler(ticker, records, notifier)
	})

	AfterEach(func() {
		scheduler.Shutdown()
		ctrl.Finish()
	})

	When("a plan occurrence is due", func() {
		It("creates a work order and records the occurrence", func() {
			records.EXPECT().ListRecords(ctx, usecases.PlansEntity, gomock.Any()).
				Return([]domain.Record{plan("0 8 * * *", "2025-03-09T08:00:00Z")}, 1, nil)
			records.EXPECT().CreateRecord(ctx, usecases.WorkOrdersEntity, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, values domain.Values) (domain.Record, error) {
					Expect(values).To(HaveKeyWithValue("title", "PM: Chiller service"))
					Expect(values).To(HaveKeyWithValue("due_date", "2025-03-10"))
					Expect(values).To(HaveKeyWithValue("asset_id", "A001"))
					Expect(values).To(HaveKeyWithValue("plan_id", "PM-001"))
					return workOrder("WO-0001", "Open", "2025-03-10"), nil
				})
			records.EXPECT().UpdateRecord(ctx, usecases.PlansEntity, domain.ID("PM-001"), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, _ domain.ID, values domain.Values) (domain.Record, error) {
					Expect(values).To(HaveKeyWithValue(usecases.LastGeneratedKey, "2025-03-10T08:00:00Z"))
					return domain.Record{}, nil
				})
			records.EXPECT().ListRecords(ctx, usecases.WorkOrdersEntity, gomock.Any()).Return(nil, 0, nil)

			scheduler.ScheduleAt(ctx, now)
		})

		It("collapses missed occurrences into one work order", func() {
			records.EXPECT().ListRecords(ctx, usecases.PlansEntity, gomock.Any()).
				Return([]domain.Record{plan("0 8 * * *", "2025-03-01T08:00:00Z")}, 1, nil)
			records.EXPECT().CreateRecord(ctx, usecases.WorkOrdersEntity, gomock.Any()).
				Return(workOrder("WO-0001", "Open", "2025-03-10"), nil).Times(1)
			records.EXPECT().UpdateRecord(ctx, usecases.PlansEntity, domain.ID("PM-001"), gomock.Any()).
				Return(domain.Record{}, nil)
			records.EXPECT().ListRecords(ctx, usecases.WorkOrdersEntity, gomock.Any()).Return(nil, 0, nil)

			scheduler.ScheduleAt(ctx, now)
		})
	})

	When("the next occurrence is in the future", func() {
		It("does nothing", func() {
			records.EXPECT().ListRecords(ctx, usecases.PlansEntity, gomock.Any()).
				Return([]domain.Record{plan("0 8 * * *", "2025-03-10T08:00:00Z")}, 1, nil)
			records.EXPECT().CreateRecord(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			records.EXPECT().ListRecords(ctx, usecases.WorkOrdersEntity, gomock.Any()).Return(nil, 0, nil)

			scheduler.ScheduleAt(ctx, now)
		})
	})

	When("the schedule does not parse", func() {
		It("warns instead of generating", func() {
			records.EXPECT().ListRecords(ctx, usecases.PlansEntity, gomock.Any()).
				Return([]domain.Record{plan("every tuesday", "")}, 1, nil)
			notifier.EXPECT().Notify(ctx, gomock.Any()).Do(func(_ context.Context, toast notification.Toast) {
				Expect(toast.Level).To(Equal(notification.LevelWarning))
				Expect(toast.RecordID).To(Equal("PM-001"))
			})
			records.EXPECT().ListRecords(ctx, usecases.WorkOrdersEntity, gomock.Any()).Return(nil, 0, nil)

			scheduler.ScheduleAt(ctx, now)
		})
	})

	When("work orders are past due", func() {
		It("warns once per work order", func() {
			orders := []domain.Record{
				workOrder("WO-0001", "Open", "2025-03-01"),
				workOrder("WO-0002", "Completed", "2025-03-01"),
				workOrder("WO-0003", "Open", "2025-04-01"),
			}
			records.EXPECT().ListRecords(ctx, usecases.PlansEntity, gomock.Any()).Return(nil, 0, nil).Times(2)
			records.EXPECT().ListRecords(ctx, usecases.WorkOrdersEntity, gomock.Any()).Return(orders, 3, nil).Times(2)
			notifier.EXPECT().Notify(ctx, gomock.Any()).Do(func(_ context.Context, toast notification.Toast) {
				Expect(toast.RecordID).To(Equal("WO-0001"))
				Expect(toast.Message).To(ContainSubstring("2025-03-01"))
			}).Times(1)

			scheduler.ScheduleAt(ctx, now)
			scheduler.ScheduleAt(ctx, now)
		})
	})

	It("stops running on shutdown", func() {
		done := make(chan struct{})
		go scheduler.Run(ctx, func() { close(done) })

		scheduler.Shutdown()

		Eventually(done).Should(BeClosed())
	})
})
