package usecases_test

import (
	"context"
	"time"

	"upkeep-server/internal/infra/cache"
	"upkeep-server/internal/records/dialog"
	"upkeep-server/internal/records/domain"
	"upkeep-server/internal/records/usecases"
	mockusecases "upkeep-server/test/unit/doubles/records/usecases"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("DialogService", func() {
	var (
		ctrl     *gomock.Controller
		records  *mockusecases.MockRecordService
		sessions *cache.RistrettoCache
		service  *usecases.SimpleDialogService
		ctx      context.Context
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		records = mockusecases.NewMockRecordService(ctrl)
		ctx = context.Background()

		var err error
		sessions, err = cache.New(nil)
		Expect(err).NotTo(HaveOccurred())

		records.EXPECT().Entity("facilities").Return(facilitySchema(), nil).AnyTimes()
		records.EXPECT().Validator("facilities").Return(facilityValidator(), nil).AnyTimes()

		service = usecases.NewDialogService(records, dialog.NewCacheStore(sessions, time.Minute))
	})

	AfterEach(func() {
		sessions.Close()
		ctrl.Finish()
	})

	It("opens a create session seeded with the entity defaults", func() {
		view, err := service.OpenCreate(ctx, "facilities")

		Expect(err).NotTo(HaveOccurred())
		Expect(view.ID).NotTo(BeEmpty())
		Expect(view.State).To(Equal(dialog.StatePristine))
		Expect(view.Mode).To(Equal(dialog.ModeCreate))
		Expect(view.Values).To(HaveKeyWithValue("status", "Active"))
		Expect(view.Values).To(HaveKeyWithValue("name", ""))
	})

	It("opens an edit session with the record values", func() {
		records.EXPECT().GetRecord(ctx, "facilities", domain.ID("F001")).Return(facility("F001", "N", "North"), nil)

		view, err := service.OpenEdit(ctx, "facilities", "F001")

		Expect(err).NotTo(HaveOccurred())
		Expect(view.Mode).To(Equal(dialog.ModeEdit))
		Expect(view.RecordID).To(Equal(domain.ID("F001")))
		Expect(view.Values).To(HaveKeyWithValue("name", "North"))
	})

	It("keeps changes between requests", func() {
		opened, _ := service.OpenCreate(ctx, "facilities")

		_, err := service.Change(ctx, opened.ID, domain.Values{"name": "North"})
		Expect(err).NotTo(HaveOccurred())

		view, err := service.Get(ctx, opened.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(view.State).To(Equal(dialog.StateEditing))
		Expect(view.Values).To(HaveKeyWithValue("name", "North"))
	})

	It("reports field errors and keeps the session open on invalid submit", func() {
		opened, _ := service.OpenCreate(ctx, "facilities")
		records.EXPECT().CreateRecord(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		view, err := service.Submit(ctx, opened.ID)

		Expect(err).To(MatchError(domain.ErrValidation))
		Expect(view.Errors).To(HaveKey("code"))
		Expect(view.Errors).To(HaveKey("name"))
		Expect(view.Submitted).To(BeFalse())
	})

	It("creates the record on a valid submit", func() {
		opened, _ := service.OpenCreate(ctx, "facilities")
		_, _ = service.Change(ctx, opened.ID, domain.Values{"code": "N", "name": "North"})
		created := facility("F006", "N", "North")
		records.EXPECT().CreateRecord(gomock.Any(), "facilities", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, values domain.Values) (domain.Record, error) {
				Expect(values).To(HaveKeyWithValue("name", "North"))
				Expect(values).To(HaveKey("area"))
				return created, nil
			})

		view, err := service.Submit(ctx, opened.ID)

		Expect(err).NotTo(HaveOccurred())
		Expect(view.Submitted).To(BeTrue())
		Expect(view.Record).NotTo(BeNil())
		Expect(view.Record.ID).To(Equal(domain.ID("F006")))
	})

	It("creates a single record when the submit is repeated", func() {
		opened, _ := service.OpenCreate(ctx, "facilities")
		_, _ = service.Change(ctx, opened.ID, domain.Values{"code": "F006", "name": "Test Facility"})
		records.EXPECT().CreateRecord(gomock.Any(), "facilities", gomock.Any()).
			Return(facility("F006", "F006", "Test Facility"), nil).Times(1)

		_, err := service.Submit(ctx, opened.ID)
		Expect(err).NotTo(HaveOccurred())

		view, err := service.Submit(ctx, opened.ID)

		Expect(err).To(MatchError(dialog.ErrAlreadySubmitted))
		Expect(view.Submitted).To(BeTrue())
	})

	It("updates the created record when the saved dialog is changed and submitted", func() {
		opened, _ := service.OpenCreate(ctx, "facilities")
		_, _ = service.Change(ctx, opened.ID, domain.Values{"code": "F006", "name": "Test Facility"})
		records.EXPECT().CreateRecord(gomock.Any(), "facilities", gomock.Any()).
			Return(facility("F006", "F006", "Test Facility"), nil).Times(1)
		records.EXPECT().UpdateRecord(gomock.Any(), "facilities", domain.ID("F006"), gomock.Any()).
			Return(facility("F006", "F006", "Northern Depot"), nil)

		saved, err := service.Submit(ctx, opened.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(saved.Mode).To(Equal(dialog.ModeEdit))
		Expect(saved.RecordID).To(Equal(domain.ID("F006")))

		_, err = service.Change(ctx, opened.ID, domain.Values{"name": "Northern Depot"})
		Expect(err).NotTo(HaveOccurred())
		view, err := service.Submit(ctx, opened.ID)

		Expect(err).NotTo(HaveOccurred())
		Expect(view.Record.Values).To(HaveKeyWithValue("name", "Northern Depot"))
	})

	It("updates the record on an edit submit", func() {
		records.EXPECT().GetRecord(ctx, "facilities", domain.ID("F001")).Return(facility("F001", "N", "North"), nil)
		opened, _ := service.OpenEdit(ctx, "facilities", "F001")
		records.EXPECT().UpdateRecord(gomock.Any(), "facilities", domain.ID("F001"), gomock.Any()).
			Return(facility("F001", "N", "North"), nil)

		view, err := service.Submit(ctx, opened.ID)

		Expect(err).NotTo(HaveOccurred())
		Expect(view.Submitted).To(BeTrue())
	})

	It("forgets the session on close", func() {
		opened, _ := service.OpenCreate(ctx, "facilities")

		Expect(service.Close(ctx, opened.ID)).To(Succeed())

		_, err := service.Get(ctx, opened.ID)
		Expect(err).To(MatchError(dialog.ErrSessionNotFound))
	})

	It("refuses changes while a submit is running", func() {
		opened, _ := service.OpenCreate(ctx, "facilities")
		_, _ = service.Change(ctx, opened.ID, domain.Values{"code": "N", "name": "North"})

		release := make(chan struct{})
		started := make(chan struct{})
		records.EXPECT().CreateRecord(gomock.Any(), "facilities", gomock.Any()).
			DoAndReturn(func(context.Context, string, domain.Values) (domain.Record, error) {
				close(started)
				<-release
				return facility("F006", "N", "North"), nil
			})

		done := make(chan error, 1)
		go func() {
			_, err := service.Submit(ctx, opened.ID)
			done <- err
		}()
		Eventually(started).Should(BeClosed())

		_, err := service.Submit(ctx, opened.ID)
		Expect(err).To(MatchError(dialog.ErrSubmitInProgress))
		_, err = service.Change(ctx, opened.ID, domain.Values{"name": "South"})
		Expect(err).To(MatchError(dialog.ErrSubmitInProgress))
		Expect(service.Cancel(ctx, opened.ID)).To(MatchError(dialog.ErrSubmitInProgress))

		close(release)
		Eventually(done).Should(Receive(BeNil()))
	})
})
