package navigation_test

import (
	"context"
	"errors"

	"upkeep-server/internal/catalog"
	"upkeep-server/internal/navigation"
	"upkeep-server/internal/records/domain"
	mockusecases "upkeep-server/test/unit/doubles/records/usecases"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("Navigator", func() {
	var (
		ctrl      *gomock.Controller
		records   *mockusecases.MockRecordService
		navigator *navigation.Navigator
		ctx       context.Context
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		records = mockusecases.NewMockRecordService(ctrl)
		navigator = navigation.NewNavigator(catalog.DefaultPages(), records)
		ctx = context.Background()
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	It("resolves list routes", func() {
		match, err := navigator.Resolve(ctx, "/manage/facilities")

		Expect(err).NotTo(HaveOccurred())
		Expect(match.Page.Schema.Name).To(Equal("facilities"))
		Expect(match.ID).To(BeEmpty())
		Expect(match.Redirect).To(BeEmpty())
	})

	It("tolerates a trailing slash", func() {
		match, err := navigator.Resolve(ctx, "manage/asset-classes/")

		Expect(err).NotTo(HaveOccurred())
		Expect(match.Page.Schema.Name).To(Equal("asset-classes"))
	})

	It("resolves a detail route of an existing record", func() {
		records.EXPECT().GetRecord(ctx, "work-orders", domain.ID("WO-0001")).Return(domain.Record{ID: "WO-0001"}, nil)

		match, err := navigator.Resolve(ctx, "/maintain/work-order-list/WO-0001")

		Expect(err).NotTo(HaveOccurred())
		Expect(match.Route).To(Equal("/maintain/work-order-list/:id"))
		Expect(match.ID).To(Equal(domain.ID("WO-0001")))
		Expect(match.Redirect).To(BeEmpty())
	})

	It("redirects an unknown id to the parent list", func() {
		records.EXPECT().GetRecord(ctx, "inspections", domain.ID("INS-9999")).Return(domain.Record{}, domain.ErrRecordNotFound)

		match, err := navigator.Resolve(ctx, "/monitor/inspections/INS-9999")

		Expect(err).NotTo(HaveOccurred())
		Expect(match.Redirect).To(Equal("/monitor/inspections"))
	})

	It("surfaces lookup failures", func() {
		records.EXPECT().GetRecord(ctx, "inspections", gomock.Any()).Return(domain.Record{}, errors.New("db down"))

		_, err := navigator.Resolve(ctx, "/monitor/inspections/INS-0001")

		Expect(err).To(MatchError(ContainSubstring("db down")))
	})

	DescribeTable("unmatched paths",
		func(path string) {
			_, err := navigator.Resolve(ctx, path)
			Expect(err).To(MatchError(navigation.ErrRouteNotFound))
		},
		Entry("unknown page", "/manage/spaceships"),
		Entry("detail on a page without detail view", "/manage/facilities/FAC-001"),
		Entry("too deep", "/maintain/work-order-list/WO-0001/notes"),
		Entry("root", "/"),
	)

	It("builds the menu by section", func() {
		menu := navigator.Menu()

		Expect(menu).To(HaveLen(8))
		Expect(menu).To(ContainElement(navigation.MenuEntry{
			Section: "analytics",
			Title:   "Vendors",
			Path:    "/analytics/vendors",
			Entity:  "vendors",
		}))
	})
})
