package httpapi_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"upkeep-server/internal/catalog"
	"upkeep-server/internal/navigation"
	"upkeep-server/internal/navigation/httpapi"
	"upkeep-server/internal/records/domain"
	mockusecases "upkeep-server/test/unit/doubles/records/usecases"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("PageController", func() {
	var (
		ctrl     *gomock.Controller
		records  *mockusecases.MockRecordService
		router   *http.ServeMux
		recorder *httptest.ResponseRecorder
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		records = mockusecases.NewMockRecordService(ctrl)
		navigator := navigation.NewNavigator(catalog.DefaultPages(), records)
		router = http.NewServeMux()
		httpapi.NewPageController(navigator).AddRoutes(router)
		recorder = httptest.NewRecorder()
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	It("describes a list page", func() {
		router.ServeHTTP(recorder, httptest.NewRequest("GET", "/v1/pages/manage/facilities", nil))

		Expect(recorder.Code).To(Equal(http.StatusOK))
		var response map[string]any
		Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
		Expect(response).To(HaveKeyWithValue("entity", "facilities"))
		Expect(response).To(HaveKeyWithValue("section", "manage"))
	})

	It("describes a detail page of an existing record", func() {
		records.EXPECT().GetRecord(gomock.Any(), "work-orders", domain.ID("WO-0001")).Return(domain.Record{ID: "WO-0001"}, nil)

		router.ServeHTTP(recorder, httptest.NewRequest("GET", "/v1/pages/maintain/work-order-list/WO-0001", nil))

		Expect(recorder.Code).To(Equal(http.StatusOK))
		Expect(recorder.Body.String()).To(ContainSubstring(`"record_id":"WO-0001"`))
	})

	It("redirects to the list when the record is gone", func() {
		records.EXPECT().GetRecord(gomock.Any(), "work-orders", domain.ID("WO-9999")).Return(domain.Record{}, domain.ErrRecordNotFound)

		router.ServeHTTP(recorder, httptest.NewRequest("GET", "/v1/pages/maintain/work-order-list/WO-9999", nil))

		Expect(recorder.Code).To(Equal(http.StatusSeeOther))
		Expect(recorder.Header().Get("Location")).To(Equal("/v1/pages/maintain/work-order-list"))
	})

	It("answers 404 for unknown routes", func() {
		router.ServeHTTP(recorder, httptest.NewRequest("GET", "/v1/pages/nowhere", nil))

		Expect(recorder.Code).To(Equal(http.StatusNotFound))
	})

	It("answers 500 when the lookup fails", func() {
		records.EXPECT().GetRecord(gomock.Any(), "work-orders", gomock.Any()).Return(domain.Record{}, errors.New("db down"))

		router.ServeHTTP(recorder, httptest.NewRequest("GET", "/v1/pages/maintain/work-order-list/WO-0001", nil))

		Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
	})

	It("groups the menu by section", func() {
		router.ServeHTTP(recorder, httptest.NewRequest("GET", "/v1/menu", nil))

		Expect(recorder.Code).To(Equal(http.StatusOK))
		var response struct {
			Sections []struct {
				Section string `json:"section"`
			} `json:"sections"`
		}
		Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
		Expect(response.Sections).NotTo(BeEmpty())
	})
})
