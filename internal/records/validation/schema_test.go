package validation_test

import (
	"upkeep-server/internal/records/domain"
	"upkeep-server/internal/records/validation"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var assetClassFields = []domain.Field{
	domain.TextField{FieldBase: domain.FieldBase{Name: "class_id", Label: "Class ID", Required: true}},
	domain.TextField{FieldBase: domain.FieldBase{Name: "name", Label: "Name", Required: true}},
	domain.NumberField{FieldBase: domain.FieldBase{Name: "design_life", Label: "Design Life"}},
	domain.DateField{FieldBase: domain.FieldBase{Name: "reviewed_on", Label: "Reviewed On"}},
	domain.SelectField{
		FieldBase: domain.FieldBase{Name: "status", Label: "Status", Required: true},
		Options:   []domain.Option{{Value: "Active", Label: "Active"}, {Value: "Inactive", Label: "Inactive"}},
	},
}

var _ = Describe("Descriptor schema", func() {
	var schema validation.Schema

	BeforeEach(func() {
		schema = validation.FromFields(assetClassFields)
	})

	It("accepts complete values", func() {
		errs := schema.Validate(domain.Values{
			"class_id":    "AC009",
			"name":        "Heat exchangers",
			"design_life": "25",
			"reviewed_on": "2024-03-01",
			"status":      "Active",
		})
		Expect(errs.HasErrors()).To(BeFalse())
	})

	It("reports every missing required field", func() {
		errs := schema.Validate(domain.Values{"name": "  "})
		Expect(errs.Fields()).To(ConsistOf("class_id", "name", "status"))
		Expect(errs["name"]).To(ContainElement("Name is required"))
	})

	It("rejects a select value outside the options", func() {
		errs := schema.Validate(domain.Values{"class_id": "AC001", "name": "x", "status": "Retired"})
		Expect(errs).To(HaveKey("status"))
		Expect(errs["status"][0]).To(ContainSubstring("Active, Inactive"))
	})

	It("rejects numbers and dates that do not parse", func() {
		errs := schema.Validate(domain.Values{
			"class_id":    "AC001",
			"name":        "x",
			"status":      "Active",
			"design_life": "ten",
			"reviewed_on": "03/01/2024",
		})
		Expect(errs.Fields()).To(Equal([]string{"design_life", "reviewed_on"}))
	})

	It("normalizes numbers and trims text", func() {
		values := validation.Normalize(assetClassFields, domain.Values{
			"name":        " Pumps ",
			"design_life": "12.5",
			"extra":       true,
		})
		Expect(values["name"]).To(Equal("Pumps"))
		Expect(values["design_life"]).To(Equal(12.5))
		Expect(values["extra"]).To(Equal(true))
	})
})

var _ = Describe("CUE schema", func() {
	const constraints = `
class_id?:    =~"^AC[0-9]{3}$"
design_life?: >=0 & <=100
`
	var schema validation.Schema

	BeforeEach(func() {
		cueSchema, err := validation.NewCueSchema(assetClassFields, constraints)
		Expect(err).NotTo(HaveOccurred())
		schema = validation.Compose(validation.FromFields(assetClassFields), cueSchema)
	})

	It("accepts values inside the constraints", func() {
		errs := schema.Validate(domain.Values{"class_id": "AC010", "name": "Valves", "status": "Active", "design_life": "40"})
		Expect(errs.HasErrors()).To(BeFalse())
	})

	It("maps constraint failures to the offending field", func() {
		errs := schema.Validate(domain.Values{"class_id": "X-1", "name": "Valves", "status": "Active", "design_life": 140})
		Expect(errs.Fields()).To(ConsistOf("class_id", "design_life"))
	})

	It("leaves unparsable numbers to the descriptor rules", func() {
		errs := schema.Validate(domain.Values{"class_id": "AC010", "name": "Valves", "status": "Active", "design_life": "lots"})
		Expect(errs["design_life"]).To(HaveLen(1))
	})

	It("fails to build from invalid CUE", func() {
		_, err := validation.NewCueSchema(nil, "code: =~")
		Expect(err).To(HaveOccurred())
	})
})
