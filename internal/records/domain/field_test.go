package domain_test

import (
	"upkeep-server/internal/records/domain"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Field", func() {
	When("decoding a wire field type", func() {
		It("builds the matching variant", func() {
			f, err := domain.NewField(domain.FieldTypeDate, domain.FieldBase{Name: "due_date", Label: "Due"}, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(f).To(BeAssignableToTypeOf(domain.DateField{}))
			Expect(f.Type()).To(Equal(domain.FieldTypeDate))
		})

		It("rejects unknown types", func() {
			_, err := domain.NewField("boolean", domain.FieldBase{Name: "x"}, nil)
			Expect(err).To(MatchError(domain.ErrUnknownFieldType))
		})

		It("rejects a select without options", func() {
			_, err := domain.NewField(domain.FieldTypeSelect, domain.FieldBase{Name: "status"}, nil)
			Expect(err).To(MatchError(domain.ErrSelectWithoutOptions))
		})
	})

	When("validating a field list", func() {
		It("rejects duplicate names", func() {
			fields := []domain.Field{
				domain.TextField{FieldBase: domain.FieldBase{Name: "code"}},
				domain.NumberField{FieldBase: domain.FieldBase{Name: "code"}},
			}
			Expect(domain.ValidateFields(fields)).To(MatchError(domain.ErrDuplicateFieldName))
		})

		It("rejects duplicate column ids", func() {
			columns := []domain.Column{{ID: "code"}, {ID: "code"}}
			Expect(domain.ValidateColumns(columns)).To(MatchError(domain.ErrDuplicateColumnID))
		})
	})

	It("fills initial values from defaults and empty values", func() {
		fields := []domain.Field{
			domain.TextField{FieldBase: domain.FieldBase{Name: "name"}},
			domain.NumberField{FieldBase: domain.FieldBase{Name: "cost"}},
			domain.SelectField{FieldBase: domain.FieldBase{Name: "status"}, Options: []domain.Option{{Value: "Active"}}},
		}

		values := domain.InitialValues(fields, domain.Values{"status": "Active"})

		Expect(values).To(Equal(domain.Values{"name": "", "cost": nil, "status": "Active"}))
	})
})

var _ = Describe("Record", func() {
	It("moves an id found in the values onto the record", func() {
		r, err := domain.NewRecordBuilder().
			WithEntity("facilities").
			WithValues(domain.Values{"id": "F-1", "code": "F001"}).
			Build()

		Expect(err).NotTo(HaveOccurred())
		Expect(r.ID).To(Equal(domain.ID("F-1")))
		Expect(r.Values).NotTo(HaveKey("id"))
	})

	It("exposes the id through the id accessor", func() {
		r := domain.Record{ID: "AC002", Values: domain.Values{"name": "Pumps"}}

		v, ok := r.Value("id")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("AC002"))

		_, ok = r.Value("missing")
		Expect(ok).To(BeFalse())
	})

	It("requires an entity", func() {
		_, err := domain.NewRecordBuilder().Build()
		Expect(err).To(MatchError(domain.ErrRecordEntityRequired))
	})
})
