package catalog_test

import (
	"context"

	"upkeep-server/internal/catalog"
	"upkeep-server/internal/records/domain"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type seederFunc func(ctx context.Context, entity string, records []domain.Record) (bool, error)

func (f seederFunc) Seed(ctx context.Context, entity string, records []domain.Record) (bool, error) {
	return f(ctx, entity, records)
}

var _ = Describe("Registry", func() {
	var registry *catalog.Registry

	BeforeEach(func() {
		var err error
		registry, err = catalog.NewDefaultRegistry()
		Expect(err).NotTo(HaveOccurred())
	})

	It("registers every dashboard entity", func() {
		names := make([]string, 0)
		for _, e := range registry.Entities() {
			names = append(names, e.Name)
		}
		Expect(names).To(ConsistOf(
			"facilities", "asset-classes", "assets", "systems",
			"work-orders", "pm-plans", "inspections", "vendors",
		))
	})

	It("reports unknown entities", func() {
		_, _, err := registry.Entity("spaceships")
		Expect(err).To(MatchError(domain.ErrEntityNotFound))
	})

	It("rejects two pages on one path", func() {
		pages := catalog.DefaultPages()
		pages[1].Path = pages[0].Path

		_, err := catalog.NewRegistry(pages)
		Expect(err).To(MatchError(catalog.ErrPageInvalid))
	})

	It("ships seed data that passes its own validation", func() {
		for _, page := range registry.Pages() {
			_, validator, err := registry.Entity(page.Schema.Name)
			Expect(err).NotTo(HaveOccurred())

			records, err := catalog.SeedRecords(page)
			Expect(err).NotTo(HaveOccurred())
			for _, r := range records {
				Expect(validator.Validate(r.Values)).To(BeEmpty(), "%s %s", page.Schema.Name, r.ID)
			}
		}
	})

	Context("facilities", func() {
		It("seeds five facilities", func() {
			page, err := registry.Page(catalog.FacilitiesEntity)
			Expect(err).NotTo(HaveOccurred())

			records, err := catalog.SeedRecords(page)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(5))
			Expect(records[4].Values).To(HaveKeyWithValue("code", "F005"))
		})

		It("accepts a new facility with only code and name", func() {
			schema, validator, _ := registry.Entity(catalog.FacilitiesEntity)
			values := domain.InitialValues(schema.Fields, schema.Defaults)
			values["code"] = "F006"
			values["name"] = "Test Facility"

			Expect(validator.Validate(values)).To(BeEmpty())
		})
	})

	Context("asset classes", func() {
		It("seeds AC002 as active", func() {
			page, _ := registry.Page(catalog.AssetClassesEntity)
			records, _ := catalog.SeedRecords(page)

			Expect(records).To(ContainElement(HaveField("Values", And(
				HaveKeyWithValue("class_id", "AC002"),
				HaveKeyWithValue("status", "Active"),
			))))
		})

		It("checks the class id pattern and design life bounds", func() {
			_, validator, _ := registry.Entity(catalog.AssetClassesEntity)

			errs := validator.Validate(domain.Values{
				"class_id":    "X1",
				"name":        "Valve",
				"category":    "Static",
				"design_life": 250,
				"status":      "Active",
			})

			Expect(errs).To(HaveKey("class_id"))
			Expect(errs).To(HaveKey("design_life"))
		})
	})

	Context("pm plans", func() {
		It("rejects schedules that are not cron expressions", func() {
			_, validator, _ := registry.Entity(catalog.PlansEntity)

			errs := validator.Validate(domain.Values{
				"name":     "Weekly walkdown",
				"asset_id": "A0001",
				"schedule": "every monday",
				"priority": "Low",
				"status":   "Active",
			})

			Expect(errs).To(HaveKey("schedule"))
		})
	})

	It("assigns ids to seeds without one", func() {
		page, _ := registry.Page(catalog.VendorsEntity)
		records, err := catalog.SeedRecords(page)

		Expect(err).NotTo(HaveOccurred())
		Expect(records[0].ID).NotTo(BeEmpty())
		Expect(records[0].ID).NotTo(Equal(records[1].ID))
	})

	It("seeds every page through the seeder", func() {
		seeded := map[string]int{}
		err := registry.Seed(context.Background(), seederFunc(func(_ context.Context, entity string, records []domain.Record) (bool, error) {
			seeded[entity] = len(records)
			return true, nil
		}))

		Expect(err).NotTo(HaveOccurred())
		Expect(seeded).To(HaveLen(8))
		Expect(seeded).To(HaveKeyWithValue("facilities", 5))
	})
})
