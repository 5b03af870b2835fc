package catalog

import (
	"upkeep-server/internal/records/domain"
	"upkeep-server/internal/records/table"
)

const VendorsEntity = "vendors"

func vendorsPage() Page {
	categories := []domain.Option{
		{Value: "mechanical", Label: "Mechanical"},
		{Value: "electrical", Label: "Electrical"},
		{Value: "inspection", Label: "Inspection Services"},
		{Value: "instrumentation", Label: "Instrumentation"},
	}

	return Page{
		Section: "analytics",
		Path:    "/analytics/vendors",
		Schema: domain.EntitySchema{
			Name:              VendorsEntity,
			DisplayName:       "Vendor",
			DisplayNamePlural: "Vendors",
			Fields: []domain.Field{
				text("name", "Name", true, ""),
				text("contact", "Contact", false, ""),
				text("email", "Email", false, "name@example.com"),
				domain.SelectField{FieldBase: domain.FieldBase{Name: "category", Label: "Category", Required: true}, Options: categories},
				number("annual_spend", "Annual Spend", false),
				number("on_time_rate", "On-time Rate (%)", false),
				selectOf("status", "Status", true, _statuses...),
			},
			Columns: []domain.Column{
				column("name", "Name", nil),
				column("category", "Category", table.OptionLabel(categories)),
				column("annual_spend", "Annual Spend", table.Currency("$")),
				column("on_time_rate", "On-time", table.Percent),
				column("status", "Status", table.Badge),
			},
			Defaults: domain.Values{"status": "Active"},
		},
		Constraints: `
email?:        =~"^[^@ ]+@[^@ ]+\\.[^@ ]+$"
annual_spend?: >=0
on_time_rate?: >=0 & <=100
`,
		Seed: []domain.Values{
			{"name": "Gulf Rotating Services", "contact": "Dana Reyes", "email": "dana@gulfrotating.example", "category": "mechanical", "annual_spend": 412000, "on_time_rate": 93.5, "status": "Active"},
			{"name": "Spark Electrical Co.", "contact": "Lee Park", "email": "lee@spark.example", "category": "electrical", "annual_spend": 158500, "on_time_rate": 88, "status": "Active"},
			{"name": "Integrity NDT", "contact": "Ana Silva", "email": "ana@integrityndt.example", "category": "inspection", "annual_spend": 96000, "on_time_rate": 97, "status": "Active"},
		},
	}
}
