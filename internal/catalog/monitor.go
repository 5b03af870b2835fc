package catalog

import (
	"upkeep-server/internal/records/domain"
	"upkeep-server/internal/records/table"
)

const InspectionsEntity = "inspections"

func inspectionsPage() Page {
	return Page{
		Section:    "monitor",
		Path:       "/monitor/inspections",
		DetailPath: "/monitor/inspections/:id",
		Schema: domain.EntitySchema{
			Name:              InspectionsEntity,
			DisplayName:       "Inspection",
			DisplayNamePlural: "Inspections",
			Fields: []domain.Field{
				text("asset_id", "Asset", true, "A0003"),
				selectOf("method", "Method", true, "Visual", "UT Thickness", "Radiography", "Thermography"),
				text("inspector", "Inspector", false, ""),
				date("inspection_date", "Inspection Date", true),
				number("min_thickness", "Min. Thickness (mm)", false),
				selectOf("result", "Result", true, "Pending", "Pass", "Fail"),
				date("next_due", "Next Due", false),
				textarea("findings", "Findings", 5),
			},
			Columns: []domain.Column{
				{ID: "id", Header: "Inspection", AccessorKey: domain.IDKey},
				column("asset_id", "Asset", nil),
				column("method", "Method", nil),
				column("inspection_date", "Date", table.Date("Jan 2, 2006")),
				column("result", "Result", table.Badge),
				column("next_due", "Next Due", table.Date("Jan 2, 2006")),
			},
			Defaults:   domain.Values{"result": "Pending"},
			IDStrategy: domain.PrefixedSequenceStrategy{Prefix: "INS-", Width: 4},
		},
		Constraints: `min_thickness?: >0 & <=500`,
		Seed: []domain.Values{
			{"id": "INS-0001", "asset_id": "A0003", "method": "UT Thickness", "inspector": "R. Gomez", "inspection_date": "2024-11-05", "min_thickness": 11.4, "result": "Pass", "next_due": "2026-11-05"},
			{"id": "INS-0002", "asset_id": "A0004", "method": "Visual", "inspector": "R. Gomez", "inspection_date": "2025-01-22", "result": "Fail", "findings": "External corrosion on shell nozzle N3."},
		},
	}
}
