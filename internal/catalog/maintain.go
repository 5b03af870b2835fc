package catalog

import (
	"upkeep-server/internal/records/domain"
	"upkeep-server/internal/records/table"
	"upkeep-server/internal/records/usecases"
	"upkeep-server/internal/records/validation"
)

const (
	WorkOrdersEntity = usecases.WorkOrdersEntity
	PlansEntity      = usecases.PlansEntity
)

var _priorities = []string{"Low", "Medium", "High", "Critical"}

func workOrdersPage() Page {
	return Page{
		Section:    "maintain",
		Path:       "/maintain/work-order-list",
		DetailPath: "/maintain/work-order-list/:id",
		Schema: domain.EntitySchema{
			Name:              WorkOrdersEntity,
			DisplayName:       "Work Order",
			DisplayNamePlural: "Work Orders",
			Fields: []domain.Field{
				text("title", "Title", true, "Replace mechanical seal"),
				text("asset_id", "Asset", false, "A0001"),
				selectOf("priority", "Priority", true, _priorities...),
				selectOf("status", "Status", true, "Open", "In Progress", "On Hold", "Completed", "Cancelled"),
				text("assignee", "Assignee", false, ""),
				date("due_date", "Due Date", false),
				number("estimated_cost", "Estimated Cost", false),
				textarea("description", "Description", 4),
			},
			Columns: []domain.Column{
				{ID: "id", Header: "WO #", AccessorKey: domain.IDKey},
				column("title", "Title", nil),
				column("asset_id", "Asset", nil),
				column("priority", "Priority", table.Badge),
				column("status", "Status", table.Badge),
				column("due_date", "Due", table.Date("Jan 2, 2006")),
				column("estimated_cost", "Est. Cost", table.Currency("$")),
			},
			Defaults:   domain.Values{"priority": "Medium", "status": "Open"},
			IDStrategy: domain.PrefixedSequenceStrategy{Prefix: "WO-", Width: 4},
		},
		Constraints: `estimated_cost?: >=0`,
		Seed: []domain.Values{
			{"id": "WO-0001", "title": "Replace mechanical seal", "asset_id": "A0001", "priority": "High", "status": "In Progress", "assignee": "J. Ortiz", "due_date": "2025-02-14", "estimated_cost": 4200},
			{"id": "WO-0002", "title": "Clean exchanger bundle", "asset_id": "A0004", "priority": "Medium", "status": "Open", "assignee": "M. Chen", "due_date": "2025-03-30", "estimated_cost": 12500},
			{"id": "WO-0003", "title": "Recalibrate level transmitter", "asset_id": "A0003", "priority": "Low", "status": "Completed", "assignee": "S. Patel", "due_date": "2025-01-10", "estimated_cost": 650},
		},
	}
}

func plansPage() Page {
	return Page{
		Section: "maintain",
		Path:    "/maintain/pm-plans",
		Schema: domain.EntitySchema{
			Name:              PlansEntity,
			DisplayName:       "PM Plan",
			DisplayNamePlural: "PM Plans",
			Fields: []domain.Field{
				text("name", "Name", true, "Quarterly pump inspection"),
				text("asset_id", "Asset", true, "A0001"),
				text("schedule", "Schedule (cron)", true, "0 6 1 */3 *"),
				selectOf("priority", "Priority", true, _priorities...),
				text("assignee", "Assignee", false, ""),
				textarea("description", "Description", 3),
				selectOf("status", "Status", true, _statuses...),
			},
			Columns: []domain.Column{
				column("name", "Name", nil),
				column("asset_id", "Asset", nil),
				column("schedule", "Schedule", nil),
				column("priority", "Priority", table.Badge),
				column(usecases.LastGeneratedKey, "Last Generated", nil),
				column("status", "Status", table.Badge),
			},
			Defaults:   domain.Values{"priority": "Medium", "status": "Active"},
			IDStrategy: domain.PrefixedSequenceStrategy{Prefix: "PM-", Width: 3},
		},
		Rules: []validation.Schema{newCronRule("schedule")},
		Seed: []domain.Values{
			{"id": "PM-001", "name": "Pump vibration survey", "asset_id": "A0001", "schedule": "0 6 * * 1", "priority": "Medium", "assignee": "J. Ortiz", "status": "Active"},
			{"id": "PM-002", "name": "Exchanger fouling check", "asset_id": "A0004", "schedule": "0 7 1 * *", "priority": "Low", "assignee": "M. Chen", "status": "Inactive"},
		},
	}
}
