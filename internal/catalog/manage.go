package catalog

import (
	"upkeep-server/internal/records/domain"
	"upkeep-server/internal/records/table"
)

const (
	FacilitiesEntity   = "facilities"
	AssetClassesEntity = "asset-classes"
	AssetsEntity       = "assets"
	SystemsEntity      = "systems"
)

var _statuses = []string{"Active", "Inactive"}

func facilitiesPage() Page {
	return Page{
		Section: "manage",
		Path:    "/manage/facilities",
		Schema: domain.EntitySchema{
			Name:              FacilitiesEntity,
			DisplayName:       "Facility",
			DisplayNamePlural: "Facilities",
			Fields: []domain.Field{
				text("code", "Code", true, "F001"),
				text("name", "Name", true, "Facility name"),
				text("location", "Location", false, "City, region"),
				selectOf("type", "Type", false, "Plant", "Warehouse", "Office", "Terminal"),
				selectOf("status", "Status", false, _statuses...),
			},
			Columns: []domain.Column{
				column("code", "Code", nil),
				column("name", "Name", nil),
				column("location", "Location", nil),
				column("type", "Type", nil),
				column("status", "Status", table.Badge),
			},
			Defaults:   domain.Values{"type": "Plant", "status": "Active"},
			IDStrategy: domain.PrefixedSequenceStrategy{Prefix: "FAC-", Width: 3},
		},
		Constraints: `code?: =~"^[A-Z][A-Z0-9-]{1,15}$"`,
		Seed: []domain.Values{
			{"id": "FAC-001", "code": "F001", "name": "North Refinery", "location": "Houston, TX", "type": "Plant", "status": "Active"},
			{"id": "FAC-002", "code": "F002", "name": "Coastal Terminal", "location": "Corpus Christi, TX", "type": "Terminal", "status": "Active"},
			{"id": "FAC-003", "code": "F003", "name": "Central Warehouse", "location": "Dallas, TX", "type": "Warehouse", "status": "Active"},
			{"id": "FAC-004", "code": "F004", "name": "Gulf Processing Unit", "location": "Baton Rouge, LA", "type": "Plant", "status": "Inactive"},
			{"id": "FAC-005", "code": "F005", "name": "Regional Office", "location": "Tulsa, OK", "type": "Office", "status": "Active"},
		},
	}
}

func assetClassesPage() Page {
	return Page{
		Section: "manage",
		Path:    "/manage/asset-classes",
		Schema: domain.EntitySchema{
			Name:              AssetClassesEntity,
			DisplayName:       "Asset Class",
			DisplayNamePlural: "Asset Classes",
			Fields: []domain.Field{
				text("class_id", "Class ID", true, "AC001"),
				text("name", "Name", true, ""),
				selectOf("category", "Category", true, "Static", "Rotating", "Electrical", "Instrumentation"),
				number("design_life", "Design Life (years)", false),
				textarea("description", "Description", 3),
				selectOf("status", "Status", true, _statuses...),
			},
			Columns: []domain.Column{
				column("class_id", "Class ID", nil),
				column("name", "Name", nil),
				column("category", "Category", nil),
				column("design_life", "Design Life", nil),
				column("status", "Status", table.Badge),
			},
			Defaults:   domain.Values{"status": "Active"},
			IDStrategy: domain.PrefixedSequenceStrategy{Prefix: "ACL-", Width: 3},
		},
		Constraints: `
class_id?:    =~"^AC[0-9]{3}$"
design_life?: >=0 & <=100
`,
		Seed: []domain.Values{
			{"id": "ACL-001", "class_id": "AC001", "name": "Pressure Vessel", "category": "Static", "design_life": 25, "status": "Active"},
			{"id": "ACL-002", "class_id": "AC002", "name": "Centrifugal Pump", "category": "Rotating", "design_life": 15, "status": "Active"},
			{"id": "ACL-003", "class_id": "AC003", "name": "Heat Exchanger", "category": "Static", "design_life": 20, "status": "Active"},
			{"id": "ACL-004", "class_id": "AC004", "name": "Transformer", "category": "Electrical", "design_life": 30, "status": "Inactive"},
		},
	}
}

func assetsPage() Page {
	return Page{
		Section: "manage",
		Path:    "/manage/assets",
		Schema: domain.EntitySchema{
			Name:              AssetsEntity,
			DisplayName:       "Asset",
			DisplayNamePlural: "Assets",
			Fields: []domain.Field{
				text("tag", "Tag", true, "P-101A"),
				text("name", "Name", true, ""),
				text("facility_code", "Facility", true, "F001"),
				text("class_id", "Asset Class", false, "AC002"),
				date("install_date", "Install Date", false),
				number("replacement_cost", "Replacement Cost", false),
				selectOf("criticality", "Criticality", true, "Low", "Medium", "High"),
				selectOf("status", "Status", true, "In Service", "Standby", "Retired"),
			},
			Columns: []domain.Column{
				column("tag", "Tag", nil),
				column("name", "Name", nil),
				column("facility_code", "Facility", nil),
				column("install_date", "Installed", table.Date("Jan 2, 2006")),
				column("replacement_cost", "Replacement Cost", table.Currency("$")),
				column("criticality", "Criticality", table.Badge),
				column("status", "Status", table.Badge),
			},
			Defaults:   domain.Values{"criticality": "Medium", "status": "In Service"},
			IDStrategy: domain.PrefixedSequenceStrategy{Prefix: "A", Width: 4},
		},
		Constraints: `
replacement_cost?: >=0
class_id?:         =~"^AC[0-9]{3}$"
`,
		Seed: []domain.Values{
			{"id": "A0001", "tag": "P-101A", "name": "Crude Charge Pump", "facility_code": "F001", "class_id": "AC002", "install_date": "2015-06-01", "replacement_cost": 185000, "criticality": "High", "status": "In Service"},
			{"id": "A0002", "tag": "P-101B", "name": "Crude Charge Pump Spare", "facility_code": "F001", "class_id": "AC002", "install_date": "2015-06-01", "replacement_cost": 185000, "criticality": "High", "status": "Standby"},
			{"id": "A0003", "tag": "V-200", "name": "Flash Drum", "facility_code": "F001", "class_id": "AC001", "install_date": "2009-03-15", "replacement_cost": 420000, "criticality": "Medium", "status": "In Service"},
			{"id": "A0004", "tag": "E-310", "name": "Feed Preheater", "facility_code": "F004", "class_id": "AC003", "install_date": "2012-11-20", "replacement_cost": 265000, "criticality": "Medium", "status": "In Service"},
		},
	}
}

func systemsPage() Page {
	return Page{
		Section: "manage",
		Path:    "/manage/systems",
		Schema: domain.EntitySchema{
			Name:              SystemsEntity,
			DisplayName:       "System",
			DisplayNamePlural: "Systems",
			Fields: []domain.Field{
				text("code", "Code", true, "SYS-01"),
				text("name", "Name", true, ""),
				text("facility_code", "Facility", true, "F001"),
				textarea("description", "Description", 4),
				selectOf("status", "Status", true, _statuses...),
			},
			Columns: []domain.Column{
				column("code", "Code", nil),
				column("name", "Name", nil),
				column("facility_code", "Facility", nil),
				column("status", "Status", table.Badge),
			},
			Defaults: domain.Values{"status": "Active"},
		},
		Seed: []domain.Values{
			{"code": "SYS-01", "name": "Crude Feed", "facility_code": "F001", "status": "Active"},
			{"code": "SYS-02", "name": "Cooling Water", "facility_code": "F001", "status": "Active"},
			{"code": "SYS-03", "name": "Tank Farm", "facility_code": "F002", "status": "Active"},
		},
	}
}
