package catalog

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"upkeep-server/internal/records/domain"
	"upkeep-server/internal/records/validation"
)

// cronRule rejects values that the maintenance scheduler could not parse.
type cronRule struct {
	field  string
	parser cron.Parser
}

func newCronRule(field string) validation.Schema {
	return cronRule{
		field:  field,
		parser: cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
	}
}

func (r cronRule) Validate(values domain.Values) domain.FieldErrors {
	errs := domain.FieldErrors{}
	raw, ok := values[r.field]
	if !ok || validation.IsEmpty(raw) {
		return errs
	}
	s, ok := raw.(string)
	if !ok {
		errs.Add(r.field, "must be a cron expression")
		return errs
	}
	if _, err := r.parser.Parse(s); err != nil {
		errs.Add(r.field, fmt.Sprintf("must be a cron expression: %s", err.Error()))
	}
	return errs
}
