package dialog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"upkeep-server/internal/records/domain"
	"upkeep-server/internal/records/validation"
)

var (
	ErrDialogClosed      = errors.New("dialog is closed")
	ErrDialogOpen        = errors.New("dialog is already open")
	ErrSubmitInProgress  = errors.New("a submit is already in progress")
	ErrAlreadySubmitted  = errors.New("dialog values were already submitted")
	ErrUnknownField      = errors.New("unknown field")
	ErrOptionNotAllowed  = errors.New("value is not one of the field options")
	ErrSubmitFuncMissing = errors.New("dialog has no submit handler")
)

type State int

const (
	StateClosed State = iota
	StatePristine
	StateEditing
	StateValidating
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StatePristine:
		return "pristine"
	case StateEditing:
		return "editing"
	case StateValidating:
		return "validating"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// SubmitFunc receives the validated, normalized values of every field.
type SubmitFunc func(ctx context.Context, values domain.Values) error

type Config struct {
	Schema   validation.Schema
	Fields   []domain.Field
	OnSubmit SubmitFunc
}

// Dialog is a schema-driven record form. It never closes itself: after a
// successful submit it stays open with Submitted reporting true until the
// owner calls Close.
type Dialog struct {
	mu        sync.Mutex
	cfg       Config
	state     State
	mode      Mode
	recordID  domain.ID
	values    domain.Values
	errors    domain.FieldErrors
	submitted bool
}

func New(cfg Config) *Dialog {
	if cfg.Schema == nil {
		cfg.Schema = validation.FromFields(cfg.Fields)
	}
	return &Dialog{cfg: cfg, state: StateClosed}
}

// Open starts a create flow seeded with the given defaults.
func (d *Dialog) Open(defaults domain.Values) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateClosed {
		return ErrDialogOpen
	}
	d.reset(ModeCreate, "", domain.InitialValues(d.cfg.Fields, defaults))
	return nil
}

// OpenEdit starts an edit flow whose form state equals the record values.
func (d *Dialog) OpenEdit(record domain.Record) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateClosed {
		return ErrDialogOpen
	}
	d.reset(ModeEdit, record.ID, domain.InitialValues(d.cfg.Fields, record.Values))
	return nil
}

func (d *Dialog) reset(mode Mode, id domain.ID, values domain.Values) {
	d.state = StatePristine
	d.mode = mode
	d.recordID = id
	d.values = values
	d.errors = domain.FieldErrors{}
	d.submitted = false
}

func (d *Dialog) Change(name string, value any) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.state {
	case StateClosed:
		return ErrDialogClosed
	case StateValidating:
		return ErrSubmitInProgress
	}

	field, ok := d.field(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	if sel, ok := field.(domain.SelectField); ok && !validation.IsEmpty(value) && !sel.HasOption(fmt.Sprint(value)) {
		return fmt.Errorf("%w: %s=%v", ErrOptionNotAllowed, name, value)
	}

	d.values[name] = value
	delete(d.errors, name)
	d.state = StateEditing
	d.submitted = false
	return nil
}

// Submit validates the current values and, when they pass, hands them to
// the submit handler exactly once. Only one submit may run at a time, and
// values that were already submitted need a Change before the next one.
func (d *Dialog) Submit(ctx context.Context) (domain.Values, error) {
	d.mu.Lock()
	switch d.state {
	case StateClosed:
		d.mu.Unlock()
		return nil, ErrDialogClosed
	case StateValidating:
		d.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	if d.submitted {
		d.mu.Unlock()
		return nil, ErrAlreadySubmitted
	}
	if d.cfg.OnSubmit == nil {
		d.mu.Unlock()
		return nil, ErrSubmitFuncMissing
	}
	d.state = StateValidating
	candidate := d.values.Clone()
	d.mu.Unlock()

	if errs := d.cfg.Schema.Validate(candidate); errs.HasErrors() {
		d.finish(errs, false)
		return nil, domain.NewValidationError(errs)
	}

	values := validation.Normalize(d.cfg.Fields, candidate)
	if err := d.cfg.OnSubmit(ctx, values); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			d.finish(verr.Fields, false)
		} else {
			d.finish(domain.FieldErrors{}, false)
		}
		return nil, fmt.Errorf("submitting dialog: %w", err)
	}

	d.finish(domain.FieldErrors{}, true)
	return values, nil
}

func (d *Dialog) finish(errs domain.FieldErrors, submitted bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// a Cancel cannot interleave with a submit, so the dialog is still open
	d.state = StateEditing
	d.errors = errs
	d.submitted = submitted
}

// Saved points a create dialog at the record its submit produced. Later
// submits of the same dialog edit that record instead of creating another.
func (d *Dialog) Saved(id domain.ID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == StateClosed || d.mode != ModeCreate {
		return
	}
	d.mode = ModeEdit
	d.recordID = id
}

// Cancel discards in-progress edits without submitting.
func (d *Dialog) Cancel() error {
	return d.Close()
}

func (d *Dialog) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == StateValidating {
		return ErrSubmitInProgress
	}
	d.state = StateClosed
	d.mode = ""
	d.recordID = ""
	d.values = nil
	d.errors = nil
	d.submitted = false
	return nil
}

func (d *Dialog) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Dialog) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

func (d *Dialog) RecordID() domain.ID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.recordID
}

func (d *Dialog) Values() domain.Values {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.values == nil {
		return nil
	}
	return d.values.Clone()
}

func (d *Dialog) Errors() domain.FieldErrors {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := domain.FieldErrors{}
	out.Merge(d.errors)
	return out
}

func (d *Dialog) Submitted() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.submitted
}

func (d *Dialog) Fields() []domain.Field {
	return d.cfg.Fields
}

func (d *Dialog) field(name string) (domain.Field, bool) {
	for _, f := range d.cfg.Fields {
		if f.Base().Name == name {
			return f, true
		}
	}
	return nil, false
}
