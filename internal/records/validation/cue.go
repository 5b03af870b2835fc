package validation

import (
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"upkeep-server/internal/records/domain"
)

// _rootField collects errors that CUE reports without a field path.
const _rootField = "_"

// CueSchema applies constraints written in CUE to the normalized values of
// a record. Fields that cannot be normalized, and empty values, are left to
// the descriptor schema.
type CueSchema struct {
	mu     sync.Mutex
	ctx    *cue.Context
	schema cue.Value
	fields []domain.Field
}

func NewCueSchema(fields []domain.Field, source string) (*CueSchema, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(source)
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling constraints: %w", err)
	}

	return &CueSchema{
		ctx:    ctx,
		schema: schema,
		fields: fields,
	}, nil
}

var _ Schema = (*CueSchema)(nil)

func (s *CueSchema) Validate(values domain.Values) domain.FieldErrors {
	input := make(map[string]any, len(values))
	for k, v := range values {
		if IsEmpty(v) {
			continue
		}
		input[k] = v
	}
	for _, f := range s.fields {
		name := f.Base().Name
		raw, ok := input[name]
		if !ok {
			continue
		}
		normalized, ok := normalizeValue(f, raw)
		if !ok {
			delete(input, name)
			continue
		}
		input[name] = normalized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	errs := domain.FieldErrors{}
	data := s.ctx.Encode(input)
	if err := data.Err(); err != nil {
		errs.Add(_rootField, err.Error())
		return errs
	}

	unified := s.schema.Unify(data)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		for _, e := range cueerrors.Errors(err) {
			format, args := e.Msg()
			errs.Add(fieldOf(e.Path()), fmt.Sprintf(format, args...))
		}
	}
	return errs
}

func fieldOf(path []string) string {
	if len(path) == 0 {
		return _rootField
	}
	return path[len(path)-1]
}
