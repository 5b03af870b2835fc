package dialog

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"upkeep-server/internal/records/domain"
)

// Snapshot is the persisted form of a dialog between requests.
type Snapshot struct {
	Entity    string              `msgpack:"entity"`
	State     State               `msgpack:"state"`
	Mode      Mode                `msgpack:"mode"`
	RecordID  string              `msgpack:"record_id"`
	Values    map[string]any      `msgpack:"values"`
	Errors    map[string][]string `msgpack:"errors"`
	Submitted bool                `msgpack:"submitted"`
}

func (d *Dialog) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := Snapshot{
		State:     d.state,
		Mode:      d.mode,
		RecordID:  string(d.recordID),
		Values:    map[string]any(d.values.Clone()),
		Errors:    map[string][]string{},
		Submitted: d.submitted,
	}
	for k, v := range d.errors {
		s.Errors[k] = append([]string(nil), v...)
	}
	return s
}

// Restore loads a snapshot into a dialog built from the same fields. A
// snapshot taken mid-submit comes back as editing.
func (d *Dialog) Restore(s Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.state = s.State
	if d.state == StateValidating {
		d.state = StateEditing
	}
	d.mode = s.Mode
	d.recordID = domain.ID(s.RecordID)
	d.values = nil
	if s.Values != nil {
		d.values = domain.Values(s.Values).Clone()
	}
	d.errors = domain.FieldErrors{}
	for k, v := range s.Errors {
		d.errors[k] = append([]string(nil), v...)
	}
	d.submitted = s.Submitted
}

func EncodeSnapshot(s Snapshot) ([]byte, error) {
	data, err := msgpack.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding dialog snapshot: %w", err)
	}
	return data, nil
}

func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decoding dialog snapshot: %w", err)
	}
	return s, nil
}
