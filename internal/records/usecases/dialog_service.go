package usecases

//go:generate mockgen -source=./dialog_service.go -destination=../../../test/unit/doubles/records/usecases/dialog_service_mock.go -package=usecases -mock_names=DialogService=MockDialogService

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"upkeep-server/internal/infra/utils"
	"upkeep-server/internal/records/dialog"
	"upkeep-server/internal/records/domain"
)

// DialogView is the externally visible state of a dialog session.
type DialogView struct {
	ID        string
	Entity    string
	State     dialog.State
	Mode      dialog.Mode
	RecordID  domain.ID
	Values    domain.Values
	Errors    domain.FieldErrors
	Submitted bool
	Fields    []domain.Field
	// Record is set after a successful submit.
	Record *domain.Record
}

type DialogService interface {
	OpenCreate(ctx context.Context, entity string) (DialogView, error)
	OpenEdit(ctx context.Context, entity string, id domain.ID) (DialogView, error)
	Get(ctx context.Context, sessionID string) (DialogView, error)
	Change(ctx context.Context, sessionID string, changes domain.Values) (DialogView, error)
	Submit(ctx context.Context, sessionID string) (DialogView, error)
	Cancel(ctx context.Context, sessionID string) error
	Close(ctx context.Context, sessionID string) error
}

func NewDialogService(records RecordService, store dialog.Store) *SimpleDialogService {
	return &SimpleDialogService{records: records, store: store}
}

var _ DialogService = (*SimpleDialogService)(nil)

type SimpleDialogService struct {
	records  RecordService
	store    dialog.Store
	inflight sync.Map
}

func (s *SimpleDialogService) OpenCreate(ctx context.Context, entity string) (DialogView, error) {
	schema, err := s.records.Entity(entity)
	if err != nil {
		return DialogView{}, err
	}

	d, err := s.newDialog(entity, nil)
	if err != nil {
		return DialogView{}, err
	}
	if err := d.Open(schema.Defaults); err != nil {
		return DialogView{}, err
	}
	return s.save(ctx, utils.GenerateUUID(), entity, d, nil)
}

func (s *SimpleDialogService) OpenEdit(ctx context.Context, entity string, id domain.ID) (DialogView, error) {
	record, err := s.records.GetRecord(ctx, entity, id)
	if err != nil {
		return DialogView{}, err
	}

	d, err := s.newDialog(entity, nil)
	if err != nil {
		return DialogView{}, err
	}
	if err := d.OpenEdit(record); err != nil {
		return DialogView{}, err
	}
	return s.save(ctx, utils.GenerateUUID(), entity, d, nil)
}

func (s *SimpleDialogService) Get(ctx context.Context, sessionID string) (DialogView, error) {
	d, snapshot, err := s.load(ctx, sessionID, nil)
	if err != nil {
		return DialogView{}, err
	}
	return view(sessionID, snapshot.Entity, d, nil), nil
}

func (s *SimpleDialogService) Change(ctx context.Context, sessionID string, changes domain.Values) (DialogView, error) {
	if _, busy := s.inflight.Load(sessionID); busy {
		return DialogView{}, dialog.ErrSubmitInProgress
	}

	d, snapshot, err := s.load(ctx, sessionID, nil)
	if err != nil {
		return DialogView{}, err
	}

	for name, value := range changes {
		if err := d.Change(name, value); err != nil {
			return DialogView{}, err
		}
	}
	return s.save(ctx, sessionID, snapshot.Entity, d, nil)
}

// Submit runs the dialog submit for a stored session. A session accepts
// one submit at a time across concurrent requests.
func (s *SimpleDialogService) Submit(ctx context.Context, sessionID string) (DialogView, error) {
	if _, busy := s.inflight.LoadOrStore(sessionID, struct{}{}); busy {
		return DialogView{}, dialog.ErrSubmitInProgress
	}
	defer s.inflight.Delete(sessionID)

	var saved *domain.Record
	d, snapshot, err := s.load(ctx, sessionID, func(entity string, mode dialog.Mode, id domain.ID) dialog.SubmitFunc {
		return func(ctx context.Context, values domain.Values) error {
			record, err := s.persist(ctx, entity, mode, id, values)
			if err != nil {
				return err
			}
			saved = &record
			return nil
		}
	})
	if err != nil {
		return DialogView{}, err
	}

	_, submitErr := d.Submit(ctx)
	if errors.Is(submitErr, dialog.ErrAlreadySubmitted) {
		return view(sessionID, snapshot.Entity, d, nil), submitErr
	}
	if saved != nil {
		d.Saved(saved.ID)
	}
	result, err := s.save(ctx, sessionID, snapshot.Entity, d, saved)
	if err != nil {
		return DialogView{}, err
	}
	if submitErr != nil {
		if !errors.Is(submitErr, domain.ErrValidation) {
			slog.Error("submitting dialog",
				slog.String("session_id", sessionID),
				slog.String("error", submitErr.Error()))
		}
		return result, submitErr
	}
	return result, nil
}

func (s *SimpleDialogService) persist(ctx context.Context, entity string, mode dialog.Mode, id domain.ID, values domain.Values) (domain.Record, error) {
	if mode == dialog.ModeEdit {
		return s.records.UpdateRecord(ctx, entity, id, values)
	}
	return s.records.CreateRecord(ctx, entity, values)
}

func (s *SimpleDialogService) Cancel(ctx context.Context, sessionID string) error {
	return s.Close(ctx, sessionID)
}

func (s *SimpleDialogService) Close(ctx context.Context, sessionID string) error {
	if _, busy := s.inflight.Load(sessionID); busy {
		return dialog.ErrSubmitInProgress
	}

	d, _, err := s.load(ctx, sessionID, nil)
	if err != nil {
		return err
	}
	if err := d.Close(); err != nil {
		return err
	}
	s.store.Delete(ctx, sessionID)
	return nil
}

type submitBinder func(entity string, mode dialog.Mode, id domain.ID) dialog.SubmitFunc

func (s *SimpleDialogService) newDialog(entity string, onSubmit dialog.SubmitFunc) (*dialog.Dialog, error) {
	schema, err := s.records.Entity(entity)
	if err != nil {
		return nil, err
	}
	validator, err := s.records.Validator(entity)
	if err != nil {
		return nil, err
	}
	return dialog.New(dialog.Config{
		Schema:   validator,
		Fields:   schema.Fields,
		OnSubmit: onSubmit,
	}), nil
}

func (s *SimpleDialogService) load(ctx context.Context, sessionID string, bind submitBinder) (*dialog.Dialog, dialog.Snapshot, error) {
	snapshot, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, dialog.Snapshot{}, err
	}

	var onSubmit dialog.SubmitFunc
	if bind != nil {
		onSubmit = bind(snapshot.Entity, snapshot.Mode, domain.ID(snapshot.RecordID))
	}

	d, err := s.newDialog(snapshot.Entity, onSubmit)
	if err != nil {
		return nil, dialog.Snapshot{}, err
	}
	d.Restore(snapshot)
	return d, snapshot, nil
}

func (s *SimpleDialogService) save(ctx context.Context, sessionID, entity string, d *dialog.Dialog, saved *domain.Record) (DialogView, error) {
	snapshot := d.Snapshot()
	snapshot.Entity = entity
	if err := s.store.Save(ctx, sessionID, snapshot); err != nil {
		return DialogView{}, fmt.Errorf("saving dialog session: %w", err)
	}
	return view(sessionID, entity, d, saved), nil
}

func view(sessionID, entity string, d *dialog.Dialog, saved *domain.Record) DialogView {
	return DialogView{
		ID:        sessionID,
		Entity:    entity,
		State:     d.State(),
		Mode:      d.Mode(),
		RecordID:  d.RecordID(),
		Values:    d.Values(),
		Errors:    d.Errors(),
		Submitted: d.Submitted(),
		Fields:    d.Fields(),
		Record:    saved,
	}
}
