package dialog_test

import (
	"context"
	"errors"
	"time"

	"upkeep-server/internal/records/dialog"
	"upkeep-server/internal/records/domain"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var facilityFields = []domain.Field{
	domain.TextField{FieldBase: domain.FieldBase{Name: "code", Label: "Code", Required: true}},
	domain.TextField{FieldBase: domain.FieldBase{Name: "name", Label: "Name", Required: true}},
	domain.NumberField{FieldBase: domain.FieldBase{Name: "area", Label: "Area"}},
	domain.TextareaField{FieldBase: domain.FieldBase{Name: "notes", Label: "Notes"}},
	domain.SelectField{
		FieldBase: domain.FieldBase{Name: "status", Label: "Status", Required: true},
		Options:   []domain.Option{{Value: "Active", Label: "Active"}, {Value: "Inactive", Label: "Inactive"}},
	},
}

var _ = Describe("Dialog", func() {
	var (
		d        *dialog.Dialog
		calls    int
		received domain.Values
		submitFn dialog.SubmitFunc
		ctx      context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		calls = 0
		received = nil
		submitFn = func(_ context.Context, values domain.Values) error {
			calls++
			received = values
			return nil
		}
	})

	JustBeforeEach(func() {
		d = dialog.New(dialog.Config{Fields: facilityFields, OnSubmit: submitFn})
	})

	It("starts closed and rejects edits", func() {
		Expect(d.State()).To(Equal(dialog.StateClosed))
		Expect(d.Change("code", "F006")).To(MatchError(dialog.ErrDialogClosed))
		_, err := d.Submit(ctx)
		Expect(err).To(MatchError(dialog.ErrDialogClosed))
	})

	When("opened for create", func() {
		JustBeforeEach(func() {
			Expect(d.Open(domain.Values{"status": "Active"})).To(Succeed())
		})

		It("is pristine with one value per field", func() {
			Expect(d.State()).To(Equal(dialog.StatePristine))
			Expect(d.Mode()).To(Equal(dialog.ModeCreate))
			Expect(d.Values()).To(HaveLen(len(facilityFields)))
			Expect(d.Values()["status"]).To(Equal("Active"))
		})

		It("cannot be opened twice", func() {
			Expect(d.Open(nil)).To(MatchError(dialog.ErrDialogOpen))
		})

		It("moves to editing on change", func() {
			Expect(d.Change("code", "F006")).To(Succeed())
			Expect(d.State()).To(Equal(dialog.StateEditing))
		})

		It("rejects unknown fields and unlisted options", func() {
			Expect(d.Change("colour", "red")).To(MatchError(dialog.ErrUnknownField))
			Expect(d.Change("status", "Retired")).To(MatchError(dialog.ErrOptionNotAllowed))
		})

		It("calls the submit handler once with every field", func() {
			Expect(d.Change("code", "F006")).To(Succeed())
			Expect(d.Change("name", "Test Facility")).To(Succeed())
			Expect(d.Change("area", "1200")).To(Succeed())

			values, err := d.Submit(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(calls).To(Equal(1))
			Expect(received).To(HaveLen(len(facilityFields)))
			for _, name := range domain.FieldNames(facilityFields) {
				Expect(received).To(HaveKey(name))
			}
			Expect(received["area"]).To(Equal(1200.0))
			Expect(values).To(Equal(received))
		})

		It("stays open after a successful submit until closed", func() {
			Expect(d.Change("code", "F006")).To(Succeed())
			Expect(d.Change("name", "Test Facility")).To(Succeed())

			_, err := d.Submit(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.State()).NotTo(Equal(dialog.StateClosed))
			Expect(d.Submitted()).To(BeTrue())

			Expect(d.Close()).To(Succeed())
			Expect(d.State()).To(Equal(dialog.StateClosed))
		})

		It("refuses to submit the same values twice", func() {
			Expect(d.Change("code", "F006")).To(Succeed())
			Expect(d.Change("name", "Test Facility")).To(Succeed())
			_, err := d.Submit(ctx)
			Expect(err).NotTo(HaveOccurred())

			_, err = d.Submit(ctx)

			Expect(err).To(MatchError(dialog.ErrAlreadySubmitted))
			Expect(calls).To(Equal(1))
			Expect(d.Submitted()).To(BeTrue())
		})

		It("submits again after a change", func() {
			Expect(d.Change("code", "F006")).To(Succeed())
			Expect(d.Change("name", "Test Facility")).To(Succeed())
			_, err := d.Submit(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(d.Change("name", "Northern Depot")).To(Succeed())
			Expect(d.Submitted()).To(BeFalse())
			_, err = d.Submit(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(calls).To(Equal(2))
			Expect(received).To(HaveKeyWithValue("name", "Northern Depot"))
		})

		It("edits the saved record once it knows its id", func() {
			Expect(d.Change("code", "F006")).To(Succeed())
			Expect(d.Change("name", "Test Facility")).To(Succeed())
			_, err := d.Submit(ctx)
			Expect(err).NotTo(HaveOccurred())

			d.Saved("F006")

			Expect(d.Mode()).To(Equal(dialog.ModeEdit))
			Expect(d.RecordID()).To(Equal(domain.ID("F006")))
		})

		It("blocks the submit and shows errors when a required field is empty", func() {
			Expect(d.Change("name", "Test Facility")).To(Succeed())

			_, err := d.Submit(ctx)

			Expect(err).To(MatchError(domain.ErrValidation))
			Expect(calls).To(BeZero())
			Expect(d.Errors()).To(HaveKey("code"))
			Expect(d.State()).To(Equal(dialog.StateEditing))
		})

		It("clears a field error once the field changes", func() {
			_, err := d.Submit(ctx)
			Expect(err).To(HaveOccurred())
			Expect(d.Errors()).To(HaveKey("code"))

			Expect(d.Change("code", "F007")).To(Succeed())
			Expect(d.Errors()).NotTo(HaveKey("code"))
		})

		It("discards edits on cancel without submitting", func() {
			Expect(d.Change("code", "F006")).To(Succeed())

			Expect(d.Cancel()).To(Succeed())

			Expect(calls).To(BeZero())
			Expect(d.State()).To(Equal(dialog.StateClosed))
			Expect(d.Values()).To(BeNil())
		})
	})

	When("the submit handler is slow", func() {
		var release chan struct{}

		BeforeEach(func() {
			release = make(chan struct{})
			submitFn = func(context.Context, domain.Values) error {
				<-release
				return nil
			}
		})

		It("rejects a second submit while the first is in flight", func() {
			Expect(d.Open(domain.Values{"code": "F006", "name": "Slow", "status": "Active"})).To(Succeed())

			done := make(chan error, 1)
			go func() {
				_, err := d.Submit(ctx)
				done <- err
			}()
			Eventually(d.State).Should(Equal(dialog.StateValidating))

			_, err := d.Submit(ctx)
			Expect(err).To(MatchError(dialog.ErrSubmitInProgress))
			Expect(d.Close()).To(MatchError(dialog.ErrSubmitInProgress))

			close(release)
			Eventually(done, time.Second).Should(Receive(BeNil()))
		})
	})

	When("the submit handler fails", func() {
		BeforeEach(func() {
			submitFn = func(context.Context, domain.Values) error {
				return errors.New("storage offline")
			}
		})

		It("returns the error and keeps the dialog editable", func() {
			Expect(d.Open(domain.Values{"code": "F006", "name": "x", "status": "Active"})).To(Succeed())

			_, err := d.Submit(ctx)

			Expect(err).To(MatchError(ContainSubstring("storage offline")))
			Expect(d.State()).To(Equal(dialog.StateEditing))
			Expect(d.Submitted()).To(BeFalse())
		})
	})

	When("opened for edit", func() {
		record := domain.Record{
			ID:     "fac-2",
			Entity: "facilities",
			Values: domain.Values{"code": "F002", "name": "North Plant", "area": 5400.0, "notes": "", "status": "Inactive"},
		}

		It("initializes the form state from the record", func() {
			Expect(d.OpenEdit(record)).To(Succeed())

			Expect(d.Mode()).To(Equal(dialog.ModeEdit))
			Expect(d.RecordID()).To(Equal(domain.ID("fac-2")))
			Expect(d.Values()).To(Equal(record.Values))
		})
	})

	It("restores a snapshot through msgpack", func() {
		Expect(d.Open(nil)).To(Succeed())
		Expect(d.Change("code", "F010")).To(Succeed())

		data, err := dialog.EncodeSnapshot(d.Snapshot())
		Expect(err).NotTo(HaveOccurred())
		snapshot, err := dialog.DecodeSnapshot(data)
		Expect(err).NotTo(HaveOccurred())

		restored := dialog.New(dialog.Config{Fields: facilityFields, OnSubmit: submitFn})
		restored.Restore(snapshot)

		Expect(restored.State()).To(Equal(dialog.StateEditing))
		Expect(restored.Values()["code"]).To(Equal("F010"))
	})
})
