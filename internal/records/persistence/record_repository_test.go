package persistence_test

import (
	"context"
	"sync"

	"upkeep-server/internal/infra/pubsub"
	"upkeep-server/internal/infra/sql"
	"upkeep-server/internal/records/domain"
	"upkeep-server/internal/records/persistence"
	"upkeep-server/internal/records/usecases"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RecordRepository", func() {
	var (
		broker     *pubsub.MemoryBroker
		repository *persistence.SimpleRecordRepository
		ctx        context.Context

		mu     sync.Mutex
		events []usecases.RecordEvent
	)

	newRecord := func(entity, id, name string) domain.Record {
		record, err := domain.NewRecordBuilder().
			WithEntity(entity).
			WithID(domain.ID(id)).
			WithValues(domain.Values{"name": name, "status": "Active"}).
			Build()
		Expect(err).NotTo(HaveOccurred())
		return record
	}

	received := func() []usecases.RecordEvent {
		broker.Drain()
		mu.Lock()
		defer mu.Unlock()
		return append([]usecases.RecordEvent(nil), events...)
	}

	BeforeEach(func() {
		ctx = context.Background()
		events = nil

		orm, err := sql.NewMemoryORM("records_" + uuid.NewString())
		Expect(err).NotTo(HaveOccurred())

		broker = pubsub.NewMemoryBroker()
		consumer := pubsub.NewMemoryConsumerFactory(broker, "test").New()
		err = consumer.Consume(persistence.RecordsTopic, func(_ context.Context, _ pubsub.Key, msg pubsub.Prototype) error {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, msg.(usecases.RecordEvent))
			return nil
		}, usecases.RecordEvent{})
		Expect(err).NotTo(HaveOccurred())

		repository, err = persistence.NewRecordRepository(pubsub.NewMemoryPublisherFactory(broker), orm)
		Expect(err).NotTo(HaveOccurred())
	})

	Context("Create", func() {
		It("appends records in insertion order", func() {
			Expect(repository.Create(ctx, newRecord("facilities", "F002", "B"))).To(Succeed())
			Expect(repository.Create(ctx, newRecord("facilities", "F001", "A"))).To(Succeed())
			Expect(repository.Create(ctx, newRecord("assets", "A001", "Pump"))).To(Succeed())

			records, total, err := repository.List(ctx, "facilities", usecases.Filter{})

			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(2))
			Expect(records).To(HaveLen(2))
			Expect(records[0].ID).To(Equal(domain.ID("F002")))
			Expect(records[1].ID).To(Equal(domain.ID("F001")))
		})

		It("reports an id collision within the entity", func() {
			Expect(repository.Create(ctx, newRecord("facilities", "F001", "A"))).To(Succeed())

			err := repository.Create(ctx, newRecord("facilities", "F001", "B"))

			Expect(err).To(MatchError(domain.ErrDuplicateID))
		})

		It("publishes a created event", func() {
			Expect(repository.Create(ctx, newRecord("facilities", "F001", "A"))).To(Succeed())

			Expect(received()).To(ConsistOf(And(
				HaveField("Type", usecases.RecordCreated),
				HaveField("Entity", "facilities"),
				HaveField("RecordID", "F001"),
			)))
		})
	})

	Context("List", func() {
		BeforeEach(func() {
			for _, r := range []domain.Record{
				newRecord("facilities", "F001", "North Plant"),
				newRecord("facilities", "F002", "South Plant"),
				newRecord("facilities", "F003", "North Annex"),
			} {
				Expect(repository.Create(ctx, r)).To(Succeed())
			}
		})

		It("pages without predicates", func() {
			records, total, err := repository.List(ctx, "facilities", usecases.Filter{
				Pagination: usecases.Pagination{Limit: 1, Offset: 1},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(3))
			Expect(records).To(HaveLen(1))
			Expect(records[0].ID).To(Equal(domain.ID("F002")))
		})

		It("filters and counts the matches", func() {
			records, total, err := repository.List(ctx, "facilities", usecases.Filter{
				Query:      "north",
				Pagination: usecases.Pagination{Limit: 1},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(2))
			Expect(records).To(HaveLen(1))
			Expect(records[0].ID).To(Equal(domain.ID("F001")))
		})

		It("lists the ids of the entity", func() {
			ids, err := repository.IDs(ctx, "facilities")

			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(ConsistOf(domain.ID("F001"), domain.ID("F002"), domain.ID("F003")))
		})
	})

	Context("Update", func() {
		It("replaces values and keeps the position", func() {
			Expect(repository.Create(ctx, newRecord("facilities", "F001", "A"))).To(Succeed())
			Expect(repository.Create(ctx, newRecord("facilities", "F002", "B"))).To(Succeed())

			record, err := repository.Get(ctx, "facilities", "F001")
			Expect(err).NotTo(HaveOccurred())
			record.Replace(domain.Values{"name": "Renamed", "status": "Inactive"})
			Expect(repository.Update(ctx, record)).To(Succeed())

			records, _, err := repository.List(ctx, "facilities", usecases.Filter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(records[0].ID).To(Equal(domain.ID("F001")))
			Expect(records[0].Values).To(HaveKeyWithValue("name", "Renamed"))
		})

		It("reports a missing record", func() {
			err := repository.Update(ctx, newRecord("facilities", "F404", "A"))
			Expect(err).To(MatchError(domain.ErrRecordNotFound))
		})
	})

	Context("Delete", func() {
		It("removes the record and publishes a deleted event", func() {
			Expect(repository.Create(ctx, newRecord("facilities", "F001", "A"))).To(Succeed())

			Expect(repository.Delete(ctx, "facilities", "F001")).To(Succeed())

			_, err := repository.Get(ctx, "facilities", "F001")
			Expect(err).To(MatchError(domain.ErrRecordNotFound))
			Expect(received()).To(ContainElement(HaveField("Type", usecases.RecordDeleted)))
		})

		It("reports a missing record", func() {
			Expect(repository.Delete(ctx, "facilities", "F404")).To(MatchError(domain.ErrRecordNotFound))
		})
	})

	Context("Seed", func() {
		It("fills an empty entity once", func() {
			seeds := []domain.Record{newRecord("facilities", "F001", "A"), newRecord("facilities", "F002", "B")}

			seeded, err := repository.Seed(ctx, "facilities", seeds)
			Expect(err).NotTo(HaveOccurred())
			Expect(seeded).To(BeTrue())

			seeded, err = repository.Seed(ctx, "facilities", seeds)
			Expect(err).NotTo(HaveOccurred())
			Expect(seeded).To(BeFalse())

			records, total, _ := repository.List(ctx, "facilities", usecases.Filter{})
			Expect(total).To(Equal(2))
			Expect(records[1].Entity).To(Equal("facilities"))
			Expect(received()).To(BeEmpty())
		})
	})
})
