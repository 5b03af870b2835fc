package domain_test

import (
	"upkeep-server/internal/records/domain"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("IDStrategy", func() {
	Context("PrefixedSequenceStrategy", func() {
		strategy := domain.PrefixedSequenceStrategy{Prefix: "WO-", Width: 4}

		It("starts at one when nothing exists", func() {
			id, err := strategy.NextID(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal(domain.ID("WO-0001")))
		})

		It("continues after the highest suffix rather than the count", func() {
			existing := []domain.ID{"WO-0001", "WO-0005"}

			id, err := strategy.NextID(existing)
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal(domain.ID("WO-0006")))
		})

		It("does not reissue an id after a delete in the middle", func() {
			existing := []domain.ID{"WO-0001", "WO-0003"}

			id, err := strategy.NextID(existing)
			Expect(err).NotTo(HaveOccurred())
			Expect(existing).NotTo(ContainElement(id))
		})

		It("ignores ids with another prefix", func() {
			id, err := strategy.NextID([]domain.ID{"F-0042", "WO-0002"})
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal(domain.ID("WO-0003")))
		})
	})

	Context("UUIDStrategy", func() {
		It("returns ids not present in the existing set", func() {
			first, err := domain.UUIDStrategy{}.NextID(nil)
			Expect(err).NotTo(HaveOccurred())

			second, err := domain.UUIDStrategy{}.NextID([]domain.ID{first})
			Expect(err).NotTo(HaveOccurred())
			Expect(second).NotTo(Equal(first))
		})
	})
})
