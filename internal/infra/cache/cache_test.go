package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"upkeep-server/internal/infra/cache"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("RistrettoCache", func() {
	var (
		cacheInstance *cache.RistrettoCache
		ctx           context.Context
	)

	ginkgo.BeforeEach(func() {
		var err error
		cacheInstance, err = cache.New(nil)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		ctx = context.Background()
	})

	ginkgo.AfterEach(func() {
		cacheInstance.Close()
	})

	ginkgo.It("returns a value right after it was set", func() {
		gomega.Expect(cacheInstance.Set(ctx, "dialog:1", []byte("payload"), time.Minute)).To(gomega.BeTrue())

		value, found := cacheInstance.Get(ctx, "dialog:1")
		gomega.Expect(found).To(gomega.BeTrue())
		gomega.Expect(value).To(gomega.Equal([]byte("payload")))
	})

	ginkgo.It("forgets deleted keys", func() {
		cacheInstance.Set(ctx, "dialog:2", []byte("x"), time.Minute)
		cacheInstance.Delete(ctx, "dialog:2")

		_, found := cacheInstance.Get(ctx, "dialog:2")
		gomega.Expect(found).To(gomega.BeFalse())
	})

	ginkgo.It("ignores calls on a cancelled context", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		gomega.Expect(cacheInstance.Set(cancelled, "k", []byte("v"), 0)).To(gomega.BeFalse())
		_, found := cacheInstance.Get(cancelled, "k")
		gomega.Expect(found).To(gomega.BeFalse())
	})

	ginkgo.When("loading a missing key concurrently", func() {
		ginkgo.It("calls the loader once", func() {
			var calls atomic.Int32
			loader := func() ([]byte, error) {
				calls.Add(1)
				time.Sleep(20 * time.Millisecond)
				return []byte("table"), nil
			}

			var wg sync.WaitGroup
			for range 8 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					defer ginkgo.GinkgoRecover()
					value, err := cacheInstance.GetOrSet(ctx, "view:facilities", time.Minute, loader)
					gomega.Expect(err).NotTo(gomega.HaveOccurred())
					gomega.Expect(value).To(gomega.Equal([]byte("table")))
				}()
			}
			wg.Wait()

			gomega.Expect(calls.Load()).To(gomega.Equal(int32(1)))
		})

		ginkgo.It("returns the loader error without caching", func() {
			_, err := cacheInstance.GetOrSet(ctx, "broken", time.Minute, func() ([]byte, error) {
				return nil, errors.New("boom")
			})
			gomega.Expect(err).To(gomega.MatchError("boom"))

			_, found := cacheInstance.Get(ctx, "broken")
			gomega.Expect(found).To(gomega.BeFalse())
		})
	})
})
