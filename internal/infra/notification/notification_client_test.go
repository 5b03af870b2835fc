package notification_test

import (
	"context"

	"upkeep-server/internal/infra/async"
	"upkeep-server/internal/infra/notification"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("BrokerNotificationClient", func() {
	var (
		broker *async.LocalBroker
		client notification.NotificationClient
	)

	ginkgo.BeforeEach(func() {
		broker = async.NewLocalBroker()
		client = notification.NewCompositeNotificationClient(
			notification.NewBrokerNotificationClient(broker),
			notification.LogNotificationClient{},
		)
	})

	ginkgo.It("publishes toasts with a timestamp", func() {
		subscription, err := broker.Subscribe(notification.ToastsTopic)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		client.Notify(context.Background(), notification.Toast{Level: notification.LevelSuccess, Title: "Facility created"})

		var msg async.BrokerMessage
		gomega.Eventually(subscription.Receiver).Should(gomega.Receive(&msg))
		toast, ok := notification.ToastFrom(msg)
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(toast.Title).To(gomega.Equal("Facility created"))
		gomega.Expect(toast.At.IsZero()).To(gomega.BeFalse())
	})

	ginkgo.It("does nothing when no one listens", func() {
		gomega.Expect(func() {
			client.Notify(context.Background(), notification.Toast{Title: "ignored"})
		}).NotTo(gomega.Panic())
	})

	ginkgo.It("ignores unrelated broker messages", func() {
		_, ok := notification.ToastFrom(async.BrokerMessage{Event: "other"})
		gomega.Expect(ok).To(gomega.BeFalse())
	})
})
