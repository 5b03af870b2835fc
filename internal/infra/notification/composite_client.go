package notification

import "context"

var _ NotificationClient = (*CompositeNotificationClient)(nil)

type CompositeNotificationClient struct {
	clients []NotificationClient
}

func NewCompositeNotificationClient(clients ...NotificationClient) *CompositeNotificationClient {
	return &CompositeNotificationClient{clients: clients}
}

func (c *CompositeNotificationClient) Notify(ctx context.Context, toast Toast) {
	for _, client := range c.clients {
		client.Notify(ctx, toast)
	}
}
