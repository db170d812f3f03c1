package domain

// Webhook topics this service subscribes every connected store to.
const (
	TopicAppUninstalled = "app/uninstalled"
	TopicProductsUpdate = "products/update"
	TopicProductsDelete = "products/delete"
)

// WebhookEvent is a verified inbound delivery from Shopify.
type WebhookEvent struct {
	Topic    string `json:"topic"`
	Shop     string `json:"shop"`
	Payload  []byte `json:"payload"`
	Verified bool   `json:"verified"`
}

// WebhookRegistration is the per-topic outcome of registering a
// subscription with a store.
type WebhookRegistration struct {
	Topic   string `json:"topic"`
	Address string `json:"address"`
	Success bool   `json:"success"`
	Exists  bool   `json:"exists,omitempty"`
	Error   string `json:"error,omitempty"`
}
