package events

// Handler consumes a domain event. Handlers run synchronously on the
// publishing goroutine; the whole editor is single-threaded by contract.
type Handler func(DomainEvent)

// Bus is a minimal in-process publish/subscribe fan-out for domain events.
// Subscribers see events in publish order.
type Bus struct {
	handlers []Handler
}

// NewBus creates an empty event bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for all subsequent events
func (b *Bus) Subscribe(h Handler) {
	if h == nil {
		return
	}
	b.handlers = append(b.handlers, h)
}

// Publish delivers the event to every subscriber in registration order
func (b *Bus) Publish(event DomainEvent) {
	for _, h := range b.handlers {
		h(event)
	}
}

// PublishAll delivers a batch of events in order
func (b *Bus) PublishAll(batch []DomainEvent) {
	for _, event := range batch {
		b.Publish(event)
	}
}
