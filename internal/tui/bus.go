package tui

import "sync"

// Events published by the pages and handled by the Tui.
const (
	EventRepositoryOpenRequested = "RepositoryList:OpenRequested"
	EventBackRequested           = "RepositoryPage:BackRequested"
	EventIssueOpenRequested      = "RepositoryPage:IssueOpenRequested"
	EventQuitRequested           = "Tui:QuitRequested"
)

type EventBus struct {
	mu          sync.RWMutex
	subscribers map[string][]EventBusEventCallback
}

type EventBusEventCallback func(data interface{})

func (bus *EventBus) Publish(name string, data interface{}) {
	bus.mu.RLock()
	callbacks := append([]EventBusEventCallback(nil), bus.subscribers[name]...)
	bus.mu.RUnlock()

	for _, v := range callbacks {
		v(data)
	}
}

func (bus *EventBus) Subscribe(name string, callback EventBusEventCallback) {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	bus.subscribers[name] = append(bus.subscribers[name], callback)
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]EventBusEventCallback),
	}
}
