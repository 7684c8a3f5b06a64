package ecs

import (
	"github.com/phanxgames/wicker"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// UIEventType is the Donburi event type for wicker UI events.
var UIEventType = events.NewEventType[wicker.UIEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on UIEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) wicker.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event wicker.UIEvent) {
	UIEventType.Publish(s.world, event)
}
