package ecs

import (
	"testing"

	"github.com/phanxgames/wicker"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []wicker.UIEvent
	UIEventType.Subscribe(world, func(w donburi.World, e wicker.UIEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(wicker.UIEvent{
		Kind:   wicker.UIClick,
		Window: "inv",
		NodeID: "slot3",
		Pos:    wicker.Vec2{X: 100, Y: 200},
		Button: wicker.MouseButtonLeft,
	})
	sink.EmitEvent(wicker.UIEvent{Kind: wicker.UIWindowClosed, Window: "inv"})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("received %d events before ProcessEvents", len(received))
	}
	UIEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Kind != wicker.UIClick || e0.NodeID != "slot3" {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.Pos.X != 100 || e0.Pos.Y != 200 {
		t.Errorf("event 0 position: %v", e0.Pos)
	}
	if received[1].Kind != wicker.UIWindowClosed {
		t.Errorf("event 1 kind = %v, want WindowClosed", received[1].Kind)
	}
}

func TestDonburiSink_ManagerForwarding(t *testing.T) {
	world := donburi.NewWorld()

	var kinds []wicker.UIEventKind
	var clicked []string
	UIEventType.Subscribe(world, func(w donburi.World, e wicker.UIEvent) {
		kinds = append(kinds, e.Kind)
		if e.Kind == wicker.UIClick {
			clicked = append(clicked, e.NodeID)
		}
	})

	cfg := wicker.DefaultConfig()
	m := wicker.NewManager(cfg, nil, nil)
	m.SetEventSink(NewDonburiSink(world))

	win := wicker.NewWindow("inv", wicker.Rect{X: 10, Y: 10, Width: 200, Height: 150})
	win.Draggable = false
	btn := wicker.NewButton("ok", "OK")
	btn.SetBounds(wicker.Rect{X: 20, Y: 40, Width: 60, Height: 20})
	win.Root().Register(btn)
	if err := m.Open(win); err != nil {
		t.Fatal(err)
	}

	m.InjectClick(40, 55)
	m.Update(wicker.Input{})
	m.Update(wicker.Input{})
	win.Close()

	events.ProcessAllEvents(world)

	want := []wicker.UIEventKind{wicker.UIWindowOpened, wicker.UIClick, wicker.UIWindowClosed}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kinds[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}
	if len(clicked) != 1 || clicked[0] != "ok" {
		t.Errorf("clicked = %v, want [ok]", clicked)
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	UIEventType.Subscribe(world, func(w donburi.World, e wicker.UIEvent) {
		count1++
	})
	UIEventType.Subscribe(world, func(w donburi.World, e wicker.UIEvent) {
		count2++
	})

	sink.EmitEvent(wicker.UIEvent{Kind: wicker.UIClick})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
