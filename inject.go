package wicker

// syntheticInput is one frame of injected pointer state. Screen coordinates
// are used, identical to real mouse input.
type syntheticInput struct {
	mouse    Vec2
	button   MouseButton
	pressed  bool // button is down after this frame
	wheel    float64
	modifier KeyModifiers
}

// InjectPress queues a left-button press at the given screen position. The
// event is consumed by the next Update.
func (m *Manager) InjectPress(x, y float64) {
	m.injectQueue = append(m.injectQueue, syntheticInput{mouse: Vec2{x, y}, pressed: true})
}

// InjectMove queues a pointer move with the left button held. Use it between
// InjectPress and InjectRelease to simulate a drag.
func (m *Manager) InjectMove(x, y float64) {
	m.injectQueue = append(m.injectQueue, syntheticInput{mouse: Vec2{x, y}, pressed: true})
}

// InjectRelease queues a left-button release at the given screen position.
func (m *Manager) InjectRelease(x, y float64) {
	m.injectQueue = append(m.injectQueue, syntheticInput{mouse: Vec2{x, y}})
}

// InjectClick queues a press followed by a release. Consumes two frames.
func (m *Manager) InjectClick(x, y float64) {
	m.InjectPress(x, y)
	m.InjectRelease(x, y)
}

// InjectRightClick queues a right-button press and release. Consumes two frames.
func (m *Manager) InjectRightClick(x, y float64) {
	m.injectQueue = append(m.injectQueue,
		syntheticInput{mouse: Vec2{x, y}, pressed: true, button: MouseButtonRight},
		syntheticInput{mouse: Vec2{x, y}, button: MouseButtonRight},
	)
}

// InjectWheel queues a wheel movement at the given screen position.
func (m *Manager) InjectWheel(x, y, delta float64) {
	m.injectQueue = append(m.injectQueue, syntheticInput{mouse: Vec2{x, y}, wheel: delta})
}

// InjectDrag queues a full drag sequence: press at from, frames-2 linearly
// interpolated moves, and release at to. Minimum frames is 2.
func (m *Manager) InjectDrag(from, to Vec2, frames int) {
	if frames < 2 {
		frames = 2
	}
	m.InjectPress(from.X, from.Y)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		m.InjectMove(from.X+(to.X-from.X)*t, from.Y+(to.Y-from.Y)*t)
	}
	m.InjectRelease(to.X, to.Y)
}

// Pending returns the number of queued injected frames.
func (m *Manager) Pending() int { return len(m.injectQueue) }

// applyInjected pops one queued frame and overwrites in's pointer state
// with it. Edges are derived from the previous injected frame.
func (m *Manager) applyInjected(in *Input) {
	if len(m.injectQueue) == 0 {
		return
	}
	evt := m.injectQueue[0]
	copy(m.injectQueue, m.injectQueue[1:])
	m.injectQueue = m.injectQueue[:len(m.injectQueue)-1]

	in.Mouse = evt.mouse
	in.Wheel = evt.wheel
	in.Left, in.Right, in.Middle = ButtonState{}, ButtonState{}, ButtonState{}
	if evt.wheel != 0 {
		return
	}
	bs := ButtonState{
		Pressed:  evt.pressed && !m.held,
		Released: !evt.pressed && m.held,
		Held:     evt.pressed,
	}
	m.held = evt.pressed
	switch evt.button {
	case MouseButtonRight:
		in.Right = bs
	case MouseButtonMiddle:
		in.Middle = bs
	default:
		in.Left = bs
	}
}
