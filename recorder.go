package wicker

// CommandType identifies the kind of recorded draw command.
type CommandType uint8

const (
	CommandFill     CommandType = iota // FillRect
	CommandStroke                      // StrokeRect
	CommandTexture                     // DrawTexture
	CommandText                        // DrawText
	CommandPushClip                    // PushClip
	CommandPopClip                     // PopClip
)

// RenderCommand is a single draw instruction captured by a Recorder.
type RenderCommand struct {
	Type      CommandType
	Rect      Rect
	Color     Color
	Thickness float64
	Texture   Texture
	Text      string
	TextStyle TextStyle
}

// Recorder is a Surface that records commands instead of drawing. It lets
// hosts batch a frame and lets tests assert on draw output.
type Recorder struct {
	Commands []RenderCommand
	clips    []Rect
}

// Reset drops recorded commands, keeping capacity.
func (r *Recorder) Reset() {
	r.Commands = r.Commands[:0]
	r.clips = r.clips[:0]
}

func (r *Recorder) FillRect(rect Rect, c Color) {
	r.Commands = append(r.Commands, RenderCommand{Type: CommandFill, Rect: rect, Color: c})
}

func (r *Recorder) StrokeRect(rect Rect, c Color, thickness float64) {
	r.Commands = append(r.Commands, RenderCommand{Type: CommandStroke, Rect: rect, Color: c, Thickness: thickness})
}

func (r *Recorder) DrawTexture(rect Rect, tex Texture, tint Color) {
	r.Commands = append(r.Commands, RenderCommand{Type: CommandTexture, Rect: rect, Texture: tex, Color: tint})
}

func (r *Recorder) DrawText(rect Rect, text string, style TextStyle) {
	r.Commands = append(r.Commands, RenderCommand{Type: CommandText, Rect: rect, Text: text, TextStyle: style, Color: style.Color})
}

func (r *Recorder) PushClip(rect Rect) {
	if n := len(r.clips); n > 0 {
		rect = rect.Intersect(r.clips[n-1])
	}
	r.clips = append(r.clips, rect)
	r.Commands = append(r.Commands, RenderCommand{Type: CommandPushClip, Rect: rect})
}

func (r *Recorder) PopClip() {
	if len(r.clips) == 0 {
		return
	}
	r.clips = r.clips[:len(r.clips)-1]
	r.Commands = append(r.Commands, RenderCommand{Type: CommandPopClip})
}

// Clip returns the active clip rectangle and whether one is set.
func (r *Recorder) Clip() (Rect, bool) {
	if len(r.clips) == 0 {
		return Rect{}, false
	}
	return r.clips[len(r.clips)-1], true
}

// Texts returns the strings drawn, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for i := range r.Commands {
		if r.Commands[i].Type == CommandText {
			out = append(out, r.Commands[i].Text)
		}
	}
	return out
}

// Replay issues every recorded command against s.
func (r *Recorder) Replay(s Surface) {
	for i := range r.Commands {
		cmd := &r.Commands[i]
		switch cmd.Type {
		case CommandFill:
			s.FillRect(cmd.Rect, cmd.Color)
		case CommandStroke:
			s.StrokeRect(cmd.Rect, cmd.Color, cmd.Thickness)
		case CommandTexture:
			s.DrawTexture(cmd.Rect, cmd.Texture, cmd.Color)
		case CommandText:
			s.DrawText(cmd.Rect, cmd.Text, cmd.TextStyle)
		case CommandPushClip:
			s.PushClip(cmd.Rect)
		case CommandPopClip:
			s.PopClip()
		}
	}
}
