package core

// Input tracks the last known pointer and key state.
type Input struct {
	keys           map[VirtualKey]bool
	buttons        [2]bool
	mouseX, mouseY float64
	mods           Mod
}

func NewInput() *Input { return &Input{keys: map[VirtualKey]bool{}} }

func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventKey:
		in.keys[e.Key] = e.Down
		in.mods = e.Mods
	case EventMouseMove:
		in.mouseX, in.mouseY = e.X, e.Y
	case EventMouseButton:
		if e.Button >= 0 && e.Button < len(in.buttons) {
			in.buttons[e.Button] = e.Down
		}
		in.mods = e.Mods
	}
}

func (in *Input) IsKeyDown(k VirtualKey) bool { return in.keys[k] }
func (in *Input) IsButtonDown(button int) bool {
	return button >= 0 && button < len(in.buttons) && in.buttons[button]
}
func (in *Input) Mouse() (float64, float64) { return in.mouseX, in.mouseY }
func (in *Input) Mods() Mod                 { return in.mods }
