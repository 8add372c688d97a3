package library

// Mode tells which of the mutually exclusive entity panels is shown.
type Mode int

const (
	ModeEmpty Mode = iota
	ModeViewing
	ModeEditing
)

func (m Mode) String() string {
	switch m {
	case ModeViewing:
		return "viewing"
	case ModeEditing:
		return "editing"
	default:
		return "empty"
	}
}

// card is the display state of one entity: Empty, Viewing(view) or
// Editing(view, draft). A draft never exists without a view.
type card[V, D any] struct {
	view  *V
	draft *D
}

func (c *card[V, D]) Mode() Mode {
	switch {
	case c.draft != nil:
		return ModeEditing
	case c.view != nil:
		return ModeViewing
	default:
		return ModeEmpty
	}
}

func (c *card[V, D]) clear() {
	c.view, c.draft = nil, nil
}

func (c *card[V, D]) show(v *V) {
	c.view, c.draft = v, nil
}

// edit seeds a fresh draft from the current view. It reports false when
// there is nothing displayed to edit.
func (c *card[V, D]) edit(seed func(V) D) bool {
	if c.view == nil || c.draft != nil {
		return false
	}
	d := seed(*c.view)
	c.draft = &d
	return true
}

func (c *card[V, D]) closeEdit() {
	c.draft = nil
}
