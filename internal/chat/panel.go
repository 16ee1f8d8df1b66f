package chat

// PanelState is the visibility of the chat panel.
type PanelState string

const (
	Hidden  PanelState = "hidden"
	Visible PanelState = "visible"
)

// Normalize maps unknown or empty values to the initial Hidden state.
func (s PanelState) Normalize() PanelState {
	if s == Visible {
		return Visible
	}
	return Hidden
}

// Toggle flips the panel, as the show control does.
func (s PanelState) Toggle() PanelState {
	if s.Normalize() == Visible {
		return Hidden
	}
	return Visible
}

// Close collapses the panel regardless of its state.
func (s PanelState) Close() PanelState { return Hidden }

// IsVisible reports whether the panel is open.
func (s PanelState) IsVisible() bool { return s.Normalize() == Visible }
