package localization

// Button is a keyboard button after placeholder substitution.
type Button struct {
	Label  string
	Action string
}

// Layout is a keyboard grouped into rows. Width is the row width hint the
// rows were grouped with; the last row may be shorter.
type Layout struct {
	Rows  [][]Button
	Width int
}

// Builder turns a grouped layout into a renderable keyboard object.
type Builder[T any] func(rows [][]Button, width int) T

// KeyboardRenderer resolves keyboard layouts.
type KeyboardRenderer interface {
	Keyboard(key, language string) (*Layout, error)
}

// RenderKeyboard resolves key in language and hands the layout to build.
func RenderKeyboard[T any](r KeyboardRenderer, build Builder[T], key, language string) (T, error) {
	layout, err := r.Keyboard(key, language)
	if err != nil {
		var zero T
		return zero, err
	}
	return build(layout.Rows, layout.Width), nil
}

func groupRows(buttons []Button, width int) [][]Button {
	if width <= 0 {
		width = DefaultRows
	}
	// A row can never hold more than every button.
	width = min(width, max(len(buttons), 1))

	rows := make([][]Button, 0, (len(buttons)+width-1)/width)
	for start := 0; start < len(buttons); start += width {
		end := min(start+width, len(buttons))
		rows = append(rows, buttons[start:end:end])
	}
	return rows
}
