package pianoroll

// DefaultValueTipMargin is the vertical gap between the pointer and the tip
const DefaultValueTipMargin = 21.0

// ValueTip is the floating label that follows the pointer during a drag.
// When the tip would overflow the bottom of the canvas it flips above.
type ValueTip struct {
	Margin       float64
	CanvasHeight float64

	visible bool
	text    string
	pos     Point
}

func NewValueTip(margin, canvasHeight float64) *ValueTip {
	return &ValueTip{Margin: margin, CanvasHeight: canvasHeight}
}

func (t *ValueTip) Show() {
	t.visible = true
}

func (t *ValueTip) Hide() {
	t.visible = false
	t.text = ""
}

func (t *ValueTip) Update(text string) {
	t.text = text
}

// SetPointer places the tip relative to the pointer
func (t *ValueTip) SetPointer(p Point) {
	y := p.Y + t.Margin
	if y+t.Margin > t.CanvasHeight {
		y -= 2 * t.Margin
	}
	t.pos = Point{X: p.X, Y: y}
}

func (t *ValueTip) Visible() bool   { return t.visible }
func (t *ValueTip) Text() string    { return t.text }
func (t *ValueTip) Position() Point { return t.pos }
