package api

// Command is one page-space vector drawing primitive. Pages are ordered
// sequences of commands; writers replay them in order.
type Command interface {
	command()
}

// StrokeLine draws a single stroked segment.
type StrokeLine struct {
	From  Point
	To    Point
	Color Color
	Width float64
}

// StrokeCircle draws a stroked, unfilled circle.
type StrokeCircle struct {
	Center Point
	Radius float64
	Color  Color
	Width  float64
}

// StrokePolyline draws stroked segments between consecutive points,
// closing back to the first point when Closed is set.
type StrokePolyline struct {
	Points []Point
	Closed bool
	Color  Color
	Width  float64
}

// PlaceText places a text run with its anchor at At. Size is the font
// size in page millimeters.
type PlaceText struct {
	At    Point
	Text  string
	Size  float64
	Color Color
	Bold  bool
}

func (StrokeLine) command()     {}
func (StrokeCircle) command()   {}
func (StrokePolyline) command() {}
func (PlaceText) command()      {}

// Page is one output page: a name for writers and diagnostics, the page
// size in millimeters, and the ordered draw commands.
type Page struct {
	Name     string
	Size     Rect
	Commands []Command
}

// Add appends commands to the page.
func (p *Page) Add(cmds ...Command) {
	p.Commands = append(p.Commands, cmds...)
}

// Document is the paginated output of one conversion. It is built once,
// handed to a writer, and discarded; nothing retains it across calls.
type Document struct {
	Pages []Page
}

// AddPage appends a page and returns the document for chaining.
func (d *Document) AddPage(p Page) *Document {
	d.Pages = append(d.Pages, p)
	return d
}
