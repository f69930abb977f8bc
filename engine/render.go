package engine

// ============================================================================
// RENDER MODEL - Scene = flat list of draw commands
// ============================================================================
// Chart functions are pure: state in, Scene out. A painter (see the render
// package) owns diffing and pixels. Commands carry a stable Key so a painter
// can match shapes across two scenes (enter / update / exit).
// ============================================================================

// CommandKind identifies the shape a DrawCommand paints.
type CommandKind string

const (
	KindRect   CommandKind = "rect"
	KindCircle CommandKind = "circle"
	KindLine   CommandKind = "line"
	KindPath   CommandKind = "path"
	KindText   CommandKind = "text"
	KindClip   CommandKind = "clip"   // starts clipping to X, Y, Width, Height
	KindUnclip CommandKind = "unclip" // ends the innermost clip
)

// PathOp is a single path instruction.
type PathOp string

const (
	OpMove  PathOp = "M"
	OpLine  PathOp = "L"
	OpCubic PathOp = "C" // Points: control 1, control 2, end
	OpClose PathOp = "Z"
)

// PathSegment is one instruction of a path, in absolute scene coordinates.
type PathSegment struct {
	Op     PathOp  `json:"op"`
	Points []Point `json:"points,omitempty"`
}

// Style holds paint attributes. Opacities are always explicit: 0 means invisible.
type Style struct {
	Fill          string  `json:"fill,omitempty"`
	FillOpacity   float64 `json:"fillOpacity"`
	Stroke        string  `json:"stroke,omitempty"`
	StrokeWidth   float64 `json:"strokeWidth,omitempty"`
	StrokeOpacity float64 `json:"strokeOpacity"`
	Opacity       float64 `json:"opacity"`
	FontSize      float64 `json:"fontSize,omitempty"`
	Anchor        string  `json:"anchor,omitempty"` // "start", "middle", "end"
}

// DrawCommand is one shape in a Scene.
type DrawCommand struct {
	Kind  CommandKind `json:"kind"`
	Class string      `json:"class,omitempty"`
	Key   string      `json:"key,omitempty"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	X2     float64 `json:"x2,omitempty"`
	Y2     float64 `json:"y2,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	R      float64 `json:"r,omitempty"`

	Path   []PathSegment `json:"path,omitempty"`
	Text   string        `json:"text,omitempty"`
	Rotate float64       `json:"rotate,omitempty"` // degrees around (X, Y)

	Style Style `json:"style"`
}

// Scene is the complete render output of one chart.
type Scene struct {
	Title    string        `json:"title,omitempty"`
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	Message  string        `json:"message,omitempty"` // set when there is nothing to chart
	Commands []DrawCommand `json:"commands"`
}

// Class returns the commands with the given class, in paint order.
func (s *Scene) Class(class string) []DrawCommand {
	var out []DrawCommand
	for _, c := range s.Commands {
		if c.Class == class {
			out = append(out, c)
		}
	}
	return out
}

// MessageScene is a placeholder scene that only shows a message.
// Used when a chart cannot be drawn, e.g. on an empty dataset.
func MessageScene(width, height float64, msg string) *Scene {
	s := &Scene{Width: width, Height: height, Message: msg}
	b := newBuilder(s, 0, 0)
	b.text("message", "message", width/2, height/2, msg, textStyle("#737373", 14, "middle"))
	return s
}

// ============================================================================
// STYLE HELPERS
// ============================================================================

func fillStyle(fill string, opacity float64) Style {
	return Style{Fill: fill, FillOpacity: opacity, StrokeOpacity: 1, Opacity: 1}
}

func strokeStyle(stroke string, width float64) Style {
	return Style{Stroke: stroke, StrokeWidth: width, StrokeOpacity: 1, FillOpacity: 0, Opacity: 1}
}

func textStyle(fill string, size float64, anchor string) Style {
	return Style{Fill: fill, FillOpacity: 1, StrokeOpacity: 1, Opacity: 1, FontSize: size, Anchor: anchor}
}

// ============================================================================
// BUILDER - appends commands translated by a fixed origin
// ============================================================================
// Mirrors the "g transform=translate(margin)" wrapper of a hand-written SVG.

type builder struct {
	scene  *Scene
	dx, dy float64
}

func newBuilder(scene *Scene, dx, dy float64) *builder {
	return &builder{scene: scene, dx: dx, dy: dy}
}

func (b *builder) push(c DrawCommand) {
	b.scene.Commands = append(b.scene.Commands, c)
}

func (b *builder) rect(class, key string, x, y, w, h float64, st Style) {
	b.push(DrawCommand{Kind: KindRect, Class: class, Key: key, X: x + b.dx, Y: y + b.dy, Width: w, Height: h, Style: st})
}

func (b *builder) circle(class, key string, cx, cy, r float64, st Style) {
	b.push(DrawCommand{Kind: KindCircle, Class: class, Key: key, X: cx + b.dx, Y: cy + b.dy, R: r, Style: st})
}

func (b *builder) line(class, key string, x1, y1, x2, y2 float64, st Style) {
	b.push(DrawCommand{Kind: KindLine, Class: class, Key: key,
		X: x1 + b.dx, Y: y1 + b.dy, X2: x2 + b.dx, Y2: y2 + b.dy, Style: st})
}

func (b *builder) text(class, key string, x, y float64, s string, st Style) {
	b.push(DrawCommand{Kind: KindText, Class: class, Key: key, X: x + b.dx, Y: y + b.dy, Text: s, Style: st})
}

func (b *builder) rotatedText(class, key string, x, y, deg float64, s string, st Style) {
	b.push(DrawCommand{Kind: KindText, Class: class, Key: key, X: x + b.dx, Y: y + b.dy, Rotate: deg, Text: s, Style: st})
}

func (b *builder) path(class, key string, segs []PathSegment, st Style) {
	moved := make([]PathSegment, len(segs))
	off := Point{X: b.dx, Y: b.dy}
	for i, seg := range segs {
		moved[i] = PathSegment{Op: seg.Op}
		if len(seg.Points) > 0 {
			moved[i].Points = make([]Point, len(seg.Points))
			for j, p := range seg.Points {
				moved[i].Points[j] = p.Add(off)
			}
		}
	}
	b.push(DrawCommand{Kind: KindPath, Class: class, Key: key, Path: moved, Style: st})
}

func (b *builder) clip(x, y, w, h float64) {
	b.push(DrawCommand{Kind: KindClip, Class: "clip", X: x + b.dx, Y: y + b.dy, Width: w, Height: h})
}

func (b *builder) unclip() {
	b.push(DrawCommand{Kind: KindUnclip, Class: "clip"})
}
