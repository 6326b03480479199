package window

import (
	"image"
	"image/color"
	"math"
	"sort"
)

var white = color.NRGBA{0xff, 0xff, 0xff, 0xff}

type drawOptions struct {
	z      float64
	mode   BlendMode
	colors [4]color.NRGBA
}

type DrawOption func(*drawOptions)

// Z sets the draw's depth. Higher z is drawn later, i.e. on top.
func Z(z float64) DrawOption {
	return func(o *drawOptions) { o.z = z }
}

func Mode(mode BlendMode) DrawOption {
	return func(o *drawOptions) { o.mode = mode }
}

// Color sets the color of every vertex.
func Color(c color.Color) DrawOption {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return func(o *drawOptions) {
		for i := range o.colors {
			o.colors[i] = nc
		}
	}
}

// VertexColors sets vertex colors in order, leaving the rest as they are.
// Extra colors are ignored.
func VertexColors(cs ...color.Color) DrawOption {
	return func(o *drawOptions) {
		for i, c := range cs {
			if i >= len(o.colors) {
				break
			}
			o.colors[i] = color.NRGBAModel.Convert(c).(color.NRGBA)
		}
	}
}

func newDrawOptions(opts []DrawOption) drawOptions {
	o := drawOptions{colors: [4]color.NRGBA{white, white, white, white}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type drawOp struct {
	z        float64
	vertices []Vertex
	img      Image
	mode     BlendMode
	clip     *image.Rectangle
}

// Canvas queues draws under a transform stack and a clip stack and hands them
// to the host in z order when flushed.
type Canvas struct {
	host       Host
	transforms []Affine
	clips      []image.Rectangle
	queue      []drawOp
}

func NewCanvas(host Host) *Canvas {
	return &Canvas{
		host:       host,
		transforms: []Affine{Identity()},
	}
}

func (c *Canvas) Width() int {
	w, _ := c.host.Size()
	return w
}

func (c *Canvas) Height() int {
	_, h := c.host.Size()
	return h
}

func (c *Canvas) current() Affine {
	return c.transforms[len(c.transforms)-1]
}

// Transform applies m to everything drawn by fn, inside any transform
// already in effect.
func (c *Canvas) Transform(m Affine, fn func()) {
	c.transforms = append(c.transforms, c.current().Mul(m))
	defer func() { c.transforms = c.transforms[:len(c.transforms)-1] }()
	fn()
}

func (c *Canvas) Translate(x, y float64, fn func()) {
	c.Transform(Translation(x, y), fn)
}

// Rotate turns clockwise by angle degrees around (aroundX, aroundY).
func (c *Canvas) Rotate(angle, aroundX, aroundY float64, fn func()) {
	c.Transform(Rotation(angle, aroundX, aroundY), fn)
}

func (c *Canvas) Scale(scaleX, scaleY, aroundX, aroundY float64, fn func()) {
	c.Transform(Scaling(scaleX, scaleY, aroundX, aroundY), fn)
}

// ClipTo restricts everything drawn by fn to the given window rectangle.
// Nested clips intersect. Clip rectangles ignore the transform stack.
func (c *Canvas) ClipTo(x, y, width, height int, fn func()) {
	r := image.Rect(x, y, x+width, y+height)
	if n := len(c.clips); n > 0 {
		r = r.Intersect(c.clips[n-1])
	}
	c.clips = append(c.clips, r)
	defer func() { c.clips = c.clips[:len(c.clips)-1] }()
	fn()
}

func (c *Canvas) clip() *image.Rectangle {
	if len(c.clips) == 0 {
		return nil
	}
	r := c.clips[len(c.clips)-1]
	return &r
}

func (c *Canvas) vertex(x, y float64, col color.NRGBA) Vertex {
	tx, ty := c.current().Apply(x, y)
	return Vertex{X: float32(tx), Y: float32(ty), Color: col}
}

func (c *Canvas) enqueue(o drawOptions, img Image, vs ...Vertex) {
	c.queue = append(c.queue, drawOp{
		z:        o.z,
		vertices: vs,
		img:      img,
		mode:     o.mode,
		clip:     c.clip(),
	})
}

// DrawLine draws a one pixel wide line. The first vertex color applies to
// the start point, the second to the end point.
func (c *Canvas) DrawLine(x1, y1, x2, y2 float64, opts ...DrawOption) {
	o := newDrawOptions(opts)
	p1 := c.vertex(x1, y1, o.colors[0])
	p2 := c.vertex(x2, y2, o.colors[1])

	dx, dy := float64(p2.X-p1.X), float64(p2.Y-p1.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx, ny := float32(-dy/length/2), float32(dx/length/2)

	a := Vertex{X: p1.X + nx, Y: p1.Y + ny, Color: p1.Color}
	b := Vertex{X: p1.X - nx, Y: p1.Y - ny, Color: p1.Color}
	d := Vertex{X: p2.X + nx, Y: p2.Y + ny, Color: p2.Color}
	e := Vertex{X: p2.X - nx, Y: p2.Y - ny, Color: p2.Color}
	c.enqueue(o, nil, a, b, d, b, e, d)
}

func (c *Canvas) DrawTriangle(x1, y1, x2, y2, x3, y3 float64, opts ...DrawOption) {
	o := newDrawOptions(opts)
	c.enqueue(o, nil,
		c.vertex(x1, y1, o.colors[0]),
		c.vertex(x2, y2, o.colors[1]),
		c.vertex(x3, y3, o.colors[2]),
	)
}

// DrawQuad draws the quad whose corners are given in order around its edge,
// as two triangles sharing the first and third corner.
func (c *Canvas) DrawQuad(x1, y1, x2, y2, x3, y3, x4, y4 float64, opts ...DrawOption) {
	o := newDrawOptions(opts)
	v1 := c.vertex(x1, y1, o.colors[0])
	v2 := c.vertex(x2, y2, o.colors[1])
	v3 := c.vertex(x3, y3, o.colors[2])
	v4 := c.vertex(x4, y4, o.colors[3])
	c.enqueue(o, nil, v1, v2, v3, v1, v3, v4)
}

// DrawRect draws an axis-aligned rectangle given by its edges. Vertex colors
// go clockwise from the top left corner.
func (c *Canvas) DrawRect(left, top, right, bottom float64, opts ...DrawOption) {
	c.DrawQuad(left, top, right, top, right, bottom, left, bottom, opts...)
}

// DrawImage draws img at its natural size with its top left corner at (x, y).
// Vertex colors tint it clockwise from the top left corner.
func (c *Canvas) DrawImage(img Image, x, y float64, opts ...DrawOption) {
	o := newDrawOptions(opts)
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	u0, v0, u1, v1 := float32(b.Min.X), float32(b.Min.Y), float32(b.Max.X), float32(b.Max.Y)

	tl := c.vertex(x, y, o.colors[0])
	tl.U, tl.V = u0, v0
	tr := c.vertex(x+w, y, o.colors[1])
	tr.U, tr.V = u1, v0
	br := c.vertex(x+w, y+h, o.colors[2])
	br.U, br.V = u1, v1
	bl := c.vertex(x, y+h, o.colors[3])
	bl.U, bl.V = u0, v1
	c.enqueue(o, img, tl, tr, br, tl, br, bl)
}

// Flush hands every queued draw to the host, lowest z first. Draws with the
// same z keep the order they were issued in.
func (c *Canvas) Flush() {
	sort.SliceStable(c.queue, func(i, j int) bool { return c.queue[i].z < c.queue[j].z })
	for _, op := range c.queue {
		c.host.DrawTriangles(op.vertices, op.img, op.mode, op.clip)
	}
	c.queue = c.queue[:0]
}
