package window

import (
	"image"
	"image/color"
	"testing"
)

func TestCanvasFlushOrdersByZ(t *testing.T) {
	host := newFakeHost()
	c := NewCanvas(host)

	c.DrawRect(0, 0, 1, 1, Z(2))
	c.DrawRect(0, 0, 2, 2, Z(0))
	c.DrawRect(0, 0, 3, 3, Z(2))
	c.DrawRect(0, 0, 4, 4, Z(-1))
	c.Flush()

	// identified by the right edge of each rect
	expected := []float32{4, 2, 1, 3}
	if len(host.draws) != len(expected) {
		t.Fatalf("draw calls: (got: %d) (expected: %d)", len(host.draws), len(expected))
	}
	for i, d := range host.draws {
		if d.vertices[1].X != expected[i] {
			t.Fatalf("draw %d: (got: right edge %v) (expected: %v)", i, d.vertices[1].X, expected[i])
		}
	}

	host.draws = nil
	c.Flush()
	if len(host.draws) != 0 {
		t.Fatalf("second flush drew %d times", len(host.draws))
	}
}

func TestCanvasTransformStack(t *testing.T) {
	host := newFakeHost()
	c := NewCanvas(host)

	c.Translate(10, 20, func() {
		c.Scale(2, 2, 0, 0, func() {
			c.DrawTriangle(1, 1, 2, 1, 1, 2)
		})
		c.DrawTriangle(1, 1, 2, 1, 1, 2)
	})
	c.DrawTriangle(1, 1, 2, 1, 1, 2)
	c.Flush()

	expected := [][2]float32{{12, 22}, {11, 21}, {1, 1}}
	for i, d := range host.draws {
		got := [2]float32{d.vertices[0].X, d.vertices[0].Y}
		if got != expected[i] {
			t.Fatalf("draw %d: (got: %v) (expected: %v)", i, got, expected[i])
		}
	}
}

func TestCanvasRotateAroundPoint(t *testing.T) {
	host := newFakeHost()
	c := NewCanvas(host)

	c.Rotate(90, 10, 10, func() {
		c.DrawTriangle(20, 10, 10, 10, 10, 20)
	})
	c.Flush()

	v := host.draws[0].vertices[0]
	if !near(float64(v.X), 10) || !near(float64(v.Y), 20) {
		t.Fatalf("rotate: (got: %v, %v) (expected: 10, 20)", v.X, v.Y)
	}
}

func TestCanvasClipTo(t *testing.T) {
	host := newFakeHost()
	c := NewCanvas(host)

	c.DrawRect(0, 0, 1, 1)
	c.ClipTo(10, 10, 100, 100, func() {
		c.DrawRect(0, 0, 1, 1)
		c.ClipTo(50, 0, 100, 80, func() {
			c.DrawRect(0, 0, 1, 1)
		})
		c.Translate(500, 500, func() {
			c.DrawRect(0, 0, 1, 1)
		})
	})
	c.Flush()

	outer := image.Rect(10, 10, 110, 110)
	inner := image.Rect(50, 10, 110, 80)
	expected := []*image.Rectangle{nil, &outer, &inner, &outer}
	for i, d := range host.draws {
		switch {
		case expected[i] == nil && d.clip != nil:
			t.Fatalf("draw %d: (got: clip %v) (expected: no clip)", i, *d.clip)
		case expected[i] != nil && (d.clip == nil || *d.clip != *expected[i]):
			t.Fatalf("draw %d: (got: clip %v) (expected: %v)", i, d.clip, *expected[i])
		}
	}
}

func TestCanvasColors(t *testing.T) {
	host := newFakeHost()
	c := NewCanvas(host)
	red := color.NRGBA{0xff, 0, 0, 0xff}
	blue := color.NRGBA{0, 0, 0xff, 0x80}

	c.DrawQuad(0, 0, 1, 0, 1, 1, 0, 1)
	c.DrawQuad(0, 0, 1, 0, 1, 1, 0, 1, Color(red))
	c.DrawQuad(0, 0, 1, 0, 1, 1, 0, 1, Color(red), VertexColors(blue, blue))
	c.Flush()

	// triangles are v1 v2 v3 and v1 v3 v4
	table := []struct {
		draw     int
		expected [6]color.NRGBA
	}{
		{0, [6]color.NRGBA{white, white, white, white, white, white}},
		{1, [6]color.NRGBA{red, red, red, red, red, red}},
		{2, [6]color.NRGBA{blue, blue, red, blue, red, red}},
	}

	for _, entry := range table {
		vs := host.draws[entry.draw].vertices
		for i, v := range vs {
			if v.Color != entry.expected[i] {
				t.Fatalf("draw %d vertex %d: (got: %v) (expected: %v)", entry.draw, i, v.Color, entry.expected[i])
			}
		}
	}
}

func TestCanvasDrawLine(t *testing.T) {
	host := newFakeHost()
	c := NewCanvas(host)

	c.DrawLine(0, 0, 10, 0, Mode(BlendAdd))
	c.DrawLine(5, 5, 5, 5)
	c.Flush()

	if len(host.draws) != 1 {
		t.Fatalf("draw calls: (got: %d) (expected: 1)", len(host.draws))
	}
	d := host.draws[0]
	if len(d.vertices) != 6 {
		t.Fatalf("line vertices: (got: %d) (expected: 6)", len(d.vertices))
	}
	if d.mode != BlendAdd {
		t.Fatalf("line mode: (got: %v) (expected: %v)", d.mode, BlendAdd)
	}
	for _, v := range d.vertices {
		if v.Y != 0.5 && v.Y != -0.5 {
			t.Fatalf("line vertex %v is not half a pixel off the line", v)
		}
	}
}

func TestCanvasDrawImage(t *testing.T) {
	host := newFakeHost()
	c := NewCanvas(host)
	sheet := &fakeImage{image.Rect(0, 0, 64, 64)}
	tile := sheet.SubImage(image.Rect(16, 32, 32, 48))

	c.DrawImage(tile, 100, 200)
	c.Flush()

	d := host.draws[0]
	if d.img != tile {
		t.Fatalf("draw image: (got: %v) (expected: %v)", d.img, tile)
	}
	tl, br := d.vertices[0], d.vertices[2]
	if tl.X != 100 || tl.Y != 200 || br.X != 116 || br.Y != 216 {
		t.Fatalf("image corners: (got: %v,%v %v,%v) (expected: 100,200 116,216)", tl.X, tl.Y, br.X, br.Y)
	}
	if tl.U != 16 || tl.V != 32 || br.U != 32 || br.V != 48 {
		t.Fatalf("image texcoords: (got: %v,%v %v,%v) (expected: 16,32 32,48)", tl.U, tl.V, br.U, br.V)
	}
}

func TestCanvasSize(t *testing.T) {
	c := NewCanvas(newFakeHost())
	if c.Width() != 640 || c.Height() != 480 {
		t.Fatalf("size: (got: %dx%d) (expected: 640x480)", c.Width(), c.Height())
	}
}
