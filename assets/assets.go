// Package assets loads images, samples and songs relative to a root
// directory.
package assets

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/erisdev/gosu/util"
	"github.com/erisdev/gosu/window"
)

var (
	ErrNoAssetRoot  = errors.New("assets: no asset root configured")
	ErrZeroTileSize = errors.New("assets: tile size cannot be zero")
)

// Host is the part of a window host that loads media.
type Host interface {
	LoadImage(path string) (window.Image, error)
	LoadSample(path string) (window.Sample, error)
	LoadSong(path string) (window.Song, error)
}

// Loader resolves asset names against its root. A nil *Loader is valid and
// fails every load with ErrNoAssetRoot.
type Loader struct {
	root    string
	host    Host
	current *Song
}

// NewLoader makes root absolute against the working directory.
func NewLoader(root string, host Host) (*Loader, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("assets: resolving root %s: %w", root, err)
	}
	util.Trace("assets: root %s", abs)
	return &Loader{root: abs, host: host}, nil
}

func (l *Loader) Root() string {
	if l == nil {
		return ""
	}
	return l.root
}

func (l *Loader) Path(name string) (string, error) {
	if l == nil {
		return "", ErrNoAssetRoot
	}
	return filepath.Join(l.root, name), nil
}

func (l *Loader) Image(name string) (window.Image, error) {
	path, err := l.Path(name)
	if err != nil {
		return nil, err
	}
	return l.host.LoadImage(path)
}

// Tiles cuts an image into equal tiles in row-major order. A positive
// tileWidth or tileHeight is a size in pixels; a negative one is the number
// of columns or rows to cut into. Partial tiles at the right and bottom
// edges are dropped.
func (l *Loader) Tiles(name string, tileWidth, tileHeight int) ([]window.Image, error) {
	if tileWidth == 0 || tileHeight == 0 {
		return nil, ErrZeroTileSize
	}
	img, err := l.Image(name)
	if err != nil {
		return nil, err
	}

	rects := tileRects(img.Bounds().Size(), tileWidth, tileHeight)
	tiles := make([]window.Image, 0, len(rects))
	for _, r := range rects {
		tiles = append(tiles, img.SubImage(r))
	}
	return tiles, nil
}

func tileRects(size image.Point, tileWidth, tileHeight int) []image.Rectangle {
	if tileWidth < 0 {
		tileWidth = size.X / -tileWidth
	}
	if tileHeight < 0 {
		tileHeight = size.Y / -tileHeight
	}
	if tileWidth <= 0 || tileHeight <= 0 {
		return nil
	}

	var rects []image.Rectangle
	for y := 0; y+tileHeight <= size.Y; y += tileHeight {
		for x := 0; x+tileWidth <= size.X; x += tileWidth {
			rects = append(rects, image.Rect(x, y, x+tileWidth, y+tileHeight))
		}
	}
	return rects
}

func (l *Loader) Sample(name string) (window.Sample, error) {
	path, err := l.Path(name)
	if err != nil {
		return nil, err
	}
	return l.host.LoadSample(path)
}

func (l *Loader) Song(name string) (*Song, error) {
	path, err := l.Path(name)
	if err != nil {
		return nil, err
	}
	s, err := l.host.LoadSong(path)
	if err != nil {
		return nil, err
	}
	return &Song{loader: l, song: s}, nil
}

// CurrentSong is the song playing or paused most recently, or nil.
func (l *Loader) CurrentSong() *Song {
	if l == nil || l.current == nil || !l.current.active() {
		return nil
	}
	return l.current
}

// Song keeps at most one song per loader playing: playing one stops the
// one before it.
type Song struct {
	loader *Loader
	song   window.Song
	paused bool
}

func (s *Song) Play(looping bool) {
	if cur := s.loader.current; cur != nil && cur != s {
		cur.Stop()
	}
	s.loader.current = s
	s.paused = false
	s.song.Play(looping)
}

func (s *Song) Pause() {
	if s.loader.current != s {
		return
	}
	s.paused = true
	s.song.Pause()
}

func (s *Song) Stop() {
	s.paused = false
	s.song.Stop()
	if s.loader.current == s {
		s.loader.current = nil
	}
}

func (s *Song) Playing() bool { return s.song.Playing() }
func (s *Song) Paused() bool  { return s.loader.current == s && s.paused }

func (s *Song) SetVolume(volume float64) {
	s.song.SetVolume(volume)
}

func (s *Song) active() bool {
	return s.paused || s.song.Playing()
}
