package zen

import (
	"fmt"

	"github.com/erisdev/gosu/assets"
	"github.com/erisdev/gosu/window"
)

// Assets enables the asset helpers, resolving names against root. Before a
// window exists the root is only remembered.
func (g *Game) Assets(root string) error {
	if root == "" {
		return fmt.Errorf("zen: empty asset root")
	}
	g.assetRoot = root
	if g.adapter == nil {
		return nil
	}
	return g.openAssets(g.adapter.Host())
}

var newLoader = assets.NewLoader

func (g *Game) openAssets(host assets.Host) error {
	loader, err := newLoader(g.assetRoot, host)
	if err != nil {
		return err
	}
	g.assets = loader
	return nil
}

func (g *Game) loader() (*assets.Loader, error) {
	if g.assetRoot != "" && g.assets == nil {
		return nil, ErrNoWindow
	}
	return g.assets, nil
}

func (g *Game) AssetPath(name string) (string, error) {
	l, err := g.loader()
	if err != nil {
		return "", err
	}
	return l.Path(name)
}

func (g *Game) Image(name string) (window.Image, error) {
	l, err := g.loader()
	if err != nil {
		return nil, err
	}
	return l.Image(name)
}

// Tiles cuts an image asset into tiles; see assets.Loader.Tiles.
func (g *Game) Tiles(name string, tileWidth, tileHeight int) ([]window.Image, error) {
	l, err := g.loader()
	if err != nil {
		return nil, err
	}
	return l.Tiles(name, tileWidth, tileHeight)
}

func (g *Game) Sample(name string) (window.Sample, error) {
	l, err := g.loader()
	if err != nil {
		return nil, err
	}
	return l.Sample(name)
}

func (g *Game) Song(name string) (*assets.Song, error) {
	l, err := g.loader()
	if err != nil {
		return nil, err
	}
	return l.Song(name)
}
