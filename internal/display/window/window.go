// Package window shows a rasterised figure in a desktop window.
package window

import (
	"context"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/banshee-data/datplot/internal/figure"
	"github.com/banshee-data/datplot/internal/render"
)

// Window is the on-screen display backend. It blocks until the window is
// closed, Escape or q is pressed, or the context is cancelled.
type Window struct{}

// Show implements display.Backend.
func (Window) Show(ctx context.Context, fig *figure.Figure) error {
	img, err := render.Image(fig)
	if err != nil {
		return err
	}

	title := fig.Title
	if title == "" {
		title = "datplot"
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(30)
	return ebiten.RunGame(&figureGame{ctx: ctx, src: img})
}

type figureGame struct {
	ctx context.Context
	src image.Image
	img *ebiten.Image
}

func (g *figureGame) Update() error {
	if g.ctx.Err() != nil || ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	return nil
}

func (g *figureGame) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = ebiten.NewImageFromImage(g.src)
	}
	screen.DrawImage(g.img, nil)
}

func (g *figureGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.src.Bounds().Dx(), g.src.Bounds().Dy()
}
