package graphics

import (
	"github.com/hajimehoshi/ebiten/v2"

	"famicore/internal/ppu"
)

// Ebitengine is the windowed backend. It implements ebiten.Game: one
// emulator frame per Update, with the palette-index buffer converted to
// RGBA in Draw.
type Ebitengine struct {
	title string
	scale int
	vsync bool

	src Source
	img *ebiten.Image
	pix []byte
}

// NewEbitengine creates a windowed backend. Scale multiplies the native
// 256x240 resolution for the initial window size.
func NewEbitengine(title string, scale int, vsync bool) *Ebitengine {
	if scale < 1 {
		scale = 1
	}
	return &Ebitengine{title: title, scale: scale, vsync: vsync}
}

func (e *Ebitengine) Name() string { return "ebitengine" }

// Run opens the window and drives the game loop until the user quits.
func (e *Ebitengine) Run(src Source) error {
	e.src = src
	e.img = ebiten.NewImage(ppu.Width, ppu.Height)
	e.pix = make([]byte, ppu.Width*ppu.Height*4)

	ebiten.SetWindowTitle(e.title)
	ebiten.SetWindowSize(ppu.Width*e.scale, ppu.Height*e.scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(e.vsync)

	return ebiten.RunGame(e)
}

// Update implements ebiten.Game.
func (e *Ebitengine) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	e.src.StepFrame()
	return nil
}

// Draw implements ebiten.Game.
func (e *Ebitengine) Draw(screen *ebiten.Image) {
	frame := e.src.FrameBuffer()
	for i, index := range frame {
		c := Color(index)
		e.pix[i*4+0] = c.R
		e.pix[i*4+1] = c.G
		e.pix[i*4+2] = c.B
		e.pix[i*4+3] = c.A
	}
	e.img.WritePixels(e.pix)
	screen.DrawImage(e.img, nil)
}

// Layout implements ebiten.Game. Rendering happens at native resolution;
// ebiten scales it to the window.
func (e *Ebitengine) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ppu.Width, ppu.Height
}
