package game

import (
	"errors"
	"fmt"
	"image"
	"log"
	"math/rand/v2"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/stripe-glitch/internal/config"
	"github.com/iburimskiy/stripe-glitch/internal/sketch"
	"github.com/iburimskiy/stripe-glitch/internal/sound"
	"github.com/iburimskiy/stripe-glitch/internal/ui"
)

type game struct {
	cfg    *config.Config
	sketch *sketch.Sketch
	canvas *surface

	// window size reported by Layout, and the size the sketch was built for
	outW, outH    int
	width, height int

	// what Draw puts on screen once the drawing is finished
	phase        sketch.Phase
	shown        image.Image
	shownImg     *ebiten.Image
	originalImg  *ebiten.Image
	disturbedImg *ebiten.Image
	frames       int

	// button
	button        ui.Rect
	buttonFaces   map[ui.ButtonState]*ebiten.Image
	buttonHovered bool
	buttonPressed bool

	// input edge detection
	prevKey map[ebiten.Key]bool

	crackle *sound.Crackle

	// state
	paused   bool
	showHelp bool
	lastErr  error
}

func NewGame(cfg *config.Config, crackle *sound.Crackle) *game {
	return &game{
		cfg:      cfg,
		sketch:   sketch.New(cfg),
		prevKey:  map[ebiten.Key]bool{},
		crackle:  crackle,
		showHelp: cfg.Window.ShowHelp,
	}
}

func (g *game) Update() error {
	if g.outW <= 0 || g.outH <= 0 {
		return nil
	}
	if g.outW != g.width || g.outH != g.height {
		g.regenerate(g.outW, g.outH)
	}

	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	// Handle button interactions
	mouseX, mouseY := ebiten.CursorPosition()
	g.buttonHovered = g.button.Contains(float64(mouseX), float64(mouseY))

	if g.buttonHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.buttonPressed = true
	}
	released := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	if clicked(g.buttonPressed, g.buttonHovered, released) {
		g.regenerate(g.width, g.height)
	}
	if released {
		g.buttonPressed = false
	}

	if justPressed(ebiten.KeyR) {
		g.regenerate(g.width, g.height)
	}
	if justPressed(ebiten.KeyS) {
		if err := g.saveDialog(); err != nil {
			g.lastErr = err
			log.Printf("save failed: %v", err)
		}
	}
	if justPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if justPressed(ebiten.KeyH) {
		g.showHelp = !g.showHelp
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if !g.paused {
		g.step()
	}
	return nil
}

func (g *game) step() {
	g.frames++
	f := g.sketch.Step()
	g.phase = f.Phase
	if f.Image == nil || f.Image == g.shown {
		return
	}

	g.shown = f.Image
	if f.Image == g.sketch.Original() {
		if g.originalImg == nil {
			g.originalImg = ebiten.NewImageFromImage(f.Image)
		}
		g.shownImg = g.originalImg
	} else {
		if g.disturbedImg != nil {
			g.disturbedImg.Deallocate()
		}
		g.disturbedImg = ebiten.NewImageFromImage(f.Image)
		g.shownImg = g.disturbedImg
	}

	if f.Phase == sketch.Fire && g.crackle != nil {
		g.crackle.Trigger(framesToDuration(g.cfg.Glitch.Duration, ebiten.TPS()))
	}
}

// regenerate discards every stripe and snapshot and starts a new drawing at
// the given size.
func (g *game) regenerate(width, height int) {
	seed := g.cfg.Seed
	if g.width != 0 || seed == 0 {
		seed = g.sketch.NextSeed()
	}

	if g.canvas != nil {
		g.canvas.deallocate()
	}
	for _, img := range []*ebiten.Image{g.originalImg, g.disturbedImg} {
		if img != nil {
			img.Deallocate()
		}
	}
	g.originalImg, g.disturbedImg = nil, nil
	g.canvas = newSurface(width, height)
	g.width, g.height = width, height
	g.sketch.Reset(g.canvas, width, height, seed)

	g.shown = nil
	g.shownImg = nil
	g.phase = sketch.Drawing
	g.frames = 0
	g.lastErr = nil

	g.layoutButton()
	log.Printf("regenerated %dx%d, seed %d", width, height, seed)
}

func (g *game) layoutButton() {
	g.button = ui.ButtonBounds(g.width, g.height)
	faces := make(map[ui.ButtonState]*ebiten.Image, 3)
	for _, st := range []ui.ButtonState{ui.Normal, ui.Hovered, ui.Pressed} {
		img, err := ui.ButtonFace(g.button, st)
		if err != nil {
			// tiny windows get no button; R still regenerates
			log.Printf("button: %v", err)
			g.buttonFaces = nil
			return
		}
		faces[st] = ebiten.NewImageFromImage(img)
	}
	for _, img := range g.buttonFaces {
		img.Deallocate()
	}
	g.buttonFaces = faces
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.canvas == nil {
		return
	}

	if g.phase == sketch.Drawing || g.shownImg == nil {
		screen.DrawImage(g.canvas.img, nil)
	} else {
		screen.DrawImage(g.shownImg, nil)
	}

	g.drawButton(screen)

	if g.showHelp {
		done, total := g.sketch.Progress()
		status := statusLine(g.phase, done, total, g.sketch.Seed(), framesToDuration(g.frames, ebiten.TPS()), g.paused)
		if g.lastErr != nil {
			status += "\nError: " + g.lastErr.Error()
		}
		ebitenutil.DebugPrintAt(screen, status, 12, 12)
	}
}

func (g *game) drawButton(screen *ebiten.Image) {
	state := ui.Normal
	if g.buttonPressed {
		state = ui.Pressed
	} else if g.buttonHovered {
		state = ui.Hovered
	}
	face, ok := g.buttonFaces[state]
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(g.button.X, g.button.Y)
	screen.DrawImage(face, op)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.outW, g.outH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// current returns the image on screen, without the button.
func (g *game) current() image.Image {
	if g.phase == sketch.Drawing || g.shown == nil {
		return g.canvas.Snapshot()
	}
	return g.shown
}

func (g *game) saveDialog() error {
	if g.canvas == nil {
		return nil
	}
	img := g.current()

	filename, err := zenity.SelectFileSave(
		zenity.Title("Save Image"),
		zenity.Filename(fmt.Sprintf("stripes-%d.png", g.sketch.Seed())),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG",
			Patterns: []string{"*.png"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}

	path := pngPath(filename)
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save %s: %w", filepath.Base(path), err)
	}
	log.Printf("saved %s", path)
	return nil
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config) error {
	var crackle *sound.Crackle
	if cfg.Sound.Enabled {
		c, err := sound.Start(cfg.Sound.SampleRate, cfg.Sound.Gain, rand.Uint64())
		if err != nil {
			log.Printf("sound disabled: %v", err)
		} else {
			crackle = c
		}
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TPS)

	g := NewGame(cfg, crackle)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
