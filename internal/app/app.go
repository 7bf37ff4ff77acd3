package app

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"famicore/internal/bus"
	"famicore/internal/cartridge"
	"famicore/internal/graphics"
)

// Application owns a machine and the backend that displays it.
type Application struct {
	config  *Config
	bus     *bus.Bus
	backend graphics.Backend
	romPath string
}

// New creates an application from the given configuration.
func New(config *Config) (*Application, error) {
	if config == nil {
		config = NewConfig()
	}
	if err := config.validate(); err != nil {
		return nil, err
	}

	app := &Application{
		config: config,
		bus:    bus.New(),
	}

	switch config.Video.Backend {
	case "headless":
		app.backend = graphics.NewHeadless(config.Emulation.HeadlessFrames)
	default:
		app.backend = graphics.NewEbitengine(config.Window.Title, config.Window.Scale, config.Video.VSync)
	}

	return app, nil
}

// LoadROM loads a program image from disk and resets the machine around it.
func (app *Application) LoadROM(path string) error {
	cart, err := cartridge.LoadFile(path)
	if err != nil {
		return err
	}

	app.bus.LoadCartridge(cart)
	app.romPath = path
	log.Printf("app: loaded %s (mapper %d, %d PRG banks, %d CHR banks)",
		filepath.Base(path), cart.MapperID(), cart.PRGBanks(), cart.CHRBanks())
	return nil
}

// Run starts the display backend's frame loop. A program image must be
// loaded first.
func (app *Application) Run() error {
	if app.romPath == "" {
		return errors.New("app: no ROM loaded")
	}
	log.Printf("app: running with %s backend", app.backend.Name())
	if err := app.backend.Run(app.bus); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	return nil
}

// Bus exposes the machine for inspection.
func (app *Application) Bus() *bus.Bus {
	return app.bus
}
