// Package main implements the famicore emulator executable.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"famicore/internal/app"
	"famicore/internal/version"
)

func main() {
	var (
		romFile     = flag.String("rom", "", "path to an iNES ROM file")
		configFile  = flag.String("config", "", "path to a JSON configuration file")
		headless    = flag.Bool("headless", false, "run without a window")
		frames      = flag.Int("frames", 0, "frame budget for headless runs (0 uses the config value)")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	if *romFile == "" {
		fmt.Fprintln(os.Stderr, "usage: famicore -rom <file.nes> [-config <file.json>] [-headless] [-frames <n>]")
		os.Exit(2)
	}

	config := app.NewConfig()
	if *configFile != "" {
		loaded, err := app.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("famicore: %v", err)
		}
		config = loaded
	}
	if *headless {
		config.Video.Backend = "headless"
	}
	if *frames > 0 {
		config.Emulation.HeadlessFrames = *frames
	}

	application, err := app.New(config)
	if err != nil {
		log.Fatalf("famicore: %v", err)
	}
	if err := application.LoadROM(*romFile); err != nil {
		log.Fatalf("famicore: %v", err)
	}
	if err := application.Run(); err != nil {
		log.Fatalf("famicore: %v", err)
	}
}
