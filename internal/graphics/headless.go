package graphics

import "log"

// Headless runs a fixed number of frames with no display. Used for
// automation and tests.
type Headless struct {
	frames int
}

// NewHeadless creates a headless backend that stops after the given
// number of frames.
func NewHeadless(frames int) *Headless {
	return &Headless{frames: frames}
}

func (h *Headless) Name() string { return "headless" }

// Run steps the source for the configured number of frames.
func (h *Headless) Run(src Source) error {
	for i := 0; i < h.frames; i++ {
		src.StepFrame()
	}
	log.Printf("graphics: headless run complete after %d frames", h.frames)
	return nil
}
