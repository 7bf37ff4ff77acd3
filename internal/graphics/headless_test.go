package graphics

import (
	"testing"
)

// countingSource counts frame steps.
type countingSource struct {
	steps int
}

func (s *countingSource) StepFrame() {
	s.steps++
}

func (s *countingSource) FrameBuffer() Frame {
	return Frame{}
}

func TestHeadlessRunsExactFrameBudget(t *testing.T) {
	src := &countingSource{}
	backend := NewHeadless(30)

	if err := backend.Run(src); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if src.steps != 30 {
		t.Errorf("stepped %d frames, want 30", src.steps)
	}
}

func TestHeadlessZeroFrames(t *testing.T) {
	src := &countingSource{}
	if err := NewHeadless(0).Run(src); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if src.steps != 0 {
		t.Errorf("stepped %d frames, want 0", src.steps)
	}
}
