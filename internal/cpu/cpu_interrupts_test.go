package cpu

import (
	"testing"
)

func TestBRKPushesStateAndVectors(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.Memory.SetBytes(0xFFFE, 0x00, 0x90) // IRQ/BRK vector -> $9000
	h.CPU.C = true
	h.LoadProgram(0x8000, 0x00) // BRK

	h.CPU.Step()

	if h.CPU.PC != 0x9000 {
		t.Errorf("BRK: PC=0x%04X, want 0x9000", h.CPU.PC)
	}
	if !h.CPU.I {
		t.Error("BRK must set InterruptDisable")
	}
	if h.CPU.SP != 0xFA {
		t.Errorf("BRK: SP=0x%02X, want 0xFA", h.CPU.SP)
	}

	// BRK carries a padding byte; the pushed return address skips it.
	lo := h.Memory.Read(0x01FC)
	hi := h.Memory.Read(0x01FD)
	if ret := uint16(hi)<<8 | uint16(lo); ret != 0x8002 {
		t.Errorf("BRK pushed return 0x%04X, want 0x8002", ret)
	}

	status := h.Memory.Read(0x01FB)
	if status&0x10 == 0 {
		t.Errorf("BRK must push B set, status 0x%02X", status)
	}
	if status&0x01 == 0 {
		t.Errorf("BRK lost Carry in pushed status, 0x%02X", status)
	}
}

func TestRTIRestoresStatusThenPC(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.Memory.SetBytes(0xFFFE, 0x00, 0x90)
	h.CPU.C = true
	h.CPU.Z = true
	h.LoadProgram(0x8000, 0x00) // BRK
	h.LoadProgram(0x9000, 0x40) // RTI

	h.CPU.Step() // BRK
	h.CPU.C = false
	h.CPU.Z = false
	h.CPU.Step() // RTI

	if h.CPU.PC != 0x8002 {
		t.Errorf("RTI: PC=0x%04X, want 0x8002", h.CPU.PC)
	}
	if !h.CPU.C || !h.CPU.Z {
		t.Errorf("RTI must restore flags, C=%t Z=%t", h.CPU.C, h.CPU.Z)
	}
	if h.CPU.SP != 0xFD {
		t.Errorf("RTI: SP=0x%02X, want 0xFD", h.CPU.SP)
	}
}

func TestNMIVectorsAndPushes(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.Memory.SetBytes(0xFFFA, 0x00, 0xA0) // NMI vector -> $A000

	h.CPU.NMI()

	if h.CPU.PC != 0xA000 {
		t.Errorf("NMI: PC=0x%04X, want 0xA000", h.CPU.PC)
	}
	if !h.CPU.I {
		t.Error("NMI must set InterruptDisable")
	}

	lo := h.Memory.Read(0x01FC)
	hi := h.Memory.Read(0x01FD)
	if ret := uint16(hi)<<8 | uint16(lo); ret != 0x8000 {
		t.Errorf("NMI pushed return 0x%04X, want 0x8000", ret)
	}

	// Unlike BRK, the hardware-interrupt push clears B.
	status := h.Memory.Read(0x01FB)
	if status&0x10 != 0 {
		t.Errorf("NMI must push B clear, status 0x%02X", status)
	}
}

func TestNMIRTIRoundTrip(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.Memory.SetBytes(0xFFFA, 0x00, 0xA0)
	h.LoadProgram(0x8000, 0xE8)       // INX, interrupted before it runs
	h.LoadProgram(0xA000, 0xC8, 0x40) // INY; RTI

	h.CPU.NMI()
	h.CPU.Step() // INY in the handler
	h.CPU.Step() // RTI
	h.CPU.Step() // back to the interrupted INX

	if h.CPU.Y != 0x01 || h.CPU.X != 0x01 {
		t.Errorf("NMI round trip: X=0x%02X Y=0x%02X", h.CPU.X, h.CPU.Y)
	}
	if h.CPU.PC != 0x8001 {
		t.Errorf("NMI round trip: PC=0x%04X", h.CPU.PC)
	}
}

func TestNMIIgnoredWhileHalted(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.Memory.SetBytes(0xFFFA, 0x00, 0xA0)
	h.LoadProgram(0x8000, 0x02) // halt

	h.CPU.Step()
	h.CPU.NMI()

	if h.CPU.PC != 0x8001 {
		t.Errorf("halted CPU must ignore NMI, PC=0x%04X", h.CPU.PC)
	}
	if h.CPU.SP != 0xFD {
		t.Errorf("halted NMI pushed to stack, SP=0x%02X", h.CPU.SP)
	}
}
