// Package joypad translates a physical button-state set into the
// Game Boy's 4-bit joypad read-back register.
package joypad

import (
	"github.com/ioncodes/ayyboy/internal/interrupts"
	"github.com/ioncodes/ayyboy/internal/types"
	"github.com/ioncodes/ayyboy/pkg/bits"
)

// Button identifies a physical button.
type Button = uint8

const (
	ButtonA      Button = 0x01
	ButtonB      Button = 0x02
	ButtonSelect Button = 0x04
	ButtonStart  Button = 0x08
	ButtonRight  Button = 0x10
	ButtonLeft   Button = 0x20
	ButtonUp     Button = 0x40
	ButtonDown   Button = 0x80
)

// State is the joypad's observable state: the select bits written by
// the game, and the physical buttons currently held down.
type State struct {
	register uint8 // bits 4-5 are the select lines, written by the game
	held     Button

	irq *interrupts.Service
}

// New returns a joypad with both select lines unselected.
func New(irq *interrupts.Service) *State {
	return &State{register: 0x3F, irq: irq}
}

// Read returns the current memory-mapped joypad byte.
func (s *State) Read(address uint16) uint8 {
	if address != types.P1 {
		return 0xFF
	}
	result := s.register | 0x0F
	if !bits.Test(s.register, 4) {
		result &^= s.held >> 4 // direction row: Right,Left,Up,Down
	}
	if !bits.Test(s.register, 5) {
		result &^= s.held & 0x0F // button row: A,B,Select,Start
	}
	return result
}

// Write updates the select lines; only bits 4-5 are writable.
func (s *State) Write(address uint16, value uint8) {
	if address != types.P1 {
		return
	}
	s.register = (s.register & 0xCF) | (value & 0x30)
}

// Press marks a button as held and raises the joypad interrupt if this
// is a release-to-press edge on a row the game is currently selecting.
func (s *State) Press(key Button) {
	wasHeld := s.held&key != 0
	s.held |= key

	if wasHeld {
		return
	}
	selectsDirection := key > ButtonStart && !bits.Test(s.register, 4)
	selectsButton := key <= ButtonStart && !bits.Test(s.register, 5)
	if selectsDirection || selectsButton {
		s.irq.Request(interrupts.JoypadFlag)
	}
}

// Release marks a button as no longer held.
func (s *State) Release(key Button) {
	s.held &^= key
}

// Update applies a pressed/released transition by name, matching the
// external update_button(name, pressed) interface.
func (s *State) Update(key Button, pressed bool) {
	if pressed {
		s.Press(key)
	} else {
		s.Release(key)
	}
}

var _ types.Stater = (*State)(nil)

func (s *State) Save(st *types.State) {
	st.Write8(s.register)
	st.Write8(s.held)
}

func (s *State) Load(st *types.State) {
	s.register = st.Read8()
	s.held = st.Read8()
}
