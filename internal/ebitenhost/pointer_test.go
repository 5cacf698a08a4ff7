package ebitenhost

import (
	"testing"

	"galaxy/internal/galaxy"
)

type pointerLog struct {
	moves  [][2]float64
	leaves int
}

func (l *pointerLog) handler() galaxy.PointerHandler {
	return galaxy.PointerHandler{
		Move:  func(x, y float64) { l.moves = append(l.moves, [2]float64{x, y}) },
		Leave: func() { l.leaves++ },
	}
}

func TestPointerEdges(t *testing.T) {
	var pe pointerEdges
	var log pointerLog
	off := pe.add(log.handler())

	pe.poll(-5, 10, 100, 50, false) // outside, never inside: nothing
	pe.poll(10, 10, 100, 50, false) // enter
	pe.poll(10, 10, 100, 50, false) // still: nothing
	pe.poll(10, 10, 100, 50, true)  // press counts as a move
	pe.poll(20, 30, 100, 50, false) // move
	pe.poll(100, 30, 100, 50, false)
	pe.poll(120, 30, 100, 50, false)

	if len(log.moves) != 3 {
		t.Errorf("moves = %v, want 3", log.moves)
	}
	if log.leaves != 1 {
		t.Errorf("leaves = %d, want 1", log.leaves)
	}

	off()
	pe.poll(10, 10, 100, 50, false)
	if len(log.moves) != 3 {
		t.Error("unregistered handler still called")
	}
}

func TestPointerEdgesEmptySurface(t *testing.T) {
	var pe pointerEdges
	var log pointerLog
	pe.add(log.handler())
	pe.poll(0, 0, 0, 0, true)
	if len(log.moves) != 0 || log.leaves != 0 {
		t.Errorf("events on an empty surface: %+v", log)
	}
}
