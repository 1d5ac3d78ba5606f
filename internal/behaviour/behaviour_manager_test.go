package behaviour

import (
	"testing"
)

type MockBehaviour struct {
	startCalls  int
	updateCalls int
	fixedCalls  int
	lastDelta   float64
}

func (m *MockBehaviour) Start() { m.startCalls++ }

func (m *MockBehaviour) Update(deltaTime float64) {
	m.updateCalls++
	m.lastDelta = deltaTime
}

func (m *MockBehaviour) UpdateFixed() { m.fixedCalls++ }

func TestBehaviourManagerStartsOnce(t *testing.T) {
	m := NewBehaviourManager()
	b := &MockBehaviour{}
	m.Add(b)

	m.UpdateAll(0.016)
	m.UpdateAll(0.032)
	m.UpdateAllFixed()

	if b.startCalls != 1 {
		t.Errorf("Expected Start once, got %d", b.startCalls)
	}
	if b.updateCalls != 2 {
		t.Errorf("Expected 2 updates, got %d", b.updateCalls)
	}
	if b.fixedCalls != 1 {
		t.Errorf("Expected 1 fixed update, got %d", b.fixedCalls)
	}
	if b.lastDelta != 0.032 {
		t.Errorf("Expected last delta 0.032, got %f", b.lastDelta)
	}
}

func TestBehaviourManagerFixedStartsFirst(t *testing.T) {
	m := NewBehaviourManager()
	b := &MockBehaviour{}
	m.Add(b)

	m.UpdateAllFixed()

	if b.startCalls != 1 || b.fixedCalls != 1 {
		t.Errorf("Expected Start then UpdateFixed, got start=%d fixed=%d", b.startCalls, b.fixedCalls)
	}
}

func TestBehaviourManagerRemove(t *testing.T) {
	m := NewBehaviourManager()
	a := &MockBehaviour{}
	b := &MockBehaviour{}
	m.Add(a)
	m.Add(b)

	m.Remove(a)
	m.UpdateAll(0)

	if m.Len() != 1 {
		t.Errorf("Expected 1 behaviour, got %d", m.Len())
	}
	if a.updateCalls != 0 {
		t.Error("Removed behaviour should not be updated")
	}
	if b.updateCalls != 1 {
		t.Error("Remaining behaviour should be updated")
	}
}

func TestBehaviourManagerClear(t *testing.T) {
	m := NewBehaviourManager()
	m.Add(&MockBehaviour{})
	m.Clear()

	if m.Len() != 0 {
		t.Errorf("Expected 0 behaviours after Clear, got %d", m.Len())
	}
}
