package behaviour

// PlayerBehaviour is driven by the frame loop. Start runs once before the
// first Update; UpdateFixed runs on the fixed step.
type PlayerBehaviour interface {
	Start()
	Update(deltaTime float64)
	UpdateFixed()
}

type BehaviourWrapper struct {
	Behaviour PlayerBehaviour
	started   bool
}

type BehaviourManager struct {
	behaviours []BehaviourWrapper
}

func NewBehaviourManager() *BehaviourManager {
	return &BehaviourManager{}
}

func (m *BehaviourManager) Add(behaviour PlayerBehaviour) {
	m.behaviours = append(m.behaviours, BehaviourWrapper{Behaviour: behaviour, started: false})
}

func (m *BehaviourManager) Remove(behaviour PlayerBehaviour) {
	for i := range m.behaviours {
		if m.behaviours[i].Behaviour == behaviour {
			// Remove by swapping with last element and truncating
			m.behaviours[i] = m.behaviours[len(m.behaviours)-1]
			m.behaviours = m.behaviours[:len(m.behaviours)-1]
			return
		}
	}
}

// Clear removes all behaviours from the manager
func (m *BehaviourManager) Clear() {
	m.behaviours = m.behaviours[:0]
}

func (m *BehaviourManager) Len() int {
	return len(m.behaviours)
}

func (m *BehaviourManager) start(i int) {
	if !m.behaviours[i].started {
		m.behaviours[i].Behaviour.Start()
		m.behaviours[i].started = true
	}
}

func (m *BehaviourManager) UpdateAll(deltaTime float64) {
	for i := range m.behaviours {
		m.start(i)
		m.behaviours[i].Behaviour.Update(deltaTime)
	}
}

func (m *BehaviourManager) UpdateAllFixed() {
	for i := range m.behaviours {
		m.start(i)
		m.behaviours[i].Behaviour.UpdateFixed()
	}
}
