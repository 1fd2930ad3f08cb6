package behaviour

// Behaviour is per-frame logic driven by the render loop.
type Behaviour interface {
	Start()
	Update(deltaTime float64)
}

type behaviourWrapper struct {
	behaviour Behaviour
	started   bool
}

// Manager runs behaviours in registration order. It is not safe for
// concurrent use; the render loop owns it.
type Manager struct {
	behaviours []behaviourWrapper
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) Add(b Behaviour) {
	m.behaviours = append(m.behaviours, behaviourWrapper{behaviour: b})
}

func (m *Manager) Len() int {
	return len(m.behaviours)
}

// UpdateAll starts any new behaviour, then updates all of them.
func (m *Manager) UpdateAll(deltaTime float64) {
	for i := range m.behaviours {
		if !m.behaviours[i].started {
			m.behaviours[i].behaviour.Start()
			m.behaviours[i].started = true
		}
		m.behaviours[i].behaviour.Update(deltaTime)
	}
}
