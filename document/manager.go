package document

import (
	"sync"

	"go-pianoroll/debug"
	"go-pianoroll/ustx"
)

// Command is an undoable document mutation
type Command interface {
	Execute()
	Unexecute()
	String() string
}

// Notification is broadcast to subscribers but never recorded for undo
type Notification interface {
	Notification()
}

// Subscriber receives executed commands and notifications.
// isUndo is true when a command is being rolled back.
type Subscriber interface {
	OnNext(cmd any, isUndo bool)
}

type group struct {
	cmds []Command
}

// Manager owns the project and is the only sanctioned mutation path
type Manager struct {
	mu          sync.Mutex
	project     *ustx.Project
	undo        []*group
	redo        []*group
	open        *group
	subscribers []Subscriber
}

// NewManager creates a manager for the given project
func NewManager(project *ustx.Project) *Manager {
	return &Manager{project: project}
}

// Project returns the managed project
func (m *Manager) Project() *ustx.Project {
	return m.project
}

// AddSubscriber registers s for command broadcasts
func (m *Manager) AddSubscriber(s Subscriber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, s)
}

// RemoveSubscriber unregisters s
func (m *Manager) RemoveSubscriber(s Subscriber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, sub := range m.subscribers {
		if sub == s {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			return
		}
	}
}

// StartUndoGroup opens a group; commands until EndUndoGroup undo together.
// Starting a group while one is open closes the previous one first.
func (m *Manager) StartUndoGroup() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeGroupLocked()
	m.open = &group{}
}

// EndUndoGroup closes the open group, dropping it if empty
func (m *Manager) EndUndoGroup() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeGroupLocked()
}

func (m *Manager) closeGroupLocked() {
	if m.open == nil {
		return
	}
	if len(m.open.cmds) > 0 {
		m.undo = append(m.undo, m.open)
		m.redo = nil
	}
	m.open = nil
}

// ExecuteCmd runs a command or broadcasts a notification
func (m *Manager) ExecuteCmd(cmd any) {
	if n, ok := cmd.(Notification); ok {
		m.publish(n, false)
		return
	}
	c, ok := cmd.(Command)
	if !ok {
		return
	}
	c.Execute()
	debug.Log("doc", "exec %s", c)

	m.mu.Lock()
	if m.open != nil {
		m.open.cmds = append(m.open.cmds, c)
	} else {
		m.undo = append(m.undo, &group{cmds: []Command{c}})
		m.redo = nil
	}
	m.mu.Unlock()

	m.publish(c, false)
}

// Undo rolls back the last group
func (m *Manager) Undo() {
	m.mu.Lock()
	m.closeGroupLocked()
	if len(m.undo) == 0 {
		m.mu.Unlock()
		return
	}
	g := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, g)
	m.mu.Unlock()

	for i := len(g.cmds) - 1; i >= 0; i-- {
		g.cmds[i].Unexecute()
		debug.Log("doc", "undo %s", g.cmds[i])
		m.publish(g.cmds[i], true)
	}
}

// Redo re-applies the last undone group
func (m *Manager) Redo() {
	m.mu.Lock()
	m.closeGroupLocked()
	if len(m.redo) == 0 {
		m.mu.Unlock()
		return
	}
	g := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = append(m.undo, g)
	m.mu.Unlock()

	for _, c := range g.cmds {
		c.Execute()
		debug.Log("doc", "redo %s", c)
		m.publish(c, false)
	}
}

// CanUndo reports whether an undo group is available
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undo) > 0 || (m.open != nil && len(m.open.cmds) > 0)
}

// CanRedo reports whether a redo group is available
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redo) > 0
}

func (m *Manager) publish(cmd any, isUndo bool) {
	m.mu.Lock()
	subs := append([]Subscriber(nil), m.subscribers...)
	m.mu.Unlock()
	for _, s := range subs {
		s.OnNext(cmd, isUndo)
	}
}
