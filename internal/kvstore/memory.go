package kvstore

import "sync"

// Memory is an in-process Storage. FailWrites makes every Set and Remove
// return the given error, which is how write failures are simulated.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
	failW  error
	writes int
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value stored under key
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores value under key
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failW != nil {
		return m.failW
	}
	m.values[key] = value
	m.writes++
	return nil
}

// Remove deletes key
func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failW != nil {
		return m.failW
	}
	delete(m.values, key)
	return nil
}

// FailWrites makes subsequent writes fail with err; nil restores normal writes
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failW = err
}

// Writes returns the number of successful Set calls
func (m *Memory) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}
