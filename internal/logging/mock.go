package logging

import "sync"

// MockEntry is a single captured log call.
type MockEntry struct {
	Level   string
	Message string
	Fields  []Field
	Err     error
}

// MockLogger is a Logger implementation that records entries for assertions
// in tests. Derived loggers (WithField, WithError) record into the logger
// they were derived from.
type MockLogger struct {
	mu      sync.Mutex
	entries []MockEntry

	parent *MockLogger
	fields []Field
	err    error
}

// NewMockLogger creates an empty MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) root() *MockLogger {
	if m.parent != nil {
		return m.parent.root()
	}
	return m
}

// Entries returns a copy of the captured log entries.
func (m *MockLogger) Entries() []MockEntry {
	r := m.root()
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]MockEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// HasMessage reports whether any captured entry carries msg.
func (m *MockLogger) HasMessage(msg string) bool {
	for _, e := range m.Entries() {
		if e.Message == msg {
			return true
		}
	}
	return false
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	r := m.root()
	r.mu.Lock()
	defer r.mu.Unlock()
	all := append(append([]Field{}, m.fields...), fields...)
	r.entries = append(r.entries, MockEntry{Level: level, Message: msg, Fields: all, Err: m.err})
}

func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("debug", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...Field)  { m.record("info", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...Field)  { m.record("warn", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("error", msg, fields) }

// Fatal records the entry without exiting, so tests can assert on it.
func (m *MockLogger) Fatal(msg string, fields ...Field) { m.record("fatal", msg, fields) }

func (m *MockLogger) WithError(err error) Logger {
	return &MockLogger{parent: m.root(), fields: m.fields, err: err}
}

func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return &MockLogger{
		parent: m.root(),
		fields: append(append([]Field{}, m.fields...), Field{Key: key, Value: value}),
		err:    m.err,
	}
}
