package logging

import (
	"github.com/stretchr/testify/mock"
)

// MockLogger is a mock implementation of the Logger interface.
type MockLogger struct {
	mock.Mock
}

var _ Logger = (*MockLogger)(nil)

// NoOpLogger discards everything. Handy default for tests that do not
// assert on logging at all.
type NoOpLogger struct{}

var _ Logger = (*NoOpLogger)(nil)

func (NoOpLogger) Debug(msg string, tags ...any)               {}
func (NoOpLogger) Info(msg string, tags ...any)                {}
func (NoOpLogger) Warn(msg string, tags ...any)                {}
func (NoOpLogger) Error(msg string, tags ...any)               {}
func (NoOpLogger) Fatal(msg string, tags ...any)               {}
func (NoOpLogger) Debugf(template string, args ...interface{}) {}
func (NoOpLogger) Infof(template string, args ...interface{})  {}
func (NoOpLogger) Warnf(template string, args ...interface{})  {}
func (NoOpLogger) Errorf(template string, args ...interface{}) {}
func (NoOpLogger) Fatalf(template string, args ...interface{}) {}
func (n NoOpLogger) With(tags ...any) Logger                   { return n }

// SetupDefaultExpectations allows every logging method to be called with
// any arguments without failing the test.
func (m *MockLogger) SetupDefaultExpectations() {
	for _, method := range []string{"Debug", "Info", "Warn", "Error", "Fatal"} {
		m.On(method, mock.Anything, mock.Anything).Maybe().Return()
		m.On(method+"f", mock.Anything).Maybe().Return()
		m.On(method+"f", mock.Anything, mock.Anything).Maybe().Return()
		m.On(method+"f", mock.Anything, mock.Anything, mock.Anything).Maybe().Return()
		m.On(method+"f", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe().Return()
	}
	m.On("With", mock.Anything, mock.Anything).Maybe().Return(m)
}

func (m *MockLogger) Debug(msg string, tags ...any) {
	m.Called(msg, tags)
}

func (m *MockLogger) Info(msg string, tags ...any) {
	m.Called(msg, tags)
}

func (m *MockLogger) Warn(msg string, tags ...any) {
	m.Called(msg, tags)
}

func (m *MockLogger) Error(msg string, tags ...any) {
	m.Called(msg, tags)
}

func (m *MockLogger) Fatal(msg string, tags ...any) {
	m.Called(msg, tags)
}

func (m *MockLogger) Debugf(template string, args ...interface{}) {
	callArgs := append([]interface{}{template}, args...)
	m.Called(callArgs...)
}

func (m *MockLogger) Infof(template string, args ...interface{}) {
	callArgs := append([]interface{}{template}, args...)
	m.Called(callArgs...)
}

func (m *MockLogger) Warnf(template string, args ...interface{}) {
	callArgs := append([]interface{}{template}, args...)
	m.Called(callArgs...)
}

func (m *MockLogger) Errorf(template string, args ...interface{}) {
	callArgs := append([]interface{}{template}, args...)
	m.Called(callArgs...)
}

func (m *MockLogger) Fatalf(template string, args ...interface{}) {
	callArgs := append([]interface{}{template}, args...)
	m.Called(callArgs...)
}

func (m *MockLogger) With(tags ...any) Logger {
	args := m.Called(tags)
	if logger, ok := args.Get(0).(Logger); ok {
		return logger
	}
	return m
}
