package testutil

import (
	"github.com/stretchr/testify/mock"
)

// MockConfirmer is a testify mock of confirm.Confirmer
type MockConfirmer struct {
	mock.Mock
}

// Confirm records the prompt and returns the scripted answer
func (m *MockConfirmer) Confirm(prompt string) (bool, error) {
	args := m.Called(prompt)
	return args.Bool(0), args.Error(1)
}

// AlwaysYes answers yes to any prompt
func (m *MockConfirmer) AlwaysYes() *MockConfirmer {
	m.On("Confirm", mock.Anything).Return(true, nil)
	return m
}

// Prompts returns every prompt asked, in order
func (m *MockConfirmer) Prompts() []string {
	var out []string
	for _, c := range m.Calls {
		if c.Method == "Confirm" {
			out = append(out, c.Arguments.String(0))
		}
	}
	return out
}
