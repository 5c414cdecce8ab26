package insight

import "context"

// MockGenerator returns a canned summary. Used in tests and as an offline
// fallback when no API key is configured.
type MockGenerator struct {
	Model string
}

func (m *MockGenerator) ID() string {
	return "mock:" + m.Model
}

func (m *MockGenerator) Generate(_ context.Context, req Request) (*Response, error) {
	return &Response{
		Text:  "Mock insight based on your digest:\n\n" + req.Prompt,
		Model: m.Model,
	}, nil
}
