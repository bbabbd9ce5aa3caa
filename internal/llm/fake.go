package llm

import "context"

// FakeClient returns a canned response for offline tests and records every
// call it receives.
type FakeClient struct {
	Response string
	Err      error
	Calls    [][]string
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) GenerateText(ctx context.Context, parts []string) (string, error) {
	f.Calls = append(f.Calls, parts)
	if f.Err != nil {
		return "", f.Err
	}
	return f.Response, nil
}
