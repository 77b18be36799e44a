package services

import (
	"context"
	"encoding/json"
	"sync"
)

// fakeRemote records calls and answers from per-method functions.
type fakeRemote struct {
	mu    sync.Mutex
	calls []string

	get  func(path, token string) (any, error)
	post func(path string, in any) (any, error)
	put  func(path, token string, in any) (any, error)
	del  func(path, token string) error
}

func (f *fakeRemote) record(method, path string) {
	f.mu.Lock()
	f.calls = append(f.calls, method+" "+path)
	f.mu.Unlock()
}

// fill copies v into out through JSON, the way the real client decodes.
func fill(v, out any) error {
	if out == nil || v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func (f *fakeRemote) Get(_ context.Context, path, token string, out any) error {
	f.record("GET", path)
	v, err := f.get(path, token)
	if err != nil {
		return err
	}
	return fill(v, out)
}

func (f *fakeRemote) Post(_ context.Context, path, _ string, in, out any) error {
	f.record("POST", path)
	v, err := f.post(path, in)
	if err != nil {
		return err
	}
	return fill(v, out)
}

func (f *fakeRemote) Put(_ context.Context, path, token string, in, out any) error {
	f.record("PUT", path)
	v, err := f.put(path, token, in)
	if err != nil {
		return err
	}
	return fill(v, out)
}

func (f *fakeRemote) Delete(_ context.Context, path, token string) error {
	f.record("DELETE", path)
	return f.del(path, token)
}
