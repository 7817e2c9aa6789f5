// Package testutil provides testing utilities.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/google/uuid"

	"github.com/jacksmith/tasklist/internal/model"
)

// Request records one call made against a FakeAPI.
type Request struct {
	Method string
	Path   string
	ID     string // task id from the path, empty for /tasks
	Name   string // decoded "name" field, empty when there is no body
}

// FakeAPI is an in-memory task backend served over httptest.
// It honours the same status codes as the real API and lets tests inject
// failures per operation.
type FakeAPI struct {
	Server *httptest.Server

	// NewID assigns ids to created tasks. Defaults to random UUIDs.
	NewID func() string

	mu       sync.Mutex
	tasks    model.Collection
	failures map[string]int           // "list", "create", "update", "delete" -> status
	holds    map[string]*hold
	requests []Request
}

// NewFakeAPI starts a fake backend. Callers must Close it.
func NewFakeAPI(seed ...model.Task) *FakeAPI {
	f := &FakeAPI{
		NewID:    uuid.NewString,
		tasks:    model.Collection(seed).Clone(),
		failures: make(map[string]int),
		holds:    make(map[string]*hold),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks", f.handleList)
	mux.HandleFunc("POST /tasks", f.handleCreate)
	mux.HandleFunc("PUT /tasks/{id}", f.handleUpdate)
	mux.HandleFunc("DELETE /tasks/{id}", f.handleDelete)
	f.Server = httptest.NewServer(mux)

	return f
}

// URL returns the base URL of the fake backend.
func (f *FakeAPI) URL() string {
	return f.Server.URL
}

// Close shuts the server down and releases any held requests.
func (f *FakeAPI) Close() {
	f.mu.Lock()
	var pending []*hold
	for _, h := range f.holds {
		pending = append(pending, h)
	}
	f.mu.Unlock()
	for _, h := range pending {
		h.release()
	}
	f.Server.Close()
}

// Tasks returns the backend's current tasks.
func (f *FakeAPI) Tasks() model.Collection {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tasks.Clone()
}

// SetTasks replaces the backend's tasks.
func (f *FakeAPI) SetTasks(tasks ...model.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = model.Collection(tasks).Clone()
}

// Fail makes every following call to op answer with status.
// A status of 0 clears the failure.
func (f *FakeAPI) Fail(op string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if status == 0 {
		delete(f.failures, op)
		return
	}
	f.failures[op] = status
}

// Hold blocks calls to op until the returned release func is called.
// Held requests still record themselves before blocking.
func (f *FakeAPI) Hold(op string) (release func()) {
	h := &hold{gate: make(chan struct{})}
	f.mu.Lock()
	f.holds[op] = h
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		if f.holds[op] == h {
			delete(f.holds, op)
		}
		f.mu.Unlock()
		h.release()
	}
}

type hold struct {
	gate chan struct{}
	once sync.Once
}

func (h *hold) release() {
	h.once.Do(func() { close(h.gate) })
}

// Requests returns every request received so far.
func (f *FakeAPI) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Request, len(f.requests))
	copy(out, f.requests)
	return out
}

// AwaitRequests polls until at least n requests have been received or the
// timeout elapses. It reports whether n was reached.
func (f *FakeAPI) AwaitRequests(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		f.mu.Lock()
		got := len(f.requests)
		f.mu.Unlock()
		if got >= n {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
}

// begin records the request, waits on any hold, and reports an injected
// failure status (0 when none).
func (f *FakeAPI) begin(op string, req Request) int {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	h := f.holds[op]
	f.mu.Unlock()

	if h != nil {
		<-h.gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failures[op]
}

type nameBody struct {
	Name string `json:"name"`
}

func (f *FakeAPI) handleList(w http.ResponseWriter, r *http.Request) {
	if status := f.begin("list", Request{Method: r.Method, Path: r.URL.Path}); status != 0 {
		w.WriteHeader(status)
		return
	}

	f.mu.Lock()
	body := struct {
		Tasks model.Collection `json:"tasks"`
	}{Tasks: f.tasks.Clone()}
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, body)
}

func (f *FakeAPI) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in nameBody
	if err := json.UnmarshalRead(r.Body, &in); err != nil {
		f.begin("create", Request{Method: r.Method, Path: r.URL.Path})
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if status := f.begin("create", Request{Method: r.Method, Path: r.URL.Path, Name: in.Name}); status != 0 {
		w.WriteHeader(status)
		return
	}

	f.mu.Lock()
	task := model.Task{ID: f.NewID(), Name: in.Name}
	f.tasks = f.tasks.Append(task)
	f.mu.Unlock()

	writeJSON(w, http.StatusCreated, task)
}

func (f *FakeAPI) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var in nameBody
	if err := json.UnmarshalRead(r.Body, &in); err != nil {
		f.begin("update", Request{Method: r.Method, Path: r.URL.Path, ID: id})
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if status := f.begin("update", Request{Method: r.Method, Path: r.URL.Path, ID: id, Name: in.Name}); status != 0 {
		w.WriteHeader(status)
		return
	}

	f.mu.Lock()
	f.tasks = f.tasks.Rename(id, in.Name)
	f.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeAPI) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if status := f.begin("delete", Request{Method: r.Method, Path: r.URL.Path, ID: id}); status != 0 {
		w.WriteHeader(status)
		return
	}

	f.mu.Lock()
	f.tasks = f.tasks.Remove(id)
	f.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
