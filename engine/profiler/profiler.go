//go:build profile

// Package profiler records open/close scope events into a ring and dumps
// them in speedscope's evented format. Build with -tags profile to enable.
package profiler

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"
)

type event struct {
	at    int64 // unix nanos
	frame int
	open  bool
}

var (
	mu     sync.Mutex
	ring   []event
	writes int
	names  []string
	ids    = map[string]int{}
)

// Init sizes the ring; older events are overwritten once it is full.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 16
	}
	mu.Lock()
	defer mu.Unlock()
	ring = make([]event, capacity)
	writes = 0
}

// Start opens a scope and returns the func that closes it.
func Start(name string) func() {
	mu.Lock()
	if ring == nil {
		mu.Unlock()
		return func() {}
	}
	id, ok := ids[name]
	if !ok {
		id = len(names)
		ids[name] = id
		names = append(names, name)
	}
	start := time.Now().UnixNano()
	push(event{at: start, frame: id, open: true})
	mu.Unlock()

	return func() {
		end := max(time.Now().UnixNano(), start)
		mu.Lock()
		push(event{at: end, frame: id})
		mu.Unlock()
	}
}

func push(e event) {
	ring[writes%len(ring)] = e
	writes++
}

// snapshot returns events in write order.
func snapshot() []event {
	n := min(writes, len(ring))
	out := make([]event, 0, n)
	for k := writes - n; k < writes; k++ {
		out = append(out, ring[k%len(ring)])
	}
	return out
}

// OpenProfilerGraph writes a speedscope file to the temp dir and launches
// the speedscope CLI on it if available.
func OpenProfilerGraph() (string, error) {
	mu.Lock()
	evs := snapshot()
	frames := append([]string(nil), names...)
	mu.Unlock()
	if len(evs) == 0 {
		return "", errors.New("profiler: no events to dump")
	}

	path := filepath.Join(os.TempDir(), "gallows.speedscope.json")
	if err := writeSpeedscope(path, evs, frames); err != nil {
		return "", err
	}
	if err := exec.Command("speedscope", path).Start(); err != nil {
		return path, fmt.Errorf("launch speedscope: %w", err)
	}
	return path, nil
}

type ssFile struct {
	Schema   string      `json:"$schema"`
	Shared   ssShared    `json:"shared"`
	Profiles []ssProfile `json:"profiles"`
	Exporter string      `json:"exporter,omitempty"`
	Name     string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"` // "O" or "C"
	At    int64  `json:"at"`   // µs since the first event
	Frame int    `json:"frame"`
}

// speedscopeEvents drops closes without a matching open (their open fell off
// the ring) and closes whatever is still open at the end.
func speedscopeEvents(evs []event) ([]ssEvent, int64) {
	base := evs[0].at
	out := make([]ssEvent, 0, len(evs))
	var stack []int
	var last int64

	for _, e := range evs {
		at := max((e.at-base)/1000, last)
		if e.open {
			stack = append(stack, e.frame)
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != e.frame {
				continue
			}
			stack = stack[:len(stack)-1]
		}
		typ := "C"
		if e.open {
			typ = "O"
		}
		out = append(out, ssEvent{Type: typ, At: at, Frame: e.frame})
		last = at
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: last, Frame: stack[i]})
	}
	return out, last
}

func writeSpeedscope(path string, evs []event, frames []string) error {
	out, end := speedscopeEvents(evs)
	fs := make([]ssFrame, len(frames))
	for i, n := range frames {
		fs[i] = ssFrame{Name: n}
	}
	doc := ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: fs},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "gallows",
			Unit:     "microseconds",
			EndValue: end,
			Events:   out,
		}},
		Exporter: "gallows-profiler",
		Name:     "gallows capture",
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
