// Package profiler records nested frame-phase spans into a fixed ring and writes them
// out as an evented speedscope profile.
package profiler

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"
)

// DefaultCapacity is enough for roughly a minute of frames at 60 Hz.
const DefaultCapacity = 1 << 16

type event struct {
	atNS  int64
	frame int
	open  bool
}

// Recorder is not safe for concurrent use; the frame loop owns it. A nil *Recorder
// records nothing.
type Recorder struct {
	now   func() int64
	evs   []event
	write uint64

	names []string
	index map[string]int
}

func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Recorder{
		now:   func() int64 { return time.Now().UnixNano() },
		evs:   make([]event, capacity),
		index: map[string]int{},
	}
}

// Start opens a span and returns the func that closes it.
func (r *Recorder) Start(name string) func() {
	if r == nil {
		return func() {}
	}
	id := r.intern(name)
	at := r.now()
	r.push(event{atNS: at, frame: id, open: true})
	return func() {
		end := r.now()
		if end < at {
			end = at
		}
		r.push(event{atNS: end, frame: id})
	}
}

// Len is the number of events currently held.
func (r *Recorder) Len() int {
	if r == nil {
		return 0
	}
	return int(min(r.write, uint64(len(r.evs))))
}

func (r *Recorder) push(e event) {
	r.evs[r.write%uint64(len(r.evs))] = e
	r.write++
}

func (r *Recorder) intern(name string) int {
	if id, ok := r.index[name]; ok {
		return id
	}
	id := len(r.names)
	r.index[name] = id
	r.names = append(r.names, name)
	return id
}

// snapshot returns held events oldest first.
func (r *Recorder) snapshot() []event {
	n := uint64(len(r.evs))
	start := uint64(0)
	if r.write > n {
		start = r.write - n
	}
	out := make([]event, 0, r.write-start)
	for k := start; k < r.write; k++ {
		out = append(out, r.evs[k%n])
	}
	return out
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
	At    int64  `json:"at"`   // µs since the first held event
	Frame int    `json:"frame"`
}

var errNoEvents = errors.New("profiler: no events recorded")

// WriteSpeedscope encodes the held spans. Closes whose open fell out of the ring are
// dropped and spans still open at the end are closed at the last timestamp.
func (r *Recorder) WriteSpeedscope(w io.Writer, name string) error {
	if r.Len() == 0 {
		return errNoEvents
	}
	evs := r.snapshot()
	base := evs[0].atNS

	out := make([]ssEvent, 0, len(evs)+8)
	stack := make([]int, 0, 16)
	var last, end int64
	for _, e := range evs {
		at := max((e.atNS-base)/1000, last)
		if e.open {
			out = append(out, ssEvent{Type: "O", At: at, Frame: e.frame})
			stack = append(stack, e.frame)
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != e.frame {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: at, Frame: e.frame})
		}
		last = at
		end = max(end, at)
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: last, Frame: stack[i]})
	}
	if len(out) == 0 {
		return errNoEvents
	}

	frames := make([]ssFrame, len(r.names))
	for i, n := range r.names {
		frames[i] = ssFrame{Name: n}
	}
	doc := ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: frames},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     name,
			Unit:     "microseconds",
			EndValue: end,
			Events:   out,
		}},
		Exporter: "hellogl-profiler",
		Name:     name,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&doc)
}

// WriteFile writes the profile to path through a temporary file.
func (r *Recorder) WriteFile(path, name string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	if err := r.WriteSpeedscope(tmp, name); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
