// Package testlog captures log output for assertions in tests.
package testlog

import (
	"sync"

	"market-dispatch/internal/logx"
)

// Entry is one captured log call.
type Entry struct {
	Level  string
	Msg    string
	Fields []logx.Field
}

// Recorder accumulates entries from every logger handed out by Logger.
// Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// New creates an empty Recorder.
func New() *Recorder { return &Recorder{} }

// Logger returns a logx.Logger whose output lands in the recorder.
func (r *Recorder) Logger() logx.Logger { return capture{rec: r} }

// Entries returns a snapshot of everything logged so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

func (r *Recorder) record(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
}

// capture implements logx.Logger on top of a Recorder. With produces a
// new capture carrying the accumulated base fields.
type capture struct {
	rec  *Recorder
	base []logx.Field
}

var _ logx.Logger = capture{}

func (c capture) log(level, msg string, fields []logx.Field) {
	all := make([]logx.Field, 0, len(c.base)+len(fields))
	all = append(all, c.base...)
	all = append(all, fields...)
	c.rec.record(Entry{Level: level, Msg: msg, Fields: all})
}

func (c capture) Debug(msg string, f ...logx.Field) { c.log("debug", msg, f) }
func (c capture) Info(msg string, f ...logx.Field)  { c.log("info", msg, f) }
func (c capture) Warn(msg string, f ...logx.Field)  { c.log("warn", msg, f) }
func (c capture) Error(msg string, f ...logx.Field) { c.log("error", msg, f) }

func (c capture) With(f ...logx.Field) logx.Logger {
	base := append([]logx.Field(nil), c.base...)
	return capture{rec: c.rec, base: append(base, f...)}
}

func (c capture) Sync() error { return nil }
