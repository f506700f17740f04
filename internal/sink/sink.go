// Package sink delivers assembled match records to their destinations.
package sink

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/luciengaly/football-scraping/internal/match"
)

// Sink accepts one finished record.
type Sink interface {
	Name() string
	Write(ctx context.Context, rec *match.Record) error
}

// Recorder observes sink writes.
type Recorder interface {
	ObserveSinkWrite(sink string, err error)
}

type target struct {
	sink    Sink
	enabled bool
}

// Dispatcher fans a record out to every enabled sink. One failing sink does
// not stop the others.
type Dispatcher struct {
	targets  []target
	recorder Recorder
}

// NewDispatcher creates an empty dispatcher. recorder may be nil.
func NewDispatcher(recorder Recorder) *Dispatcher {
	return &Dispatcher{recorder: recorder}
}

// Register adds s, switched on or off.
func (d *Dispatcher) Register(s Sink, enabled bool) {
	d.targets = append(d.targets, target{sink: s, enabled: enabled})
}

// SetEnabled toggles the sink registered under name.
func (d *Dispatcher) SetEnabled(name string, enabled bool) bool {
	for i := range d.targets {
		if d.targets[i].sink.Name() == name {
			d.targets[i].enabled = enabled
			return true
		}
	}
	return false
}

// Enabled lists the names of the enabled sinks.
func (d *Dispatcher) Enabled() []string {
	var names []string
	for _, t := range d.targets {
		if t.enabled {
			names = append(names, t.sink.Name())
		}
	}
	return names
}

// Dispatch writes rec to every enabled sink and joins the failures.
func (d *Dispatcher) Dispatch(ctx context.Context, rec *match.Record) error {
	if rec == nil {
		return errors.New("nil record")
	}
	var errs []error
	for _, t := range d.targets {
		if !t.enabled {
			continue
		}
		err := t.sink.Write(ctx, rec)
		if d.recorder != nil {
			d.recorder.ObserveSinkWrite(t.sink.Name(), err)
		}
		if err != nil {
			log.Printf("⚠️  %s sink failed for match %s: %v", t.sink.Name(), rec.ID, err)
			errs = append(errs, fmt.Errorf("%s: %w", t.sink.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Func adapts a function to a Sink.
type Func struct {
	SinkName string
	Fn       func(ctx context.Context, rec *match.Record) error
}

func (f Func) Name() string { return f.SinkName }

func (f Func) Write(ctx context.Context, rec *match.Record) error { return f.Fn(ctx, rec) }
