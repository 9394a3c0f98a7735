// Package replay records Bat Flap sessions as a seed plus timed input events
// and plays them back. The simulation is deterministic for a given seed and
// configuration, so a recording reproduces its run exactly.
package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"

	"github.com/vovakirdan/batflap/internal/config"
	"github.com/vovakirdan/batflap/internal/core"
)

// Version is the recording format version written by this package.
const Version = 1

// ErrVersion is returned when a recording was written by an unknown format version.
var ErrVersion = errors.New("replay: unsupported recording version")

// Input is an event queued while the session had run Tick ticks.
// It takes effect on tick Tick+1.
type Input struct {
	Tick  uint64     `cbor:"1,keyasint"`
	Event core.Event `cbor:"2,keyasint"`
}

// Recording is everything needed to reproduce a session.
type Recording struct {
	Version    int               `cbor:"1,keyasint"`
	Seed       int64             `cbor:"2,keyasint"`
	TickRate   int               `cbor:"3,keyasint"`
	Config     config.GameConfig `cbor:"4,keyasint"`
	Inputs     []Input           `cbor:"5,keyasint,omitempty"`
	Ticks      uint64            `cbor:"6,keyasint"`
	FinalScore int               `cbor:"7,keyasint"`
}

// Recorder collects inputs while a session runs.
type Recorder struct {
	rec Recording
}

// NewRecorder starts a recording for a session created with cfg and seed.
func NewRecorder(cfg config.GameConfig, seed int64, tickRate int) *Recorder {
	return &Recorder{rec: Recording{
		Version:  Version,
		Seed:     seed,
		TickRate: tickRate,
		Config:   cfg,
	}}
}

// Record notes that ev was queued after tick ticks had run.
func (r *Recorder) Record(tick uint64, ev core.Event) {
	if !ev.Valid() {
		return
	}
	r.rec.Inputs = append(r.rec.Inputs, Input{Tick: tick, Event: ev})
}

// Len returns the number of recorded inputs.
func (r *Recorder) Len() int {
	return len(r.rec.Inputs)
}

// Finish closes the recording at the given tick count and score.
func (r *Recorder) Finish(ticks uint64, score int) Recording {
	rec := r.rec
	rec.Ticks = ticks
	rec.FinalScore = score
	rec.Inputs = append([]Input(nil), r.rec.Inputs...)
	return rec
}

// Encode writes rec as CBOR.
func Encode(w io.Writer, rec Recording) error {
	if err := cbor.NewEncoder(w).Encode(rec); err != nil {
		return fmt.Errorf("replay: encode: %w", err)
	}
	return nil
}

// Decode reads a CBOR recording and checks its version and configuration.
func Decode(r io.Reader) (Recording, error) {
	var rec Recording
	if err := cbor.NewDecoder(r).Decode(&rec); err != nil {
		return Recording{}, fmt.Errorf("replay: decode: %w", err)
	}
	if rec.Version != Version {
		return Recording{}, fmt.Errorf("%w: %d", ErrVersion, rec.Version)
	}
	if err := rec.Config.Validate(); err != nil {
		return Recording{}, fmt.Errorf("replay: %w", err)
	}
	for i := 1; i < len(rec.Inputs); i++ {
		if rec.Inputs[i].Tick < rec.Inputs[i-1].Tick {
			return Recording{}, fmt.Errorf("replay: input %d is out of order", i)
		}
	}
	return rec, nil
}

// Save writes rec to path, replacing any existing file.
func Save(path string, rec Recording) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	w := bufio.NewWriter(f)
	if err := Encode(w, rec); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("replay: %w", err)
	}
	return f.Close()
}

// Load reads a recording from path.
func Load(path string) (Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return Recording{}, fmt.Errorf("replay: %w", err)
	}
	defer f.Close()
	return Decode(bufio.NewReader(f))
}
