package collection

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-signals/dsp/signal"
)

// ErrLoadFormat is wrapped by every error Load returns for malformed input.
var ErrLoadFormat = errors.New("collection: invalid signal file")

// requiredFields lists the keys every stored record must carry.
var requiredFields = []string{"id", "name", "expression", "type", "samplingRate", "startTime", "endTime"}

// LoadError describes why a signal file was rejected. Index is the record
// position, or -1 for document-level problems.
type LoadError struct {
	Index int
	Field string
	Err   error
}

func (e *LoadError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("%v: %v", ErrLoadFormat, e.Err)
	case e.Field != "":
		return fmt.Sprintf("%v: record %d: field %q: %v", ErrLoadFormat, e.Index, e.Field, e.Err)
	default:
		return fmt.Sprintf("%v: record %d: %v", ErrLoadFormat, e.Index, e.Err)
	}
}

// Unwrap exposes both ErrLoadFormat and the underlying cause.
func (e *LoadError) Unwrap() []error { return []error{ErrLoadFormat, e.Err} }

var errMissing = errors.New("missing")

// Save writes signals as an indented JSON array.
func Save(w io.Writer, signals []signal.Signal) error {
	if signals == nil {
		signals = []signal.Signal{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(signals); err != nil {
		return fmt.Errorf("collection: save: %w", err)
	}
	return nil
}

// Load decodes a JSON array of signals. Every record must carry all
// required fields and validate; otherwise nothing is returned and the
// error is a *LoadError.
func Load(r io.Reader) ([]signal.Signal, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("collection: load: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Index: -1, Err: err}
	}
	if raw == nil {
		return nil, &LoadError{Index: -1, Err: errors.New("expected a JSON array")}
	}

	out := make([]signal.Signal, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, rec := range raw {
		sig, err := decodeRecord(i, rec)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[sig.ID]; dup {
			return nil, &LoadError{Index: i, Field: "id", Err: fmt.Errorf("%w: %q", ErrDuplicateID, sig.ID)}
		}
		seen[sig.ID] = struct{}{}
		out = append(out, sig)
	}
	return out, nil
}

func decodeRecord(i int, rec json.RawMessage) (signal.Signal, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(rec, &fields); err != nil || fields == nil {
		if err == nil {
			err = errors.New("record is not an object")
		}
		return signal.Signal{}, &LoadError{Index: i, Err: err}
	}
	for _, f := range requiredFields {
		v, ok := fields[f]
		if !ok || bytes.Equal(v, []byte("null")) {
			return signal.Signal{}, &LoadError{Index: i, Field: f, Err: errMissing}
		}
	}

	var sig signal.Signal
	if err := json.Unmarshal(rec, &sig); err != nil {
		return signal.Signal{}, &LoadError{Index: i, Err: err}
	}
	if err := sig.Validate(); err != nil {
		return signal.Signal{}, &LoadError{Index: i, Err: err}
	}
	return sig, nil
}

// SaveFile writes signals to path.
func SaveFile(path string, signals []signal.Signal) error {
	var buf bytes.Buffer
	if err := Save(&buf, signals); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("collection: save %s: %w", path, err)
	}
	return nil
}

// LoadFile reads signals from path.
func LoadFile(path string) ([]signal.Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("collection: load %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// SaveTo writes the collection to path and reports the outcome.
func (c *Collection) SaveTo(path string) error {
	signals := c.Signals()
	if err := SaveFile(path, signals); err != nil {
		c.emit(Failed("save", err))
		return err
	}
	c.emit(Saved(len(signals)))
	return nil
}

// LoadFrom replaces the collection with the signals in path. On failure the
// collection is unchanged.
func (c *Collection) LoadFrom(path string) error {
	signals, err := LoadFile(path)
	if err == nil {
		err = c.Replace(signals)
	}
	if err != nil {
		c.emit(Failed("load", err))
		return err
	}
	c.emit(Loaded(len(signals)))
	return nil
}
