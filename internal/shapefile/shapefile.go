// Package shapefile reads and writes drawings as a JSON array of shape
// records.
package shapefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/example/myeditor/internal/shapes"
)

// ErrMalformedShape is matched by every MalformedShapeError.
var ErrMalformedShape = errors.New("malformed shape record")

// MalformedShapeError describes a record that was skipped while decoding.
type MalformedShapeError struct {
	Index  int
	Reason string
}

func (e *MalformedShapeError) Error() string {
	return fmt.Sprintf("shape %d: %s", e.Index, e.Reason)
}

func (e *MalformedShapeError) Is(target error) bool { return target == ErrMalformedShape }

type record struct {
	Type string   `json:"type"`
	X1   *float64 `json:"x1"`
	Y1   *float64 `json:"y1"`
	X2   *float64 `json:"x2"`
	Y2   *float64 `json:"y2"`
}

// Report summarises a decode.
type Report struct {
	Loaded    int
	Skipped   int
	Truncated int
	Problems  []error
}

// Summary renders the report as a status line.
func (r Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Loaded %d shape", r.Loaded)
	if r.Loaded != 1 {
		b.WriteString("s")
	}
	if r.Skipped > 0 {
		fmt.Fprintf(&b, ", skipped %d malformed", r.Skipped)
	}
	if r.Truncated > 0 {
		fmt.Fprintf(&b, ", dropped %d over capacity", r.Truncated)
	}
	return b.String()
}

// Encode writes list as an indented JSON array in drawing order.
func Encode(w io.Writer, list []shapes.Shape) error {
	out := make([]record, 0, len(list))
	for _, s := range list {
		x1, y1, x2, y2 := s.Coords()
		out = append(out, record{Type: s.Kind().String(), X1: &x1, Y1: &y1, X2: &x2, Y2: &y2})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode shapes: %w", err)
	}
	return nil
}

// Decode reads a JSON array of shape records. Malformed records are skipped
// and listed in the report; records after the first capacity accepted ones
// are counted as truncated. A capacity below one means no limit. The error is
// non-nil only when the document itself is not a JSON array.
func Decode(r io.Reader, capacity int) ([]shapes.Shape, Report, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, Report{}, fmt.Errorf("decode shapes: %w", err)
	}
	var (
		list []shapes.Shape
		rep  Report
	)
	for i, msg := range raw {
		s, err := decodeRecord(i, msg)
		if err != nil {
			rep.Skipped++
			rep.Problems = append(rep.Problems, err)
			continue
		}
		if capacity > 0 && len(list) >= capacity {
			rep.Truncated++
			continue
		}
		list = append(list, s)
	}
	rep.Loaded = len(list)
	return list, rep, nil
}

func decodeRecord(i int, msg json.RawMessage) (shapes.Shape, error) {
	var rec record
	if err := json.Unmarshal(msg, &rec); err != nil {
		return nil, &MalformedShapeError{Index: i, Reason: err.Error()}
	}
	if rec.Type == "" {
		return nil, &MalformedShapeError{Index: i, Reason: "missing type"}
	}
	var missing []string
	for _, f := range []struct {
		name string
		v    *float64
	}{{"x1", rec.X1}, {"y1", rec.Y1}, {"x2", rec.X2}, {"y2", rec.Y2}} {
		if f.v == nil {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, &MalformedShapeError{Index: i, Reason: "missing " + strings.Join(missing, ", ")}
	}
	s, err := shapes.NewNamed(rec.Type)
	if err != nil {
		return nil, &MalformedShapeError{Index: i, Reason: err.Error()}
	}
	s.SetCoords(*rec.X1, *rec.Y1, *rec.X2, *rec.Y2)
	return s, nil
}
