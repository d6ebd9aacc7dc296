package shapefile

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/example/myeditor/internal/shapes"
)

func TestRoundTrip(t *testing.T) {
	var in []shapes.Shape
	for i, k := range shapes.Kinds() {
		s, err := shapes.NewAt(k, float64(i), 2.5, float64(i*10), -4)
		if err != nil {
			t.Fatalf("NewAt: %v", err)
		}
		in = append(in, s)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, in); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, rep, err := Decode(&buf, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if rep.Loaded != len(in) || rep.Skipped != 0 || rep.Truncated != 0 {
		t.Fatalf("unexpected report %+v", rep)
	}
	for i := range in {
		if in[i].Kind() != out[i].Kind() {
			t.Fatalf("shape %d kind %v, want %v", i, out[i].Kind(), in[i].Kind())
		}
		a1, b1, c1, d1 := in[i].Coords()
		a2, b2, c2, d2 := out[i].Coords()
		if a1 != a2 || b1 != b2 || c1 != c2 || d1 != d2 {
			t.Fatalf("shape %d coords changed", i)
		}
	}
}

func TestEncodeUsesKindIdentifiers(t *testing.T) {
	s, _ := shapes.NewAt(shapes.KindRect, 10, 10, 100, 40)
	var buf bytes.Buffer
	if err := Encode(&buf, []shapes.Shape{s}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(buf.String(), `"type": "rectangle"`) {
		t.Fatalf("unexpected output %s", buf.String())
	}
}

func TestDecodeSkipsMalformedRecords(t *testing.T) {
	doc := `[
		{"type":"line","x1":0,"y1":0,"x2":5,"y2":5},
		{"type":"hexagon","x1":0,"y1":0,"x2":5,"y2":5},
		{"type":"rectangle","x1":0,"y1":0,"x2":5},
		{"type":"ellipse","x1":"a","y1":0,"x2":5,"y2":5},
		42,
		{"type":"RectShape","x1":1,"y1":2,"x2":3,"y2":4}
	]`
	list, rep, err := Decode(strings.NewReader(doc), 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(list) != 2 || rep.Loaded != 2 || rep.Skipped != 4 {
		t.Fatalf("got %d shapes, report %+v", len(list), rep)
	}
	if list[1].Kind() != shapes.KindRect {
		t.Fatalf("legacy name decoded as %v", list[1].Kind())
	}
	for _, p := range rep.Problems {
		if !errors.Is(p, ErrMalformedShape) {
			t.Fatalf("problem %v does not match ErrMalformedShape", p)
		}
	}
	var merr *MalformedShapeError
	if !errors.As(rep.Problems[1], &merr) || merr.Index != 2 || merr.Reason != "missing y2" {
		t.Fatalf("unexpected problem %v", rep.Problems[1])
	}
}

func TestDecodeTruncatesAtCapacity(t *testing.T) {
	doc := `[
		{"type":"point","x1":1,"y1":1,"x2":1,"y2":1},
		{"type":"point","x1":2,"y1":2,"x2":2,"y2":2},
		{"type":"point","x1":3,"y1":3,"x2":3,"y2":3}
	]`
	list, rep, err := Decode(strings.NewReader(doc), 2)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(list) != 2 || rep.Truncated != 1 {
		t.Fatalf("got %d shapes, report %+v", len(list), rep)
	}
	if got := rep.Summary(); got != "Loaded 2 shapes, dropped 1 over capacity" {
		t.Fatalf("summary %q", got)
	}
}

func TestDecodeRejectsNonArray(t *testing.T) {
	for _, doc := range []string{`{"type":"line"}`, `not json`, ``} {
		if _, _, err := Decode(strings.NewReader(doc), 0); err == nil {
			t.Fatalf("expected error for %q", doc)
		}
	}
}
