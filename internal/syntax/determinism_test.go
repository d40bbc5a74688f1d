package syntax

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestParseIsDeterministic guards against the grammar or the preorder
// lowering depending on map iteration order or other non-deterministic
// state: parsing identical input twice must yield byte-for-byte
// identical trees.
func TestParseIsDeterministic(t *testing.T) {
	text := `
module shapes.mojom;

import "geometry.mojom";

const int32 kMaxPoints = 64;

enum Kind {
  CIRCLE,
  SQUARE,
  TRIANGLE,
};

struct Shape {
  Kind kind;
  array<float> points;
  string? label;
};

interface Canvas {
  AddShape(Shape shape) => (bool ok);
  Clear();
};
`
	first, err := Parse(text)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := Parse(text)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated parse of identical text diverged (-first +second):\n%s", diff)
	}
}

func TestParseEventSequenceIsDeterministic(t *testing.T) {
	text := `
interface Greeter {
  enum Mood { HAPPY, SAD };
  Hello(string name) => (string reply);
};
`
	tree, err := Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	collect := func() []EventKind {
		var kinds []EventKind
		p := NewPreorder(tree)
		for {
			ev, ok := p.Next()
			if !ok {
				break
			}
			kinds = append(kinds, ev.Kind)
		}
		return kinds
	}

	first := collect()
	second := collect()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("restarted traversal diverged (-first +second):\n%s", diff)
	}
}
