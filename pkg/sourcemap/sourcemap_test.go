package sourcemap_test

import (
	"testing"

	"github.com/quarto-dev/q2-sub003/pkg/sourcemap"
)

func TestOriginal(t *testing.T) {
	t.Parallel()

	s := sourcemap.Original(1, 10, 20)

	if s.Kind != sourcemap.KindOriginal {
		t.Errorf("expected KindOriginal, got %v", s.Kind)
	}
	if s.FileID != 1 || s.StartOffset != 10 || s.EndOffset != 20 {
		t.Errorf("unexpected fields: %+v", s)
	}
}

func TestSubstring(t *testing.T) {
	t.Parallel()

	parent := sourcemap.Original(0, 0, 100)
	sub := sourcemap.Substring(parent, 10, 20)

	if sub.Kind != sourcemap.KindSubstring {
		t.Errorf("expected KindSubstring, got %v", sub.Kind)
	}
	if sub.StartOffset != 10 || sub.EndOffset != 20 {
		t.Errorf("unexpected offsets: %+v", sub)
	}
	if sub.Parent == nil || !sub.Parent.Equal(parent) {
		t.Error("expected Parent to equal the original parent value")
	}
}

func TestSubstring_CopiesParentByValue(t *testing.T) {
	t.Parallel()

	parent := sourcemap.Original(0, 0, 100)
	sub := sourcemap.Substring(parent, 10, 20)

	// Mutating the local parent variable after the call must not affect
	// the SourceInfo already captured inside sub.
	parent.StartOffset = 999

	if sub.Parent.StartOffset != 0 {
		t.Errorf("expected sub.Parent to be unaffected by later mutation, got %d", sub.Parent.StartOffset)
	}
}

func TestConcat(t *testing.T) {
	t.Parallel()

	a := sourcemap.Original(0, 0, 5)
	b := sourcemap.Original(1, 0, 8)

	concat := sourcemap.Concat([]sourcemap.SourcePiece{
		{Source: a, Length: 5},
		{Source: b, Length: 8},
	})

	if concat.Kind != sourcemap.KindConcat {
		t.Errorf("expected KindConcat, got %v", concat.Kind)
	}
	if len(concat.Pieces) != 2 {
		t.Fatalf("expected 2 pieces, got %d", len(concat.Pieces))
	}
	if concat.Pieces[0].OffsetInConcat != 0 {
		t.Errorf("expected piece 0 offset 0, got %d", concat.Pieces[0].OffsetInConcat)
	}
	if concat.Pieces[1].OffsetInConcat != 5 {
		t.Errorf("expected piece 1 offset 5, got %d", concat.Pieces[1].OffsetInConcat)
	}
}

func TestFilterProvenance(t *testing.T) {
	t.Parallel()

	s := sourcemap.FilterProvenance("filters/embed.lua", 42)

	if s.Kind != sourcemap.KindFilterProvenance {
		t.Errorf("expected KindFilterProvenance, got %v", s.Kind)
	}
	if s.FilterPath != "filters/embed.lua" || s.Line != 42 {
		t.Errorf("unexpected fields: %+v", s)
	}
}

func TestSourceInfo_Equal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		a, b     sourcemap.SourceInfo
		expected bool
	}{
		{
			name:     "equal Original",
			a:        sourcemap.Original(0, 0, 10),
			b:        sourcemap.Original(0, 0, 10),
			expected: true,
		},
		{
			name:     "different FileID",
			a:        sourcemap.Original(0, 0, 10),
			b:        sourcemap.Original(1, 0, 10),
			expected: false,
		},
		{
			name:     "different offsets",
			a:        sourcemap.Original(0, 0, 10),
			b:        sourcemap.Original(0, 0, 11),
			expected: false,
		},
		{
			name:     "different Kind",
			a:        sourcemap.Original(0, 0, 10),
			b:        sourcemap.FilterProvenance("x", 1),
			expected: false,
		},
		{
			name:     "equal Substring",
			a:        sourcemap.Substring(sourcemap.Original(0, 0, 100), 5, 10),
			b:        sourcemap.Substring(sourcemap.Original(0, 0, 100), 5, 10),
			expected: true,
		},
		{
			name:     "Substring with different parent",
			a:        sourcemap.Substring(sourcemap.Original(0, 0, 100), 5, 10),
			b:        sourcemap.Substring(sourcemap.Original(1, 0, 100), 5, 10),
			expected: false,
		},
		{
			name:     "equal FilterProvenance",
			a:        sourcemap.FilterProvenance("a.lua", 3),
			b:        sourcemap.FilterProvenance("a.lua", 3),
			expected: true,
		},
		{
			name:     "different FilterProvenance line",
			a:        sourcemap.FilterProvenance("a.lua", 3),
			b:        sourcemap.FilterProvenance("a.lua", 4),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.a.Equal(tt.b); got != tt.expected {
				t.Errorf("Equal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSourceInfo_Equal_Concat(t *testing.T) {
	t.Parallel()

	a := sourcemap.Concat([]sourcemap.SourcePiece{
		{Source: sourcemap.Original(0, 0, 5), Length: 5},
		{Source: sourcemap.Original(1, 0, 5), Length: 5},
	})
	b := sourcemap.Concat([]sourcemap.SourcePiece{
		{Source: sourcemap.Original(0, 0, 5), Length: 5},
		{Source: sourcemap.Original(1, 0, 5), Length: 5},
	})
	c := sourcemap.Concat([]sourcemap.SourcePiece{
		{Source: sourcemap.Original(0, 0, 5), Length: 5},
	})

	if !a.Equal(b) {
		t.Error("expected identical concats to be equal")
	}
	if a.Equal(c) {
		t.Error("expected concats of different length to be unequal")
	}
}

func TestZero(t *testing.T) {
	t.Parallel()

	if sourcemap.Zero.Kind != sourcemap.KindOriginal {
		t.Errorf("expected Zero.Kind == KindOriginal, got %v", sourcemap.Zero.Kind)
	}
	if sourcemap.Zero.StartOffset != 0 || sourcemap.Zero.EndOffset != 0 {
		t.Errorf("expected Zero to have zero offsets, got %+v", sourcemap.Zero)
	}
}
