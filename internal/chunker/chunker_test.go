package chunker

import (
	"strings"
	"testing"
)

func TestChunk_EmptyInput(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty string", text: ""},
		{name: "spaces only", text: "    "},
		{name: "newlines and tabs", text: "\n\n\t \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Chunk(tt.text, DefaultChunkSize, DefaultOverlap); len(got) != 0 {
				t.Errorf("Chunk() = %v, want empty", got)
			}
		})
	}
}

func TestChunk_ShortInput(t *testing.T) {
	text := "Revenue grew 20% in Q1."
	got := Chunk(text, DefaultChunkSize, DefaultOverlap)
	if len(got) != 1 {
		t.Fatalf("Chunk() returned %d chunks, want 1", len(got))
	}
	if got[0] != text {
		t.Errorf("Chunk() = %q, want %q", got[0], text)
	}
}

func TestChunk_NormalizesWhitespace(t *testing.T) {
	got := Chunk("hello\n\nworld\t foo   bar", DefaultChunkSize, DefaultOverlap)
	if len(got) != 1 {
		t.Fatalf("Chunk() returned %d chunks, want 1", len(got))
	}
	if got[0] != "hello world foo bar" {
		t.Errorf("Chunk() = %q, want %q", got[0], "hello world foo bar")
	}
}

func TestChunk_SizeBound(t *testing.T) {
	text := strings.Repeat("The CEO resigned in March. ", 200)
	chunks := Chunk(text, DefaultChunkSize, DefaultOverlap)
	if len(chunks) < 2 {
		t.Fatalf("Chunk() returned %d chunks, want multiple", len(chunks))
	}
	for i, c := range chunks {
		if n := len([]rune(c)); n > DefaultChunkSize {
			t.Errorf("chunk %d has %d chars, want <= %d", i, n, DefaultChunkSize)
		}
	}
}

func TestChunk_Overlap(t *testing.T) {
	text := strings.Repeat("alpha bravo charlie delta echo ", 100)
	size, overlap := 200, 50
	chunks := Chunk(text, size, overlap)
	if len(chunks) < 3 {
		t.Fatalf("Chunk() returned %d chunks, want >= 3", len(chunks))
	}

	// Each chunk after the first must start with text that appeared at the
	// end of its predecessor.
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1]
		head := chunks[i]
		if len([]rune(head)) > overlap {
			head = string([]rune(head)[:overlap])
		}
		if !strings.Contains(prev, strings.TrimSpace(head)) {
			t.Errorf("chunk %d does not overlap predecessor: head %q", i, head)
		}
	}
}

func TestChunk_NoMidWordCut(t *testing.T) {
	text := strings.Repeat("performance evaluation methodology ", 60)
	words := map[string]bool{"performance": true, "evaluation": true, "methodology": true}
	chunks := Chunk(text, 200, 50)
	for i, c := range chunks[:len(chunks)-1] {
		last := c[strings.LastIndex(c, " ")+1:]
		if !words[last] {
			t.Errorf("chunk %d ends mid-word: %q", i, last)
		}
	}
}

func TestChunk_MidpointBackoff(t *testing.T) {
	// The only space in the first window falls before its midpoint, so the
	// cut must stay at the full window size instead of backing off.
	text := strings.Repeat("x", 50) + " " + strings.Repeat("y", 400)
	chunks := Chunk(text, 200, 20)
	if len(chunks) == 0 {
		t.Fatal("Chunk() returned no chunks")
	}
	if n := len([]rune(chunks[0])); n != 200 {
		t.Errorf("first chunk has %d chars, want 200 (no backoff before midpoint)", n)
	}
}

func TestChunk_Termination(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		size    int
		overlap int
	}{
		{name: "overlap equals size", text: strings.Repeat("word ", 500), size: 100, overlap: 100},
		{name: "overlap exceeds size", text: strings.Repeat("word ", 500), size: 50, overlap: 400},
		{name: "size one", text: "abc def", size: 1, overlap: 0},
		{name: "unbroken run", text: strings.Repeat("z", 5000), size: 800, overlap: 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Chunk(tt.text, tt.size, tt.overlap)
			// Termination alone is the property; the bound below is loose
			// enough to hold for any strictly advancing window.
			normalized := strings.Join(strings.Fields(tt.text), " ")
			if len(chunks) > len(normalized)+1 {
				t.Errorf("got %d chunks for %d chars", len(chunks), len(normalized))
			}
		})
	}
}

func TestChunk_CountBound(t *testing.T) {
	text := strings.Repeat("one two three four five six seven eight nine ten ", 200)
	size, overlap := 400, 100
	chunks := Chunk(text, size, overlap)

	normalized := strings.Join(strings.Fields(text), " ")
	l := len([]rune(normalized))
	// Backoff can shorten a window to just past size/2, so the effective
	// stride is at least size/2 - overlap.
	stride := size/2 - overlap
	bound := l/stride + 2
	if len(chunks) > bound {
		t.Errorf("got %d chunks, want <= %d for %d chars", len(chunks), bound, l)
	}
}

func TestChunk_WordCoverage(t *testing.T) {
	text := strings.Repeat("merger arbitrage liquidity covenant dividend ", 80)
	chunks := Chunk(text, 300, 60)

	seen := make(map[string]bool)
	for _, c := range chunks {
		for _, w := range strings.Fields(c) {
			seen[w] = true
		}
	}
	for _, w := range []string{"merger", "arbitrage", "liquidity", "covenant", "dividend"} {
		if !seen[w] {
			t.Errorf("word %q missing from chunk output", w)
		}
	}
}
