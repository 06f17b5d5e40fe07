package cli

import "testing"

func TestBrailleBufSetPixel(t *testing.T) {
	b := newBrailleBuf(2, 1)
	b.setPixel(0, 0)

	lines := b.toLines()
	if len(lines) != 1 {
		t.Fatalf("toLines() returned %d lines, want 1", len(lines))
	}
	if lines[0] != "⠁ " {
		t.Errorf("lines[0] = %q, want %q", lines[0], "⠁ ")
	}
}

func TestBrailleBufIgnoresOutOfRange(t *testing.T) {
	b := newBrailleBuf(1, 1)
	b.setPixel(-1, 0)
	b.setPixel(0, -1)
	b.setPixel(2, 0)
	b.setPixel(0, 4)

	if b.toLines()[0] != " " {
		t.Error("out-of-range pixels should not mark the canvas")
	}
}

func TestBrailleDrawLine(t *testing.T) {
	b := newBrailleBuf(4, 1)
	b.drawLineMicro(0, 0, 7, 0)

	line := b.toLines()[0]
	for i, r := range line {
		if r == ' ' {
			t.Errorf("cell %d empty, horizontal line should span the row", i)
		}
	}
}
