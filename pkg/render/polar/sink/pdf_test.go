package sink

import (
	"bytes"
	"os/exec"
	"testing"
)

func requireRsvg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		t.Skip("rsvg-convert not installed")
	}
}

func TestRenderPDFSignature(t *testing.T) {
	requireRsvg(t)

	pdf, err := RenderPDF(rosePlot(t))
	if err != nil {
		t.Fatalf("RenderPDF() error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("RenderPDF() returned empty output")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Errorf("PDF output missing %%PDF- signature, got %q", pdf[:min(8, len(pdf))])
	}
}

func TestRenderPNGSignature(t *testing.T) {
	requireRsvg(t)

	png, err := RenderPNG(rosePlot(t))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("PNG output missing signature")
	}
}
