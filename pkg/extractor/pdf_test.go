package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"docchat-be/internal/apperr"
)

// buildPDF assembles a syntactically valid PDF (header, body objects, xref
// with real byte offsets, trailer) around the given object bodies, so the
// document gets past header and xref parsing and exercises the object graph.
func buildPDF(objects ...string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, body := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xref)
	return buf.Bytes()
}

func TestExtractPDFRejectsGarbage(t *testing.T) {
	cases := []struct {
		name    string
		payload []byte
	}{
		{"empty", nil},
		{"not a pdf", []byte("just some plain text")},
		{"truncated header", []byte("%PDF-1.7")},
	}

	p := NewPDF()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.Extract(context.Background(), tc.payload)
			if !errors.Is(err, apperr.ErrExtraction) {
				t.Errorf("Extract() error = %v, want ErrExtraction", err)
			}
		})
	}
}

// A page tree whose /Kids references its own node makes the underlying
// parser walk the cycle without terminating. Extraction must fail within the
// context deadline instead of wedging the request.
func TestExtractPDFCyclicPageTree(t *testing.T) {
	payload := buildPDF(
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [2 0 R] /Count 1 >>",
	)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := NewPDF().Extract(ctx, payload)
	elapsed := time.Since(start)

	if !errors.Is(err, apperr.ErrExtraction) {
		t.Errorf("Extract() error = %v, want ErrExtraction", err)
	}
	if elapsed > 2*time.Second {
		t.Errorf("Extract() took %v, must abandon a stuck parse at the deadline", elapsed)
	}
}

// Documents that pass header and xref parsing but carry a corrupt object
// graph must still fail with ErrExtraction, whether the parser errors or
// panics internally.
func TestExtractPDFCorruptObjectGraph(t *testing.T) {
	cases := []struct {
		name    string
		payload []byte
	}{
		{
			"dangling page reference",
			buildPDF(
				"<< /Type /Catalog /Pages 2 0 R >>",
				"<< /Type /Pages /Kids [9 0 R] /Count 1 >>",
			),
		},
		{
			"root is not a dictionary",
			buildPDF(
				"(not a catalog)",
				"<< /Type /Pages /Kids [] /Count 0 >>",
			),
		},
		{
			"garbage object body",
			buildPDF(
				"<< /Type /Catalog /Pages 2 0 R >>",
				"%%&*!! not an object",
			),
		},
	}

	p := NewPDF()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			_, err := p.Extract(ctx, tc.payload)
			if !errors.Is(err, apperr.ErrExtraction) {
				t.Errorf("Extract() error = %v, want ErrExtraction", err)
			}
		})
	}
}
