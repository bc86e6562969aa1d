package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"docchat-be/internal/apperr"
)

// DocumentExtractor turns a raw document byte stream into plain text. The
// context bounds the parse: extraction of a corrupt or adversarial document
// must fail, never wedge the calling request.
type DocumentExtractor interface {
	Extract(ctx context.Context, payload []byte) (string, error)
}

// PDF is the in-scope DocumentExtractor, backed by ledongthuc/pdf.
type PDF struct{}

func NewPDF() *PDF {
	return &PDF{}
}

func (*PDF) Extract(ctx context.Context, payload []byte) (string, error) {
	return ExtractPDF(ctx, payload)
}

// maxParseTime bounds a parse when the caller's context carries no deadline.
// A corrupt page tree (a /Kids entry referencing its own node, for example)
// sends the parser into an unbounded walk, so no parse runs without a clock.
const maxParseTime = 30 * time.Second

// ExtractPDF turns a raw PDF byte stream into plain text, one "\n" inserted
// at every page boundary. A corrupt document or one with no extractable text
// (scanned image-only PDFs) fails with apperr.ErrExtraction; downstream
// chunking of empty text would be meaningless, so this is never tolerated
// silently. A parse that exceeds the context deadline is abandoned and
// reported as an extraction failure too.
func ExtractPDF(ctx context.Context, payload []byte) (string, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, maxParseTime)
		defer cancel()
	}

	type parseResult struct {
		text string
		err  error
	}
	resultCh := make(chan parseResult, 1)

	// The parser has no cancellation hook, so it runs on its own goroutine
	// and a parse that outlives the context is abandoned; the buffered
	// channel lets the goroutine exit either way.
	go func() {
		text, err := parsePlainText(payload)
		resultCh <- parseResult{text: text, err: err}
	}()

	select {
	case result := <-resultCh:
		return result.text, result.err
	case <-ctx.Done():
		return "", apperr.Wrap(apperr.ErrExtraction, ctx.Err())
	}
}

func parsePlainText(payload []byte) (text string, err error) {
	// The library panics on some malformed object graphs; a corrupt document
	// is an extraction failure, not a crash.
	defer func() {
		if r := recover(); r != nil {
			err = apperr.Wrap(apperr.ErrExtraction, fmt.Errorf("malformed document: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return "", apperr.Wrap(apperr.ErrExtraction, err)
	}

	var sb strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", apperr.Wrap(apperr.ErrExtraction, err)
		}
		if pageText != "" {
			sb.WriteString(pageText)
			sb.WriteString("\n")
		}
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", apperr.Wrap(apperr.ErrExtraction, errNoText)
	}
	return sb.String(), nil
}

var errNoText = errors.New("no text could be extracted, document may be scanned or image-only")
