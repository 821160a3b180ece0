package lineending

import (
	"fmt"
	"strings"

	"golang.org/x/text/transform"
)

// Convert rewrites every break in text to the target sequence. Content
// between breaks is copied verbatim. target must be CRLF, CR or LF.
func Convert(text string, target Kind) (string, error) {
	seq, err := target.Sequence()
	if err != nil {
		return "", fmt.Errorf("convert to %s: %w", target, err)
	}

	var b strings.Builder
	b.Grow(len(text))
	start := 0
	scan(text, func(pos int, kind Kind) bool {
		b.WriteString(text[start:pos])
		b.WriteString(seq)
		start = pos + 1
		if kind == CRLF {
			start++
		}
		return true
	})
	b.WriteString(text[start:])
	return b.String(), nil
}

// converter is the streaming form of Convert. A "\r" at the end of a
// non-final chunk is held back so that a CRLF split across chunks is
// still seen as one break.
type converter struct {
	transform.NopResetter
	seq []byte
}

// NewTransformer returns a transformer that rewrites every break to the
// target sequence, for use with transform.NewReader or transform.NewWriter.
func NewTransformer(target Kind) (transform.Transformer, error) {
	seq, err := target.Sequence()
	if err != nil {
		return nil, fmt.Errorf("convert to %s: %w", target, err)
	}
	return &converter{seq: []byte(seq)}, nil
}

func (c *converter) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		ch := src[nSrc]
		if ch != '\r' && ch != '\n' {
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = ch
			nDst++
			nSrc++
			continue
		}

		width := 1
		if ch == '\r' {
			if nSrc+1 >= len(src) && !atEOF {
				return nDst, nSrc, transform.ErrShortSrc
			}
			if nSrc+1 < len(src) && src[nSrc+1] == '\n' {
				width = 2
			}
		}
		if len(dst)-nDst < len(c.seq) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], c.seq)
		nSrc += width
	}
	return nDst, nSrc, nil
}
