package scoring

import "strings"

// ObjectExtractor scans an arbitrarily-chunked character stream and emits
// each balanced top-level {...} object as soon as its braces close. Every
// character seen at depth zero (array brackets, commas, whitespace) is
// dropped, so a streamed JSON array of objects turns into one emit per
// element without ever buffering the whole array.
//
// The extractor is driven by a single sequential consumer; it is not safe
// for concurrent use. Malformed input never errors, it just never emits.
type ObjectExtractor struct {
	depth int
	buf   strings.Builder
	emit  func(object string) error
}

func NewObjectExtractor(emit func(object string) error) *ObjectExtractor {
	return &ObjectExtractor{emit: emit}
}

// Feed consumes the next chunk. Chunk boundaries carry no meaning: the input
// may be split anywhere, including mid-object or mid-character sequence.
func (e *ObjectExtractor) Feed(chunk string) error {
	for _, c := range chunk {
		if c == '{' {
			e.depth++
		}
		if e.depth > 0 {
			e.buf.WriteRune(c)
		}
		if c == '}' {
			e.depth--
			if e.depth == 0 {
				object := e.buf.String()
				e.buf.Reset()
				if e.emit != nil {
					if err := e.emit(object); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// Reset discards any partial buffer and restarts the scanner.
func (e *ObjectExtractor) Reset() {
	e.depth = 0
	e.buf.Reset()
}
