package lineending

// Counts holds the number of breaks of each concrete kind in a text.
type Counts struct {
	CRLF int
	CR   int
	LF   int
}

// Total returns the number of breaks.
func (c Counts) Total() int {
	return c.CRLF + c.CR + c.LF
}

// Kind derives the classification from the counts.
func (c Counts) Kind() Kind {
	kind := None
	distinct := 0
	for _, n := range []struct {
		kind  Kind
		count int
	}{{CRLF, c.CRLF}, {CR, c.CR}, {LF, c.LF}} {
		if n.count > 0 {
			kind = n.kind
			distinct++
		}
	}
	if distinct > 1 {
		return Mixed
	}
	return kind
}

// scan calls fn for every break in text with its byte offset and kind.
// A "\r\n" pair is reported once, as CRLF. fn returns false to stop.
func scan(text string, fn func(pos int, kind Kind) bool) {
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				if !fn(i, CRLF) {
					return
				}
				i++
				continue
			}
			if !fn(i, CR) {
				return
			}
		case '\n':
			if !fn(i, LF) {
				return
			}
		}
	}
}

// Count returns the number of breaks of each kind in text.
func Count(text string) Counts {
	var c Counts
	scan(text, func(_ int, kind Kind) bool {
		switch kind {
		case CRLF:
			c.CRLF++
		case CR:
			c.CR++
		case LF:
			c.LF++
		}
		return true
	})
	return c
}

// Classify returns the line-ending convention of text: None when it has
// no breaks, Mixed when it has more than one kind.
func Classify(text string) Kind {
	seen := None
	result := None
	scan(text, func(_ int, kind Kind) bool {
		if seen == None {
			seen = kind
			result = kind
			return true
		}
		if kind != seen {
			result = Mixed
			return false
		}
		return true
	})
	return result
}

// First returns the kind of the first break in text, or None.
func First(text string) Kind {
	first := None
	scan(text, func(_ int, kind Kind) bool {
		first = kind
		return false
	})
	return first
}

// Lines splits text at its breaks. Each line is returned with the kind of
// the break that ends it; the last line always ends with None and may be
// empty.
func Lines(text string) ([]string, []Kind) {
	var lines []string
	var ends []Kind
	start := 0
	scan(text, func(pos int, kind Kind) bool {
		lines = append(lines, text[start:pos])
		ends = append(ends, kind)
		start = pos + 1
		if kind == CRLF {
			start++
		}
		return true
	})
	lines = append(lines, text[start:])
	ends = append(ends, None)
	return lines, ends
}
