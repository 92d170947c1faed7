package markdown

import "github.com/yaklabco/syntree/pkg/syntax"

// Span is a classified byte range of the input.
type Span struct {
	Kind       syntax.Kind
	Start, End int
}

// Tokenize classifies every byte of src in one pass. The returned spans are
// contiguous, non-overlapping and cover [0, len(src)).
func Tokenize(src []byte) []Span {
	if len(src) == 0 {
		return nil
	}

	const initialCapacityDivisor = 4
	tz := &tokenizer{
		src:   src,
		spans: make([]Span, 0, len(src)/initialCapacityDivisor+1),
	}
	for tz.pos < len(tz.src) {
		tz.line()
	}
	return tz.spans
}

type tokenizer struct {
	src   []byte
	spans []Span
	pos   int
}

// line handles one line: block markers at the start, then inline content.
func (t *tokenizer) line() {
	t.run(Whitespace, isBlank)
	if t.eof() {
		return
	}

	switch c := t.src[t.pos]; {
	case c == '#':
		if t.headingMarker() {
			t.inline()
			return
		}
	case c == '>':
		t.single(BlockquoteMarker)
		if t.at(' ') {
			t.single(Whitespace)
		}
		t.inline()
		return
	case c == '-' || c == '+' || c == '*':
		if t.bulletOrBreak(c) {
			return
		}
	case c == '_':
		if t.isBreakLine(c) {
			t.restOfLine(ThematicBreak)
			return
		}
	case c == '`' || c == '~':
		if t.codeFence(c) {
			return
		}
	case c == '=':
		if t.setextUnderline(c) {
			return
		}
	case c == '<':
		t.restOfLine(HTML)
		return
	case isDigit(c):
		if t.orderedMarker() {
			t.inline()
			return
		}
	}

	if t.at('-') && t.setextUnderline('-') {
		return
	}
	t.inline()
}

// headingMarker consumes an ATX marker of one to six '#' followed by a blank
// or end of line.
func (t *tokenizer) headingMarker() bool {
	start := t.pos
	n := t.count('#', start)
	if n > 6 || !t.blankOrEOL(start+n) {
		return false
	}
	t.pos = start + n
	t.emit(HeadingMarker, start)
	if !t.eof() && isBlank(t.src[t.pos]) {
		t.single(Whitespace)
	}
	return true
}

func (t *tokenizer) bulletOrBreak(marker byte) bool {
	if t.isBreakLine(marker) {
		t.restOfLine(ThematicBreak)
		return true
	}
	if t.pos+1 >= len(t.src) || !isBlank(t.src[t.pos+1]) {
		return false
	}
	t.single(ListBullet)
	t.single(Whitespace)
	t.inline()
	return true
}

// isBreakLine reports whether the rest of the line holds at least three
// markers and nothing but blanks besides.
func (t *tokenizer) isBreakLine(marker byte) bool {
	n := 0
	for i := t.pos; i < len(t.src) && !isEOL(t.src[i]); i++ {
		switch {
		case t.src[i] == marker:
			n++
		case !isBlank(t.src[i]):
			return false
		}
	}
	return n >= 3
}

func (t *tokenizer) codeFence(fence byte) bool {
	n := t.count(fence, t.pos)
	if n < 3 {
		return false
	}

	start := t.pos
	t.pos += n
	t.emit(CodeFence, start)
	if !t.eof() && !isEOL(t.src[t.pos]) {
		t.restOfLine(CodeFenceInfo)
	} else {
		t.newline()
	}

	for !t.eof() {
		if t.closingFence(fence, n) {
			return true
		}
		t.restOfLine(Text)
	}
	return true
}

// closingFence consumes a closing fence line: up to three spaces, at least
// n fence characters, then only blanks.
func (t *tokenizer) closingFence(fence byte, n int) bool {
	indent := 0
	for indent < 3 && t.pos+indent < len(t.src) && t.src[t.pos+indent] == ' ' {
		indent++
	}
	fenceStart := t.pos + indent
	run := t.count(fence, fenceStart)
	if run < n {
		return false
	}
	end := fenceStart + run
	for i := end; i < len(t.src) && !isEOL(t.src[i]); i++ {
		if !isBlank(t.src[i]) {
			return false
		}
	}

	if indent > 0 {
		t.pos = fenceStart
		t.emit(Whitespace, fenceStart-indent)
	}
	t.pos = end
	t.emit(CodeFence, fenceStart)
	t.run(Whitespace, isBlank)
	t.newline()
	return true
}

func (t *tokenizer) setextUnderline(c byte) bool {
	n := t.count(c, t.pos)
	if n == 0 {
		return false
	}
	for i := t.pos + n; i < len(t.src) && !isEOL(t.src[i]); i++ {
		if !isBlank(t.src[i]) {
			return false
		}
	}
	t.restOfLine(SetextUnderline)
	return true
}

// orderedMarker consumes `1.` or `1)` followed by a blank.
func (t *tokenizer) orderedMarker() bool {
	end := t.pos
	for end < len(t.src) && isDigit(t.src[end]) {
		end++
	}
	if end+1 >= len(t.src) || (t.src[end] != '.' && t.src[end] != ')') || !isBlank(t.src[end+1]) {
		return false
	}

	start := t.pos
	t.pos = end + 1
	t.emit(ListNumber, start)
	t.single(Whitespace)
	return true
}

// inline tokenizes up to and including the end of the line.
func (t *tokenizer) inline() {
	for !t.eof() {
		switch c := t.src[t.pos]; c {
		case '\n', '\r':
			t.newline()
			return
		case '\\':
			t.escape()
		case '`':
			t.run(Backtick, func(b byte) bool { return b == '`' })
		case '*', '_':
			t.run(EmphasisMarker, func(b byte) bool { return b == c })
		case '[':
			t.single(LinkOpen)
		case ']':
			t.single(LinkClose)
		case '(':
			t.single(ParenOpen)
		case ')':
			t.single(ParenClose)
		case '!':
			t.single(ImageMarker)
		case '<':
			t.inlineHTML()
		case ' ', '\t':
			t.run(Whitespace, isBlank)
		default:
			t.run(Text, isPlain)
		}
	}
}

func (t *tokenizer) escape() {
	start := t.pos
	t.pos++
	if !t.eof() && isPunctuation(t.src[t.pos]) {
		t.pos++
		t.emit(EscapedChar, start)
		return
	}
	t.emit(Text, start)
}

func (t *tokenizer) inlineHTML() {
	start := t.pos
	t.pos++
	for !t.eof() && t.src[t.pos] != '>' && !isEOL(t.src[t.pos]) {
		t.pos++
	}
	if t.at('>') {
		t.pos++
		t.emit(HTML, start)
		return
	}
	t.emit(Text, start)
}

// restOfLine emits the remainder of the line as one span, then the newline.
func (t *tokenizer) restOfLine(kind syntax.Kind) {
	t.run(kind, func(b byte) bool { return !isEOL(b) })
	t.newline()
}

// newline consumes LF or CRLF (or a lone CR).
func (t *tokenizer) newline() {
	start := t.pos
	if t.at('\r') {
		t.pos++
	}
	if t.at('\n') {
		t.pos++
	}
	if t.pos > start {
		t.emit(Newline, start)
	}
}

// run consumes bytes while pred holds and emits them as one span.
func (t *tokenizer) run(kind syntax.Kind, pred func(byte) bool) {
	start := t.pos
	for !t.eof() && pred(t.src[t.pos]) {
		t.pos++
	}
	if t.pos > start {
		t.emit(kind, start)
	}
}

func (t *tokenizer) single(kind syntax.Kind) {
	t.pos++
	t.emit(kind, t.pos-1)
}

func (t *tokenizer) emit(kind syntax.Kind, start int) {
	t.spans = append(t.spans, Span{Kind: kind, Start: start, End: t.pos})
}

func (t *tokenizer) count(c byte, from int) int {
	n := 0
	for from+n < len(t.src) && t.src[from+n] == c {
		n++
	}
	return n
}

func (t *tokenizer) blankOrEOL(i int) bool {
	return i >= len(t.src) || isBlank(t.src[i]) || isEOL(t.src[i])
}

func (t *tokenizer) at(c byte) bool {
	return t.pos < len(t.src) && t.src[t.pos] == c
}

func (t *tokenizer) eof() bool {
	return t.pos >= len(t.src)
}

func isBlank(b byte) bool { return b == ' ' || b == '\t' }

func isEOL(b byte) bool { return b == '\n' || b == '\r' }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// isPlain reports whether b can continue a TEXT span.
func isPlain(b byte) bool {
	switch b {
	case '\\', '`', '*', '_', '[', ']', '(', ')', '!', '<', ' ', '\t', '\n', '\r':
		return false
	default:
		return true
	}
}

// isPunctuation reports whether b is ASCII punctuation, the set a backslash
// can escape.
func isPunctuation(b byte) bool {
	return (b >= '!' && b <= '/') || (b >= ':' && b <= '@') || (b >= '[' && b <= '`') || (b >= '{' && b <= '~')
}
