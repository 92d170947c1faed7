// Package markdown builds lossless syntax trees for Markdown documents.
//
// Tokens come from a single-pass tokenizer that classifies every byte of the
// input. Block structure comes from goldmark: each recognized block becomes a
// node spanning the whole lines its content occupies, and tokens outside any
// block stay at document level. The token stream is authoritative, so the
// tree renders back to the input byte for byte whatever ranges goldmark
// reports.
package markdown

import "github.com/yaklabco/syntree/pkg/syntax"

// Token kinds.
const (
	Text syntax.Kind = iota
	Whitespace
	Newline
	HeadingMarker
	SetextUnderline
	ListBullet
	ListNumber
	BlockquoteMarker
	CodeFence
	CodeFenceInfo
	EmphasisMarker
	LinkOpen
	LinkClose
	ParenOpen
	ParenClose
	ImageMarker
	Backtick
	EscapedChar
	HTML
	ThematicBreak

	// Node kinds.

	Document
	Heading
	Paragraph
	Blockquote
	List
	ListItem
	CodeBlock
	FencedCode
	HTMLBlock
	Table
)

//nolint:gochecknoglobals // Static kind table
var kindName = syntax.KindTable([]string{
	Text:             "TEXT",
	Whitespace:       "WHITESPACE",
	Newline:          "NEWLINE",
	HeadingMarker:    "HEADING_MARKER",
	SetextUnderline:  "SETEXT_UNDERLINE",
	ListBullet:       "LIST_BULLET",
	ListNumber:       "LIST_NUMBER",
	BlockquoteMarker: "BLOCKQUOTE_MARKER",
	CodeFence:        "CODE_FENCE",
	CodeFenceInfo:    "CODE_FENCE_INFO",
	EmphasisMarker:   "EMPHASIS_MARKER",
	LinkOpen:         "LINK_OPEN",
	LinkClose:        "LINK_CLOSE",
	ParenOpen:        "PAREN_OPEN",
	ParenClose:       "PAREN_CLOSE",
	ImageMarker:      "IMAGE_MARKER",
	Backtick:         "BACKTICK",
	EscapedChar:      "ESCAPED_CHAR",
	HTML:             "HTML",
	ThematicBreak:    "THEMATIC_BREAK",
	Document:         "DOCUMENT",
	Heading:          "HEADING",
	Paragraph:        "PARAGRAPH",
	Blockquote:       "BLOCKQUOTE",
	List:             "LIST",
	ListItem:         "LIST_ITEM",
	CodeBlock:        "CODE_BLOCK",
	FencedCode:       "FENCED_CODE",
	HTMLBlock:        "HTML_BLOCK",
	Table:            "TABLE",
})

// KindName returns the display name of a markdown kind.
func KindName(kind syntax.Kind) string {
	return syntax.NameOf(kindName, kind)
}
