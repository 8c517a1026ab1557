package client

import (
	"fmt"
	"io"
	"sync"
)

// ResultElement receives the text shown to the user after a submission
type ResultElement interface {
	SetText(text string)
}

// TextElement is an in-memory ResultElement. Each SetText overwrites the previous text.
type TextElement struct {
	mu     sync.Mutex
	text   string
	writes int
}

// SetText replaces the element's text
func (e *TextElement) SetText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.text = text
	e.writes++
}

// Text returns the current text
func (e *TextElement) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text
}

// Writes returns how many times the text was set
func (e *TextElement) Writes() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.writes
}

// WriterElement prints every text it receives on its own line
type WriterElement struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterElement creates a ResultElement backed by w
func NewWriterElement(w io.Writer) *WriterElement {
	return &WriterElement{w: w}
}

// SetText writes text followed by a newline
func (e *WriterElement) SetText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fmt.Fprintln(e.w, text)
}
