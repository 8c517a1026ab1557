//go:build js && wasm

// Package dom binds the registration handlers to the browser page.
package dom

import (
	"context"
	"fmt"
	"syscall/js"

	"github.com/prefeitura-rio/app-cadastro/internal/client"
	"go.uber.org/zap"
)

// Element ids of the registration page
const (
	FormID   = "formFuncionario"
	ResultID = "resultado"
	BackID   = "botao-voltar"
)

// Page holds the elements the handlers act on
type Page struct {
	Form   js.Value
	Result js.Value
	Back   js.Value
}

// LookupPage finds the registration page elements by id
func LookupPage() (*Page, error) {
	page := &Page{}
	for id, target := range map[string]*js.Value{
		FormID:   &page.Form,
		ResultID: &page.Result,
		BackID:   &page.Back,
	} {
		el := js.Global().Get("document").Call("getElementById", id)
		if el.IsNull() || el.IsUndefined() {
			return nil, fmt.Errorf("element #%s not found", id)
		}
		*target = el
	}
	return page, nil
}

// TextNode is a ResultElement writing to an element's textContent
type TextNode struct {
	el js.Value
}

// NewTextNode wraps el
func NewTextNode(el js.Value) *TextNode {
	return &TextNode{el: el}
}

// SetText replaces the element's text content
func (n *TextNode) SetText(text string) {
	n.el.Set("textContent", text)
}

// FormSnapshot is the FormData of a form taken at submit time
type FormSnapshot struct {
	data js.Value
}

// SnapshotForm captures the current values of form
func SnapshotForm(form js.Value) *FormSnapshot {
	return &FormSnapshot{data: js.Global().Get("FormData").New(form)}
}

// Get returns the value of name, or "" if the control is absent
func (f *FormSnapshot) Get(name string) string {
	v := f.data.Call("get", name)
	if v.IsNull() || v.IsUndefined() {
		return ""
	}
	return v.String()
}

// GetAll returns every value of name in document order
func (f *FormSnapshot) GetAll(name string) []string {
	all := f.data.Call("getAll", name)
	values := make([]string, all.Length())
	for i := range values {
		values[i] = all.Index(i).String()
	}
	return values
}

// SubmitEvent adapts a DOM submit event
type SubmitEvent struct {
	ev   js.Value
	form *FormSnapshot
}

// PreventDefault calls the event's preventDefault
func (e *SubmitEvent) PreventDefault() {
	e.ev.Call("preventDefault")
}

// Form returns the values captured when the event fired
func (e *SubmitEvent) Form() client.FormValues {
	return e.form
}

// Location navigates the browser window
type Location struct{}

// Navigate sets window.location.href
func (Location) Navigate(path string) {
	js.Global().Get("window").Get("location").Set("href", path)
}

// Origin returns window.location.origin
func Origin() string {
	return js.Global().Get("window").Get("location").Get("origin").String()
}

// BindSubmit registers handler on the form's submit event. The returned func
// removes the listener.
func BindSubmit(form js.Value, handler *client.SubmitHandler, logger *zap.Logger) func() {
	listener := js.FuncOf(func(this js.Value, args []js.Value) any {
		event := &SubmitEvent{ev: args[0], form: SnapshotForm(form)}

		// preventDefault only takes effect while the listener is running
		event.PreventDefault()

		go func() {
			if err := handler.HandleSubmit(context.Background(), event); err != nil {
				logger.Error("cadastro não enviado", zap.Error(err))
			}
		}()
		return nil
	})

	form.Call("addEventListener", "submit", listener)
	return func() {
		form.Call("removeEventListener", "submit", listener)
		listener.Release()
	}
}

// BindBack registers handler on the button's click event
func BindBack(button js.Value, handler *client.BackHandler) func() {
	listener := js.FuncOf(func(this js.Value, args []js.Value) any {
		handler.HandleClick()
		return nil
	})

	button.Call("addEventListener", "click", listener)
	return func() {
		button.Call("removeEventListener", "click", listener)
		listener.Release()
	}
}
