package client

import "sync/atomic"

// FormSubmitEvent is a SubmitEvent over in-memory form values
type FormSubmitEvent struct {
	form      FormValues
	prevented atomic.Bool
}

// NewFormSubmitEvent creates a submit event for form
func NewFormSubmitEvent(form FormValues) *FormSubmitEvent {
	return &FormSubmitEvent{form: form}
}

// PreventDefault marks the event as handled
func (e *FormSubmitEvent) PreventDefault() {
	e.prevented.Store(true)
}

// DefaultPrevented reports whether PreventDefault was called
func (e *FormSubmitEvent) DefaultPrevented() bool {
	return e.prevented.Load()
}

// Form returns the submitted values
func (e *FormSubmitEvent) Form() FormValues {
	return e.form
}
