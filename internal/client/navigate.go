package client

// RootPath is where the back button sends the user
const RootPath = "/"

// Navigator changes the current page location
type Navigator interface {
	Navigate(path string)
}

// BackHandler reacts to the back button
type BackHandler struct {
	nav Navigator
}

// NewBackHandler creates a BackHandler that navigates through nav
func NewBackHandler(nav Navigator) *BackHandler {
	return &BackHandler{nav: nav}
}

// HandleClick always navigates to the root path
func (h *BackHandler) HandleClick() {
	h.nav.Navigate(RootPath)
}
