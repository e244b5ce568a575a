package alert

import (
	"io"

	"github.com/pkg/browser"
)

// Opener opens a URL in a new browser context.
type Opener interface {
	Open(url string) error
}

// BrowserOpener opens URLs in the system browser.
type BrowserOpener struct{}

// Open launches the system browser on url. The launcher's own output is
// discarded so it cannot draw over the terminal UI.
func (BrowserOpener) Open(url string) error {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return browser.OpenURL(url)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(url string) error

// Open calls f.
func (f OpenerFunc) Open(url string) error { return f(url) }
