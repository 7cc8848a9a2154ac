//go:build !(js && wasm)

package loop

import "time"

// NewHost returns the platform's animation-frame host.
func NewHost(refresh time.Duration) Host {
	return NewTickerHost(refresh)
}
