//go:build !js && !animframe

package loop

// DefaultModel is the scheduling model this build was compiled for.
// Build with -tags animframe to drive the desktop harness from a TickerHost.
const DefaultModel = ModelBlocking
