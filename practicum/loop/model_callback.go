//go:build js || animframe

package loop

// DefaultModel is the scheduling model this build was compiled for.
const DefaultModel = ModelCallback
