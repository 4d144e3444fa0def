//go:build webpdebug

package frame

// DebugBounds enables bounds-checked View access when built with
// -tags webpdebug. Left off by default so the hot reconstruction path pays
// nothing for it in ordinary builds.
const DebugBounds = true
