//go:build !webpdebug

package frame

// DebugBounds is false in ordinary builds: View.At/Set/Slice skip the
// explicit range check and rely on the backing slice's own bounds check;
// the border seeding in reconstruct.go keeps the offsets the predictors
// read inside the scratch buffer.
const DebugBounds = false
