package grove

import "errors"

// ErrNoEngine is returned by node operations that need an engine's asset
// manager when the node was created without one.
var ErrNoEngine = errors.New("grove: node has no engine")
