package script

import "errors"

// ErrEngineClosed is returned for operations on a closed engine.
var ErrEngineClosed = errors.New("script engine is closed")
