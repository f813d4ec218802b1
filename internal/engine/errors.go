package engine

import "github.com/cockroachdb/errors"

var (
	// ErrLoadFailed marks failures to obtain the engine.
	ErrLoadFailed = errors.New("engine load failed")

	// ErrHandshakeFailed marks failures of the arming handshake: invalid
	// parameters, a non-zero init status, or a panic inside init.
	ErrHandshakeFailed = errors.New("engine handshake failed")

	// ErrEngineNotFound is returned by RegistryLoader for unknown names.
	ErrEngineNotFound = errors.New("engine not registered")
)
