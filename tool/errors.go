package tool

import "errors"

// ErrNotFound is returned by Get when no tool is registered under the
// requested name.
var ErrNotFound = errors.New("tool: not registered")

// ErrAlreadyRegistered is returned by Register when a tool with the same
// name already exists and overwrite was not requested.
var ErrAlreadyRegistered = errors.New("tool: already registered")
