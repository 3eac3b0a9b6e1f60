package config

import "fmt"

// WriteError reports a failed attempt to persist a configuration document.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write config %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
