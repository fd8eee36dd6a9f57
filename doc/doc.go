// Package doc labels diagnostic output: where files go and which case
// number gets appended to their names. Every operation that can write
// diagnostics takes an Info and does nothing when it is disabled.
package doc

import (
	"fmt"
	"path/filepath"
)

// Info routes diagnostic files to a directory and stamps them with a
// case number so successive passes do not overwrite each other.
type Info struct {
	// Directory receives all files assembled through Filename
	Directory string

	// Label is an optional tag inserted between base name and number
	Label string

	// Number is the current case number
	Number int

	enabled bool
}

// NewInfo returns an enabled Info writing into directory with case number 0.
func NewInfo(directory string) *Info {
	return &Info{Directory: directory, enabled: true}
}

// Filename assembles Directory/base<Label><Number>.ext.
func (di *Info) Filename(base, ext string) string {
	return filepath.Join(di.Directory, fmt.Sprintf("%s%s%d.%s", base, di.Label, di.Number, ext))
}

// Bump advances the case number.
func (di *Info) Bump() {
	di.Number++
}

// Enable switches diagnostic output on.
func (di *Info) Enable() {
	di.enabled = true
}

// Disable switches diagnostic output off; doc-producing operations
// become no-ops.
func (di *Info) Disable() {
	di.enabled = false
}

// Enabled reports whether diagnostic output is switched on.
func (di *Info) Enabled() bool {
	return di.enabled
}
