//go:build paranoid

package geom

// ParanoidChecks guards precondition checks on the evaluation paths.
// Build with the paranoid tag to enable them.
const ParanoidChecks = true
