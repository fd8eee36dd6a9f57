//go:build paranoid

package tree

// ParanoidChecks guards precondition checks on performance-critical
// paths. Build with the paranoid tag to enable them.
const ParanoidChecks = true
