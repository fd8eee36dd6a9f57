//go:build !paranoid

package tree

// ParanoidChecks guards precondition checks on performance-critical
// paths. Without the paranoid tag they compile away.
const ParanoidChecks = false
