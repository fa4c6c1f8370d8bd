// +build debug

package store

// wipeEnabled allows the wipe-on-mismatch fast-iteration policy. Debug
// builds only: the policy erases all cached data.
const wipeEnabled = true
