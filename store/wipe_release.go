// +build !debug

package store

// Release builds never wipe: a schema mismatch is a fatal
// initialization error.
const wipeEnabled = false
