// Package migrations holds the ordered schema migration steps, embedded
// so the application and any extension process can migrate without a
// source checkout.
package migrations

import "embed"

// FS ...
//go:embed *.sql
var FS embed.FS
