// Package proc enumerates OS-level listening sockets with best-effort
// process attribution.
package proc

import "errors"

// ErrCollection means the socket table is entirely inaccessible. It is the
// only fatal condition in a collection pass; per-process permission failures
// just leave attribution fields absent.
var ErrCollection = errors.New("socket table inaccessible")
