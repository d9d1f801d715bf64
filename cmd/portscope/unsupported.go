//go:build !linux

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(
		os.Stderr,
		"portscope reads /proc/net and the docker CLI and is only supported on Linux.",
	)
	os.Exit(1)
}
