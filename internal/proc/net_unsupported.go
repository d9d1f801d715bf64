//go:build !linux

package proc

import (
	"fmt"
	"runtime"

	"github.com/homelab-infra/portscope/pkg/model"
)

func Collect() ([]model.ListenEndpoint, error) {
	return nil, fmt.Errorf("%s: %w", runtime.GOOS, ErrCollection)
}

func EphemeralRange() (low, high int, err error) {
	return 0, 0, fmt.Errorf("ephemeral range not readable on %s", runtime.GOOS)
}
