//go:build linux

package proc

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EphemeralRange reads the local ephemeral port range the kernel hands out
// for transient outbound connections.
func EphemeralRange() (low, high int, err error) {
	data, err := os.ReadFile("/proc/sys/net/ipv4/ip_local_port_range")
	if err != nil {
		return 0, 0, err
	}
	fields := strings.Fields(string(data))
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("unexpected ip_local_port_range content %q", strings.TrimSpace(string(data)))
	}
	low, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, err
	}
	high, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, err
	}
	return low, high, nil
}
