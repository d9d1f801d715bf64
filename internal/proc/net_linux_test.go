//go:build linux

package proc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAddrIPv4(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		addr string
		port int
	}{
		{"loopback", "0100007F:1F90", "127.0.0.1", 8080},
		{"wildcard", "00000000:0050", "0.0.0.0", 80},
		{"concrete", "0F02000A:1B39", "10.0.2.15", 6969},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, port := parseAddr(tt.raw, false)
			assert.Equal(t, tt.addr, addr)
			assert.Equal(t, tt.port, port)
		})
	}
}

func TestParseAddrIPv6(t *testing.T) {
	addr, port := parseAddr("00000000000000000000000000000000:1F91", true)
	assert.Equal(t, "::", addr)
	assert.Equal(t, 8081, port)

	// ::1, stored as 4 little-endian 32-bit groups
	addr, port = parseAddr("00000000000000000000000001000000:0016", true)
	assert.Equal(t, "::1", addr)
	assert.Equal(t, 22, port)
}

const tcpFixture = `  sl  local_address rem_address   st tx_queue rx_queue tr tm->when retrnsmt   uid  timeout inode
   0: 00000000:1F90 00000000:0000 0A 00000000:00000000 00:00000000 00000000  1000        0 31337 1 0000000000000000 100 0 0 10 0
   1: 0100007F:8124 0100007F:1F90 01 00000000:00000000 00:00000000 00000000  1000        0 31338 1 0000000000000000 100 0 0 10 0
`

func TestParseNetFileFiltersListeners(t *testing.T) {
	socks := parseNetFile(strings.NewReader(tcpFixture), "tcp", false)
	assert.Len(t, socks, 1, "only the LISTEN row should survive")
	assert.Equal(t, "0.0.0.0", socks[0].addr)
	assert.Equal(t, 8080, socks[0].port)
	assert.Equal(t, "31337", socks[0].inode)
}

const udpFixture = `   sl  local_address rem_address   st tx_queue rx_queue tr tm->when retrnsmt   uid  timeout inode ref pointer drops
 1234: 00000000:14E9 00000000:0000 07 00000000:00000000 00:00000000 00000000   998        0 22222 2 0000000000000000 0
 1235: 0100007F:0035 0100007F:BFFF 01 00000000:00000000 00:00000000 00000000   998        0 22223 2 0000000000000000 0
`

func TestParseNetFileUDPUnconnectedOnly(t *testing.T) {
	socks := parseNetFile(strings.NewReader(udpFixture), "udp", false)
	assert.Len(t, socks, 1)
	assert.Equal(t, 5353, socks[0].port)
	assert.Equal(t, "udp", socks[0].proto)
}

func TestZeroRemote(t *testing.T) {
	assert.True(t, zeroRemote("00000000:0000"))
	assert.True(t, zeroRemote("00000000000000000000000000000000:0000"))
	assert.False(t, zeroRemote("0100007F:1F90"))
	assert.False(t, zeroRemote("garbage"))
}
