//go:build linux

package proc

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/homelab-infra/portscope/pkg/model"
)

const (
	stateListen  = "0A" // TCP_LISTEN
	stateUnconn  = "07" // TCP_CLOSE; unconnected bound UDP sockets sit here
	zeroRemoteV4 = "00000000:0000"
)

type rawSocket struct {
	proto string
	addr  string
	port  int
	inode string
}

// Collect returns every listening endpoint from /proc/net. It fails only when
// none of the socket table files can be opened; a partially readable table
// still produces a result.
func Collect() ([]model.ListenEndpoint, error) {
	tables := []struct {
		path string
		// proto as surfaced in the report; the 6-suffixed files collapse
		// onto the same protocol, the address keeps them apart.
		proto string
		ipv6  bool
	}{
		{"/proc/net/tcp", "tcp", false},
		{"/proc/net/tcp6", "tcp", true},
		{"/proc/net/udp", "udp", false},
		{"/proc/net/udp6", "udp", true},
	}

	var socks []rawSocket
	opened := 0
	for _, t := range tables {
		f, err := os.Open(t.path)
		if err != nil {
			continue
		}
		opened++
		socks = append(socks, parseNetFile(f, t.proto, t.ipv6)...)
		f.Close()
	}
	if opened == 0 {
		return nil, fmt.Errorf("open /proc/net tables: %w", ErrCollection)
	}

	attr := attributionIndex()

	endpoints := make([]model.ListenEndpoint, 0, len(socks))
	for _, s := range socks {
		ep := model.ListenEndpoint{
			Protocol:    s.proto,
			BindAddress: s.addr,
			Port:        s.port,
		}
		if a, ok := attr[s.inode]; ok {
			pid := a.pid
			ep.PID = &pid
			ep.ProcessName = a.name
			ep.User = a.user
			ep.CommandLine = a.cmdline
		}
		endpoints = append(endpoints, ep)
	}
	return endpoints, nil
}

// parseNetFile reads one /proc/net table. TCP rows count only in LISTEN
// state; UDP has no LISTEN, so unconnected bound sockets (state 07, zero
// remote) are the listeners.
func parseNetFile(r io.Reader, proto string, ipv6 bool) []rawSocket {
	var socks []rawSocket

	scanner := bufio.NewScanner(r)
	scanner.Scan() // skip header

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 10 {
			continue
		}

		local := fields[1]
		remote := fields[2]
		stateHex := fields[3]
		inode := fields[9]

		switch proto {
		case "tcp":
			if stateHex != stateListen {
				continue
			}
		case "udp":
			if stateHex != stateUnconn || !zeroRemote(remote) {
				continue
			}
		}

		addr, port := parseAddr(local, ipv6)
		if addr == "" {
			continue
		}
		socks = append(socks, rawSocket{
			proto: proto,
			addr:  addr,
			port:  port,
			inode: inode,
		})
	}
	return socks
}

func zeroRemote(raw string) bool {
	if raw == zeroRemoteV4 {
		return true
	}
	i := strings.IndexByte(raw, ':')
	if i == -1 {
		return false
	}
	return strings.Trim(raw[:i], "0") == "" && raw[i+1:] == "0000"
}

func parseAddr(raw string, ipv6 bool) (string, int) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 {
		return "", 0
	}
	portHex := parts[1]
	port, _ := strconv.ParseInt(portHex, 16, 32)

	ipHex := parts[0]
	b, err := hex.DecodeString(ipHex)
	if err != nil {
		return "", int(port)
	}

	if ipv6 {
		if len(b) != 16 {
			return "::", int(port)
		}
		// /proc/net/tcp6 stores IPv6 as 4 little-endian 32-bit groups.
		// Reverse bytes within each 4-byte group.
		ip := make(net.IP, 16)
		for i := 0; i < 4; i++ {
			ip[i*4+0] = b[i*4+3]
			ip[i*4+1] = b[i*4+2]
			ip[i*4+2] = b[i*4+1]
			ip[i*4+3] = b[i*4+0]
		}
		return ip.String(), int(port)
	}

	if len(b) < 4 {
		return "", int(port)
	}
	ip := strconv.Itoa(int(b[3])) + "." +
		strconv.Itoa(int(b[2])) + "." +
		strconv.Itoa(int(b[1])) + "." +
		strconv.Itoa(int(b[0]))

	return ip, int(port)
}
