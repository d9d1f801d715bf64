//go:build linux

package proc

import (
	"fmt"
	"os"
	"os/user"
	"strconv"
	"strings"
)

type attribution struct {
	pid     int
	name    string
	user    string
	cmdline string
}

// attributionIndex maps socket inodes to their owning process. Processes we
// cannot inspect (permission, or gone mid-walk) are simply absent from the
// index; the caller emits those endpoints without attribution.
func attributionIndex() map[string]attribution {
	index := make(map[string]attribution)

	procs, err := os.ReadDir("/proc")
	if err != nil {
		return index
	}

	identities := make(map[int]attribution)

	for _, p := range procs {
		if !p.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(p.Name())
		if err != nil {
			continue
		}

		fdPath := fmt.Sprintf("/proc/%d/fd", pid)
		fds, err := os.ReadDir(fdPath)
		if err != nil {
			continue
		}

		for _, fd := range fds {
			link, err := os.Readlink(fmt.Sprintf("%s/%s", fdPath, fd.Name()))
			if err != nil {
				continue
			}
			if !strings.HasPrefix(link, "socket:[") {
				continue
			}
			inode := strings.TrimSuffix(strings.TrimPrefix(link, "socket:["), "]")
			if _, seen := index[inode]; seen {
				continue
			}

			a, ok := identities[pid]
			if !ok {
				a = readIdentity(pid)
				identities[pid] = a
			}
			index[inode] = a
		}
	}
	return index
}

// readIdentity reads what /proc exposes about one process. Each field is
// best-effort on its own; an unreadable file just stays empty.
func readIdentity(pid int) attribution {
	a := attribution{pid: pid}

	if comm, err := os.ReadFile(fmt.Sprintf("/proc/%d/comm", pid)); err == nil {
		a.name = strings.TrimSpace(string(comm))
	}

	if cmdline, err := os.ReadFile(fmt.Sprintf("/proc/%d/cmdline", pid)); err == nil {
		cmd := strings.ReplaceAll(string(cmdline), "\x00", " ")
		a.cmdline = strings.TrimSpace(cmd)
	}

	a.user = readUser(pid)
	return a
}

// readUser resolves the real UID of a process to a username, falling back to
// the numeric UID when the lookup fails.
func readUser(pid int) string {
	status, err := os.ReadFile(fmt.Sprintf("/proc/%d/status", pid))
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(status), "\n") {
		if !strings.HasPrefix(line, "Uid:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return ""
		}
		uid := fields[1]
		if u, err := user.LookupId(uid); err == nil {
			return u.Username
		}
		return uid
	}
	return ""
}
