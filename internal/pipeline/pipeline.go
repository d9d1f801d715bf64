// Package pipeline orchestrates one collection pass: socket and container
// collectors run concurrently, the reconciler waits for both.
package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/homelab-infra/portscope/internal/dockerps"
	"github.com/homelab-infra/portscope/internal/proc"
	"github.com/homelab-infra/portscope/pkg/model"
)

// DefaultRuntimeTimeout bounds the container-runtime listing invocation, the
// only call in a pass that may block indefinitely.
const DefaultRuntimeTimeout = 5 * time.Second

// Collectors are the two independent inputs of a pass. Both fields are
// injectable for tests; Default wires the real OS.
type Collectors struct {
	Sockets func() ([]model.ListenEndpoint, error)
	Docker  func(context.Context) ([]model.PublishedPort, model.DockerMeta)
}

// Default returns collectors bound to /proc and the docker CLI.
func Default() Collectors {
	return Collectors{
		Sockets: proc.Collect,
		Docker:  dockerps.Collect,
	}
}

// Result of a pass. Err is non-nil only when the socket table was entirely
// inaccessible; a missing or timed-out runtime just leaves Docker.Available
// false and the endpoints usable.
type Result struct {
	Endpoints []model.ListenEndpoint
	Published []model.PublishedPort
	Docker    model.DockerMeta
	Err       error
}

// Run executes both collectors concurrently and joins. Each goroutine writes
// only its own result fields, so no locking is needed beyond the join. The
// runtime invocation is cut off after timeout; no retries.
func Run(ctx context.Context, c Collectors, timeout time.Duration) Result {
	if timeout <= 0 {
		timeout = DefaultRuntimeTimeout
	}

	var res Result
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		res.Endpoints, res.Err = c.Sockets()
	}()

	go func() {
		defer wg.Done()
		dctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		res.Published, res.Docker = c.Docker(dctx)
	}()

	wg.Wait()
	return res
}
