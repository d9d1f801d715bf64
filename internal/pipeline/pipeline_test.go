package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homelab-infra/portscope/pkg/model"
)

func mockCollectors(eps []model.ListenEndpoint, pubs []model.PublishedPort) Collectors {
	return Collectors{
		Sockets: func() ([]model.ListenEndpoint, error) { return eps, nil },
		Docker: func(context.Context) ([]model.PublishedPort, model.DockerMeta) {
			return pubs, model.DockerMeta{Available: true, Count: len(pubs)}
		},
	}
}

func TestRunJoinsBothCollectors(t *testing.T) {
	eps := []model.ListenEndpoint{{Protocol: "tcp", BindAddress: "0.0.0.0", Port: 80}}
	pubs := []model.PublishedPort{{ContainerName: "web", HostPort: 80, Protocol: "tcp"}}

	res := Run(context.Background(), mockCollectors(eps, pubs), time.Second)
	require.NoError(t, res.Err)
	assert.Equal(t, eps, res.Endpoints)
	assert.Equal(t, pubs, res.Published)
	assert.True(t, res.Docker.Available)
}

func TestRunSocketFailureSurfaces(t *testing.T) {
	c := Collectors{
		Sockets: func() ([]model.ListenEndpoint, error) { return nil, errors.New("no socket table") },
		Docker: func(context.Context) ([]model.PublishedPort, model.DockerMeta) {
			return nil, model.DockerMeta{}
		},
	}
	res := Run(context.Background(), c, time.Second)
	assert.Error(t, res.Err)
}

func TestRunSlowRuntimeDegradesInsteadOfHanging(t *testing.T) {
	c := Collectors{
		Sockets: func() ([]model.ListenEndpoint, error) {
			return []model.ListenEndpoint{{Protocol: "tcp", Port: 22, BindAddress: "0.0.0.0"}}, nil
		},
		Docker: func(ctx context.Context) ([]model.PublishedPort, model.DockerMeta) {
			// Behaves like exec.CommandContext: returns with nothing once
			// the context is cut off.
			<-ctx.Done()
			return nil, model.DockerMeta{Available: false}
		},
	}

	start := time.Now()
	res := Run(context.Background(), c, 50*time.Millisecond)
	require.NoError(t, res.Err, "a timed-out runtime must not fail the pass")
	assert.False(t, res.Docker.Available)
	assert.NotEmpty(t, res.Endpoints, "host-only data still usable")
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestRunCollectorsExecuteConcurrently(t *testing.T) {
	began := make(chan string, 2)
	release := make(chan struct{})

	c := Collectors{
		Sockets: func() ([]model.ListenEndpoint, error) {
			began <- "sockets"
			<-release
			return nil, nil
		},
		Docker: func(context.Context) ([]model.PublishedPort, model.DockerMeta) {
			began <- "docker"
			<-release
			return nil, model.DockerMeta{}
		},
	}

	done := make(chan Result, 1)
	go func() { done <- Run(context.Background(), c, time.Second) }()

	// Both collectors must have started before either finishes.
	for i := 0; i < 2; i++ {
		select {
		case <-began:
		case <-time.After(2 * time.Second):
			t.Fatal("collectors did not run concurrently")
		}
	}
	close(release)
	<-done
}
