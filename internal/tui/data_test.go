package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homelab-infra/portscope/pkg/model"
)

func intp(n int) *int { return &n }

func fixtureRecords() []model.PortRecord {
	return []model.PortRecord{
		{
			Protocol: "tcp", BindAddress: "0.0.0.0", Port: 22,
			Listener: &model.ListenEndpoint{PID: intp(1), ProcessName: "sshd", User: "root"},
			Category: model.CategorySystem,
		},
		{
			Protocol: "tcp", BindAddress: "0.0.0.0", Port: 8080,
			Listener:  &model.ListenEndpoint{PID: intp(2), ProcessName: "docker-proxy"},
			Published: &model.PublishedPort{ContainerName: "nextcloud-nginx", ContainerImage: "nginx:alpine"},
			Category:  model.CategoryWebEntry,
		},
		{
			Protocol: "tcp", BindAddress: "0.0.0.0", Port: 8200,
			Listener: &model.ListenEndpoint{PID: intp(3), ProcessName: "vault"},
			Category: model.CategoryApplication,
			Conflict: true,
		},
	}
}

func TestRowsUnfiltered(t *testing.T) {
	out := rows(fixtureRecords(), "", false)
	assert.Len(t, out, 3)
}

func TestRowsFilterByContainer(t *testing.T) {
	out := rows(fixtureRecords(), "nextcloud", false)
	require.Len(t, out, 1)
	assert.Equal(t, "8080", out[0][0])
}

func TestRowsFilterByProcess(t *testing.T) {
	out := rows(fixtureRecords(), "sshd", false)
	require.Len(t, out, 1)
	assert.Equal(t, "22", out[0][0])
}

func TestRowsConflictsOnly(t *testing.T) {
	out := rows(fixtureRecords(), "", true)
	require.Len(t, out, 1)
	assert.Equal(t, "8200", out[0][0])
	assert.Contains(t, out[0][7], "conflict")
}

func TestRowsUnboundFlag(t *testing.T) {
	records := []model.PortRecord{{
		Protocol: "tcp", BindAddress: "0.0.0.0", Port: 9090,
		Published: &model.PublishedPort{ContainerName: "ghost"},
		Category:  model.CategoryUnclassified,
	}}
	out := rows(records, "", false)
	require.Len(t, out, 1)
	assert.Contains(t, out[0][7], "unbound")
}
