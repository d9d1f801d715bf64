package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homelab-infra/portscope/pkg/model"
)

func intp(n int) *int { return &n }

func listener(proto, addr string, port int, pid *int) model.ListenEndpoint {
	ep := model.ListenEndpoint{Protocol: proto, BindAddress: addr, Port: port, PID: pid}
	if pid != nil {
		ep.ProcessName = "proc"
	}
	return ep
}

func publication(name, addr string, hostPort, containerPort int, proto string) model.PublishedPort {
	return model.PublishedPort{
		ContainerName:   name,
		ContainerID:     "cid",
		ContainerImage:  "img",
		HostBindAddress: addr,
		HostPort:        hostPort,
		ContainerPort:   containerPort,
		Protocol:        proto,
		RawMappingSpec:  "spec",
	}
}

func TestMergeWildcardSubsumption(t *testing.T) {
	eps := []model.ListenEndpoint{listener("tcp", "0.0.0.0", 8080, intp(100))}
	pubs := []model.PublishedPort{publication("web", "0.0.0.0", 8080, 80, "tcp")}

	records := Merge(eps, pubs)
	require.Len(t, records, 1, "listener and publication must reconcile into one record")
	assert.NotNil(t, records[0].Listener)
	require.NotNil(t, records[0].Published)
	assert.Equal(t, "web", records[0].Published.ContainerName)
	assert.False(t, records[0].Conflict)
}

func TestMergeWildcardPublicationMatchesConcreteListener(t *testing.T) {
	eps := []model.ListenEndpoint{listener("tcp", "172.17.0.1", 1883, intp(42))}
	pubs := []model.PublishedPort{publication("mosquitto", "0.0.0.0", 1883, 1883, "tcp")}

	records := Merge(eps, pubs)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].Published)
	assert.Equal(t, "mosquitto", records[0].Published.ContainerName)
}

func TestMergeHostOnlyListener(t *testing.T) {
	// A host-network container port looks exactly like a native service:
	// no publication record, so it must come out container-free.
	eps := []model.ListenEndpoint{listener("tcp", "0.0.0.0", 8123, intp(7))}

	records := Merge(eps, nil)
	require.Len(t, records, 1)
	assert.NotNil(t, records[0].Listener)
	assert.Nil(t, records[0].Published)
	assert.True(t, records[0].Valid())
	assert.True(t, records[0].Corroborated())
}

func TestMergeNonCorroboratedPublication(t *testing.T) {
	pubs := []model.PublishedPort{publication("ghost", "0.0.0.0", 9090, 9090, "tcp")}

	records := Merge(nil, pubs)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].Listener)
	require.NotNil(t, records[0].Published)
	assert.False(t, records[0].Corroborated())
	assert.True(t, records[0].Valid())
}

func TestMergeReusePortConflict(t *testing.T) {
	eps := []model.ListenEndpoint{
		listener("tcp", "0.0.0.0", 8200, intp(10)),
		listener("tcp", "0.0.0.0", 8200, intp(11)),
	}

	records := Merge(eps, nil)
	require.Len(t, records, 2, "both sharers stay visible, no tie-break")
	assert.True(t, records[0].Conflict)
	assert.True(t, records[1].Conflict)
}

func TestMergeAttributionGapIsNotAConflict(t *testing.T) {
	eps := []model.ListenEndpoint{
		listener("tcp", "0.0.0.0", 443, intp(10)),
		listener("tcp", "0.0.0.0", 443, nil),
	}

	records := Merge(eps, nil)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.False(t, r.Conflict, "unknown identity must not manufacture a conflict")
	}
}

func TestMergeProtocolSeparatesKeys(t *testing.T) {
	eps := []model.ListenEndpoint{
		listener("tcp", "0.0.0.0", 53, intp(1)),
		listener("udp", "0.0.0.0", 53, intp(2)),
	}

	records := Merge(eps, nil)
	require.Len(t, records, 2)
	assert.False(t, records[0].Conflict)
	assert.False(t, records[1].Conflict)
}

func TestMergeDropsExactDuplicates(t *testing.T) {
	eps := []model.ListenEndpoint{
		listener("tcp", "127.0.0.1", 6379, intp(5)),
		listener("tcp", "127.0.0.1", 6379, intp(5)),
	}

	records := Merge(eps, nil)
	assert.Len(t, records, 1)
	assert.False(t, records[0].Conflict)
}

func TestMergeDualStackPairStaysSeparate(t *testing.T) {
	eps := []model.ListenEndpoint{
		listener("tcp", "0.0.0.0", 8080, intp(1)),
		listener("tcp", "::", 8080, intp(1)),
	}
	pubs := []model.PublishedPort{
		publication("web", "0.0.0.0", 8080, 80, "tcp"),
		publication("web", "::", 8080, 80, "tcp"),
	}

	records := Merge(eps, pubs)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.NotNil(t, r.Published, "each stack binds its own publication")
	}
}
