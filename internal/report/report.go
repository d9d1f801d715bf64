// Package report assembles the canonical versioned port document and answers
// single-port point queries.
package report

import (
	"sort"
	"time"

	"github.com/homelab-infra/portscope/internal/policy"
	"github.com/homelab-infra/portscope/internal/reconcile"
	"github.com/homelab-infra/portscope/pkg/model"
)

// SchemaVersion changes only when a field of the persisted document changes
// meaning; consumers pin against it.
const SchemaVersion = "1.1.0"

// Meta carries the per-invocation context the builder cannot collect itself.
type Meta struct {
	Host          string
	ScriptVersion string
	GeneratedAt   time.Time

	// EphemeralLow/High are zero when the OS range was unreadable; the
	// document then carries a null range.
	EphemeralLow  int
	EphemeralHigh int
	HasEphemeral  bool

	Docker model.DockerMeta
}

// Build reconciles, classifies, and orders one snapshot. It is pure assembly:
// same inputs, same ports content.
func Build(endpoints []model.ListenEndpoint, published []model.PublishedPort, pol policy.Policy, meta Meta) model.ReportDocument {
	if meta.HasEphemeral {
		pol = pol.WithEphemeral(meta.EphemeralLow, meta.EphemeralHigh)
	}

	records := reconcile.Merge(endpoints, published)
	for i := range records {
		records[i].Category = pol.Classify(records[i].Port)
	}

	// (port, bind_address) is the documented order; protocol and PID are
	// deterministic tiebreakers so snapshots diff cleanly.
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Port != b.Port {
			return a.Port < b.Port
		}
		if a.BindAddress != b.BindAddress {
			return a.BindAddress < b.BindAddress
		}
		if a.Protocol != b.Protocol {
			return a.Protocol < b.Protocol
		}
		return pidOf(a) < pidOf(b)
	})

	doc := model.ReportDocument{
		Host:          meta.Host,
		GeneratedAt:   meta.GeneratedAt.UTC(),
		SchemaVersion: SchemaVersion,
		ScriptVersion: meta.ScriptVersion,
		Docker:        meta.Docker,
		Ports:         records,
	}
	if meta.HasEphemeral {
		doc.IPLocalPortRange = []int{meta.EphemeralLow, meta.EphemeralHigh}
	}
	return doc
}

func pidOf(r model.PortRecord) int {
	if r.Listener == nil || r.Listener.PID == nil {
		return -1
	}
	return *r.Listener.PID
}

// CollectFunc is the socket-collector contract CheckPort runs against;
// injected so tests can mock the OS.
type CollectFunc func() ([]model.ListenEndpoint, error)

// CheckPort answers whether anything listens on the port. It runs only the
// socket collector, never the full pipeline, and keeps the tri-state intact:
// the exit-code collapse happens at the CLI boundary, not here.
func CheckPort(collect CollectFunc, port int) model.CheckOutcome {
	endpoints, err := collect()
	if err != nil {
		return model.PortIndeterminate
	}
	for _, ep := range endpoints {
		if ep.Port == port {
			return model.PortBound
		}
	}
	return model.PortFree
}
