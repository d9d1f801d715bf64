// Package reconcile joins the two independently collected views of port
// usage (OS listeners and container publications) into one record per claim.
package reconcile

import (
	"github.com/homelab-infra/portscope/pkg/model"
)

type key struct {
	addr  string
	port  int
	proto string
}

// Merge joins listeners with publications on (bind_address, port, protocol).
// A wildcard bind on either side subsumes a concrete address with the same
// port and protocol, which resolves the common case of a container published
// on 0.0.0.0 while the OS reports the listener address verbatim.
//
// Every listener without a publication becomes a host-only record; this is
// also where host-network-mode container ports land, indistinguishable from
// native services. Every publication without a listener is still emitted,
// with no listener attached, so consumers can see the non-corroborated claim.
func Merge(endpoints []model.ListenEndpoint, published []model.PublishedPort) []model.PortRecord {
	// Publications indexed by (port, proto); address matching is done per
	// candidate so wildcard subsumption stays in one place.
	pubIndex := make(map[key][]*model.PublishedPort)
	for i := range published {
		p := &published[i]
		k := key{port: p.HostPort, proto: p.Protocol}
		pubIndex[k] = append(pubIndex[k], p)
	}
	matched := make(map[*model.PublishedPort]bool)

	// Identical (addr, port, proto, pid) tuples collapse; everything else is
	// kept so multi-process and dual-stack claims stay visible.
	endpoints = dedupe(endpoints)

	// Group listeners by exact key for conflict detection.
	groups := make(map[key][]model.ListenEndpoint)
	for _, ep := range endpoints {
		k := key{addr: ep.BindAddress, port: ep.Port, proto: ep.Protocol}
		groups[k] = append(groups[k], ep)
	}

	var records []model.PortRecord
	for _, ep := range endpoints {
		ep := ep
		k := key{addr: ep.BindAddress, port: ep.Port, proto: ep.Protocol}

		pub := lookup(pubIndex, ep)
		if pub != nil {
			matched[pub] = true
		}

		rec := model.PortRecord{
			Protocol:    ep.Protocol,
			BindAddress: ep.BindAddress,
			Port:        ep.Port,
			Listener:    &ep,
			Published:   pub,
			Conflict:    conflicting(groups[k]),
		}
		records = append(records, rec)
	}

	// Publications nobody listens for: the runtime claims them but the socket
	// was not bound at collection time (teardown race, or not yet up).
	for i := range published {
		p := &published[i]
		if matched[p] {
			continue
		}
		records = append(records, model.PortRecord{
			Protocol:    p.Protocol,
			BindAddress: p.HostBindAddress,
			Port:        p.HostPort,
			Published:   p,
		})
	}

	return records
}

// lookup finds the publication backing a listener: exact address first, then
// wildcard subsumption in either direction.
func lookup(pubIndex map[key][]*model.PublishedPort, ep model.ListenEndpoint) *model.PublishedPort {
	candidates := pubIndex[key{port: ep.Port, proto: ep.Protocol}]

	for _, p := range candidates {
		if p.HostBindAddress == ep.BindAddress {
			return p
		}
	}
	for _, p := range candidates {
		if model.Wildcard(p.HostBindAddress) || model.Wildcard(ep.BindAddress) {
			return p
		}
	}
	return nil
}

// conflicting reports whether a key group holds more than one distinguishable
// process identity (SO_REUSEPORT sharing, or a second claimant next to a
// published port). Identities are only distinguishable when both PIDs are
// known; attribution gaps never manufacture a conflict.
func conflicting(group []model.ListenEndpoint) bool {
	seen := -1
	for _, ep := range group {
		if ep.PID == nil {
			continue
		}
		if seen == -1 {
			seen = *ep.PID
			continue
		}
		if *ep.PID != seen {
			return true
		}
	}
	return false
}

func dedupe(endpoints []model.ListenEndpoint) []model.ListenEndpoint {
	type identity struct {
		key
		pid int
		has bool
	}
	seen := make(map[identity]bool)
	out := endpoints[:0:0]
	for _, ep := range endpoints {
		id := identity{key: key{addr: ep.BindAddress, port: ep.Port, proto: ep.Protocol}}
		if ep.PID != nil {
			id.pid = *ep.PID
			id.has = true
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, ep)
	}
	return out
}
