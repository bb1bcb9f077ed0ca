// Package methods implements the voting-method variants behind ports.Method
// and the name registry the harness and CLI select them from.
package methods

import (
	"fmt"
	"sort"

	"ballotlab/domain/core"
	"ballotlab/ports"
)

// Options configures the method variants that take parameters.
type Options struct {
	// Completion is the Condorcet cycle-resolution sub-method: "schulze"
	// (default) or "none".
	Completion string
	// CommitteeSize is the proportional-approval committee size.
	CommitteeSize int
	// Apportionment names the proportional-approval weight sequence:
	// d_hondt (default), sainte_lague, sainte_lague_1_2, sainte_lague_1_4.
	Apportionment string
}

func (o Options) normalized() Options {
	if o.Completion == "" {
		o.Completion = CompletionSchulze
	}
	if o.CommitteeSize == 0 {
		o.CommitteeSize = 2
	}
	if o.Apportionment == "" {
		o.Apportionment = ApportionmentDHondt
	}
	return o
}

// Registry builds the full method set under the given options, keyed by
// stable name.
func Registry(opts Options) (map[string]ports.Method, error) {
	opts = opts.normalized()

	condorcet, err := NewCondorcet(opts.Completion)
	if err != nil {
		return nil, err
	}
	pav, err := NewProportionalApproval(opts.CommitteeSize, opts.Apportionment)
	if err != nil {
		return nil, err
	}

	all := []ports.Method{
		NewPlurality(),
		NewBorda(),
		NewInstantRunoff(),
		condorcet,
		NewApproval(),
		NewApprovalTop(),
		NewScore(),
		pav,
	}
	reg := make(map[string]ports.Method, len(all))
	for _, m := range all {
		reg[m.Name()] = m
	}
	return reg, nil
}

// Names lists every registered method name in sorted order.
func Names(opts Options) []string {
	reg, err := Registry(opts)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(reg))
	for n := range reg {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves the requested method names against the registry. Unknown
// names fail with core.ErrInvalidConfiguration before any trial runs.
func Lookup(names []string, opts Options) ([]ports.Method, error) {
	reg, err := Registry(opts)
	if err != nil {
		return nil, err
	}
	resolved := make([]ports.Method, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			return nil, core.NewInvalidConfigurationError("methods", fmt.Sprintf("method %q requested twice", name))
		}
		seen[name] = struct{}{}
		m, ok := reg[name]
		if !ok {
			return nil, core.NewInvalidConfigurationError("methods", fmt.Sprintf("unknown method %q", name))
		}
		resolved = append(resolved, m)
	}
	return resolved, nil
}
