package parser

import "sort"

// Registry indexes parsers by name and by every alias each one claims via
// SupportedFormats, and picks the best match for a sample.
type Registry struct {
	byName  map[string]Parser
	byAlias map[string]Parser
	order   []string // registration order, for stable ListParsers/ListFormats
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]Parser),
		byAlias: make(map[string]Parser),
	}
}

// NewDefaultRegistry builds a registry preloaded with every parser this
// package implements.
func NewDefaultRegistry() *Registry {
	reg := NewRegistry()
	for _, p := range []Parser{
		NewJSON(),
		NewApache(),
		NewNginxAccess(),
		NewNginxError(),
		NewSyslog3164(),
		NewSyslog5424(),
		NewStdLib(),
		NewDockerJSON(),
		NewDockerDaemon(),
		NewK8sContainer(),
		NewK8sComponent(),
		NewK8sAudit(),
		NewK8sEvent(),
		NewGeneric(),
	} {
		reg.Register(p)
	}
	return reg
}

// Register indexes p by its name and every alias in SupportedFormats.
func (reg *Registry) Register(p Parser) {
	if _, exists := reg.byName[p.Name()]; !exists {
		reg.order = append(reg.order, p.Name())
	}
	reg.byName[p.Name()] = p
	for _, alias := range p.SupportedFormats() {
		reg.byAlias[alias] = p
	}
}

// GetParser resolves key against aliases first, then names.
func (reg *Registry) GetParser(key string) (Parser, bool) {
	if p, ok := reg.byAlias[key]; ok {
		return p, true
	}
	p, ok := reg.byName[key]
	return p, ok
}

// GetBestParser returns the registered parser with the highest CanParse
// score against sample, and that score. Ties break by registration order.
func (reg *Registry) GetBestParser(sample []string) (Parser, float64) {
	var best Parser
	bestScore := -1.0
	for _, name := range reg.order {
		p := reg.byName[name]
		score := p.CanParse(sample)
		if score > bestScore {
			best = p
			bestScore = score
		}
	}
	if best == nil {
		return nil, 0
	}
	return best, bestScore
}

// ListParsers returns every registered parser name in registration order.
func (reg *Registry) ListParsers() []string {
	out := make([]string, len(reg.order))
	copy(out, reg.order)
	return out
}

// ListFormats returns every alias this registry answers to, sorted.
func (reg *Registry) ListFormats() []string {
	out := make([]string, 0, len(reg.byAlias))
	for alias := range reg.byAlias {
		out = append(out, alias)
	}
	sort.Strings(out)
	return out
}

// Generic returns the registry's generic fallback parser, if registered.
func (reg *Registry) Generic() (Parser, bool) {
	return reg.GetParser("generic")
}
