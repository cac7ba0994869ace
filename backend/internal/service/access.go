package service

import (
	"github.com/threadlens/threadlens/shared/config"
	"github.com/threadlens/threadlens/shared/domain"
)

// AccessGate decides whether a caller may view a topic's gallery at all.
// Callers learn only "not found" when it says no; the reason never leaves
// the server.
type AccessGate struct {
	cfg config.Gallery
}

func NewAccessGate(cfg config.Gallery) *AccessGate {
	return &AccessGate{cfg: cfg}
}

// Allowed reports whether the caller clears the group allow-list. Independent
// of any topic; the shell route uses it before fetching anything.
func (g *AccessGate) Allowed(caller *domain.Caller) bool {
	return g.cfg.Enabled && caller.InAnyGroup(g.cfg.AllowedGroups)
}

// CanView applies the full gate for one topic: feature on, caller in an
// allowed group, and the topic's category not denied.
func (g *AccessGate) CanView(caller *domain.Caller, topic domain.Topic) bool {
	if !g.Allowed(caller) {
		return false
	}
	for _, c := range g.cfg.ExcludedCategories {
		if c == topic.CategoryId {
			return false
		}
	}
	return true
}
