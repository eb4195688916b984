package domain

import (
	"fmt"
	"sort"
)

// RedirectRule sends an unsupported target to a supported substitute.
// Reason is free text kept purely for observability; it never changes
// behavior.
type RedirectRule struct {
	Substitute string
	Reason     string
}

// TargetTable partitions target identifiers into a supported set and a
// redirect map. The partitions are validated to be disjoint and every
// substitute must itself be supported, so redirects can never chain.
type TargetTable struct {
	supported map[string]struct{}
	redirects map[string]RedirectRule
}

func NewTargetTable(supported []string, redirects map[string]RedirectRule) (*TargetTable, error) {
	t := &TargetTable{
		supported: make(map[string]struct{}, len(supported)),
		redirects: make(map[string]RedirectRule, len(redirects)),
	}

	for _, id := range supported {
		if id == "" {
			return nil, fmt.Errorf("supported target identifier must not be empty")
		}
		t.supported[id] = struct{}{}
	}

	for id, rule := range redirects {
		if id == "" {
			return nil, fmt.Errorf("redirected target identifier must not be empty")
		}
		if _, ok := t.supported[id]; ok {
			return nil, fmt.Errorf("target %q cannot be both supported and redirected", id)
		}
		if _, ok := t.supported[rule.Substitute]; !ok {
			return nil, fmt.Errorf("redirect for %q points at %q, which is not a supported target", id, rule.Substitute)
		}
		t.redirects[id] = rule
	}

	return t, nil
}

// Resolve maps a requested target to the identifier the upstream call should
// be made against. The returned rule is nil for directly supported targets.
func (t *TargetTable) Resolve(target string) (effective string, rule *RedirectRule, err error) {
	if _, ok := t.supported[target]; ok {
		return target, nil, nil
	}
	if r, ok := t.redirects[target]; ok {
		return r.Substitute, &r, nil
	}
	return "", nil, &UnknownTargetError{Target: target}
}

// Supported returns the directly supported identifiers, sorted.
func (t *TargetTable) Supported() []string {
	out := make([]string, 0, len(t.supported))
	for id := range t.supported {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Redirects returns a copy of the redirect rules keyed by requested target.
func (t *TargetTable) Redirects() map[string]RedirectRule {
	out := make(map[string]RedirectRule, len(t.redirects))
	for id, rule := range t.redirects {
		out[id] = rule
	}
	return out
}

// All returns every configured identifier (supported and redirected), sorted.
func (t *TargetTable) All() []string {
	out := make([]string, 0, len(t.supported)+len(t.redirects))
	for id := range t.supported {
		out = append(out, id)
	}
	for id := range t.redirects {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
