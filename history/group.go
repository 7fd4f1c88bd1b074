package history

import (
	"iter"
	"sort"
	"strings"
)

// Group is an unordered, flat collection of entries, used when one abstract
// value was assembled from sources with different provenance (for example
// an index Collection spanning several stack slots). Groups never nest;
// constructing a Group from other Groups splices in their members. Members
// are deduplicated by Key.
type Group struct {
	members []Entry
	key     string
}

// NewGroup combines entries into a flat group. Nil entries are skipped. A
// resulting group of exactly one member collapses to that member; an empty
// argument list yields nil.
func NewGroup(entries ...Entry) Entry {
	byKey := map[string]Entry{}
	var add func(e Entry)
	add = func(e Entry) {
		if e == nil {
			return
		}
		if g, ok := e.(*Group); ok {
			for _, m := range g.members {
				add(m)
			}
			return
		}
		byKey[e.Key()] = e
	}
	for _, e := range entries {
		add(e)
	}
	if len(byKey) == 0 {
		return nil
	}
	members := make([]Entry, 0, len(byKey))
	for _, e := range byKey {
		members = append(members, e)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Key() < members[j].Key() })
	if len(members) == 1 {
		return members[0]
	}
	keys := make([]string, len(members))
	for i, m := range members {
		keys[i] = m.Key()
	}
	return &Group{members: members, key: "4|" + strings.Join(keys, "|")}
}

func (g *Group) Kind() Kind  { return KindGroup }
func (g *Group) Key() string { return g.key }

// Members returns the entries in canonical key order.
func (g *Group) Members() []Entry {
	out := make([]Entry, len(g.members))
	copy(out, g.members)
	return out
}

func (g *Group) Leaves() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		seen := map[string]bool{}
		for _, m := range g.members {
			for leaf := range m.Leaves() {
				if seen[leaf.Key()] {
					continue
				}
				seen[leaf.Key()] = true
				if !yield(leaf) {
					return
				}
			}
		}
	}
}

func (g *Group) String() string {
	parts := make([]string, len(g.members))
	for i, m := range g.members {
		parts[i] = m.String()
	}
	return strings.Join(parts, "\n")
}

// Combine merges two histories into one entry, grouping when they differ.
// Either argument may be nil.
func Combine(a, b Entry) Entry {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.Key() == b.Key() {
		return a
	}
	return NewGroup(a, b)
}

// CombineMaps merges the provenance map src into dst: entries for new keys
// are adopted, entries for existing keys are grouped with what is already
// there. Statistics aggregation across branch merges and function calls is
// built on this.
func CombineMaps(dst, src map[int]Entry) {
	for k, h := range src {
		if h == nil {
			continue
		}
		dst[k] = Combine(dst[k], h)
	}
}
