package history

import (
	"fmt"
	"iter"
	"strings"
)

// Kind discriminates the Entry variants.
type Kind int

const (
	KindPush Kind = iota
	KindOp
	KindRefPt
	KindStorage
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindPush:
		return "push"
	case KindOp:
		return "op"
	case KindRefPt:
		return "refPt"
	case KindStorage:
		return "storage"
	case KindGroup:
		return "group"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Entry is a single provenance node. Implementations are immutable; clients
// share them freely by pointer.
//
// Key returns a canonical structural identity, cheap to compare: two
// entries with equal keys describe the same provenance without requiring a
// deep traversal by the comparer.
type Entry interface {
	Kind() Kind
	Key() string
	Leaves() iter.Seq[Entry]
	fmt.Stringer
}

// Push records that a value entered the stack as literal data of a push
// instruction: slot Slot of the push at instruction index PC of the program
// named Program.
type Push struct {
	Program string
	PC      int
	Slot    int
	key     string
}

// NewPush creates a push-provenance leaf.
func NewPush(program string, pc, slot int) *Push {
	return &Push{
		Program: program,
		PC:      pc,
		Slot:    slot,
		key:     fmt.Sprintf("0|%s|%d|%d", program, pc, slot),
	}
}

func (p *Push) Kind() Kind  { return KindPush }
func (p *Push) Key() string { return p.key }

func (p *Push) Leaves() iter.Seq[Entry] {
	return func(yield func(Entry) bool) { yield(p) }
}

func (p *Push) String() string {
	return fmt.Sprintf("extra index %d in PUSH opcode index %d in %s", p.Slot, p.PC, p.Program)
}

// RefPt records the implicit read of a reference-point register that was
// never explicitly assigned: the engine's default of zero was used.
type RefPt struct {
	Program string
	PC      int
	RefPt   int
	key     string
}

// NewRefPt creates a reference-point-default leaf.
func NewRefPt(program string, pc, refPt int) *RefPt {
	return &RefPt{
		Program: program,
		PC:      pc,
		RefPt:   refPt,
		key:     fmt.Sprintf("1|%s|%d|%d", program, pc, refPt),
	}
}

func (r *RefPt) Kind() Kind  { return KindRefPt }
func (r *RefPt) Key() string { return r.key }

func (r *RefPt) Leaves() iter.Seq[Entry] {
	return func(yield func(Entry) bool) { yield(r) }
}

func (r *RefPt) String() string {
	return fmt.Sprintf("implicit zero for RP%d used at opcode index %d in %s", r.RefPt, r.PC, r.Program)
}

// Storage records the implicit read of a storage location that was never
// written: the engine's default of zero was used.
type Storage struct {
	Program string
	PC      int
	Index   int
	key     string
}

// NewStorage creates a storage-default leaf.
func NewStorage(program string, pc, index int) *Storage {
	return &Storage{
		Program: program,
		PC:      pc,
		Index:   index,
		key:     fmt.Sprintf("2|%s|%d|%d", program, pc, index),
	}
}

func (s *Storage) Kind() Kind  { return KindStorage }
func (s *Storage) Key() string { return s.key }

func (s *Storage) Leaves() iter.Seq[Entry] {
	return func(yield func(Entry) bool) { yield(s) }
}

func (s *Storage) String() string {
	return fmt.Sprintf("implicit zero for storage location %d used at opcode index %d in %s",
		s.Index, s.PC, s.Program)
}

// Op records that a value was produced by an opcode applied to operands
// with the given histories, in stack order. Inputs are referenced, not
// copied; the same input entry may appear under many Op nodes.
type Op struct {
	Program string
	PC      int
	Opcode  byte
	Name    string
	inputs  []Entry
	key     string
}

// NewOp creates an interior operation node over the given operand
// histories. Nil inputs are skipped.
func NewOp(program string, pc int, opcode byte, name string, inputs ...Entry) *Op {
	kept := make([]Entry, 0, len(inputs))
	var keys strings.Builder
	for _, in := range inputs {
		if in == nil {
			continue
		}
		kept = append(kept, in)
		keys.WriteByte('(')
		keys.WriteString(in.Key())
		keys.WriteByte(')')
	}
	return &Op{
		Program: program,
		PC:      pc,
		Opcode:  opcode,
		Name:    name,
		inputs:  kept,
		key:     fmt.Sprintf("3|%s|%d|%02X|%s", program, pc, opcode, keys.String()),
	}
}

func (o *Op) Kind() Kind  { return KindOp }
func (o *Op) Key() string { return o.key }

// Inputs returns the operand histories in stack order.
func (o *Op) Inputs() []Entry {
	out := make([]Entry, len(o.inputs))
	copy(out, o.inputs)
	return out
}

// Leaves yields the Push/RefPt/Storage leaves of the DAG under this node,
// depth-first, duplicates suppressed.
func (o *Op) Leaves() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		seen := map[string]bool{}
		var walk func(e Entry) bool
		walk = func(e Entry) bool {
			if op, ok := e.(*Op); ok {
				for _, in := range op.inputs {
					if !walk(in) {
						return false
					}
				}
				return true
			}
			if g, ok := e.(*Group); ok {
				for _, m := range g.members {
					if !walk(m) {
						return false
					}
				}
				return true
			}
			if seen[e.Key()] {
				return true
			}
			seen[e.Key()] = true
			return yield(e)
		}
		walk(o)
	}
}

func (o *Op) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "result of opcode %s at index %d in %s", o.Name, o.PC, o.Program)
	if len(o.inputs) > 0 {
		b.WriteString(", with inputs:")
		for _, in := range o.inputs {
			b.WriteString("\n  ")
			b.WriteString(in.String())
		}
	}
	return b.String()
}
