package hint

import (
	"github.com/npillmayer/hinting"
	"github.com/npillmayer/hinting/history"
	"github.com/npillmayer/hinting/triple"
)

func (in *interp) hintDUP() {
	v, h, ok := in.pop()
	if !ok {
		return
	}
	in.push(v, h)
	in.push(v, h)
}

func (in *interp) hintPOP() {
	in.pop()
}

func (in *interp) hintCLEAR() {
	for in.st.Depth() > 0 {
		in.st.Pop()
		if in.ctx.ArgTracer != nil {
			in.ctx.ArgTracer.NotePop(in.st.Depth(), ArgKindValue, "CLEAR")
		}
	}
}

func (in *interp) hintSWAP() {
	a, ha, ok := in.pop()
	if !ok {
		return
	}
	b, hb, ok := in.pop()
	if !ok {
		return
	}
	in.push(a, ha)
	in.push(b, hb)
}

func (in *interp) hintROLL() {
	vs, hs, ok := in.popN(3)
	if !ok {
		return
	}
	// vs[0] was the top; ROLL moves the third element to the top
	in.push(vs[1], hs[1])
	in.push(vs[0], hs[0])
	in.push(vs[2], hs[2])
}

func (in *interp) hintDEPTH() {
	depth := in.st.Depth()
	in.push(triple.FromValue(basisInt, int64(depth)), in.opHistory(OpDEPTH))
}

// hintCINDEX copies the k-th stack element (k = 1 is the top) to the top.
// A multi-valued k yields the union of all candidate elements, with their
// provenances grouped.
func (in *interp) hintCINDEX() {
	k, _, ok := in.pop()
	if !ok {
		return
	}
	indices, ok := in.indexValues(k)
	if !ok {
		return
	}
	var value triple.Collection
	var entries []history.Entry
	first := true
	for _, ki := range indices {
		v, h, found := in.st.Peek(int(ki) - 1)
		if ki < 1 || !found {
			in.fail(hinting.SeverityCritical, "E6046",
				"Stack underflow in %s (PC %d).", in.prog.Name, in.st.PC)
			in.halt()
			return
		}
		if first {
			value, first = v, false
		} else {
			value = value.Union(v)
		}
		entries = append(entries, h)
	}
	in.push(value, history.NewGroup(entries...))
}

// hintMINDEX moves the k-th stack element to the top. The index must be
// single valued, since moving an uncertain element would desynchronize
// the stack model; a multi-valued index degrades to a CINDEX-style copy.
func (in *interp) hintMINDEX() {
	k, _, ok := in.pop()
	if !ok {
		return
	}
	ki, single := k.ToNumber()
	if !single {
		in.fail(hinting.SeverityError, "V0511",
			"In %s (PC %d) a Collection value was used, but is not "+
				"supported here.", in.prog.Name, in.st.PC)
		indices, ok := in.indexValues(k)
		if !ok {
			return
		}
		var value triple.Collection
		var entries []history.Entry
		for i, idx := range indices {
			v, h, found := in.st.Peek(int(idx) - 1)
			if !found {
				continue
			}
			if i == 0 {
				value = v
			} else {
				value = value.Union(v)
			}
			entries = append(entries, h)
		}
		in.push(value, history.NewGroup(entries...))
		return
	}
	if ki < 1 || int(ki) > in.st.Depth() {
		in.fail(hinting.SeverityCritical, "E6046",
			"Stack underflow in %s (PC %d).", in.prog.Name, in.st.PC)
		in.halt()
		return
	}
	vs, hs, ok := in.popN(int(ki))
	if !ok {
		return
	}
	// vs[ki-1] is the selected element; the ones above it close ranks
	for i := int(ki) - 2; i >= 0; i-- {
		in.push(vs[i], hs[i])
	}
	in.push(vs[ki-1], hs[ki-1])
}
