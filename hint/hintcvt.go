package hint

import (
	"github.com/npillmayer/hinting/history"
	"github.com/npillmayer/hinting/triple"
)

// hintRCVT reads one or more CVT entries; a multi-valued index yields the
// union of the candidate entries, with the index provenance recorded
// against each of them.
func (in *interp) hintRCVT() {
	n, hn, ok := in.popAs(ArgKindCVT)
	if !ok {
		return
	}
	indices, any := in.cvtCheck("RCVT", n, hn)
	if !any {
		in.push(triple.FromValue(basisInt, 0), in.opHistory(OpRCVT, hn))
		return
	}
	var value triple.Collection
	var entries []history.Entry
	for i, idx := range indices {
		if i == 0 {
			value = asRaw(in.st.CVT[idx])
		} else {
			value = value.Union(asRaw(in.st.CVT[idx]))
		}
		if h := in.st.cvtHistory[int(idx)]; h != nil {
			entries = append(entries, h)
		}
	}
	entries = append(entries, hn)
	in.push(value, in.opHistory(OpRCVT, history.NewGroup(entries...)))
}

// hintWCVT covers WCVTP and WCVTF. Writes widen the stored entry instead
// of replacing it: from the analysis' point of view a later read may
// observe either value. WCVTF stores FUnits, whose scaled pixel value
// depends on the rendering size, so the entry becomes unconstrained.
func (in *interp) hintWCVT(op Opcode) {
	value, hv, ok := in.pop()
	if !ok {
		return
	}
	n, hn, ok := in.popAs(ArgKindCVT)
	if !ok {
		return
	}
	indices, any := in.cvtCheck(op.String(), n, hn)
	if !any {
		return
	}
	stored := asPixels(value)
	if op == OpWCVTF {
		stored = triple.Any(basisPixel)
	}
	for _, idx := range indices {
		in.st.CVT[idx] = in.st.CVT[idx].Union(stored)
		in.st.cvtHistory[int(idx)] = history.Combine(in.st.cvtHistory[int(idx)], hv)
	}
}
