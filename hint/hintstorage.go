package hint

import (
	"github.com/npillmayer/hinting"
	"github.com/npillmayer/hinting/history"
	"github.com/npillmayer/hinting/triple"
)

// hintRS reads a storage slot. A slot that was never written reads as an
// implicit zero with a synthetic provenance entry, so downstream values
// still trace back to something meaningful.
func (in *interp) hintRS() {
	n, hn, ok := in.popAs(ArgKindStorage)
	if !ok {
		return
	}
	indices, ok := in.indexValues(n)
	if !ok {
		return
	}
	var value triple.Collection
	var entries []history.Entry
	first := true
	for _, idx := range indices {
		if idx < 0 {
			in.fail(hinting.SeverityError, "V0513",
				"In %s (PC %d) the value %d is too low.",
				in.prog.Name, in.st.PC, idx)
			continue
		}
		in.st.Statistics.NoteUsage(ResourceStorage, int(idx), hn)
		v, written := in.st.Storage(int(idx))
		if !written {
			in.fail(hinting.SeverityWarning, "V0807",
				"RS opcode in %s (PC %d) reads storage location %d, which "+
					"was never written; zero is assumed.",
				in.prog.Name, in.st.PC, idx)
			v = triple.FromValue(basisInt, 0)
		}
		if first {
			value, first = v, false
		} else {
			value = value.Union(v)
		}
		entries = append(entries, in.storageHistoryOrSynth(int(idx)))
	}
	if first {
		return
	}
	in.push(value, history.NewGroup(entries...))
}

// hintWS writes a storage slot. A multi-valued index widens every
// candidate slot instead of replacing it, since only one of them will be
// written at rasterization time.
func (in *interp) hintWS() {
	value, hv, ok := in.pop()
	if !ok {
		return
	}
	n, hn, ok := in.popAs(ArgKindStorage)
	if !ok {
		return
	}
	indices, ok := in.indexValues(n)
	if !ok {
		return
	}
	single := len(indices) == 1
	for _, idx := range indices {
		if idx < 0 {
			in.fail(hinting.SeverityError, "V0513",
				"In %s (PC %d) the value %d is too low.",
				in.prog.Name, in.st.PC, idx)
			continue
		}
		in.st.Statistics.NoteUsage(ResourceStorage, int(idx), hn)
		if single {
			in.st.SetStorage(int(idx), value, hv)
			continue
		}
		old, written := in.st.Storage(int(idx))
		if written {
			in.st.SetStorage(int(idx), old.Union(value),
				history.Combine(in.st.StorageHistory(int(idx)), hv))
		} else {
			in.st.SetStorage(int(idx), value.Union(triple.FromValue(basisInt, 0)), hv)
		}
	}
}
