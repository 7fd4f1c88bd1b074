/*
Package hinting is a static-analysis toolkit for TrueType hinting bytecode.

TrueType hints are small stack-machine programs embedded in fonts (the
'fpgm', 'prep' and per-glyph instruction streams). This module interprets
such programs abstractly: instead of concrete pixel positions it computes
over symbolic sets of integers, which lets it validate hint programs,
detect arithmetic and indexing errors, and trace every derived value back
to the push instruction(s) it came from, without ever running a rasterizer.

The module is organized in layers, leaves first:

▪︎ package triple — the symbolic value domain: sets of integers represented
as coalesced arithmetic progressions, with a closed algebra for arithmetic,
bitwise and comparison operations.

▪︎ package history — the provenance model: immutable entries recording how
each stack value was produced, forming a DAG from results back to pushes.

▪︎ package hint — the interpreter: instruction decoding, the simulated
graphics state, per-opcode abstract semantics, statistics aggregation, and
the FDEF/IDEF program splitter.

This root package holds what the layers share: the diagnostic severity
taxonomy and the structured sink that analysis results are reported
through.

# Status

Covers the standard TrueType instruction set (0x00–0xFF). Vendor-private
extensions report as unknown opcodes.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package hinting

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tyse.hints'
func tracer() tracing.Trace {
	return tracing.Select("tyse.hints")
}
