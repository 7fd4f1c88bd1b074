/*
Package hint interprets TrueType hinting bytecode abstractly.

The package decodes raw instruction streams, splits the font program into
FDEF/IDEF bodies, and then runs each program over a symbolic machine state:
operand-stack slots hold triple.Collection range-sets instead of concrete
numbers, and every slot carries a history.Entry recording which push
instruction(s) the value derives from. Handlers for all opcodes of the
instruction set validate their operands (stack depth, bit widths, zone and
point existence, CVT and storage indexing) and report findings as
structured diagnostics through a hinting.Sink.

Typical use goes through the Analysis façade:

	a := hint.NewAnalysis(sink)
	a.SetCVT(cvt)
	a.AnalyzeFontProgram(fpgm)
	a.AnalyzePreProgram(prep)
	a.AnalyzeGlyphProgram(instrs, "glyph 'A'", pointCount, contourCount)
	stats := a.Statistics()

The resulting Statistics answer which points, CVT entries, storage slots
and functions a set of hint programs can touch, how deep the stack grows,
and which graphics-state registers each call site mutates.

# Status

Covers the standard TrueType instruction set (0x00–0xFF). Vendor-private
extensions report as unknown opcodes unless an IDEF defines them.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package hint

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tyse.hints'
func tracer() tracing.Trace {
	return tracing.Select("tyse.hints")
}
