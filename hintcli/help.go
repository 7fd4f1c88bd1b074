package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "analyze", "analysis":
		pterm.Info.Println("Analysis")
		pterm.Println(`
	'analyze' starts a fresh validation pass over the loaded font:
	the font program ('fpgm') is split into its function definitions,
	then the pre-program ('prep') is interpreted once. Values are
	tracked as sets covering every possible rendering size at once,
	so one pass validates all sizes.

	'glyph:<id>' then checks a single glyph's instructions against
	the state the pre-program left behind; 'glyphs' checks every
	hinted glyph of the font.

	Findings accumulate until the next 'analyze'. Inspect them with
	'report', 'stats', 'functions' and 'history'.
	`)
	case "report", "findings":
		pterm.Info.Println("Report")
		pterm.Println(`
	'report' lists the collected findings, worst first is not implied,
	they appear in detection order:
	+----------+-------+-----------------------------+
	| Severity | Code  | Message                     |
	+----------+-------+-----------------------------+
	Codes are stable identifiers, e.g. E6046 for a stack underflow.
	'report:<code>' filters for one code.
	`)
	case "history", "provenance":
		pterm.Info.Println("History")
		pterm.Println(`
	The engine records where the values selecting each resource index
	came from. 'history:<resource>' lists the touched indices of a
	resource (point, twilight, contour, cvt, storage, function, jump);
	'history:cvt:5' prints the provenance of the accesses to CVT
	entry 5, as push locations, reference point usages and operations
	on them.
	`)
	case "list", "listing":
		pterm.Info.Println("Listing")
		pterm.Println(`
	'list:fpgm', 'list:prep' and 'list:<glyph id>' decode and print an
	instruction stream. Each line shows the instruction index, the byte
	offset of the opcode and the mnemonic with any pushed literals.
	IF and FDEF bodies are shown indented.
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	font:<file>     load a font (TTF or OTF)
	analyze         validate fpgm and prep
	glyph:<id>      validate one glyph's instructions
	glyphs          validate all hinted glyphs
	report[:code]   show findings
	stats           show resource maxima and graphics state effects
	functions       show function definitions with inferred signatures
	history:<r>[:i] show touched indices / value provenance
	list:<prog>     print an instruction stream (fpgm, prep, glyph id)
	names           show the font's name table entries
	quit            leave (or <ctrl>D)

	'help:analyze', 'help:report', 'help:history', 'help:list' give
	details per topic.
	`)
	}
}
