package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/hinting/hint"
	"github.com/pterm/pterm"
)

func reportOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkAnalysis(); err != nil {
		return err, false
	}
	diags := intp.diags.Diagnostics
	if arg, ok := op.hasArg(); ok {
		diags = intp.diags.ByCode(strings.ToUpper(arg))
	}
	if len(diags) == 0 {
		pterm.Printf("no findings\n")
		return nil, false
	}
	data := [][]string{
		{"Severity", "Code", "Message"},
	}
	for _, d := range diags {
		data = append(data, []string{
			d.Severity.String(),
			d.Code,
			d.Message(),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func statsOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkAnalysis(); err != nil {
		return err, false
	}
	m := intp.analysis.Statistics().Maxima
	data := [][]string{
		{"Resource", "Maximum"},
		{"stack depth", formatMaximum(m.Stack)},
		{"function", formatMaximum(m.Function)},
		{"CVT entry", formatMaximum(m.CVT)},
		{"storage", formatMaximum(m.Storage)},
		{"point", formatMaximum(m.Point)},
		{"point moved", formatMaximum(m.PointMoved)},
		{"twilight point", formatMaximum(m.TwilightPoint)},
		{"contour", formatMaximum(m.Contour)},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	printEffects(intp.analysis.Statistics())
	return nil, false
}

func formatMaximum(m int64) string {
	if m < 0 {
		return "-"
	}
	return strconv.FormatInt(m, 10)
}

// printEffects lists which graphics-state registers each call site may
// alter, as far as the analysis could tell.
func printEffects(stats *hint.Statistics) {
	sites := stats.EffectSites()
	if len(sites) == 0 {
		return
	}
	pterm.Printf("graphics state effects at %d call sites\n", len(sites))
	data := [][]string{
		{"Program", "PC", "Registers"},
	}
	for _, site := range sites {
		regs := stats.GSEffects(site)
		names := make([]string, len(regs))
		for i, r := range regs {
			names[i] = r.String()
		}
		data = append(data, []string{
			site.Program,
			fmt.Sprintf("%d", site.PC),
			strings.Join(names, ", "),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func functionsOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkAnalysis(); err != nil {
		return err, false
	}
	indices := intp.analysis.Functions()
	if len(indices) == 0 {
		pterm.Printf("fpgm defines no functions\n")
		return nil, false
	}
	signatures := intp.analysis.FunctionSignatures()
	data := [][]string{
		{"Index", "Args", "Results"},
	}
	for _, idx := range indices {
		args, results := "?", "?"
		if sig, ok := signatures[idx]; ok {
			args = strconv.Itoa(sig.Args)
			results = strconv.Itoa(sig.Results)
		}
		data = append(data, []string{strconv.Itoa(idx), args, results})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

var resourceMap = map[string]hint.Resource{
	"point":         hint.ResourcePoint,
	"twilight":      hint.ResourceTwilightPoint,
	"twilightpoint": hint.ResourceTwilightPoint,
	"contour":       hint.ResourceContour,
	"cvt":           hint.ResourceCVT,
	"storage":       hint.ResourceStorage,
	"function":      hint.ResourceFunction,
	"jump":          hint.ResourceJump,
}

// historyOp shows value provenance: 'history:cvt' lists the touched CVT
// indices, 'history:cvt:5' prints where the values selecting entry 5
// came from.
func historyOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkAnalysis(); err != nil {
		return err, false
	}
	arg, ok := op.hasArg()
	if !ok {
		return fmt.Errorf("usage: history:<resource>[:<index>]"), false
	}
	res, ok := resourceMap[strings.ToLower(arg)]
	if !ok {
		return fmt.Errorf("unknown resource: %s", arg), false
	}
	stats := intp.analysis.Statistics()
	if op.format == "" {
		pterm.Printf("touched %s indices: %v\n", res, stats.TouchedIndices(res))
		return nil, false
	}
	idx, err := strconv.Atoi(op.format)
	if err != nil {
		return fmt.Errorf("index not numeric: %v", op.format), false
	}
	entry := stats.History(res, idx)
	if entry == nil {
		pterm.Printf("%s index %d was never touched\n", res, idx)
		return nil, false
	}
	pterm.Printf("%s[%d] selected by %s\n", res, idx, entry)
	return nil, false
}

// listOp pretty-prints an instruction stream: 'list:fpgm', 'list:prep'
// or 'list:<glyph id>'.
func listOp(intp *Intp, op *Op) (error, bool) {
	if intp.tables == nil {
		return ERR_NO_FONT, false
	}
	arg, ok := op.hasArg()
	if !ok {
		return fmt.Errorf("usage: list:fpgm | list:prep | list:<glyph id>"), false
	}
	var raw []byte
	name := arg
	switch strings.ToLower(arg) {
	case "fpgm":
		raw = intp.tables.Fpgm
	case "prep":
		raw = intp.tables.Prep
	default:
		gid, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("not a program name or glyph id: %s", arg), false
		}
		if raw, _, _, err = intp.tables.GlyphProgram(gid); err != nil {
			return err, false
		}
		name = fmt.Sprintf("glyf[%d]", gid)
	}
	printProgram(name, raw)
	return nil, false
}

// printProgram decodes and lists one instruction stream with the
// instruction index, byte offset and mnemonic; IF and FDEF bodies are
// indented.
func printProgram(name string, raw []byte) {
	code, err := hint.Decode(raw)
	if err != nil {
		pterm.Error.Printf("%s: %v\n", name, err)
	}
	pterm.Printf("%s, %d instructions, %d bytes\n", name, len(code), len(raw))
	indent := 0
	for pc, instr := range code {
		switch instr.Opcode {
		case hint.OpELSE:
			printInstruction(pc, indent-1, instr)
			continue
		case hint.OpEIF, hint.OpENDF:
			indent = max(indent-1, 0)
		}
		printInstruction(pc, indent, instr)
		switch instr.Opcode {
		case hint.OpIF, hint.OpFDEF, hint.OpIDEF:
			indent++
		}
	}
}

func printInstruction(pc, indent int, instr hint.Instruction) {
	if indent < 0 {
		indent = 0
	}
	pterm.Printf("%4d  %04x  %s%s\n", pc, instr.Offset(),
		strings.Repeat("    ", indent), instr)
}

func numericArg(op *Op) (int, error) {
	arg, ok := op.hasArg()
	if !ok {
		return 0, fmt.Errorf("%s needs a numeric argument", opNames[op.code])
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("argument not numeric: %v", arg)
	}
	return n, nil
}
