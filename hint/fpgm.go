package hint

import (
	"fmt"

	"github.com/npillmayer/hinting"
)

// SplitFunctions partitions a font program ('fpgm') instruction stream
// into its FDEF and IDEF bodies and registers them in the context. At the
// top level of a font program only pushes and definitions are expected;
// pushes feed a special stack from which each FDEF or IDEF takes its
// index.
//
// Structural failures (stray ENDF, nested definitions, bad IDEF targets)
// are reported through the sink and returned as a hard error; everything
// registered up to that point stays registered.
func SplitFunctions(code []Instruction, ctx *Context) error {
	if ctx.Functions == nil {
		ctx.Functions = make(map[int]*Program)
	}
	if ctx.Instructions == nil {
		ctx.Instructions = make(map[Opcode]*Program)
	}
	var specialStack []int64
	startIndex := -1
	isIDEFCase := false
	var dIndex int64
	for i, instr := range code {
		if startIndex == -1 {
			// not inside a definition, so pushes are live
			if instr.Opcode.IsPush() {
				specialStack = append(specialStack, instr.Data...)
				continue
			}
			switch instr.Opcode {
			case OpFDEF, OpIDEF:
				if len(specialStack) == 0 {
					ctx.report(hinting.SeverityCritical, "E6046",
						"Stack underflow in fpgm (PC %d).", i)
					return fmt.Errorf("fpgm: %s at instruction %d has no index", instr.Opcode, i)
				}
				dIndex = specialStack[len(specialStack)-1]
				specialStack = specialStack[:len(specialStack)-1]
				startIndex = i
				isIDEFCase = instr.Opcode == OpIDEF
				if isIDEFCase {
					if dIndex < 0 || dIndex > 255 {
						ctx.report(hinting.SeverityError, "E6025",
							"Cannot define opcode %d; not 0-255.", dIndex)
						return fmt.Errorf("fpgm: IDEF index %d out of range", dIndex)
					}
					if !isReservedOpcode(Opcode(dIndex)) {
						ctx.report(hinting.SeverityError, "E6026",
							"Cannot redefine built-in opcode 0x%02X.", dIndex)
						return fmt.Errorf("fpgm: IDEF redefines opcode 0x%02X", dIndex)
					}
				}
			case OpENDF:
				ctx.report(hinting.SeverityError, "V0173",
					"ENDF appeared without FDEF or IDEF.")
				return fmt.Errorf("fpgm: stray ENDF at instruction %d", i)
			default:
				ctx.report(hinting.SeverityWarning, "V0804",
					"Executable opcode %s outside any definition in fpgm (PC %d).",
					instr.Opcode, i)
			}
			continue
		}
		if instr.Opcode.IsPush() {
			continue
		}
		switch instr.Opcode {
		case OpENDF:
			body := code[startIndex+1 : i]
			if isIDEFCase {
				info := fmt.Sprintf("IDEF %d", dIndex)
				ctx.Instructions[Opcode(dIndex)] = &Program{Name: info, Code: body}
				ctx.report(hinting.SeverityWarning, "V0174",
					"%s encountered; note that IDEFs are deprecated.", info)
			} else {
				info := fmt.Sprintf("FDEF %d", dIndex)
				ctx.Functions[int(dIndex)] = &Program{Name: info, Code: body}
			}
			startIndex = -1
		case OpFDEF:
			ctx.report(hinting.SeverityError, "V0175",
				"Nested FDEFs are not permitted.")
			return fmt.Errorf("fpgm: nested FDEF at instruction %d", i)
		case OpIDEF:
			ctx.report(hinting.SeverityError, "V0176",
				"Nested IDEFs are not permitted.")
			return fmt.Errorf("fpgm: nested IDEF at instruction %d", i)
		}
	}
	if startIndex != -1 {
		// an unclosed final definition is tolerated
		body := code[startIndex+1:]
		if len(body) > 0 {
			body = body[:len(body)-1]
		}
		if isIDEFCase {
			info := fmt.Sprintf("IDEF %d", dIndex)
			ctx.Instructions[Opcode(dIndex)] = &Program{Name: info, Code: body}
			ctx.report(hinting.SeverityWarning, "V0177",
				"%s was not explicitly closed with an ENDF.", info)
		} else {
			info := fmt.Sprintf("FDEF %d", dIndex)
			ctx.Functions[int(dIndex)] = &Program{Name: info, Code: body}
			ctx.report(hinting.SeverityWarning, "V0178",
				"%s was not explicitly closed with an ENDF.", info)
		}
	}
	return nil
}

// isReservedOpcode is true for encodings the instruction set leaves
// unassigned; only those may be targeted by an IDEF.
func isReservedOpcode(op Opcode) bool {
	if _, named := opcodeNames[op]; named {
		return false
	}
	switch {
	case op >= 0x68 && op <= 0x6F: // ROUND/NROUND families
		return false
	case op >= 0xB0 && op <= 0xBF: // PUSHB/PUSHW
		return false
	case op >= 0xC0: // MDRP/MIRP
		return false
	}
	return true
}
