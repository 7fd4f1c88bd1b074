package hint

import (
	"github.com/npillmayer/hinting"
	"github.com/npillmayer/hinting/triple"
)

// hintBinaryArith covers the two-operand arithmetic opcodes. TrueType pops
// e2 then e1 and pushes e1 op e2; values are 26.6 pixels, so MUL and DIV
// rescale by 64.
func (in *interp) hintBinaryArith(op Opcode) {
	e2, h2, ok := in.pop()
	if !ok {
		return
	}
	e1, h1, ok := in.pop()
	if !ok {
		return
	}
	var result triple.Collection
	switch op {
	case OpADD:
		result = e1.Add(e2)
	case OpSUB:
		result = e1.Sub(e2)
	case OpMUL:
		result = e1.Mul(e2).FloorDivConstant(64)
	case OpDIV:
		if e2.Contains(0) {
			in.fail(hinting.SeverityError, "E6057",
				"DIV hint in %s (PC %d) divides by zero; zero is "+
					"substituted for the result.", in.prog.Name, in.st.PC)
			result = triple.FromValue(e1.Basis(), 0)
			break
		}
		result = e1.MulConstant(64).Div(e2)
	case OpMAX:
		result = e1.Maximum(e2)
	case OpMIN:
		result = e1.Minimum(e2)
	}
	in.push(result, in.opHistory(op, h1, h2))
}

// hintUnaryArith covers the one-operand arithmetic opcodes.
func (in *interp) hintUnaryArith(op Opcode) {
	v, h, ok := in.pop()
	if !ok {
		return
	}
	var result triple.Collection
	switch op {
	case OpABS:
		result = v.Abs()
	case OpNEG:
		result = v.Neg()
	case OpFLOOR:
		result = v.FloorDivConstant(64).MulConstant(64)
	case OpCEILING:
		result = v.Neg().FloorDivConstant(64).MulConstant(64).Neg()
	}
	in.push(result, in.opHistory(op, h))
}
