package hint

import "fmt"

// Instruction is one decoded TrueType instruction. Push instructions carry
// their literal data; all others consist of the opcode byte alone.
type Instruction struct {
	Opcode Opcode
	Data   []int64 // literal push data, sign-extended for the word forms
	offset int     // byte offset of the opcode in the original stream
	length int     // total byte length including any literal data
}

// Program is a decoded instruction stream together with the name used to
// identify it in diagnostics, e.g. "prep" or "fpgm, FDEF 12".
type Program struct {
	Name string
	Code []Instruction
}

// Offset returns the byte position of the instruction's opcode in the
// original stream.
func (in Instruction) Offset() int {
	return in.offset
}

func (in Instruction) String() string {
	if len(in.Data) == 0 {
		return in.Opcode.String()
	}
	return fmt.Sprintf("%s %v", in.Opcode, in.Data)
}

// Decode parses a raw instruction stream. Offsets and lengths are recorded
// so that the relative-jump opcodes can be mapped back onto instruction
// indices. A push instruction whose literal data runs past the end of the
// stream yields an error; everything decoded up to that point is returned.
func Decode(raw []byte) ([]Instruction, error) {
	var code []Instruction
	pos := 0
	for pos < len(raw) {
		op := Opcode(raw[pos])
		in := Instruction{Opcode: op, offset: pos, length: 1}
		switch {
		case op == OpNPUSHB:
			if pos+1 >= len(raw) {
				return code, fmt.Errorf("truncated NPUSHB at offset %d", pos)
			}
			count := int(raw[pos+1])
			if pos+2+count > len(raw) {
				return code, fmt.Errorf("truncated NPUSHB at offset %d", pos)
			}
			in.Data = bytesToData(raw[pos+2 : pos+2+count])
			in.length = count + 2
		case op == OpNPUSHW:
			if pos+1 >= len(raw) {
				return code, fmt.Errorf("truncated NPUSHW at offset %d", pos)
			}
			count := int(raw[pos+1])
			if pos+2+2*count > len(raw) {
				return code, fmt.Errorf("truncated NPUSHW at offset %d", pos)
			}
			in.Data = wordsToData(raw[pos+2 : pos+2+2*count])
			in.length = 2*count + 2
		case op >= 0xB0 && op <= 0xB7:
			count := int(op) - 0xAF
			if pos+1+count > len(raw) {
				return code, fmt.Errorf("truncated %s at offset %d", op, pos)
			}
			in.Data = bytesToData(raw[pos+1 : pos+1+count])
			in.length = count + 1
		case op >= 0xB8 && op <= 0xBF:
			count := int(op) - 0xB7
			if pos+1+2*count > len(raw) {
				return code, fmt.Errorf("truncated %s at offset %d", op, pos)
			}
			in.Data = wordsToData(raw[pos+1 : pos+1+2*count])
			in.length = 2*count + 1
		}
		code = append(code, in)
		pos += in.length
	}
	return code, nil
}

func bytesToData(b []byte) []int64 {
	data := make([]int64, len(b))
	for i, v := range b {
		data[i] = int64(v)
	}
	return data
}

func wordsToData(b []byte) []int64 {
	data := make([]int64, len(b)/2)
	for i := range data {
		data[i] = int64(int16(uint16(b[2*i])<<8 | uint16(b[2*i+1])))
	}
	return data
}

// indexAtOffset maps a byte offset back to an instruction index, or -1 if
// the offset does not land on an instruction boundary.
func indexAtOffset(code []Instruction, offset int) int {
	for i := range code {
		if code[i].offset == offset {
			return i
		}
	}
	return -1
}
