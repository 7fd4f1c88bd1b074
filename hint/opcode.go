package hint

import "fmt"

// Opcode is a single TrueType instruction byte.
type Opcode byte

// The named opcodes of the TrueType instruction set. Families whose low
// bits encode flags (MDRP, MIRP, PUSHB, PUSHW) are listed by their base
// value; see the predicate methods for decoding.
const (
	OpSVTCAy    Opcode = 0x00
	OpSVTCAx    Opcode = 0x01
	OpSPVTCAy   Opcode = 0x02
	OpSPVTCAx   Opcode = 0x03
	OpSFVTCAy   Opcode = 0x04
	OpSFVTCAx   Opcode = 0x05
	OpSPVTLpar  Opcode = 0x06
	OpSPVTLperp Opcode = 0x07
	OpSFVTLpar  Opcode = 0x08
	OpSFVTLperp Opcode = 0x09
	OpSPVFS     Opcode = 0x0A
	OpSFVFS     Opcode = 0x0B
	OpGPV       Opcode = 0x0C
	OpGFV       Opcode = 0x0D
	OpSFVTPV    Opcode = 0x0E
	OpISECT     Opcode = 0x0F
	OpSRP0      Opcode = 0x10
	OpSRP1      Opcode = 0x11
	OpSRP2      Opcode = 0x12
	OpSZP0      Opcode = 0x13
	OpSZP1      Opcode = 0x14
	OpSZP2      Opcode = 0x15
	OpSZPS      Opcode = 0x16
	OpSLOOP     Opcode = 0x17
	OpRTG       Opcode = 0x18
	OpRTHG      Opcode = 0x19
	OpSMD       Opcode = 0x1A
	OpELSE      Opcode = 0x1B
	OpJMPR      Opcode = 0x1C
	OpSCVTCI    Opcode = 0x1D
	OpSSWCI     Opcode = 0x1E
	OpSSW       Opcode = 0x1F
	OpDUP       Opcode = 0x20
	OpPOP       Opcode = 0x21
	OpCLEAR     Opcode = 0x22
	OpSWAP      Opcode = 0x23
	OpDEPTH     Opcode = 0x24
	OpCINDEX    Opcode = 0x25
	OpMINDEX    Opcode = 0x26
	OpALIGNPTS  Opcode = 0x27
	OpUTP       Opcode = 0x29
	OpLOOPCALL  Opcode = 0x2A
	OpCALL      Opcode = 0x2B
	OpFDEF      Opcode = 0x2C
	OpENDF      Opcode = 0x2D
	OpMDAP      Opcode = 0x2E // …0x2F, bit 0 = round
	OpIUPy      Opcode = 0x30
	OpIUPx      Opcode = 0x31
	OpSHP       Opcode = 0x32 // …0x33, bit 0 = use RP1
	OpSHC       Opcode = 0x34 // …0x35
	OpSHZ       Opcode = 0x36 // …0x37
	OpSHPIX     Opcode = 0x38
	OpIP        Opcode = 0x39
	OpMSIRP     Opcode = 0x3A // …0x3B, bit 0 = set RP0
	OpALIGNRP   Opcode = 0x3C
	OpRTDG      Opcode = 0x3D
	OpMIAP      Opcode = 0x3E // …0x3F, bit 0 = round
	OpNPUSHB    Opcode = 0x40
	OpNPUSHW    Opcode = 0x41
	OpWS        Opcode = 0x42
	OpRS        Opcode = 0x43
	OpWCVTP     Opcode = 0x44
	OpRCVT      Opcode = 0x45
	OpGCcur     Opcode = 0x46
	OpGCorig    Opcode = 0x47
	OpSCFS      Opcode = 0x48
	OpMDgrid    Opcode = 0x49
	OpMDorig    Opcode = 0x4A
	OpMPPEM     Opcode = 0x4B
	OpMPS       Opcode = 0x4C
	OpFLIPON    Opcode = 0x4D
	OpFLIPOFF   Opcode = 0x4E
	OpDEBUG     Opcode = 0x4F
	OpLT        Opcode = 0x50
	OpLTEQ      Opcode = 0x51
	OpGT        Opcode = 0x52
	OpGTEQ      Opcode = 0x53
	OpEQ        Opcode = 0x54
	OpNEQ       Opcode = 0x55
	OpODD       Opcode = 0x56
	OpEVEN      Opcode = 0x57
	OpIF        Opcode = 0x58
	OpEIF       Opcode = 0x59
	OpAND       Opcode = 0x5A
	OpOR        Opcode = 0x5B
	OpNOT       Opcode = 0x5C
	OpDELTAP1   Opcode = 0x5D
	OpSDB       Opcode = 0x5E
	OpSDS       Opcode = 0x5F
	OpADD       Opcode = 0x60
	OpSUB       Opcode = 0x61
	OpDIV       Opcode = 0x62
	OpMUL       Opcode = 0x63
	OpABS       Opcode = 0x64
	OpNEG       Opcode = 0x65
	OpFLOOR     Opcode = 0x66
	OpCEILING   Opcode = 0x67
	OpROUND     Opcode = 0x68 // …0x6B, bits 0-1 = distance color
	OpNROUND    Opcode = 0x6C // …0x6F
	OpWCVTF     Opcode = 0x70
	OpDELTAP2   Opcode = 0x71
	OpDELTAP3   Opcode = 0x72
	OpDELTAC1   Opcode = 0x73
	OpDELTAC2   Opcode = 0x74
	OpDELTAC3   Opcode = 0x75
	OpSROUND    Opcode = 0x76
	OpS45ROUND  Opcode = 0x77
	OpJROT      Opcode = 0x78
	OpJROF      Opcode = 0x79
	OpROFF      Opcode = 0x7A
	OpRUTG      Opcode = 0x7C
	OpRDTG      Opcode = 0x7D
	OpSANGW     Opcode = 0x7E
	OpAA        Opcode = 0x7F
	OpFLIPPT    Opcode = 0x80
	OpFLIPRGON  Opcode = 0x81
	OpFLIPRGOFF Opcode = 0x82
	OpSCANCTRL  Opcode = 0x85
	OpSDPVTLpar Opcode = 0x86
	OpSDPVTLprp Opcode = 0x87
	OpGETINFO   Opcode = 0x88
	OpIDEF      Opcode = 0x89
	OpROLL      Opcode = 0x8A
	OpMAX       Opcode = 0x8B
	OpMIN       Opcode = 0x8C
	OpSCANTYPE  Opcode = 0x8D
	OpINSTCTRL  Opcode = 0x8E
	OpPUSHB     Opcode = 0xB0 // …0xB7, count = op-0xAF
	OpPUSHW     Opcode = 0xB8 // …0xBF, count = op-0xB7
	OpMDRP      Opcode = 0xC0 // …0xDF, flag bits below
	OpMIRP      Opcode = 0xE0 // …0xFF
)

// Color selects one of the engraving-distance registers consulted when a
// distance is rounded. The encoding 3 is reserved and invalid.
type Color int

const (
	ColorGray Color = iota
	ColorBlack
	ColorWhite
	ColorBad
)

func (c Color) String() string {
	switch c {
	case ColorGray:
		return "gray"
	case ColorBlack:
		return "black"
	case ColorWhite:
		return "white"
	}
	return "badColor"
}

// IsPush is true for the four literal-data instruction forms.
func (op Opcode) IsPush() bool {
	return op == OpNPUSHB || op == OpNPUSHW || (op >= 0xB0 && op <= 0xBF)
}

// IsDeltaP is true for the three point-delta exception opcodes.
func (op Opcode) IsDeltaP() bool {
	return op == OpDELTAP1 || op == OpDELTAP2 || op == OpDELTAP3
}

// IsDeltaC is true for the three CVT-delta exception opcodes.
func (op Opcode) IsDeltaC() bool {
	return op >= OpDELTAC1 && op <= OpDELTAC3
}

// moveFlags decodes the flag bits of the MDRP/MIRP families: whether RP0
// is updated to the moved point, whether the minimum distance applies,
// whether the distance is rounded, and the distance color.
func (op Opcode) moveFlags() (setRP0, minDist, round bool, color Color) {
	return op&0x10 != 0, op&0x08 != 0, op&0x04 != 0, Color(op & 0x03)
}

// roundColor decodes the color bits of the ROUND/NROUND families.
func (op Opcode) roundColor() Color { return Color(op & 0x03) }

var opcodeNames = map[Opcode]string{
	OpSVTCAy: "SVTCA[y]", OpSVTCAx: "SVTCA[x]",
	OpSPVTCAy: "SPVTCA[y]", OpSPVTCAx: "SPVTCA[x]",
	OpSFVTCAy: "SFVTCA[y]", OpSFVTCAx: "SFVTCA[x]",
	OpSPVTLpar: "SPVTL[parallel]", OpSPVTLperp: "SPVTL[perpendicular]",
	OpSFVTLpar: "SFVTL[parallel]", OpSFVTLperp: "SFVTL[perpendicular]",
	OpSPVFS: "SPVFS", OpSFVFS: "SFVFS", OpGPV: "GPV", OpGFV: "GFV",
	OpSFVTPV: "SFVTPV", OpISECT: "ISECT",
	OpSRP0: "SRP0", OpSRP1: "SRP1", OpSRP2: "SRP2",
	OpSZP0: "SZP0", OpSZP1: "SZP1", OpSZP2: "SZP2", OpSZPS: "SZPS",
	OpSLOOP: "SLOOP", OpRTG: "RTG", OpRTHG: "RTHG", OpSMD: "SMD",
	OpELSE: "ELSE", OpJMPR: "JMPR",
	OpSCVTCI: "SCVTCI", OpSSWCI: "SSWCI", OpSSW: "SSW",
	OpDUP: "DUP", OpPOP: "POP", OpCLEAR: "CLEAR", OpSWAP: "SWAP",
	OpDEPTH: "DEPTH", OpCINDEX: "CINDEX", OpMINDEX: "MINDEX",
	OpALIGNPTS: "ALIGNPTS", OpUTP: "UTP",
	OpLOOPCALL: "LOOPCALL", OpCALL: "CALL",
	OpFDEF: "FDEF", OpENDF: "ENDF",
	OpMDAP: "MDAP[noRound]", 0x2F: "MDAP[round]",
	OpIUPy: "IUP[y]", OpIUPx: "IUP[x]",
	OpSHP: "SHP[RP2]", 0x33: "SHP[RP1]",
	OpSHC: "SHC[RP2]", 0x35: "SHC[RP1]",
	OpSHZ: "SHZ[RP2]", 0x37: "SHZ[RP1]",
	OpSHPIX: "SHPIX", OpIP: "IP",
	OpMSIRP: "MSIRP[noSetRP0]", 0x3B: "MSIRP[setRP0]",
	OpALIGNRP: "ALIGNRP", OpRTDG: "RTDG",
	OpMIAP: "MIAP[noRound]", 0x3F: "MIAP[round]",
	OpNPUSHB: "NPUSHB", OpNPUSHW: "NPUSHW",
	OpWS: "WS", OpRS: "RS", OpWCVTP: "WCVTP", OpRCVT: "RCVT",
	OpGCcur: "GC[current]", OpGCorig: "GC[original]", OpSCFS: "SCFS",
	OpMDgrid: "MD[gridfitted]", OpMDorig: "MD[original]",
	OpMPPEM: "MPPEM", OpMPS: "MPS",
	OpFLIPON: "FLIPON", OpFLIPOFF: "FLIPOFF", OpDEBUG: "DEBUG",
	OpLT: "LT", OpLTEQ: "LTEQ", OpGT: "GT", OpGTEQ: "GTEQ",
	OpEQ: "EQ", OpNEQ: "NEQ", OpODD: "ODD", OpEVEN: "EVEN",
	OpIF: "IF", OpEIF: "EIF",
	OpAND: "AND", OpOR: "OR", OpNOT: "NOT",
	OpDELTAP1: "DELTAP1", OpSDB: "SDB", OpSDS: "SDS",
	OpADD: "ADD", OpSUB: "SUB", OpDIV: "DIV", OpMUL: "MUL",
	OpABS: "ABS", OpNEG: "NEG", OpFLOOR: "FLOOR", OpCEILING: "CEILING",
	OpWCVTF: "WCVTF", OpDELTAP2: "DELTAP2", OpDELTAP3: "DELTAP3",
	OpDELTAC1: "DELTAC1", OpDELTAC2: "DELTAC2", OpDELTAC3: "DELTAC3",
	OpSROUND: "SROUND", OpS45ROUND: "S45ROUND",
	OpJROT: "JROT", OpJROF: "JROF",
	OpROFF: "ROFF", OpRUTG: "RUTG", OpRDTG: "RDTG",
	OpSANGW: "SANGW", OpAA: "AA",
	OpFLIPPT: "FLIPPT", OpFLIPRGON: "FLIPRGON", OpFLIPRGOFF: "FLIPRGOFF",
	OpSCANCTRL: "SCANCTRL",
	OpSDPVTLpar: "SDPVTL[parallel]", OpSDPVTLprp: "SDPVTL[perpendicular]",
	OpGETINFO: "GETINFO", OpIDEF: "IDEF", OpROLL: "ROLL",
	OpMAX: "MAX", OpMIN: "MIN",
	OpSCANTYPE: "SCANTYPE", OpINSTCTRL: "INSTCTRL",
}

// String returns the conventional mnemonic, with flag decorations for the
// flag-carrying families and a hex form for reserved bytes.
func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	switch {
	case op >= 0xB0 && op <= 0xB7:
		return fmt.Sprintf("PUSHB[%d]", op-0xB0)
	case op >= 0xB8 && op <= 0xBF:
		return fmt.Sprintf("PUSHW[%d]", op-0xB8)
	case op >= 0x68 && op <= 0x6B:
		return "ROUND[" + op.roundColor().String() + "]"
	case op >= 0x6C && op <= 0x6F:
		return "NROUND[" + op.roundColor().String() + "]"
	case op >= 0xC0 && op <= 0xDF:
		return moveName("MDRP", op)
	case op >= 0xE0:
		return moveName("MIRP", op)
	}
	return fmt.Sprintf("opcode_%02X", byte(op))
}

func moveName(base string, op Opcode) string {
	setRP0, minDist, round, color := op.moveFlags()
	s := base + "["
	if !setRP0 {
		s += "no"
	}
	s += "SetRP0, "
	if !minDist {
		s += "no"
	}
	s += "RespectMinimumDistance, "
	if !round {
		s += "no"
	}
	return s + "RoundDistance, " + color.String() + "]"
}
