package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/hinting"
	"github.com/npillmayer/hinting/hint"
	"github.com/npillmayer/hinting/internal/fontload"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'tyse.hints'
func tracer() tracing.Trace {
	return tracing.Select("tyse.hints")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":  "go",
		"trace.tyse.hints": "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to load")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError) // will set the correct level later
	pterm.Info.Println("Welcome to the hint validation CLI")
	//
	// set up REPL
	repl, err := readline.New("hint > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	//
	// load font to use
	if err := intp.loadFont(*fontname); err != nil { // font name provided by flag
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D")
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	font     *fontload.ScalableFont
	tables   *fontload.FontTables
	repl     *readline.Instance
	analysis *hint.Analysis
	diags    *hinting.Collector
	glyphs   []string // names of glyph programs analyzed so far
}

func (intp *Intp) String() string {
	if intp == nil || intp.font == nil {
		return "()"
	}
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("( font=%s )", intp.font.Fontname))
	if intp.analysis != nil {
		sb.WriteString(fmt.Sprintf(" -> fpgm+prep, %d glyphs, %d findings",
			len(intp.glyphs), len(intp.diags.Diagnostics)))
	}
	return sb.String()
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := intp.parseCommand(line)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

type Op struct {
	code   int
	arg    string
	format string
}

type Command struct {
	count int
	op    [32]Op
}

const NOOP = -1
const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	FONT
	ANALYZE
	GLYPH
	GLYPHS
	REPORT
	STATS
	FUNCS
	LIST
	NAMES
	HISTORY
)

var opMap = map[string]int{
	"quit":      QUIT,
	"help":      HELP,
	"font":      FONT,
	"analyze":   ANALYZE,
	"glyph":     GLYPH,
	"glyphs":    GLYPHS,
	"report":    REPORT,
	"stats":     STATS,
	"functions": FUNCS,
	"list":      LIST,
	"names":     NAMES,
	"history":   HISTORY,
}

var opNames = []string{
	"quit",
	"help",
	"font",
	"analyze",
	"glyph",
	"glyphs",
	"report",
	"stats",
	"functions",
	"list",
	"names",
	"history",
}

var command = Command{}

func resetCommand() {
	command.count = 0
	for i := range command.op {
		command.op[i].code = NOOP
		command.op[i].arg = ""
		command.op[i].format = ""
	}
}

func (intp *Intp) parseCommand(line string) (*Command, error) {
	resetCommand()
	steps := strings.Split(line, " ")
	command.count = len(steps)
	for i, step := range steps {
		c := strings.Split(step, ":") // e.g.  "glyph:36" or "history:cvt:5" or "report:V0530"
		code, ok := opMap[strings.ToLower(c[0])]
		if !ok {
			code = HELP
		}
		command.op[i].code = code
		command.op[i].arg = ""
		if command.op[i].code <= QUIT {
			return &command, nil
		}
		command.op[i].arg = getOptArg(c, 1)
		command.op[i].format = getOptArg(c, 2)
		if command.op[i].arg == "" {
			tracer().Infof("%s", opNames[command.op[i].code])
		} else {
			tracer().Infof("%s: looking at '%s'", opNames[command.op[i].code], command.op[i].arg)
		}
	}
	return &command, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:    quitOp,
	HELP:    helpOp,
	FONT:    fontOp,
	ANALYZE: analyzeOp,
	GLYPH:   glyphOp,
	GLYPHS:  glyphsOp,
	REPORT:  reportOp,
	STATS:   statsOp,
	FUNCS:   functionsOp,
	LIST:    listOp,
	NAMES:   namesOp,
	HISTORY: historyOp,
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	tracer().Debugf("cmd = %v", cmd.op)
	for _, c := range cmd.op {
		if c.code == NOOP {
			break
		}
		f, ok := commandFn[c.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", c.code)
			return nil, false
		}
		err, stop = f(intp, &c)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

// --- Font Loading -----------------------------------------------------

func fontOp(intp *Intp, op *Op) (error, bool) {
	if op.noArg() {
		return errors.New("usage: font:<file>"), false
	}
	return intp.loadFont(op.arg), false
}

func (intp *Intp) loadFont(fontname string) (err error) {
	if fontname == "" {
		return errors.New("no font given (use -font or font:<file>)")
	}
	intp.font, err = fontload.LoadOpenTypeFont(fontname)
	if err != nil {
		tracer().Errorf("cannot load font %s: %s", fontname, err)
		return err
	}
	tracer().Infof("loaded SFNT font = %s", intp.font.Fontname)
	intp.tables, err = fontload.HintingTables(intp.font)
	if err != nil {
		tracer().Errorf("cannot decode font %s: %s", fontname, err)
		return err
	}
	intp.analysis, intp.diags, intp.glyphs = nil, nil, nil
	pterm.Printf("font %s: fpgm %d bytes, prep %d bytes, cvt %d entries, %d glyphs\n",
		intp.font.Fontname, len(intp.tables.Fpgm), len(intp.tables.Prep),
		len(intp.tables.CVT), intp.tables.Maxp.NumGlyphs)
	return nil
}

// ----------------------------------------------------------------------

// analyzeOp starts a fresh analysis pass: the font program is split into
// its function definitions, then the pre-program runs once. Glyph runs
// build on the resulting state.
func analyzeOp(intp *Intp, op *Op) (error, bool) {
	if intp.tables == nil {
		return ERR_NO_FONT, false
	}
	intp.diags = &hinting.Collector{}
	intp.analysis = hint.NewAnalysis(intp.diags)
	intp.glyphs = nil
	intp.analysis.SetCVT(intp.tables.CVT)
	intp.analysis.SetMaxTwilightPoints(intp.tables.Maxp.MaxTwilightPoints)
	if err := intp.analysis.AnalyzeFontProgram(intp.tables.Fpgm); err != nil {
		return err, false
	}
	if err := intp.analysis.AnalyzePreProgram(intp.tables.Prep); err != nil {
		return err, false
	}
	pterm.Printf("fpgm defines %d functions\n", len(intp.analysis.Functions()))
	printVerdict(intp)
	return nil, false
}

func glyphOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkAnalysis(); err != nil {
		return err, false
	}
	gid, err := numericArg(op)
	if err != nil {
		return err, false
	}
	if err := intp.analyzeGlyph(gid); err != nil {
		return err, false
	}
	printVerdict(intp)
	return nil, false
}

func glyphsOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkAnalysis(); err != nil {
		return err, false
	}
	hinted := 0
	for gid := range intp.tables.Maxp.NumGlyphs {
		instr, _, _, err := intp.tables.GlyphProgram(gid)
		if err != nil {
			pterm.Error.Printf("glyph %d: %v\n", gid, err)
			continue
		}
		if len(instr) == 0 {
			continue
		}
		if err := intp.analyzeGlyph(gid); err != nil {
			return err, false
		}
		hinted++
	}
	pterm.Printf("analyzed %d hinted glyphs of %d\n", hinted, intp.tables.Maxp.NumGlyphs)
	printVerdict(intp)
	return nil, false
}

func (intp *Intp) analyzeGlyph(gid int) error {
	instr, points, contours, err := intp.tables.GlyphProgram(gid)
	if err != nil {
		return err
	}
	name := fmt.Sprintf("glyf[%d]", gid)
	if err := intp.analysis.AnalyzeGlyphProgram(instr, name, points, contours); err != nil {
		return err
	}
	intp.glyphs = append(intp.glyphs, name)
	return nil
}

func printVerdict(intp *Intp) {
	worst := intp.diags.Worst()
	if intp.analysis.ValidationFailed() {
		pterm.Error.Printf("validation FAILED, worst finding is %s\n", worst)
	} else {
		pterm.Printf("validation passed, %d findings, worst is %s\n",
			len(intp.diags.Diagnostics), worst)
	}
}

func namesOp(intp *Intp, op *Op) (error, bool) {
	if intp.tables == nil {
		return ERR_NO_FONT, false
	}
	for id, value := range intp.tables.Names() {
		pterm.Printf("name[%d] = %s\n", id, value)
	}
	return nil, false
}

var ERR_NO_FONT = errors.New("no font loaded")
var ERR_NO_ANALYSIS = errors.New("no analysis run yet (use 'analyze')")

func (intp *Intp) checkAnalysis() error {
	if intp.tables == nil {
		return ERR_NO_FONT
	}
	if intp.analysis == nil {
		return ERR_NO_ANALYSIS
	}
	return nil
}

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}

func (op *Op) noArg() bool {
	return op.arg == ""
}

func (op *Op) hasArg() (string, bool) {
	if op.arg == "" {
		return "", false
	}
	return op.arg, true
}
