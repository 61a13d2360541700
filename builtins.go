package main

// primDef names one dictionary entry backed by opTable, the regular
// (non-opEnter/LIT/branch) case of §4.4's dispatch.
type primDef struct {
	name        string
	fn          opFunc
	immediate   bool
	compileOnly bool
}

// primList enumerates every primitive in the §6 built-in word table that
// is not one of the dedicated opCode tags (LIT, FLIT, EXIT, _branch,
// _branchz, _call, EXECUTE, _longjmp) handled directly in runPrimitive. Order only matters
// in that later duplicate names would shadow earlier ones; there are
// none here.
var primList = buildPrimList()

func buildPrimList() []primDef {
	var all []primDef
	all = append(all, stackPrims()...)
	all = append(all, arithPrims()...)
	all = append(all, memPrims()...)
	all = append(all, ioPrims()...)
	all = append(all, blockPrims()...)
	all = append(all, toolPrims()...)
	all = append(all, floatPrims()...)
	all = append(all, picturedPrims()...)
	all = append(all, compilerPrims()...)
	return all
}

func compilerPrims() []primDef {
	return []primDef{
		{name: ":", fn: opColon},
		{name: ";", fn: opSemicolon, immediate: true, compileOnly: true},
		{name: ":NONAME", fn: opNoname},
		{name: "CREATE", fn: opCreate},
		{name: "DOES>", fn: opDoes, compileOnly: true},
		{name: "MARKER", fn: opMarker},
		{name: "(marker)", fn: runMarker},
		{name: "IMMEDIATE", fn: opImmediate},
		{name: "compile-only", fn: opCompileOnly},
		{name: "immediate?", fn: primImmediateQ},
		{name: "compile-only?", fn: primCompileOnlyQ},
		{name: "STATE", fn: primState},
		{name: "'", fn: primTick},
		{name: "EVALUATE", fn: primEvaluate},
	}
}

// opTable is the flat, shared dispatch table every named builtin word's
// code field indexes into (code - opFirstNamed). It is the same for
// every Context, since primList is a package-level constant.
var opTable []opFunc

// opMarkerCode is the code field value assigned to "(marker)", the
// implementation every MARKER-created word's code is set to.
var opMarkerCode opCode

func init() {
	opTable = make([]opFunc, len(primList))
	for i, def := range primList {
		opTable[i] = def.fn
		if def.name == "(marker)" {
			opMarkerCode = opFirstNamed + opCode(i)
		}
	}
}

// loadBuiltins populates ctx's dictionary with every primitive in
// primList plus the dedicated-opcode words (LIT, FLIT, EXIT, _branch,
// _branchz, _call, EXECUTE, _longjmp), recording the handles compileLiteral
// et al need.
func loadBuiltins(ctx *Context) {
	ctx.litWord = ctx.wordCreate("LIT", opLit)
	ctx.flitWord = ctx.wordCreate("FLIT", opFLit)
	ctx.exitWord = ctx.wordCreate("EXIT", opExit)
	ctx.wordCreate("_branch", opBranch)
	ctx.wordCreate("_branchz", opBranchZ)
	ctx.wordCreate("_call", opCall)
	ctx.wordCreate("EXECUTE", opExecute)
	ctx.wordCreate("_longjmp", opLongjmp)

	for i, def := range primList {
		w := ctx.wordCreate(def.name, opFirstNamed+opCode(i))
		var bits wordBits
		if def.immediate {
			bits |= bitImmediate
		}
		if def.compileOnly {
			bits |= bitCompileOnly
		}
		if bits != 0 {
			ctx.setWordBits(w, bits)
		}
	}
}
