/*
Command post4 is the command-line front end for the interpreter: it
parses the §6 CLI surface, wires a Context's stacks/arena/block-file/
logging from the resulting options, loads the core file and any -i
includes, then evaluates either the named script or standard input.

    post4 [-V] [-b blockfile] [-c corefile] [-d ds-cells] [-i include-file]...
          [-m mem-kb] [-r rs-cells] [script [args...]]
*/
package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/k0kubun/pp/v3"

	"github.com/ruv/post4go/internal/logio"
)

// buildVersion is overridden at link time (-ldflags "-X main.buildVersion=...");
// it is what -V reports.
var buildVersion = "dev"

type cliOptions struct {
	Version   bool     `short:"V" long:"version" description:"print build info and exit"`
	BlockFile string   `short:"b" long:"block-file" value-name:"file" description:"block file path"`
	CoreFile  string   `short:"c" long:"core-file" value-name:"file" description:"core file of Forth-level bootstrap definitions, loaded before -i includes"`
	DSCells   int      `short:"d" long:"ds-cells" value-name:"n" description:"data stack size in cells"`
	Includes  []string `short:"i" long:"include" value-name:"file" description:"evaluate file after the core file and before the script (repeatable)"`
	MemKB     int      `short:"m" long:"mem-kb" value-name:"n" description:"arena size limit, in KB"`
	RSCells   int      `short:"r" long:"rs-cells" value-name:"n" description:"return stack size in cells"`
	Trace     bool     `long:"trace" description:"enable the TRACE step logger from startup"`
	Dump      bool     `long:"dump" description:"print a memory/stack dump after execution"`

	Positional struct {
		Script string   `positional-arg-name:"script"`
		Args   []string `positional-arg-name:"args"`
	} `positional-args:"yes"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run implements main's logic over injectable streams/argv so it can be
// driven from tests without touching the real process.
func run(argv []string, stdin *os.File, stdout, stderr *os.File) int {
	var opts cliOptions
	parser := flags.NewParser(&opts, flags.PassDoubleDash)
	parser.Usage = "[-V] [-b blockfile] [-c corefile] [-d ds-cells] [-i include-file]... [-m mem-kb] [-r rs-cells] [script [args...]]"
	if _, err := parser.ParseArgs(argv); err != nil {
		if flags.WroteHelp(err) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 1
	}

	if opts.Version {
		fmt.Fprintf(stdout, "post4 %s\n", buildVersion)
		return 0
	}

	log := logio.Logger{}
	log.SetOutput(stderr)

	var ctxOpts []ContextOption
	ctxOpts = append(ctxOpts, WithOutput(stdout))
	if opts.Trace {
		ctxOpts = append(ctxOpts, WithLogf(log.Leveledf("TRACE")))
	}
	ds, rs, fs := defaultDSSize, defaultRSSize, defaultFSSize
	if opts.DSCells > 0 {
		ds = opts.DSCells
	}
	if opts.RSCells > 0 {
		rs = opts.RSCells
	}
	ctxOpts = append(ctxOpts, WithStackSizes(ds, rs, fs))
	if opts.MemKB > 0 {
		ctxOpts = append(ctxOpts, WithMemLimit(uint(opts.MemKB)*1024))
	}
	if opts.BlockFile != "" {
		ctxOpts = append(ctxOpts, WithBlockFile(opts.BlockFile))
	}

	scriptArgv := append([]string{opts.Positional.Script}, opts.Positional.Args...)
	ctxOpts = append(ctxOpts, WithArgs(scriptArgv, os.Environ()))

	ctx := New(ctxOpts...)
	if opts.Trace {
		_ = ctx.mem.Stor(ctx.traceAddr, 1) // same effect as `1 TRACE`
	}
	installSignals(ctx)
	defer ctx.Close()

	exitCode := 0
	func() {
		defer func() {
			if r := recover(); r != nil {
				if be, ok := r.(byeError); ok {
					exitCode = be.code
					return
				}
				panic(r)
			}
		}()

		if opts.CoreFile != "" {
			exitCode = ctx.runIncludeFile(opts.CoreFile, stderr)
		}
		for _, inc := range opts.Includes {
			exitCode = ctx.runIncludeFile(inc, stderr)
		}

		script := opts.Positional.Script
		if script == "" || script == "-" {
			ctx.pushTerminal(stdin)
		} else {
			f, err := openOnPath(script, ctx.searchPathOrDefault())
			if err != nil {
				fmt.Fprintf(stderr, "post4: %s: %v\n", script, err)
				exitCode = 1
				return
			}
			ctx.pushFile(script, f, ctx.nextHandle())
			defer f.Close()
		}

		exitCode = ctx.run()
	}()

	if opts.Dump {
		lw := &logio.Writer{Logf: log.Leveledf("DUMP")}
		defer lw.Close()
		fmt.Fprintln(lw, pp.Sprint(map[string]interface{}{
			"ds":   ctx.ds.cells[:ctx.ds.depth()],
			"rs":   ctx.rs.cells[:ctx.rs.depth()],
			"here": ctx.mem.Here(),
		}))
	}

	return exitCode
}

// runIncludeFile drains a startup file (core file / -i include) to
// completion under the same catch/unwind protection §4.7 gives the REPL
// proper, so a faulting include reports its diagnostic and lets the rest
// of startup proceed rather than crashing the process. A file that can't
// even be opened is reported and skipped.
func (ctx *Context) runIncludeFile(name string, stderr *os.File) int {
	f, err := openOnPath(name, ctx.searchPathOrDefault())
	if err != nil {
		fmt.Fprintf(stderr, "post4: %s: %v\n", name, err)
		return 1
	}
	ctx.pushFile(name, f, ctx.nextHandle())
	code := ctx.run()
	ctx.in.pop()
	f.Close()
	ctx.syncSourceBuf()
	ctx.syncInToMem()
	return code
}

// searchPathOrDefault exposes the context's POST4_PATH-derived search
// path to main without promoting the field to exported API.
func (ctx *Context) searchPathOrDefault() []string {
	if len(ctx.searchPath) == 0 {
		return defaultSearchPath()
	}
	return ctx.searchPath
}
