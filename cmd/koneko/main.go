// cmd/koneko/main.go
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tebeka/atexit"

	"koneko/internal/encoder"
	"koneko/internal/lexer"
	"koneko/internal/parser"
	"koneko/internal/repl"
	"koneko/internal/vm"
)

const VERSION = "1.0.0"

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		showUsage()
		return
	}

	switch args[0] {
	case "--help", "-h", "help":
		showUsage()
		return
	case "--version", "-v", "version":
		showVersion()
		return
	case "run":
		atexit.Exit(cmdRun(args[1:]))
	case "compile":
		atexit.Exit(cmdCompile(args[1:]))
	case "repl":
		atexit.Exit(cmdRepl(args[1:]))
	default:
		// `koneko program.neko` is shorthand for `koneko run program.neko`.
		if strings.HasPrefix(args[0], "-") {
			fmt.Fprintf(os.Stderr, "Unknown option: %s\n", args[0])
			showUsage()
			atexit.Exit(2)
		}
		atexit.Exit(cmdRun(args))
	}
}

func cmdRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	tapeSize := fs.Int("tape", vm.DefaultTapeSize, "tape size in cells")
	verbose := fs.Bool("verbose", false, "log phases and dump the output log and final tape")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: koneko run [--tape N] [--verbose] <file>")
		return 2
	}
	setupLogging(*verbose)

	source, err := readSource(fs.Arg(0))
	if err != nil {
		return fail(err)
	}

	instrs, err := lexer.NewScanner(source).ScanInstructions()
	if err != nil {
		return fail(err)
	}
	slog.Debug("scanned", "file", fs.Arg(0), "instructions", len(instrs), "compact", lexer.IsCompact(source))

	tree, err := parser.NewParser(instrs).Build()
	if err != nil {
		return fail(err)
	}

	machine := vm.NewMachine(*tapeSize)
	engine := vm.NewVM(tree, machine, &stdinInput{r: bufio.NewReader(os.Stdin)}, os.Stdout)
	if err := engine.Run(); err != nil {
		return fail(err)
	}
	slog.Debug("halted", "steps", engine.Steps(), "outputs", len(machine.Output()))

	if *verbose {
		machine.DumpOutput(os.Stderr)
		machine.DumpTape(os.Stderr)
	}
	return 0
}

func cmdCompile(args []string) int {
	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	outPath := fs.String("o", "", "output path (default <input>.nekoc)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: koneko compile [-o out.nekoc] <file>")
		return 2
	}

	inPath := fs.Arg(0)
	source, err := readSource(inPath)
	if err != nil {
		return fail(err)
	}

	instrs, err := lexer.NewScanner(source).ScanInstructions()
	if err != nil {
		return fail(err)
	}

	target := *outPath
	if target == "" {
		target = strings.TrimSuffix(inPath, filepath.Ext(inPath)) + ".nekoc"
	}
	compact := encoder.Encode(instrs)
	if err := os.WriteFile(target, []byte(compact+"\n"), 0644); err != nil {
		return fail(errors.Wrapf(err, "writing %s", target))
	}
	fmt.Printf("Compiled %s -> %s (%d instructions)\n", inPath, target, len(instrs))
	return 0
}

func cmdRepl(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	tapeSize := fs.Int("tape", vm.DefaultTapeSize, "tape size in cells")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	repl.Start(*tapeSize)
	return 0
}

// stdinInput reads one integer per line, blocking until one arrives.
type stdinInput struct {
	r *bufio.Reader
}

func (s *stdinInput) ReadValue() (int, error) {
	line, err := s.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(line))
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}
	return string(data), nil
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func fail(err error) int {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return 1
}

func showVersion() {
	fmt.Printf("koneko %s\n", VERSION)
}

func showUsage() {
	fmt.Println(`koneko - interpreter and compact encoder for the koneko language

Usage:
  koneko run [--tape N] [--verbose] <file>   Execute a program
  koneko compile [-o out.nekoc] <file>       Encode to compact notation
  koneko repl [--tape N]                     Interactive session
  koneko version                             Print version
  koneko help                                Show this help

A bare <file> argument runs it. Sources may be in natural notation
(.neko) or compact notation (.nekoc); the notation is detected from the
text itself.`)
}
