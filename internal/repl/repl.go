// internal/repl/repl.go
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"koneko/internal/lexer"
	"koneko/internal/parser"
	"koneko/internal/vm"
)

const (
	historyFile = ".koneko_history"
	promptMain  = "にゃ> "
	promptInput = "in? "
)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

// linerInput adapts the line editor as the VM's blocking input source, so
// Input instructions inside a REPL program prompt on the same terminal.
type linerInput struct {
	line *liner.State
}

func (l *linerInput) ReadValue() (int, error) {
	text, err := l.line.Prompt(promptInput)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(text))
}

// Start runs the interactive loop. Each line is a complete program,
// executed on a fresh machine of tapeSize cells.
func Start(tapeSize int) {
	fmt.Println("Koneko REPL | Ctrl+C cancels input, Ctrl+D or :quit exits")
	color := isatty.IsTerminal(os.Stdout.Fd())

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := historyPath()
	if f, err := os.Open(histPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	for {
		src, err := line.Prompt(promptMain)
		if err == liner.ErrPromptAborted {
			fmt.Println("^C")
			continue
		}
		if err != nil { // io.EOF
			fmt.Println()
			break
		}
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		if trimmed == ":quit" || trimmed == "exit" {
			break
		}
		line.AppendHistory(src)
		runLine(trimmed, tapeSize, line, color)
	}

	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}
}

func runLine(src string, tapeSize int, line *liner.State, color bool) {
	out, machine, err := evalProgram(src, tapeSize, &linerInput{line}, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, paint(err.Error(), red, color))
		return
	}
	if out > 0 {
		fmt.Println()
	}
	summary := fmt.Sprintf("log=%v ptr=%d tape=%v", machine.Output(), machine.Pointer(), machine.Tape())
	fmt.Println(paint(summary, blue, color))
}

func evalProgram(src string, tapeSize int, input vm.InputReader, sink io.Writer) (written int, machine *vm.Machine, err error) {
	instrs, err := lexer.NewScanner(src).ScanInstructions()
	if err != nil {
		return 0, nil, err
	}
	tree, err := parser.NewParser(instrs).Build()
	if err != nil {
		return 0, nil, err
	}
	machine = vm.NewMachine(tapeSize)
	engine := vm.NewVM(tree, machine, input, sink)
	if err := engine.Run(); err != nil {
		return 0, nil, err
	}
	return len(machine.Output()), machine, nil
}

func paint(s string, colorize func(string) string, color bool) string {
	if !color {
		return s
	}
	return colorize(s)
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}
