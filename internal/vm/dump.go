package vm

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

const dumpRowWidth = 8

// DumpTape renders the tape contents as a table, eight cells per row,
// with the cell under the data pointer marked.
func (m *Machine) DumpTape(w io.Writer) {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Tape (%d cells, pointer at %d)", len(m.tape), m.pointer))

	header := table.Row{""}
	for col := 0; col < dumpRowWidth; col++ {
		header = append(header, fmt.Sprintf("+%d", col))
	}
	t.AppendHeader(header)

	for start := 0; start < len(m.tape); start += dumpRowWidth {
		row := table.Row{fmt.Sprintf("%d", start)}
		for col := 0; col < dumpRowWidth; col++ {
			idx := start + col
			if idx >= len(m.tape) {
				row = append(row, "")
				continue
			}
			cell := fmt.Sprintf("%d", m.tape[idx])
			if idx == m.pointer {
				cell = "*" + cell
			}
			row = append(row, cell)
		}
		t.AppendRow(row)
	}

	fmt.Fprintln(w, t.Render())
}

// DumpOutput renders the output log: each logged value with the
// character it was emitted as.
func (m *Machine) DumpOutput(w io.Writer) {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Output log (%d values)", len(m.output)))
	t.AppendHeader(table.Row{"#", "Value", "Char"})
	for i, v := range m.output {
		t.AppendRow(table.Row{i, v, fmt.Sprintf("%q", rune(v))})
	}
	fmt.Fprintln(w, t.Render())
}
