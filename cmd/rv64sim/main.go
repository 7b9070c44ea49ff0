// Command rv64sim loads a raw binary image into one of the four selectable
// cycle-accounting cores and runs it to termination, then reports the final
// program counter, the register file, and the core's performance counters.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bassosimone/rv64sim/pkg/core"
	"github.com/bassosimone/rv64sim/pkg/exception"
	"github.com/bassosimone/rv64sim/pkg/stats"
)

// runner is the common surface every core exposes to main: run to
// termination, then report where PC ended up and what it counted.
type runner interface {
	Execute() *exception.Exception
	registers() [32]uint64
	pc() uint64
	stats() stats.Stats
	isPipeline() bool
}

func newRunner(soc string, image []byte) (runner, error) {
	switch soc {
	case "dart":
		return dartRunner{core.NewDart(image)}, nil
	case "zeus":
		return zeusRunner{core.NewZeus(image)}, nil
	case "kronos":
		return kronosRunner{core.NewKronos(image)}, nil
	case "atlas":
		return atlasRunner{core.NewAtlas(image)}, nil
	default:
		return nil, fmt.Errorf("unknown soc %q (want one of: dart, zeus, kronos, atlas)", soc)
	}
}

type dartRunner struct{ *core.Dart }

func (r dartRunner) registers() [32]uint64 { return r.Regs }
func (r dartRunner) pc() uint64            { return r.PC }
func (r dartRunner) stats() stats.Stats    { return r.Stats }
func (r dartRunner) isPipeline() bool      { return false }

type zeusRunner struct{ *core.Zeus }

func (r zeusRunner) registers() [32]uint64 { return r.Regs }
func (r zeusRunner) pc() uint64            { return r.PC }
func (r zeusRunner) stats() stats.Stats    { return r.Stats }
func (r zeusRunner) isPipeline() bool      { return true }

type kronosRunner struct{ *core.Kronos }

func (r kronosRunner) registers() [32]uint64 { return r.Regs }
func (r kronosRunner) pc() uint64            { return r.PC }
func (r kronosRunner) stats() stats.Stats    { return r.Stats }
func (r kronosRunner) isPipeline() bool      { return false }

type atlasRunner struct{ *core.Atlas }

func (r atlasRunner) registers() [32]uint64 { return r.Regs }
func (r atlasRunner) pc() uint64            { return r.PC }
func (r atlasRunner) stats() stats.Stats    { return r.Stats }
func (r atlasRunner) isPipeline() bool      { return false }

func dumpRegisters(w *tabwriter.Writer, regs [32]uint64) {
	fmt.Fprintln(w, "Reg\tDec\tHex")
	for i, v := range regs {
		fmt.Fprintf(w, "x%d\t%d\t0x%x\n", i, v, v)
	}
}

func dumpStats(w *tabwriter.Writer, s stats.Stats, pipeline bool) {
	var rows [][2]string
	if pipeline {
		rows = s.PipelineRows()
	} else {
		rows = s.SimpleRows()
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
	}
}

func run(path, soc string) error {
	image, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}
	r, err := newRunner(soc, image)
	if err != nil {
		return err
	}

	ex := r.Execute()
	fmt.Printf("terminated with exception %s, payload 0x%x\n", ex.Kind, ex.Payload)
	fmt.Printf("%s [pc: 0x%x]\n", soc, r.pc())

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	dumpRegisters(w, r.registers())
	w.Flush()

	w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	dumpStats(w, r.stats(), r.isPipeline())
	return w.Flush()
}

func main() {
	var soc string

	rootCmd := &cobra.Command{
		Use:   "rv64sim <image>",
		Short: "Run a raw RV32I/RV64I binary image against a cycle-accounting core",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], soc)
		},
	}
	rootCmd.Flags().StringVar(&soc, "soc", "dart", "core to simulate: dart, zeus, kronos, or atlas")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
