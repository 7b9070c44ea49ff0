// Package stats accumulates the performance counters every core reports on
// termination. Not every core uses every field: dart and the out-of-order
// cores fill Cycles/Stalls/ALUOps/MemOps, while the in-order pipeline core
// fills Cycles/StallCycles/ExecCycles/MemCycles instead.
package stats

import "fmt"

// Stats holds every counter any core in this module reports. A given core
// only ever increments the subset relevant to its model.
type Stats struct {
	Cycles      uint64
	Stalls      uint64
	ALUOps      uint64
	MemOps      uint64
	StallCycles uint64
	ExecCycles  uint64
	MemCycles   uint64
}

// SimpleRows returns the (cycles, stalls, alu_ops, mem_ops) rows reported by
// dart and the out-of-order cores.
func (s *Stats) SimpleRows() [][2]string {
	return [][2]string{
		{"Cycles", fmt.Sprint(s.Cycles)},
		{"Stalls", fmt.Sprint(s.Stalls)},
		{"ALU Ops", fmt.Sprint(s.ALUOps)},
		{"Mem Ops", fmt.Sprint(s.MemOps)},
	}
}

// PipelineRows returns the (cycles, stall_cycles, exec_cycles, mem_cycles)
// rows reported by the in-order pipeline core.
func (s *Stats) PipelineRows() [][2]string {
	return [][2]string{
		{"Cycles", fmt.Sprint(s.Cycles)},
		{"Stall Cycles", fmt.Sprint(s.StallCycles)},
		{"Exec Cycles", fmt.Sprint(s.ExecCycles)},
		{"Mem Cycles", fmt.Sprint(s.MemCycles)},
	}
}
