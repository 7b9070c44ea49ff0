package core

// histItem records one executed instruction's dependencies for the
// out-of-order accounting phase. dstReg/srcMemAddr/dstMemAddr are pointers so
// "absent" is representable without a sentinel value colliding with register
// or address 0.
type histItem struct {
	srcRegs    []uint64
	dstReg     *uint64
	srcMemAddr *uint64
	dstMemAddr *uint64
	blocking   bool
}

// intersects reports whether any element of a appears in b.
func intersects(a, b []uint64) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func addrIn(addr *uint64, set []uint64) bool {
	if addr == nil {
		return false
	}
	for _, a := range set {
		if a == *addr {
			return true
		}
	}
	return false
}

// calcStats replays a recorded history window to reconstruct a cycle count:
// each cycle fires every non-dependent, non-aliasing instruction still
// pending, in program order, until a blocking entry forces the cycle to end.
// This is the shared accounting algorithm kronos and atlas differ only in
// how they populate "blocking" and the memory-address fields.
func calcStats(hist []histItem) (cycles, stalls uint64) {
	executed := make([]bool, len(hist))
	for {
		cycles++
		var occupiedRegs []uint64
		var occupiedAddrs []uint64
		blockedThisCycle := false
		for i := range hist {
			if executed[i] {
				continue
			}
			entry := &hist[i]
			if !intersects(entry.srcRegs, occupiedRegs) && !addrIn(entry.srcMemAddr, occupiedAddrs) {
				executed[i] = true
			}
			if entry.dstReg != nil {
				occupiedRegs = append(occupiedRegs, *entry.dstReg)
			}
			if entry.dstMemAddr != nil {
				occupiedAddrs = append(occupiedAddrs, *entry.dstMemAddr)
			}
			if entry.blocking {
				stalls++
				blockedThisCycle = true
				break
			}
		}
		// A cycle that ends on a blocking entry skips the completion check
		// and always starts a fresh cycle, even if that entry was the last
		// one pending, so a trailing blocking instruction costs one more
		// cycle than a break-then-check loop would charge.
		if blockedThisCycle {
			continue
		}
		done := true
		for _, e := range executed {
			if !e {
				done = false
				break
			}
		}
		if done {
			return cycles, stalls
		}
	}
}
