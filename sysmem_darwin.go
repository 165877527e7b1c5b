//go:build darwin

package scryptauth

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// totalMemory returns total physical memory via the hw.memsize sysctl.
func totalMemory() (uint64, error) {
	mem, err := unix.SysctlUint64("hw.memsize")
	if err != nil {
		return 0, fmt.Errorf("%w: sysctl hw.memsize: %v", ErrResourceQuery, err)
	}
	return mem, nil
}
