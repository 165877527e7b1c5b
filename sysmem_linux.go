//go:build linux

package scryptauth

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// totalMemory returns total physical memory via sysinfo(2).
func totalMemory() (uint64, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, fmt.Errorf("%w: sysinfo: %v", ErrResourceQuery, err)
	}
	return uint64(info.Totalram) * uint64(info.Unit), nil
}
