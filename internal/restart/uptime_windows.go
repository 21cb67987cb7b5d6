//go:build windows

package restart

import (
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32       = windows.NewLazySystemDLL("kernel32.dll")
	getTickCount64 = kernel32.NewProc("GetTickCount64")
)

// Uptime returns the time since boot as reported by GetTickCount64.
func Uptime() (time.Duration, error) {
	if err := getTickCount64.Find(); err != nil {
		return 0, err
	}
	lo, hi, _ := getTickCount64.Call()
	ms := uint64(lo)
	if unsafe.Sizeof(uintptr(0)) == 4 {
		// 32-bit callers get the result split across EDX:EAX.
		ms |= uint64(hi) << 32
	}
	return time.Duration(ms) * time.Millisecond, nil
}
