package preflight

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"
)

// MinFreeBytes is the free space below which a root is reported as low.
// Quarantined copies and cross-device moves need headroom.
const MinFreeBytes uint64 = 256 * 1024 * 1024

// CheckRoot verifies that root exists and is a directory. Its failure is fatal.
func CheckRoot(root string) Result {
	const name = "Root folder"

	root = strings.TrimSpace(root)
	if root == "" {
		return Result{Name: name, Fatal: true, Detail: "no folder given and no default root configured"}
	}
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Fatal: true, Detail: fmt.Sprintf("%s (error: does not exist)", root)}
		}
		return Result{Name: name, Fatal: true, Detail: fmt.Sprintf("%s (error: stat: %v)", root, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Fatal: true, Detail: fmt.Sprintf("%s (error: is not a directory)", root)}
	}
	return Result{Name: name, Passed: true, Fatal: true, Detail: root}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFreeSpace reports the space available to unprivileged users on the
// filesystem holding path and fails when it is below minimum.
func CheckFreeSpace(name, path string, minimum uint64) Result {
	free, err := FreeBytes(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("statfs %s: %v", path, err)}
	}
	detail := humanize.IBytes(free) + " free"
	if free < minimum {
		return Result{Name: name, Detail: fmt.Sprintf("%s (below %s)", detail, humanize.IBytes(minimum))}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

// FreeBytes returns the bytes available to unprivileged users on the
// filesystem holding path.
func FreeBytes(path string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}
