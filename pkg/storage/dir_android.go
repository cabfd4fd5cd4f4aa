//go:build android

package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// prepareDir 创建 /data/data/<package>/saves
// gdata 在 Android 上不会自己创建这个目录
func prepareDir() error {
	cmdline, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return fmt.Errorf("read package name: %w", err)
	}
	pkg, _, _ := bytes.Cut(cmdline, []byte{0})
	pkg = bytes.TrimSpace(pkg)
	if len(pkg) == 0 {
		return fmt.Errorf("read package name: /proc/self/cmdline is empty")
	}

	dir := filepath.Join("/data/data", string(pkg), "saves")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}
