//go:build !windows && !darwin

package model

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// pseudoFilesystems never hold user files worth searching
var pseudoFilesystems = map[string]bool{
	"proc": true, "sysfs": true, "devtmpfs": true, "devpts": true, "tmpfs": true,
	"cgroup": true, "cgroup2": true, "securityfs": true, "pstore": true, "bpf": true,
	"debugfs": true, "tracefs": true, "configfs": true, "fusectl": true, "mqueue": true,
	"hugetlbfs": true, "autofs": true, "binfmt_misc": true, "squashfs": true,
	"nsfs": true, "ramfs": true, "efivarfs": true, "rpc_pipefs": true,
}

func getPlatformDrives() ([]Drive, error) {
	var drives []Drive
	for _, d := range readMounts("/proc/self/mounts") {
		// bind-mounted files (resolv.conf in containers) are not search roots
		if info, err := os.Stat(d.Path); err != nil || !info.IsDir() {
			continue
		}
		drives = append(drives, d)
	}
	if len(drives) == 0 {
		drives = []Drive{{Letter: "/", Path: "/", Label: "/"}}
	}
	for i := range drives {
		drives[i].TotalBytes, drives[i].FreeBytes = getDiskSpace(drives[i].Path)
	}
	return drives, nil
}

// readMounts parses an fstab-style mount table, keeping real filesystems only
func readMounts(table string) []Drive {
	f, err := os.Open(table)
	if err != nil {
		return nil
	}
	defer f.Close()

	var drives []Drive
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		mountPoint := unescapeMount(fields[1])
		if pseudoFilesystems[fields[2]] || seen[mountPoint] {
			continue
		}
		seen[mountPoint] = true

		name := filepath.Base(mountPoint)
		if mountPoint == "/" {
			name = "/"
		}
		drives = append(drives, Drive{Letter: name, Path: mountPoint, Label: fields[0]})
	}
	return drives
}

// unescapeMount decodes the octal escapes (\040 for space) used in mount tables
func unescapeMount(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) {
			c := (s[i+1]-'0')<<6 | (s[i+2]-'0')<<3 | (s[i+3] - '0')
			b.WriteByte(c)
			i += 3
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func getDiskSpace(path string) (total, free int64) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, 0
	}
	total = int64(stat.Blocks) * int64(stat.Bsize)
	free = int64(stat.Bavail) * int64(stat.Bsize)
	return total, free
}
