//go:build !windows && !darwin

package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnescapeMount(t *testing.T) {
	assert.Equal(t, "/mnt/My Disk", unescapeMount(`/mnt/My\040Disk`))
	assert.Equal(t, "/plain", unescapeMount("/plain"))
}

func TestReadMounts(t *testing.T) {
	table := filepath.Join(t.TempDir(), "mounts")
	content := "/dev/sda1 / ext4 rw 0 0\n" +
		"proc /proc proc rw 0 0\n" +
		"/dev/sdb1 /mnt/data\\040disk xfs rw 0 0\n" +
		"/dev/sda1 / ext4 rw 0 0\n"
	require.NoError(t, os.WriteFile(table, []byte(content), 0644))

	drives := readMounts(table)
	require.Len(t, drives, 2)
	assert.Equal(t, "/", drives[0].Path)
	assert.Equal(t, "/mnt/data disk", drives[1].Path)
	assert.Equal(t, "data disk", drives[1].Letter)
}
