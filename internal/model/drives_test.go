package model

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDrives(t *testing.T) {
	drives, err := GetDrives()
	require.NoError(t, err)
	require.NotEmpty(t, drives, "expected at least one drive")

	for _, d := range drives {
		assert.NotEmpty(t, d.Path)
	}
	assert.Len(t, DrivePaths(drives), len(drives))
}

func TestGetDrivesWindowsHasC(t *testing.T) {
	if runtime.GOOS != "windows" {
		t.Skip("skipping Windows-specific test")
	}

	drives, err := GetDrives()
	require.NoError(t, err)

	hasC := false
	for _, d := range drives {
		if d.Letter == "C" {
			hasC = true
			break
		}
	}
	assert.True(t, hasC, "expected C: drive to exist")
}

func TestDriveUsage(t *testing.T) {
	d := Drive{TotalBytes: 200, FreeBytes: 50}
	assert.Equal(t, int64(150), d.UsedBytes())
	assert.InDelta(t, 75.0, d.UsedPercent(), 0.001)
	assert.Equal(t, 0.0, Drive{}.UsedPercent())
}
