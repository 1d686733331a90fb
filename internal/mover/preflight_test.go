package mover

import (
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenilsonani/inboxzero/internal/plan"
)

func TestPreflight_GroupsActions(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "/dl/a.pdf", []byte("a"), 0644))
	require.NoError(t, util.WriteFile(fs, "/locked/b.pdf", []byte("b"), 0644))
	require.NoError(t, fs.MkdirAll("/dl/folder.pdf", 0755))

	ready := plan.Action{From: "/dl/a.pdf", To: "/dl/_Sorted/Docs/a.pdf"}
	gone := plan.Action{From: "/dl/gone.pdf", To: "/dl/_Sorted/Docs/gone.pdf"}
	locked := plan.Action{From: "/locked/b.pdf", To: "/dl/_Sorted/Docs/b.pdf"}
	folder := plan.Action{From: "/dl/folder.pdf", To: "/dl/_Sorted/Docs/folder.pdf"}
	p := &plan.Plan{Actions: []plan.Action{ready, gone, locked, folder}}

	lockedDir := filepath.Dir(locked.From)
	checked := map[string]int{}
	m := New(WithFilesystem(fs))
	m.writable = func(dir string) bool {
		checked[dir]++
		return dir != lockedDir
	}

	report := m.Preflight(p)

	assert.Equal(t, []plan.Action{ready}, report.Ready)
	assert.Equal(t, []plan.Action{gone}, report.Missing)
	require.Len(t, report.Blocked, 2)
	assert.Equal(t, locked, report.Blocked[0].Action)
	assert.Equal(t, "Permission denied", report.Blocked[0].Reason)
	assert.Equal(t, folder, report.Blocked[1].Action)
	assert.Equal(t, "is a directory", report.Blocked[1].Reason)
	assert.True(t, report.HasProblems())

	for dir, n := range checked {
		assert.Equal(t, 1, n, "directory %s checked more than once", dir)
	}
}

func TestPreflight_CleanPlan(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "/dl/a.pdf", []byte("a"), 0644))

	m := New(WithFilesystem(fs))
	m.writable = func(string) bool { return true }

	report := m.Preflight(&plan.Plan{Actions: []plan.Action{{From: "/dl/a.pdf", To: "/dl/_Sorted/Docs/a.pdf"}}})
	assert.Len(t, report.Ready, 1)
	assert.Empty(t, report.Missing)
	assert.False(t, report.HasProblems())
}
