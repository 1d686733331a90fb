package plan

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenilsonani/inboxzero/internal/rules"
	"github.com/fenilsonani/inboxzero/internal/scanner"
	"github.com/fenilsonani/inboxzero/internal/testutil"
)

var deepScan = scanner.Options{MaxDepth: 10}

func TestBuildPlacesDesktopFilesUnderDesktopSorted(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateTextFile("Desktop/note.txt", "hello")

	p, err := NewBuilder().Build(context.Background(), f.Roots(), f.DestRoots(), nil, deepScan)
	require.NoError(t, err)

	require.Len(t, p.Actions, 1)
	assert.Equal(t, filepath.Join(f.Desktop, "_Sorted", "Docs", "note.txt"), p.Actions[0].To)
	assert.Equal(t, "type:Docs", p.Actions[0].Reason)
	assert.Equal(t, int64(5), p.Actions[0].Size)
}

func TestBuildSkipsSortedDirectory(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateTextFile("Downloads/_Sorted/skip.txt", "skip")

	p, err := NewBuilder().Build(context.Background(),
		[]string{f.Downloads},
		map[string]string{f.Downloads: f.DownloadsSorted},
		nil, deepScan)
	require.NoError(t, err)

	assert.Empty(t, p.Actions)
}

func TestBuildMaxDepthZero(t *testing.T) {
	f := testutil.NewFixture(t)
	top := f.CreateTextFile("Downloads/top.txt", "top")
	f.CreateTextFile("Downloads/nested/deep.txt", "deep")

	p, err := NewBuilder().Build(context.Background(),
		[]string{f.Downloads},
		map[string]string{f.Downloads: f.DownloadsSorted},
		nil, scanner.Options{MaxDepth: 0})
	require.NoError(t, err)

	require.Len(t, p.Actions, 1)
	assert.Equal(t, top, p.Actions[0].From)
}

func TestBuildRuleTargetsBecomeNestedFolders(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "/in/bills/invoice-2026.pdf", []byte("pdf"), 0644))
	require.NoError(t, util.WriteFile(fs, "/in/win.pdf", []byte("pdf"), 0644))

	ruleSet := []rules.Rule{
		{Name: "Invoices", Match: "**/*invoice*.pdf", Target: "Finance/Invoices", Priority: 10},
		{Name: "Windows", Match: "win.pdf", Target: `Legacy\Windows\`},
	}

	p, err := NewBuilder(WithFilesystem(fs)).Build(context.Background(),
		[]string{"/in"}, map[string]string{"/in": "/out"}, ruleSet, deepScan)
	require.NoError(t, err)

	byFrom := map[string]Action{}
	for _, a := range p.Actions {
		byFrom[a.From] = a
	}

	require.Len(t, byFrom, 2)
	assert.Equal(t, filepath.FromSlash("/out/Finance/Invoices/invoice-2026.pdf"), byFrom["/in/bills/invoice-2026.pdf"].To)
	assert.Equal(t, "rule:Invoices", byFrom["/in/bills/invoice-2026.pdf"].Reason)
	assert.Equal(t, filepath.FromSlash("/out/Legacy/Windows/win.pdf"), byFrom["/in/win.pdf"].To)
}

func TestBuildCountsOtherTypes(t *testing.T) {
	fs := memfs.New()
	for _, name := range []string{"a.XYZ", "b.xyz", "Makefile", "c.pdf", ".hidden.qqq"} {
		require.NoError(t, util.WriteFile(fs, "/in/"+name, []byte("x"), 0644))
	}

	p, err := NewBuilder(WithFilesystem(fs)).Build(context.Background(),
		[]string{"/in"}, map[string]string{"/in": "/in/_Sorted"}, nil, deepScan)
	require.NoError(t, err)

	assert.Len(t, p.Actions, 4)
	assert.Equal(t, map[string]int{".xyz": 2, NoExtensionKey: 1}, p.OtherTypeCounts)
	for _, a := range p.Actions {
		if a.Reason == "fallback:Other" {
			assert.Equal(t, filepath.FromSlash("/in/_Sorted/Other/")+filepath.Base(a.From), a.To)
		}
	}
}

func TestBuildSkipsRootsWithoutDestination(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "/a/1.txt", []byte("1"), 0644))
	require.NoError(t, util.WriteFile(fs, "/b/2.txt", []byte("2"), 0644))

	p, err := NewBuilder(WithFilesystem(fs)).Build(context.Background(),
		[]string{"/a", "/b"}, map[string]string{"/b": "/b/_Sorted"}, nil, deepScan)
	require.NoError(t, err)

	require.Len(t, p.Actions, 1)
	assert.Equal(t, "/b/2.txt", p.Actions[0].From)
	assert.Equal(t, []string{"/a", "/b"}, p.Roots, "plan echoes its configuration")
	assert.Equal(t, map[string]string{"/b": "/b/_Sorted"}, p.DestRoots)
}

func TestBuildRecordsMetadata(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateFileWithAge("Downloads/old.zip", []byte("12345678"), 48*time.Hour)
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	p, err := NewBuilder(WithClock(func() time.Time { return created })).Build(context.Background(),
		[]string{f.Downloads}, map[string]string{f.Downloads: f.DownloadsSorted}, nil, deepScan)
	require.NoError(t, err)

	assert.Equal(t, Version, p.Version)
	assert.True(t, p.CreatedAt.Equal(created))
	require.Len(t, p.Actions, 1)
	assert.Equal(t, int64(8), p.Actions[0].Size)
	assert.WithinDuration(t, time.Now().Add(-48*time.Hour), p.Actions[0].MTime, time.Minute)
	assert.Equal(t, time.UTC, p.Actions[0].MTime.Location())
	assert.NoError(t, p.Validate())
}

func TestBuildHonorsCancellation(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateTextFile("Downloads/a.txt", "a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBuilder().Build(ctx, f.Roots(), f.DestRoots(), nil, deepScan)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildNeverPlansSortedFiles(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateTextFile("Downloads/new.png", "png")
	f.CreateTextFile("Downloads/_Sorted/Images/old.png", "png")
	f.CreateTextFile("Desktop/_Sorted/Docs/old.txt", "txt")

	p, err := NewBuilder().Build(context.Background(), f.Roots(), f.DestRoots(), nil, deepScan)
	require.NoError(t, err)

	require.Len(t, p.Actions, 1)
	assert.Equal(t, filepath.Join(f.Downloads, "new.png"), p.Actions[0].From)
	assert.NoError(t, p.Validate())
}

func TestTargetSegments(t *testing.T) {
	tests := []struct {
		target   string
		expected []string
	}{
		{"Docs", []string{"Docs"}},
		{"Finance/Invoices", []string{"Finance", "Invoices"}},
		{`Finance\Invoices`, []string{"Finance", "Invoices"}},
		{"/Finance//Invoices/", []string{"Finance", "Invoices"}},
		{" Finance / Invoices ", []string{"Finance", "Invoices"}},
		{"../../etc", []string{"etc"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			assert.Equal(t, tt.expected, TargetSegments(tt.target))
		})
	}
}

func TestBuildSkipsDestinationOfAnotherRoot(t *testing.T) {
	f := testutil.NewFixture(t)
	inbox := filepath.Join(f.Desktop, "Inbox")
	f.CreateTextFile("Desktop/Inbox/old.pdf", "old")
	loose := f.CreateTextFile("Desktop/loose.pdf", "new")

	roots := []string{f.Desktop, f.Downloads}
	dests := map[string]string{f.Desktop: f.DesktopSorted, f.Downloads: inbox}

	p, err := NewBuilder().Build(context.Background(), roots, dests, nil, deepScan)
	require.NoError(t, err)

	require.Len(t, p.Actions, 1)
	assert.Equal(t, loose, p.Actions[0].From)
	assert.NoError(t, p.Validate())
}

func TestBuildRuleTargetingOtherIsNotCountedAsUnknown(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "/in/scratch.pdf", []byte("x"), 0644))
	require.NoError(t, util.WriteFile(fs, "/in/blob.xyz", []byte("x"), 0644))

	ruleSet := []rules.Rule{{Name: "Scratch", Match: "scratch.*", Target: "Other"}}

	p, err := NewBuilder(WithFilesystem(fs)).Build(context.Background(),
		[]string{"/in"}, map[string]string{"/in": "/out"}, ruleSet, deepScan)
	require.NoError(t, err)

	require.Len(t, p.Actions, 2)
	assert.Equal(t, map[string]int{".xyz": 1}, p.OtherTypeCounts)
	for _, a := range p.Actions {
		assert.Equal(t, "/out/Other/"+filepath.Base(a.From), filepath.ToSlash(a.To))
	}
}
