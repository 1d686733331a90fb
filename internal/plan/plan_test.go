package plan

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan() *Plan {
	root := filepath.FromSlash("/home/u/Downloads")
	dest := filepath.Join(root, "_Sorted")
	return &Plan{
		Version:   Version,
		CreatedAt: time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
		Roots:     []string{root},
		DestRoots: map[string]string{root: dest},
		Actions: []Action{
			{
				From:   filepath.Join(root, "a.pdf"),
				To:     filepath.Join(dest, "Docs", "a.pdf"),
				Reason: "type:Docs",
				Size:   100,
				MTime:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			},
			{
				From:   filepath.Join(root, "x", "invoice.pdf"),
				To:     filepath.Join(dest, "Finance", "Invoices", "invoice.pdf"),
				Reason: "rule:Invoices",
				Size:   50,
				MTime:  time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
			},
			{
				From:   filepath.Join(root, "b.pdf"),
				To:     filepath.Join(dest, "Docs", "b.pdf"),
				Reason: "type:Docs",
				Size:   25,
				MTime:  time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC),
			},
		},
		OtherTypeCounts: map[string]int{".xyz": 1},
	}
}

func TestActionBucket(t *testing.T) {
	assert.Equal(t, "Docs", Action{Reason: "type:Docs"}.Bucket())
	assert.Equal(t, "Invoices", Action{Reason: "rule:Invoices"}.Bucket())
	assert.Equal(t, "Other", Action{Reason: "fallback:Other"}.Bucket())
	assert.Equal(t, "odd", Action{Reason: "odd"}.Bucket())
}

func TestPlanAggregates(t *testing.T) {
	p := samplePlan()

	assert.Equal(t, int64(175), p.TotalSize())
	assert.Equal(t, map[string]int{"Docs": 2, "Invoices": 1}, p.BucketCounts())
	assert.Equal(t, []string{"Docs", "Invoices"}, p.SortedBuckets())
}

func TestValidateAcceptsWellFormedPlan(t *testing.T) {
	assert.NoError(t, samplePlan().Validate())
}

func TestValidateRejectsBrokenPlans(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Plan)
	}{
		{
			name:   "wrong version",
			mutate: func(p *Plan) { p.Version = 2 },
		},
		{
			name: "destination outside destination root",
			mutate: func(p *Plan) {
				p.Actions[0].To = filepath.FromSlash("/tmp/a.pdf")
			},
		},
		{
			name: "source inside destination root",
			mutate: func(p *Plan) {
				p.Actions[0].From = filepath.FromSlash("/home/u/Downloads/_Sorted/Docs/a.pdf")
			},
		},
		{
			name: "source outside every root",
			mutate: func(p *Plan) {
				p.Actions[0].From = filepath.FromSlash("/etc/passwd")
			},
		},
		{
			name: "file renamed by plan",
			mutate: func(p *Plan) {
				p.Actions[0].To = filepath.FromSlash("/home/u/Downloads/_Sorted/Docs/renamed.pdf")
			},
		},
		{
			name: "destination climbs out",
			mutate: func(p *Plan) {
				p.Actions[0].To = filepath.FromSlash("/home/u/Downloads/_Sorted/../a.pdf")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := samplePlan()
			tt.mutate(p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestCheckVersion(t *testing.T) {
	p := &Plan{Version: 0}
	err := p.CheckVersion()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	p.Version = Version
	assert.NoError(t, p.CheckVersion())
}
