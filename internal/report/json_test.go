package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqve/cradar/internal/engine"
	"github.com/sqve/cradar/internal/vcs"
)

func TestJSONSinkOmitsCleanAndUnrelatedPairs(t *testing.T) {
	report := &engine.ConflictReport{
		Worktrees: vcs.WorkingTreeSet{
			{ID: "main", Path: "/repo", Branch: "main", Status: vcs.StatusClean},
			{ID: "feat-a", Path: "/repo-feat-a", Branch: "feature/a", Status: vcs.StatusDirty},
			{ID: "feat-b", Path: "/repo-feat-b", Branch: "feature/b", Status: vcs.StatusClean},
		},
		Pairs: []engine.ConflictPair{
			{WtAID: "feat-a", WtBID: "main", Status: engine.StatusClean},
			{WtAID: "feat-b", WtBID: "main", Status: engine.StatusUnrelated},
		},
	}

	var buf bytes.Buffer
	sink := NewJSONSink(&buf)
	require.NoError(t, sink.EmitReport(report))

	var decoded jsonConflictReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Worktrees, 3)
	require.Empty(t, decoded.Conflicts)
}

func TestJSONSinkIncludesConflictingPairs(t *testing.T) {
	report := &engine.ConflictReport{
		Worktrees: vcs.WorkingTreeSet{
			{ID: "feat-a", Branch: "feature/a"},
			{ID: "feat-b", Branch: "feature/b"},
		},
		Pairs: []engine.ConflictPair{
			{WtAID: "feat-a", WtBID: "feat-b", Status: engine.StatusConflict, ConflictingPaths: []string{"README.md"}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewJSONSink(&buf).EmitReport(report))

	var decoded jsonConflictReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Conflicts, 1)
	require.Equal(t, "feat-a", decoded.Conflicts[0].Wt1ID)
	require.Equal(t, "feat-b", decoded.Conflicts[0].Wt2ID)
	require.Equal(t, []string{"README.md"}, decoded.Conflicts[0].ConflictingFiles)
}

func TestJSONSinkSingleFileReport(t *testing.T) {
	report := &engine.SingleFileReport{
		File:            "README.md",
		CurrentWorktree: "feat-a",
		CurrentBranch:   "feature/a",
		Conflicts: []engine.SiblingConflict{
			{Worktree: "feat-b", Branch: "feature/b", HasMergeConflict: true},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewJSONSink(&buf).EmitSingleFileReport(report))

	var decoded jsonSingleFileReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, "README.md", decoded.File)
	require.True(t, decoded.Conflicts[0].HasMergeConflict)
	require.False(t, decoded.Conflicts[0].HasActiveChanges)
}
