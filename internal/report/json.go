package report

import (
	"encoding/json"
	"io"

	"github.com/sqve/cradar/internal/engine"
	"github.com/sqve/cradar/internal/logger"
)

// jsonWorktree mirrors the "worktrees" entries of the ConflictReport schema.
type jsonWorktree struct {
	ID     string `json:"id"`
	Path   string `json:"path"`
	Branch string `json:"branch"`
	Status string `json:"status"`
}

// jsonConflict mirrors one entry of the ConflictReport schema's "conflicts"
// array. Only pairs with at least one conflicting file are ever encoded
// into one of these; UNRELATED and clean pairs are omitted entirely.
type jsonConflict struct {
	Wt1ID            string   `json:"wt1_id"`
	Wt2ID            string   `json:"wt2_id"`
	ConflictingFiles []string `json:"conflicting_files"`
}

type jsonConflictReport struct {
	Worktrees []jsonWorktree `json:"worktrees"`
	Conflicts []jsonConflict `json:"conflicts"`
}

type jsonSiblingConflict struct {
	Worktree         string `json:"worktree"`
	Branch           string `json:"branch"`
	HasMergeConflict bool   `json:"has_merge_conflict"`
	HasActiveChanges bool   `json:"has_active_changes"`
}

type jsonSingleFileReport struct {
	File            string                `json:"file"`
	CurrentWorktree string                `json:"current_worktree"`
	CurrentBranch   string                `json:"current_branch"`
	Conflicts       []jsonSiblingConflict `json:"conflicts"`
}

// JSONSink writes the stable machine-readable schemas spec'd for status
// and check to an io.Writer, one document per call.
type JSONSink struct {
	Writer io.Writer
}

// NewJSONSink returns a JSONSink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{Writer: w}
}

func (s *JSONSink) EmitReport(report *engine.ConflictReport) error {
	out := jsonConflictReport{
		Worktrees: make([]jsonWorktree, 0, len(report.Worktrees)),
		Conflicts: []jsonConflict{},
	}
	for _, wt := range report.Worktrees {
		out.Worktrees = append(out.Worktrees, jsonWorktree{
			ID:     wt.ID,
			Path:   wt.Path,
			Branch: wt.Branch.String(),
			Status: string(wt.Status),
		})
	}
	for _, pair := range report.Pairs {
		if pair.Status == engine.StatusErrored {
			logger.Warn("pair errored during merge, omitted from report",
				"wt1", pair.WtAID, "wt2", pair.WtBID, "error", pair.Err)
			continue
		}
		if pair.Status != engine.StatusConflict || len(pair.ConflictingPaths) == 0 {
			continue
		}
		out.Conflicts = append(out.Conflicts, jsonConflict{
			Wt1ID:            pair.WtAID,
			Wt2ID:            pair.WtBID,
			ConflictingFiles: pair.ConflictingPaths,
		})
	}
	return s.encode(out)
}

func (s *JSONSink) EmitSingleFileReport(report *engine.SingleFileReport) error {
	out := jsonSingleFileReport{
		File:            report.File,
		CurrentWorktree: report.CurrentWorktree,
		CurrentBranch:   report.CurrentBranch.String(),
		Conflicts:       make([]jsonSiblingConflict, 0, len(report.Conflicts)),
	}
	for _, c := range report.Conflicts {
		out.Conflicts = append(out.Conflicts, jsonSiblingConflict{
			Worktree:         c.Worktree,
			Branch:           c.Branch.String(),
			HasMergeConflict: c.HasMergeConflict,
			HasActiveChanges: c.HasActiveChanges,
		})
	}
	return s.encode(out)
}

func (s *JSONSink) encode(v interface{}) error {
	enc := json.NewEncoder(s.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
