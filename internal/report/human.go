package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/sqve/cradar/internal/engine"
	"github.com/sqve/cradar/internal/styles"
	"github.com/sqve/cradar/internal/vcs"
)

// HumanSink renders decorated text for an interactive terminal: a small
// worktree table plus a conflict matrix. It is the bare-bones text
// rendering spec.md §1 calls out as peripheral — the interactive terminal
// dashboard itself is a separate, out-of-scope consumer of the engine.
type HumanSink struct {
	Writer io.Writer
}

// NewHumanSink returns a HumanSink writing to w.
func NewHumanSink(w io.Writer) *HumanSink {
	return &HumanSink{Writer: w}
}

func (s *HumanSink) EmitReport(report *engine.ConflictReport) error {
	table := tablewriter.NewWriter(s.Writer)
	table.Header("Worktree", "Branch", "Status")
	for _, wt := range report.Worktrees {
		status := styles.Render(&styles.Success, string(wt.Status))
		if wt.Status == vcs.StatusDirty {
			status = styles.Render(&styles.Warning, string(wt.Status))
		}
		table.Append(wt.ID, wt.Branch.String(), status)
	}
	if err := table.Render(); err != nil {
		return err
	}

	var conflicts []engine.ConflictPair
	for _, p := range report.Pairs {
		if p.Status == engine.StatusConflict {
			conflicts = append(conflicts, p)
		}
	}

	if len(conflicts) == 0 {
		fmt.Fprintln(s.Writer, styles.Render(&styles.Success, "no conflicts predicted"))
		return nil
	}

	fmt.Fprintln(s.Writer)
	ctable := tablewriter.NewWriter(s.Writer)
	ctable.Header("Pair", "Conflicting files")
	for _, p := range conflicts {
		pair := styles.Render(&styles.Worktree, p.WtAID+" <-> "+p.WtBID)
		ctable.Append(pair, strings.Join(p.ConflictingPaths, ", "))
	}
	return ctable.Render()
}

func (s *HumanSink) EmitSingleFileReport(report *engine.SingleFileReport) error {
	fmt.Fprintf(s.Writer, "%s (in %s on %s)\n", report.File, report.CurrentWorktree, report.CurrentBranch)

	table := tablewriter.NewWriter(s.Writer)
	table.Header("Sibling", "Branch", "Merge conflict", "Active changes")
	for _, c := range report.Conflicts {
		mergeConflict := styles.Render(&styles.Success, "no")
		if c.HasMergeConflict {
			mergeConflict = styles.Render(&styles.Error, "yes")
		}
		activeChanges := styles.Render(&styles.Success, "no")
		if c.HasActiveChanges {
			activeChanges = styles.Render(&styles.Warning, "yes")
		}
		table.Append(c.Worktree, c.Branch.String(), mergeConflict, activeChanges)
	}
	return table.Render()
}
