package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fenilsonani/inboxzero/internal/plan"
	"github.com/fenilsonani/inboxzero/pkg/utils"
)

// maxTreeFiles caps the files listed per destination folder
const maxTreeFiles = 5

// PrintPlanTree writes the plan grouped by destination folder, the way the
// sorted tree will look once applied
func PrintPlanTree(w io.Writer, p *plan.Plan) {
	folders := make(map[string][]plan.Action)
	for _, action := range p.Actions {
		dir := filepath.Dir(action.To)
		folders[dir] = append(folders[dir], action)
	}

	dirs := make([]string, 0, len(folders))
	for dir := range folders {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	for i, dir := range dirs {
		actions := folders[dir]
		isLastDir := i == len(dirs)-1

		var dirSize int64
		for _, a := range actions {
			dirSize += a.Size
		}

		connector := "├"
		indent := "│   "
		if isLastDir {
			connector = "╰"
			indent = "    "
		}
		fmt.Fprintf(w, "%s── 📁 %s (%d files, %s)\n", connector, dir, len(actions), utils.FormatBytes(dirSize))

		shown := len(actions)
		if shown > maxTreeFiles {
			shown = maxTreeFiles
		}
		for j := 0; j < shown; j++ {
			fileConnector := "├"
			if j == shown-1 && len(actions) <= maxTreeFiles {
				fileConnector = "╰"
			}
			fmt.Fprintf(w, "%s%s── %s (%s)\n", indent, fileConnector,
				filepath.Base(actions[j].To), utils.FormatBytes(actions[j].Size))
		}
		if len(actions) > maxTreeFiles {
			fmt.Fprintf(w, "%s╰── ... and %d more files\n", indent, len(actions)-maxTreeFiles)
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("═", 56))
	fmt.Fprintf(w, "Total: %d files | %s\n", len(p.Actions), utils.FormatBytes(p.TotalSize()))
}
