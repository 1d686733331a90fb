package scanner

// SortedFolderName is the reserved folder that always holds already-sorted
// files. Directories with this name are never traversed.
const SortedFolderName = "_Sorted"

// Options controls which entries a walk considers
type Options struct {
	IncludeHidden bool     `json:"includeHidden" yaml:"include_hidden"`
	Ignore        []string `json:"ignore" yaml:"ignore"`
	// MaxDepth bounds recursion. 0 lists only direct children of a root.
	MaxDepth int `json:"maxDepth" yaml:"max_depth"`
}

// dirJob is a pending directory on the walk stack
type dirJob struct {
	dir   string
	depth int
}
