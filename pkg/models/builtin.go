package models

// BuiltinNotebookTypes provides the notebook types registered before any
// user configuration is read. Config contributions in config.yaml can add
// to or shadow these.
var BuiltinNotebookTypes = []*NotebookTypeDescriptor{
	{
		ID:          "markdown-notebook",
		DisplayName: "markdown notebook",
		Priority:    PriorityDefault,
		Selectors: []Selector{
			{FilenamePattern: "*.nb.md"},
		},
	},
	{
		ID:          "plain-markdown",
		DisplayName: "plain markdown",
		Priority:    PriorityOption,
		Selectors: []Selector{
			{FilenamePattern: "*.md"},
			{FilenamePattern: "*.markdown"},
		},
	},
	{
		ID:          "scratch",
		DisplayName: "scratch cells",
		Priority:    PriorityOption,
		Selectors: []Selector{
			{FilenamePattern: "*.cells"},
		},
	},
}
