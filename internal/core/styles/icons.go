package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconCheckList = "☰"
	IconDone      = "✓"
	IconPending   = "○"
	IconOverdue   = "!"
	IconBell      = "•"
	IconUser      = "@"
)
