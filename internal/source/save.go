package source

import (
	"strconv"
	"strings"
)

// Save formats the rendered display lines as file content. Each display line
// becomes one "\n"-terminated row; with lineNumbers set, first segments are
// prefixed by the 1-based logical line number and a space.
func Save(lines []DisplayLine, lineNumbers bool) string {
	var builder strings.Builder
	for _, line := range lines {
		if lineNumbers && line.IsFirstSegment {
			builder.WriteString(strconv.Itoa(line.LogicalIndex + 1))
			builder.WriteByte(' ')
		}
		builder.WriteString(line.Text)
		builder.WriteByte('\n')
	}
	return builder.String()
}
