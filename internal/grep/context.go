package grep

// ExtractContext returns the part of line surrounding a match: up to
// radius bytes before the match, the match itself, and up to radius
// bytes after it. The window is clipped to the line's boundaries and is
// never padded, so short lines yield short windows.
func ExtractContext(line string, offset, targetLen, radius int) string {
	start := max(offset-radius, 0)
	end := min(offset+targetLen+radius, len(line))
	if start > len(line) {
		start = len(line)
	}
	if end < start {
		end = start
	}
	return line[start:end]
}
