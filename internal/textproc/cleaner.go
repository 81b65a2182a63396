package textproc

import "strings"

// Clean removes numeric-only lines from raw text. All other lines are kept
// verbatim with their original separators, so cleaning never reflows text.
// Both "\n" and "\r\n" separators are recognized and reconstructed as-is.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(raw))

	for start := 0; start < len(raw); {
		line := raw[start:]
		sep := ""
		if i := strings.IndexByte(line, '\n'); i >= 0 {
			line = line[:i]
			sep = "\n"
			if strings.HasSuffix(line, "\r") {
				line = line[:len(line)-1]
				sep = "\r\n"
			}
		}
		start += len(line) + len(sep)

		// Drop the line and its separator together.
		if IsNumericOnly(line) {
			continue
		}
		b.WriteString(line)
		b.WriteString(sep)
	}

	return b.String()
}
