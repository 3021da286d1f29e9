package annotations

import "strings"

// annotationPrefix starts an axon annotation line such as "axon::route"
const annotationPrefix = "axon::"

// normalizeBlock strips comment syntax from every line of a comment block.
// axon:: annotation lines are blanked so they never bleed into a directive's
// description. Line structure is preserved.
func normalizeBlock(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		line = stripCommentMarkers(line)
		if strings.HasPrefix(line, annotationPrefix) {
			line = ""
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func stripCommentMarkers(line string) string {
	line = strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(line, "/**"):
		line = line[3:]
	case strings.HasPrefix(line, "/*"), strings.HasPrefix(line, "//"):
		line = line[2:]
	case strings.HasPrefix(line, "#"):
		line = line[1:]
	}
	line = strings.TrimSuffix(strings.TrimSpace(line), "*/")
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "*") {
		line = strings.TrimSpace(line[1:])
	}
	return line
}

// segment is the text between one directive marker and the next
type segment struct {
	kind   string // directive name, lower-cased, without '@'
	body   string
	offset int // offset of the '@' in the normalised block
}

// splitSegments cuts a normalised block at every directive marker. A marker is
// an '@' at the start of the text or after whitespace, followed by a letter.
// The scan is linear in the length of the block.
func splitSegments(text string) []segment {
	var marks []int
	for i := 0; i < len(text); i++ {
		if text[i] != '@' {
			continue
		}
		if i > 0 && !isSpace(text[i-1]) {
			continue
		}
		if i+1 >= len(text) || !isLetter(text[i+1]) {
			continue
		}
		marks = append(marks, i)
	}

	segments := make([]segment, 0, len(marks))
	for n, start := range marks {
		end := len(text)
		if n+1 < len(marks) {
			end = marks[n+1]
		}
		nameEnd := start + 1
		for nameEnd < end && isWordByte(text[nameEnd]) {
			nameEnd++
		}
		segments = append(segments, segment{
			kind:   strings.ToLower(text[start+1 : nameEnd]),
			body:   text[nameEnd:end],
			offset: start,
		})
	}
	return segments
}

// collapseSpace joins wrapped lines and squeezes runs of whitespace
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// indexFold finds needle in s ignoring ASCII case. needle must be lower-case.
func indexFold(s, needle string) int {
	n := len(needle)
	for i := 0; i+n <= len(s); i++ {
		match := true
		for j := 0; j < n; j++ {
			if toLowerASCII(s[i+j]) != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isWordByte(b byte) bool {
	return isLetter(b) || (b >= '0' && b <= '9') || b == '_' || b == '-'
}

func toLowerASCII(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
