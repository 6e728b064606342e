package udf

import (
	"fmt"
	"regexp"
	"strings"
)

// pyFunc is one top-level function header plus its docstring, as read from
// the module source.
type pyFunc struct {
	name      string
	params    []string
	returns   string
	docstring string
}

var defPattern = regexp.MustCompile(`^(?:async\s+)?def\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`)

// scanFunctions walks the module line by line collecting top-level def
// statements. Indented defs belong to classes or closures and are not
// callable by the generated app, so they are ignored, as are imports: a
// source scan only ever sees functions defined in this module.
func scanFunctions(src []byte) ([]pyFunc, error) {
	lines := strings.Split(string(src), "\n")

	var funcs []pyFunc
	for i := 0; i < len(lines); i++ {
		match := defPattern.FindStringSubmatch(lines[i])
		if match == nil {
			continue
		}

		header := lines[i]
		end := i
		for !headerComplete(header) {
			end++
			if end >= len(lines) {
				return nil, fmt.Errorf("udf: unterminated signature for function %q", match[1])
			}
			header += "\n" + lines[end]
		}

		params, returns, err := parseHeader(header)
		if err != nil {
			return nil, fmt.Errorf("udf: function %q: %w", match[1], err)
		}
		funcs = append(funcs, pyFunc{
			name:      match[1],
			params:    params,
			returns:   returns,
			docstring: extractDocstring(lines[end+1:]),
		})
		i = end
	}
	return funcs, nil
}

// headerComplete reports whether the accumulated header closes its parameter
// list and ends in a colon. Parentheses inside string defaults are skipped.
func headerComplete(header string) bool {
	depth := 0
	var quote byte
	for i := 0; i < len(header); i++ {
		c := header[i]
		if quote != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '#':
			// Comment runs to end of line.
			for i < len(header) && header[i] != '\n' {
				i++
			}
		case ':':
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

func parseHeader(header string) (params []string, returns string, err error) {
	open := strings.IndexByte(header, '(')
	if open < 0 {
		return nil, "", fmt.Errorf("no parameter list")
	}

	depth := 0
	closing := -1
	var quote byte
	for i := open; i < len(header); i++ {
		c := header[i]
		if quote != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				closing = i
			}
		}
		if closing >= 0 {
			break
		}
	}
	if closing < 0 {
		return nil, "", fmt.Errorf("unbalanced parameter list")
	}

	params = splitParams(header[open+1 : closing])

	tail := header[closing+1:]
	if arrow := strings.Index(tail, "->"); arrow >= 0 {
		annotation := tail[arrow+2:]
		if colon := strings.LastIndexByte(annotation, ':'); colon >= 0 {
			annotation = annotation[:colon]
		}
		returns = strings.TrimSpace(annotation)
	}
	return params, returns, nil
}

// splitParams extracts positional parameter names, dropping annotations,
// defaults, and the *args/**kwargs/keyword-only markers that Python's
// argspec would also leave out of args.
func splitParams(list string) []string {
	var params []string
	depth := 0
	var quote byte
	start := 0

	emit := func(end int) {
		raw := strings.TrimSpace(list[start:end])
		start = end + 1
		if raw == "" || raw == "/" || strings.HasPrefix(raw, "*") {
			return
		}
		if idx := strings.IndexByte(raw, ':'); idx >= 0 {
			raw = raw[:idx]
		}
		if idx := strings.IndexByte(raw, '='); idx >= 0 {
			raw = raw[:idx]
		}
		if name := strings.TrimSpace(raw); name != "" {
			params = append(params, name)
		}
	}

	for i := 0; i < len(list); i++ {
		c := list[i]
		if quote != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				emit(i)
			}
		}
	}
	emit(len(list))
	return params
}

// extractDocstring returns the function's docstring with the indentation of
// continuation lines removed, or "" when the body opens with anything else.
func extractDocstring(body []string) string {
	idx := 0
	for idx < len(body) {
		trimmed := strings.TrimSpace(body[idx])
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			break
		}
		idx++
	}
	if idx >= len(body) {
		return ""
	}

	line := strings.TrimSpace(body[idx])
	line = strings.TrimLeft(line, "rRbBuUfF") // string literal prefixes

	for _, q := range []string{`"""`, `'''`} {
		if !strings.HasPrefix(line, q) {
			continue
		}
		rest := line[len(q):]
		if end := strings.Index(rest, q); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		collected := []string{rest}
		for j := idx + 1; j < len(body); j++ {
			if end := strings.Index(body[j], q); end >= 0 {
				collected = append(collected, body[j][:end])
				return dedentDocstring(collected)
			}
			collected = append(collected, body[j])
		}
		return dedentDocstring(collected)
	}

	// Single-quoted one-line docstrings.
	if len(line) >= 2 && (line[0] == '"' || line[0] == '\'') {
		q := line[0]
		if end := strings.IndexByte(line[1:], q); end >= 0 {
			return strings.TrimSpace(line[1 : end+1])
		}
	}
	return ""
}

// dedentDocstring mirrors inspect.getdoc: the first line stays as written,
// continuation lines lose their common leading whitespace.
func dedentDocstring(lines []string) string {
	indent := -1
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		width := len(line) - len(trimmed)
		if indent < 0 || width < indent {
			indent = width
		}
	}

	out := []string{strings.TrimSpace(lines[0])}
	for _, line := range lines[1:] {
		if indent > 0 && len(line) >= indent {
			line = line[indent:]
		}
		out = append(out, strings.TrimRight(line, " \t"))
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
