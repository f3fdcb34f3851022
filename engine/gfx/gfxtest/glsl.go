package gfxtest

import (
	"bytes"
	"regexp"
	"strconv"
)

// A deliberately small GLSL front end: enough to reject obviously broken sources and to
// discover uniform/attribute declarations for location assignment.

type decl struct {
	name  string
	count int // array length, 0 for scalars
}

type decls struct {
	uniforms []decl
	attribs  []decl
}

var declRE = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(uniform|attribute|in)\s+(?:(?:highp|mediump|lowp)\s+)?\w+\s+(\w+)\s*(?:\[\s*(\d+)\s*\])?\s*;`)

var (
	commentRE = regexp.MustCompile(`(?s)//[^\n]*|/\*.*?\*/`)
	mainRE    = regexp.MustCompile(`\bvoid\s+main\s*\(\s*(void)?\s*\)`)
)

func stripComments(src []byte) []byte { return commentRE.ReplaceAll(src, nil) }

// checkSyntax returns a line number and message for the first problem found.
func checkSyntax(src []byte) (int, string) {
	src = stripComments(src)
	if len(bytes.TrimSpace(src)) == 0 {
		return 1, "empty source"
	}
	var depth [2]int // braces, parens
	line := 1
	for _, c := range src {
		switch c {
		case '\n':
			line++
		case '{':
			depth[0]++
		case '}':
			depth[0]--
		case '(':
			depth[1]++
		case ')':
			depth[1]--
		}
		if depth[0] < 0 || depth[1] < 0 {
			return line, "syntax error, unexpected '" + string(c) + "'"
		}
	}
	if depth[0] != 0 || depth[1] != 0 {
		return line, "syntax error, unexpected end of file"
	}
	if i := bytes.Index(src, []byte("#error")); i >= 0 {
		return 1 + bytes.Count(src[:i], []byte("\n")), "#error directive"
	}
	if !mainRE.Match(src) {
		return line, "no function with name 'main'"
	}
	return 0, ""
}

// parseDecls lists uniforms and, for the vertex stage, per-vertex inputs in source order.
func parseDecls(src []byte, vertex bool) decls {
	var out decls
	for _, m := range declRE.FindAllSubmatch(stripComments(src), -1) {
		d := decl{name: string(m[2])}
		if len(m[3]) > 0 {
			d.count, _ = strconv.Atoi(string(m[3]))
		}
		switch string(m[1]) {
		case "uniform":
			out.uniforms = append(out.uniforms, d)
		case "attribute", "in":
			if vertex {
				out.attribs = append(out.attribs, d)
			}
		}
	}
	return out
}
