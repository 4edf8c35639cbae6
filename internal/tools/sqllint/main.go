// Command sqllint checks that every SQL constant starts with a unique
// "--sql <uuid>" marker so statements can be traced in the query logs.
package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	sqlKeyword    = regexp.MustCompile(`(?i)\b(select|insert|update|delete|with)\b`)
	markerPattern = regexp.MustCompile(`^--sql ([0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12})$`)
)

type statement struct {
	file   string
	line   int
	name   string
	marker string
}

type violation struct {
	statement
	message string
}

func (v violation) String() string {
	return fmt.Sprintf("%s:%d %s (%s)", v.file, v.line, v.message, v.name)
}

func main() {
	flag.Parse()
	targets := flag.Args()
	if len(targets) == 0 {
		targets = []string{"internal/sqlinline"}
	}

	var stmts []statement
	for _, target := range targets {
		found, err := collect(target)
		if err != nil {
			fmt.Fprintf(os.Stderr, "sqllint: %v\n", err)
			os.Exit(1)
		}
		stmts = append(stmts, found...)
	}

	if violations := check(stmts); len(violations) > 0 {
		fmt.Fprintln(os.Stderr, "sqllint: SQL marker problems")
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "  %s\n", v)
		}
		os.Exit(1)
	}
}

// collect parses every non-test Go file under target and returns the string
// constants that look like SQL.
func collect(target string) ([]statement, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return collectFile(target)
	}
	var out []statement
	err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != target && (strings.HasPrefix(d.Name(), ".") || strings.HasPrefix(d.Name(), "_") || d.Name() == "vendor") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		found, err := collectFile(path)
		if err != nil {
			return err
		}
		out = append(out, found...)
		return nil
	})
	return out, err
}

func collectFile(path string) ([]statement, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, 0)
	if err != nil {
		return nil, err
	}
	var out []statement
	ast.Inspect(file, func(n ast.Node) bool {
		spec, ok := n.(*ast.ValueSpec)
		if !ok {
			return true
		}
		for i, value := range spec.Values {
			lit, ok := value.(*ast.BasicLit)
			if !ok || lit.Kind != token.STRING {
				continue
			}
			raw, err := unquote(lit.Value)
			if err != nil || !sqlKeyword.MatchString(raw) {
				continue
			}
			name := "_"
			if i < len(spec.Names) {
				name = spec.Names[i].Name
			}
			s := statement{file: path, line: fset.Position(lit.Pos()).Line, name: name}
			if m := markerPattern.FindStringSubmatch(firstLine(raw)); m != nil {
				s.marker = m[1]
			}
			out = append(out, s)
		}
		return true
	})
	return out, nil
}

// check reports statements without a marker and markers used more than once.
func check(stmts []statement) []violation {
	var out []violation
	byMarker := map[string][]statement{}
	for _, s := range stmts {
		if s.marker == "" {
			out = append(out, violation{statement: s, message: "missing or invalid --sql <uuid> marker"})
			continue
		}
		byMarker[s.marker] = append(byMarker[s.marker], s)
	}
	for marker, group := range byMarker {
		if len(group) < 2 {
			continue
		}
		for _, s := range group[1:] {
			out = append(out, violation{statement: s, message: fmt.Sprintf("marker %s already used by %s", marker, group[0].name)})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].file != out[j].file {
			return out[i].file < out[j].file
		}
		return out[i].line < out[j].line
	})
	return out
}

func firstLine(s string) string {
	s = strings.TrimLeft(s, "\n\r \t")
	if idx := strings.IndexAny(s, "\n\r"); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return strings.TrimSpace(s)
}

func unquote(v string) (string, error) {
	if len(v) >= 2 && v[0] == '`' {
		return v[1 : len(v)-1], nil
	}
	return strconv.Unquote(v)
}
