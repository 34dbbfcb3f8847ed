package scaffold

import (
	"path"
	"regexp"
	"strings"
)

var (
	// import x from './y'; import { a } from "b"; import './c.css'
	jsImport = regexp.MustCompile(`(?m)^\s*import\s+(?:[^'";]*?\s+from\s+)?['"]([^'"]+)['"]`)
	// @import 'pkg/file.css';
	cssImport = regexp.MustCompile(`(?m)^\s*@import\s+(?:url\()?['"]([^'"]+)['"]`)
)

// scanImports returns the module specifiers imported by a JS or CSS file.
func scanImports(f File) []string {
	var re *regexp.Regexp
	switch path.Ext(f.Path) {
	case ".js", ".jsx":
		re = jsImport
	case ".css":
		re = cssImport
	default:
		return nil
	}

	var specs []string
	for _, m := range re.FindAllSubmatch(f.Content, -1) {
		specs = append(specs, string(m[1]))
	}
	return specs
}

func isRelative(spec string) bool {
	return strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../")
}

// resolveImport applies module resolution for a relative specifier: the exact
// file, then spec.js, then spec/index.js.
func resolveImport(t *Tree, from, spec string) (string, bool) {
	base := path.Join(path.Dir(from), spec)
	for _, candidate := range []string{base, base + ".js", base + "/index.js"} {
		if t.Has(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// packageName reduces a bare specifier to its package: "redux-saga/effects"
// is "redux-saga", "@scope/pkg/x" is "@scope/pkg".
func packageName(spec string) string {
	parts := strings.Split(spec, "/")
	if strings.HasPrefix(spec, "@") && len(parts) > 1 {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}
