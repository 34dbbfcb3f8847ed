package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/appforge-labs/appforge/internal/branding"
	"github.com/appforge-labs/appforge/internal/options"
)

// BuildTool selects the build-tool package for the framework versions that
// satisfy Constraint.
type BuildTool struct {
	Constraint string
	Package    string
	Range      string

	compiled *semver.Constraints
}

// buildTools is evaluated in order; the first row whose constraint the
// framework version satisfies wins. Supporting a new framework major means
// adding a row here.
var buildTools = compileBuildTools([]BuildTool{
	{Constraint: ">= 18", Package: "react-scripts", Range: "^5.0.0"},
	{Constraint: "< 18", Package: "react-scripts", Range: "^4.0.3"},
})

func compileBuildTools(rows []BuildTool) []BuildTool {
	for i := range rows {
		c, err := semver.NewConstraint(rows[i].Constraint)
		if err != nil {
			panic(fmt.Sprintf("manifest: invalid build tool constraint %q: %v", rows[i].Constraint, err))
		}
		rows[i].compiled = c
	}
	return rows
}

// BuildToolFor returns the build tool row matching a framework version such as
// "18" or "17.0.2".
func BuildToolFor(frameworkVersion string) (BuildTool, bool) {
	v, err := semver.NewVersion(strings.TrimPrefix(frameworkVersion, "v"))
	if err != nil {
		return BuildTool{}, false
	}
	for _, bt := range buildTools {
		if bt.compiled.Check(v) {
			return bt, true
		}
	}
	return BuildTool{}, false
}

// packageRule adds Packages when Applies holds for the configuration.
type packageRule struct {
	Name     string
	Applies  func(options.Config) bool
	Packages []Package
}

var packageRules = []packageRule{
	{
		Name:    "redux",
		Applies: func(c options.Config) bool { return c.Redux() },
		Packages: []Package{
			{Name: "redux", Range: "^4.0.5"},
			{Name: "react-redux", Range: "^7.2.6"},
		},
	},
	{
		Name:     "redux-thunk",
		Applies:  func(c options.Config) bool { return c.Middleware() == options.MiddlewareThunk },
		Packages: []Package{{Name: "redux-thunk", Range: "^2.3.0"}},
	},
	{
		Name:    "redux-saga",
		Applies: func(c options.Config) bool { return c.Middleware() == options.MiddlewareSaga },
		Packages: []Package{
			{Name: "redux-saga", Range: "^1.1.3"},
			// The generated saga worker fetches with axios.
			{Name: "axios", Range: "^0.21.1"},
		},
	},
	{
		Name:    "tailwind",
		Applies: func(c options.Config) bool { return c.CSSFramework() == options.CSSTailwind },
		Packages: []Package{
			{Name: "tailwindcss", Range: "^2.1.2"},
			{Name: "autoprefixer", Range: "^10.1.0"},
			{Name: "postcss", Range: "^8.2.6"},
		},
	},
	{
		Name:     "bootstrap",
		Applies:  func(c options.Config) bool { return c.CSSFramework() == options.CSSBootstrap },
		Packages: []Package{{Name: "bootstrap", Range: "^5.0.0-beta2"}},
	},
}

// scripts is identical for every configuration.
var scripts = map[string]string{
	"start": "react-scripts start",
	"build": "react-scripts build",
	"test":  "react-scripts test",
	"eject": "react-scripts eject",
}

// Synthesize derives the manifest for a validated configuration. It is a pure
// function: equal configurations yield equal manifests.
func Synthesize(cfg options.Config) Manifest {
	deps := map[string]string{
		"react":     "^" + cfg.FrameworkVersion(),
		"react-dom": "^" + cfg.FrameworkVersion(),
	}

	if bt, ok := BuildToolFor(cfg.FrameworkVersion()); ok {
		deps[bt.Package] = bt.Range
	}

	for _, rule := range packageRules {
		if !rule.Applies(cfg) {
			continue
		}
		for _, p := range rule.Packages {
			deps[p.Name] = p.Range
		}
	}

	return Manifest{
		Name:         branding.ProjectName(),
		Version:      ProjectVersion,
		Private:      true,
		Dependencies: deps,
		Scripts:      maps.Clone(scripts),
	}
}

// Encode renders m as an indented package.json document. encoding/json emits
// map keys sorted, so the output is byte-stable.
func Encode(m Manifest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", FileName, err)
	}
	return buf.Bytes(), nil
}

// Decode parses a package.json document.
func Decode(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("decoding %s: %w", FileName, err)
	}
	return m, nil
}

// PackageNames returns the sorted dependency names of m.
func (m Manifest) PackageNames() []string {
	return slices.Sorted(maps.Keys(m.Dependencies))
}
