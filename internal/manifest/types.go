package manifest

// Manifest is the package.json of a generated project. Field order is the
// order of the emitted JSON document; map keys are emitted sorted.
type Manifest struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Private      bool              `json:"private"`
	Dependencies map[string]string `json:"dependencies"`
	Scripts      map[string]string `json:"scripts"`
}

// Package is a dependency name with its version range.
type Package struct {
	Name  string
	Range string
}

// FileName is the manifest's path relative to the project root.
const FileName = "package.json"

// ProjectVersion is the version written into every generated manifest.
const ProjectVersion = "1.0.0"
