package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
	"text/template"

	"github.com/appforge-labs/appforge/internal/options"
)

//go:embed templates
var templateFS embed.FS

const (
	templatesRoot = "templates"
	tmplSuffix    = ".tmpl"
)

// Default values for Data fields.
const (
	DefaultTitle  = "Generated React App"
	DefaultAPIURL = "http://localhost:5000/api/users"
)

// Data holds all variables available to templates.
type Data struct {
	Title  string         // Page title and heading
	APIURL string         // Endpoint the generated async actions fetch from
	Config options.Config // The validated configuration
}

// NewData creates a Data with defaults for empty fields.
func NewData(cfg options.Config, title, apiURL string) Data {
	if title == "" {
		title = DefaultTitle
	}
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return Data{Title: title, APIURL: apiURL, Config: cfg}
}

// File is one generated file, addressed by a slash-separated path relative to
// the project root.
type File struct {
	Path    string
	Content []byte
}

var (
	parsedMu sync.Mutex
	parsed   = map[string]*template.Template{}
)

// parseTemplate parses an embedded template once and caches it.
func parseTemplate(name string, src []byte) (*template.Template, error) {
	parsedMu.Lock()
	defer parsedMu.Unlock()

	if t, ok := parsed[name]; ok {
		return t, nil
	}
	t, err := template.New(path.Base(name)).Option("missingkey=error").Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	parsed[name] = t
	return t, nil
}

// renderDir renders every file under templates/<dir>. Output paths are
// relative to that directory with the .tmpl suffix stripped.
func renderDir(d Data, dir string) ([]File, error) {
	root := path.Join(templatesRoot, dir)
	if _, err := fs.Stat(templateFS, root); err != nil {
		return nil, fmt.Errorf("template set %q not found: %w", dir, err)
	}

	var files []File
	err := fs.WalkDir(templateFS, root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		src, err := fs.ReadFile(templateFS, p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}
		rel := strings.TrimPrefix(p, root+"/")

		// Only .tmpl files are executed. JSX and CSS are full of braces,
		// so everything else is copied verbatim.
		if !strings.HasSuffix(rel, tmplSuffix) {
			files = append(files, File{Path: rel, Content: src})
			return nil
		}

		tmpl, err := parseTemplate(p, src)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, d); err != nil {
			return fmt.Errorf("executing template %s: %w", p, err)
		}
		files = append(files, File{Path: strings.TrimSuffix(rel, tmplSuffix), Content: buf.Bytes()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
