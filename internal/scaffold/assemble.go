package scaffold

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/appforge-labs/appforge/internal/errors"
	"github.com/appforge-labs/appforge/internal/manifest"
	"github.com/appforge-labs/appforge/internal/options"
)

// Option configures Assemble.
type Option func(*assembleConfig)

type assembleConfig struct {
	title  string
	apiURL string
}

// WithTitle sets the page title and heading of the generated app.
func WithTitle(title string) Option {
	return func(c *assembleConfig) {
		c.title = title
	}
}

// WithAPIURL sets the endpoint the generated async actions fetch from.
func WithAPIURL(url string) Option {
	return func(c *assembleConfig) {
		c.apiURL = url
	}
}

// Assemble renders the manifest and every feature area the configuration
// needs, concurrently, and returns the verified tree. Template defects and
// cross-file inconsistencies are reported as *errors.AssemblyError; a
// cancelled ctx is returned as ctx.Err().
func Assemble(ctx context.Context, cfg options.Config, opts ...Option) (*Tree, error) {
	ac := &assembleConfig{}
	for _, opt := range opts {
		opt(ac)
	}
	data := NewData(cfg, ac.title, ac.apiURL)

	areas := Plan(cfg)
	rendered := make([][]File, len(areas)+1)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		content, err := manifest.Encode(manifest.Synthesize(cfg))
		if err != nil {
			return apperrors.NewAssemblyError(manifest.FileName, "encoding manifest", err)
		}
		rendered[len(areas)] = []File{{Path: manifest.FileName, Content: content}}
		return nil
	})

	for i, area := range areas {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			files, err := area.Render(data)
			if err != nil {
				return apperrors.NewAssemblyError("", fmt.Sprintf("rendering %s templates", area.Name), err)
			}
			rendered[i] = files
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}

	var all []File
	for _, files := range rendered {
		all = append(all, files...)
	}

	tree, err := newTree(all)
	if err != nil {
		return nil, apperrors.NewAssemblyError("", "collecting files", err)
	}
	if err := Verify(tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// Verify checks the structural invariants of a tree:
//   - package.json and the entry points are present and the manifest is valid
//   - the redux and hooks subtrees are never both present
//   - a redux subtree has exactly one store module
//   - every relative import resolves to a file in the tree
//   - every package import is declared in the manifest
func Verify(t *Tree) error {
	for _, required := range []string{manifest.FileName, "src/App.js", "src/index.js"} {
		if !t.Has(required) {
			return apperrors.NewAssemblyError(required, "required file missing", nil)
		}
	}

	pkg, _ := t.File(manifest.FileName)
	result, err := manifest.Validate(pkg.Content)
	if err != nil {
		return apperrors.NewAssemblyError(manifest.FileName, "validating manifest", err)
	}
	if !result.Valid {
		msgs := make([]string, 0, len(result.Issues))
		for _, issue := range result.Issues {
			msgs = append(msgs, issue.String())
		}
		return apperrors.NewAssemblyError(manifest.FileName, "invalid manifest: "+strings.Join(msgs, "; "), nil)
	}
	m, err := manifest.Decode(pkg.Content)
	if err != nil {
		return apperrors.NewAssemblyError(manifest.FileName, "decoding manifest", err)
	}

	redux, hooks := t.HasDir(ReduxDir), t.HasDir(HooksDir)
	if redux && hooks {
		return apperrors.NewAssemblyError("", "both "+ReduxDir+" and "+HooksDir+" were emitted", nil)
	}
	if redux && !t.Has(StoreFile) {
		return apperrors.NewAssemblyError(StoreFile, "redux subtree has no store module", nil)
	}

	for _, f := range t.files {
		for _, imp := range scanImports(f) {
			if isRelative(imp) {
				if _, ok := resolveImport(t, f.Path, imp); !ok {
					return apperrors.NewAssemblyError(f.Path, fmt.Sprintf("import %q does not resolve to a generated file", imp), nil)
				}
				continue
			}
			pkgName := packageName(imp)
			if _, ok := m.Dependencies[pkgName]; !ok {
				return apperrors.NewAssemblyError(f.Path, fmt.Sprintf("package %q is imported but not declared in %s", pkgName, manifest.FileName), nil)
			}
		}
	}
	return nil
}
