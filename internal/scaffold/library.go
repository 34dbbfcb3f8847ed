package scaffold

import "github.com/appforge-labs/appforge/internal/options"

// Subtree roots for the mutually exclusive feature areas.
const (
	ReduxDir = "src/redux"
	HooksDir = "src/hooks"
)

// StoreFile is the single store module of a Redux project.
const StoreFile = ReduxDir + "/store.js"

// Shell renders the entry point, root component and HTML page. Only the
// title varies between configurations.
func Shell(d Data) ([]File, error) {
	return renderDir(d, "shell")
}

// Styles renders the global stylesheet and, for tailwind, its tool config.
func Styles(d Data) ([]File, error) {
	return renderDir(d, "styles/"+string(d.Config.CSSFramework()))
}

// ReduxState renders action creators, reducers and the async wiring for the
// configured middleware: a watcher/worker saga pair for redux-saga, a thunk
// action creator for redux-thunk, neither for none.
func ReduxState(d Data) ([]File, error) {
	if !d.Config.Redux() {
		return nil, nil
	}
	files, err := renderDir(d, "redux/common")
	if err != nil {
		return nil, err
	}
	switch mw := d.Config.Middleware(); mw {
	case options.MiddlewareSaga, options.MiddlewareThunk:
		wiring, err := renderDir(d, "redux/"+string(mw))
		if err != nil {
			return nil, err
		}
		files = append(files, wiring...)
	}
	return files, nil
}

// Store renders the store module for the configured middleware.
func Store(d Data) ([]File, error) {
	if !d.Config.Redux() {
		return nil, nil
	}
	return renderDir(d, "store/"+string(d.Config.Middleware()))
}

// Hooks renders one self-contained module per selected hook.
func Hooks(d Data) ([]File, error) {
	var files []File
	for _, h := range d.Config.Hooks() {
		hf, err := renderDir(d, "hooks/"+string(h))
		if err != nil {
			return nil, err
		}
		files = append(files, hf...)
	}
	return files, nil
}

// Area is a named feature-area renderer.
type Area struct {
	Name   string
	Render func(Data) ([]File, error)
}

// Plan returns the feature areas a configuration needs, in assembly order.
func Plan(cfg options.Config) []Area {
	areas := []Area{
		{Name: "shell", Render: Shell},
		{Name: "styles", Render: Styles},
	}
	switch {
	case cfg.Redux():
		areas = append(areas,
			Area{Name: "redux", Render: ReduxState},
			Area{Name: "store", Render: Store},
		)
	case cfg.HooksActive():
		areas = append(areas, Area{Name: "hooks", Render: Hooks})
	}
	return areas
}
