package scaffold

import (
	"strings"
	"testing"

	"github.com/appforge-labs/appforge/internal/options"
)

func TestShell(t *testing.T) {
	d := NewData(options.MustValidate(options.Raw{}), "My Dashboard", "")
	files, err := Shell(d)
	if err != nil {
		t.Fatalf("Shell() error: %v", err)
	}

	assertPaths(t, files, []string{"public/index.html", "src/App.css", "src/App.js", "src/index.js"})
	assertContains(t, content(t, files, "src/App.js"), "<h1>My Dashboard</h1>")
	assertContains(t, content(t, files, "public/index.html"), "<title>My Dashboard</title>")
	assertContains(t, content(t, files, "src/index.js"), "import './index.css';")
}

func TestShell_IndependentOfConfiguration(t *testing.T) {
	a, err := Shell(NewData(options.MustValidate(options.Raw{FrameworkVersion: "17"}), "", ""))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Shell(NewData(options.MustValidate(options.Raw{FrameworkVersion: "18", StateManagement: "redux", Middleware: "redux-saga", CSSFramework: "tailwind"}), "", ""))
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != len(b) {
		t.Fatalf("file counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Path != b[i].Path || string(a[i].Content) != string(b[i].Content) {
			t.Errorf("shell file %s differs between configurations", a[i].Path)
		}
	}
}

func TestStyles(t *testing.T) {
	tests := []struct {
		css      string
		paths    []string
		contains string
	}{
		{"tailwind", []string{"postcss.config.js", "src/index.css", "tailwind.config.js"}, "@tailwind base;"},
		{"bootstrap", []string{"src/index.css"}, "@import 'bootstrap/dist/css/bootstrap.min.css';"},
		{"none", []string{"src/index.css"}, "font-family"},
	}

	for _, tt := range tests {
		t.Run(tt.css, func(t *testing.T) {
			files, err := Styles(NewData(options.MustValidate(options.Raw{CSSFramework: tt.css}), "", ""))
			if err != nil {
				t.Fatalf("Styles() error: %v", err)
			}
			assertPaths(t, files, tt.paths)
			assertContains(t, content(t, files, "src/index.css"), tt.contains)
		})
	}
}

func TestReduxState_Saga(t *testing.T) {
	d := NewData(options.MustValidate(options.Raw{StateManagement: "redux", Middleware: "redux-saga"}), "", "https://api.example.com/users")
	files, err := ReduxState(d)
	if err != nil {
		t.Fatalf("ReduxState() error: %v", err)
	}

	assertPaths(t, files, []string{
		"src/redux/actions/userActions.js",
		"src/redux/reducers/index.js",
		"src/redux/reducers/userReducer.js",
		"src/redux/sagas/index.js",
		"src/redux/sagas/userSaga.js",
	})
	saga := content(t, files, "src/redux/sagas/userSaga.js")
	assertContains(t, saga, "function* watchFetchUser()")
	assertContains(t, saga, "function* fetchUser()")
	assertContains(t, saga, "https://api.example.com/users")
	assertContains(t, content(t, files, "src/redux/sagas/index.js"), "export default function* rootSaga()")
}

func TestReduxState_Thunk(t *testing.T) {
	files, err := ReduxState(NewData(options.MustValidate(options.Raw{StateManagement: "redux", Middleware: "redux-thunk"}), "", ""))
	if err != nil {
		t.Fatalf("ReduxState() error: %v", err)
	}

	assertPaths(t, files, []string{
		"src/redux/actions/userActions.js",
		"src/redux/reducers/index.js",
		"src/redux/reducers/userReducer.js",
		"src/redux/middleware/userThunks.js",
	})
	assertContains(t, content(t, files, "src/redux/middleware/userThunks.js"), "async (dispatch)")
	assertContains(t, content(t, files, "src/redux/middleware/userThunks.js"), DefaultAPIURL)
}

func TestReduxState_NoMiddleware(t *testing.T) {
	files, err := ReduxState(NewData(options.MustValidate(options.Raw{StateManagement: "redux", Middleware: "none"}), "", ""))
	if err != nil {
		t.Fatalf("ReduxState() error: %v", err)
	}
	for _, f := range files {
		if strings.Contains(f.Path, "/sagas/") || strings.Contains(f.Path, "/middleware/") {
			t.Errorf("unexpected async wiring file %s", f.Path)
		}
	}
}

func TestReduxState_NotRedux(t *testing.T) {
	files, err := ReduxState(NewData(options.MustValidate(options.Raw{}), "", ""))
	if err != nil || len(files) != 0 {
		t.Errorf("ReduxState() = %v, %v; want no files", files, err)
	}
}

func TestStore(t *testing.T) {
	tests := []struct {
		middleware string
		want       []string
		absent     []string
	}{
		{"redux-saga", []string{"createSagaMiddleware", "sagaMiddleware.run(rootSaga)", "import rootSaga from './sagas';"}, []string{"thunk"}},
		{"redux-thunk", []string{"import thunk from 'redux-thunk';", "applyMiddleware(thunk)"}, []string{"saga"}},
		{"none", []string{"createStore(rootReducer)"}, []string{"applyMiddleware", "saga", "thunk"}},
	}

	for _, tt := range tests {
		t.Run(tt.middleware, func(t *testing.T) {
			files, err := Store(NewData(options.MustValidate(options.Raw{StateManagement: "redux", Middleware: tt.middleware}), "", ""))
			if err != nil {
				t.Fatalf("Store() error: %v", err)
			}
			assertPaths(t, files, []string{StoreFile})
			store := content(t, files, StoreFile)
			assertContains(t, store, "import rootReducer from './reducers';")
			for _, s := range tt.want {
				assertContains(t, store, s)
			}
			for _, s := range tt.absent {
				assertNotContains(t, store, s)
			}
		})
	}
}

func TestHooks(t *testing.T) {
	tests := []struct {
		mode  string
		paths []string
	}{
		{"useState", []string{"src/hooks/useCustomState.js"}},
		{"useEffect", []string{"src/hooks/useCustomEffect.js"}},
		{"useLocalStorage", []string{"src/hooks/useLocalStorage.js"}},
		{"useFetch", []string{"src/hooks/useFetch.js"}},
		{"hooks", []string{"src/hooks/useCustomState.js", "src/hooks/useCustomEffect.js", "src/hooks/useLocalStorage.js", "src/hooks/useFetch.js"}},
		{"none", nil},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			files, err := Hooks(NewData(options.MustValidate(options.Raw{HooksMode: tt.mode}), "", ""))
			if err != nil {
				t.Fatalf("Hooks() error: %v", err)
			}
			assertPaths(t, files, tt.paths)
			for _, f := range files {
				for _, imp := range scanImports(f) {
					if isRelative(imp) {
						t.Errorf("%s imports %q; hooks must be self-contained", f.Path, imp)
					}
				}
			}
		})
	}
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name string
		raw  options.Raw
		want []string
	}{
		{"baseline", options.Raw{}, []string{"shell", "styles"}},
		{"redux", options.Raw{StateManagement: "redux", Middleware: "redux-thunk"}, []string{"shell", "styles", "redux", "store"}},
		{"hooks", options.Raw{HooksMode: "useFetch"}, []string{"shell", "styles", "hooks"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			areas := Plan(options.MustValidate(tt.raw))
			var got []string
			for _, a := range areas {
				got = append(got, a.Name)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Plan() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderDir_UnknownSet(t *testing.T) {
	if _, err := renderDir(NewData(options.MustValidate(options.Raw{}), "", ""), "nonexistent"); err == nil {
		t.Fatal("expected error for unknown template set")
	}
}

// ─── Test Helpers ──────────────────────────────────────────────────

func content(t *testing.T, files []File, p string) string {
	t.Helper()
	for _, f := range files {
		if f.Path == p {
			return string(f.Content)
		}
	}
	t.Fatalf("file %s not rendered", p)
	return ""
}

func assertPaths(t *testing.T, files []File, expected []string) {
	t.Helper()
	got := make([]string, len(files))
	for i, f := range files {
		got[i] = f.Path
	}
	if len(got) != len(expected) {
		t.Errorf("got %d files %v, want %d files %v", len(got), got, len(expected), expected)
		return
	}
	for i, p := range expected {
		if got[i] != p {
			t.Errorf("file[%d] = %q, want %q", i, got[i], p)
		}
	}
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("content does not contain %q\n--- content ---\n%s", substr, content)
	}
}

func assertNotContains(t *testing.T, content, substr string) {
	t.Helper()
	if strings.Contains(content, substr) {
		t.Errorf("content should not contain %q", substr)
	}
}
