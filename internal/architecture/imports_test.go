package architecture_test

import (
	"bufio"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestImportBoundaries(t *testing.T) {
	root, modulePath := moduleRoot(t)

	var violations []string
	walkGoFiles(t, root, func(rel string, imports []string) {
		disallowed := disallowedImports(modulePath, layerFor(rel))
		for _, imp := range imports {
			for _, bad := range disallowed {
				if strings.HasPrefix(imp+"/", bad) {
					violations = append(violations, fmt.Sprintf("- %s imports %q (disallowed: %q)", rel, imp, bad))
					break
				}
			}
		}
	})
	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n%s", strings.Join(violations, "\n"))
	}
}

// Concrete document store backends are chosen in internal/app; everything
// else depends on the docstore.Store interface.
func TestStoreBackendsOnlyWiredByApp(t *testing.T) {
	root, modulePath := moduleRoot(t)
	backends := []string{
		modulePath + "/internal/docstore/memory",
		modulePath + "/internal/docstore/gormstore",
		modulePath + "/internal/docstore/firestore",
	}
	allowed := func(rel string) bool {
		return strings.HasPrefix(rel, "internal/app/") ||
			strings.HasPrefix(rel, "internal/docstore/") ||
			strings.Contains(rel, "/testutil/")
	}

	var violations []string
	walkGoFiles(t, root, func(rel string, imports []string) {
		if allowed(rel) {
			return
		}
		for _, imp := range imports {
			for _, b := range backends {
				if imp == b {
					violations = append(violations, fmt.Sprintf("- %s imports %q", rel, imp))
				}
			}
		}
	})
	if len(violations) > 0 {
		t.Fatalf("store backends imported outside internal/app:\n%s", strings.Join(violations, "\n"))
	}
}

func moduleRoot(t *testing.T) (string, string) {
	t.Helper()
	start, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	root, err := findModuleRoot(start)
	if err != nil {
		t.Fatalf("find module root: %v", err)
	}
	modulePath, err := readModulePath(filepath.Join(root, "go.mod"))
	if err != nil {
		t.Fatalf("read module path: %v", err)
	}
	return root, modulePath
}

// walkGoFiles calls fn with the module-relative path and imports of every
// Go file under internal/.
func walkGoFiles(t *testing.T, root string, fn func(rel string, imports []string)) {
	t.Helper()
	fset := token.NewFileSet()
	err := filepath.WalkDir(filepath.Join(root, "internal"), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		imports := make([]string, 0, len(f.Imports))
		for _, spec := range f.Imports {
			if imp, err := strconv.Unquote(spec.Path.Value); err == nil {
				imports = append(imports, imp)
			}
		}
		fn(filepath.ToSlash(rel), imports)
		return nil
	})
	if err != nil {
		t.Fatalf("walk internal/: %v", err)
	}
}

func layerFor(rel string) string {
	for _, layer := range []string{"platform", "docstore", "domain", "data", "services", "http"} {
		if strings.HasPrefix(rel, "internal/"+layer+"/") {
			return layer
		}
	}
	return ""
}

// disallowedImports lists, per layer, the internal packages it must not
// import. Dependencies point inward: http -> services -> data -> docstore.
func disallowedImports(modulePath string, layer string) []string {
	in := func(pkgs ...string) []string {
		out := make([]string, len(pkgs))
		for i, p := range pkgs {
			out[i] = modulePath + "/internal/" + p + "/"
		}
		return out
	}
	switch layer {
	case "platform":
		return in("app", "http", "services", "data", "docstore", "domain", "recommend", "observability")
	case "docstore":
		return in("app", "http", "services", "data", "domain")
	case "domain":
		return in("app", "http", "services", "data", "docstore")
	case "data":
		return in("app", "http", "services")
	case "services":
		return in("app", "http")
	case "http":
		return in("app")
	default:
		return nil
	}
}

func findModuleRoot(start string) (string, error) {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found from %s", start)
		}
		dir = parent
	}
}

func readModulePath(goModPath string) (string, error) {
	f, err := os.Open(goModPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if !strings.HasPrefix(line, "module ") {
			continue
		}
		mp := strings.TrimSpace(strings.TrimPrefix(line, "module "))
		if mp == "" {
			return "", fmt.Errorf("empty module path in %s", goModPath)
		}
		return mp, nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("module path not found in %s", goModPath)
}
