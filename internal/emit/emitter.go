// Package emit renders the generated artifacts for one component and writes
// them beneath a project root without ever overwriting existing files.
package emit

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/samber/oops"

	"github.com/strapikit/fraggen/internal/naming"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Artifacts holds the rendered file bodies for one component.
type Artifacts struct {
	Fragment   string
	Component  string
	Types      string
	BarrelLine string
}

// Paths lists the computed output locations for one component.
type Paths struct {
	Fragment  string
	Component string
	Types     string
	Barrel    string
}

// Render fills the artifact templates with the derived names and the resolved
// selections, then dialect-formats each body.
func Render(names naming.Names, selections []string) (Artifacts, error) {
	data := struct {
		naming.Names
		Selections string
	}{names, strings.Join(selections, "\n")}

	fragment, err := render("fragment.ts.tmpl", data)
	if err != nil {
		return Artifacts{}, err
	}
	component, err := render("component.vue.tmpl", data)
	if err != nil {
		return Artifacts{}, err
	}
	types, err := render("types.ts.tmpl", data)
	if err != nil {
		return Artifacts{}, err
	}

	return Artifacts{
		Fragment:   Format(fragment, DialectTS),
		Component:  Format(component, DialectVue),
		Types:      Format(types, DialectTS),
		BarrelLine: fmt.Sprintf("export { %s } from './sections/%s';\n", names.DisplayName, names.FileStem),
	}, nil
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", oops.With("template", name).Wrap(err)
	}
	return buf.String(), nil
}

// Emitter writes artifacts beneath a project root.
type Emitter struct {
	root string
	log  *slog.Logger
}

// New creates an emitter rooted at dir.
func New(dir string, log *slog.Logger) *Emitter {
	if log == nil {
		log = slog.Default()
	}
	return &Emitter{root: dir, log: log}
}

// Paths returns the output locations for a component's artifacts.
func (e *Emitter) Paths(names naming.Names) Paths {
	sections := filepath.Join(e.root, "components", "sections")
	fragments := filepath.Join(e.root, "graphql", "fragments")
	return Paths{
		Fragment:  filepath.Join(fragments, "sections", names.FileStem+".ts"),
		Component: filepath.Join(sections, names.DisplayName+".vue"),
		Types:     filepath.Join(sections, names.FileStem+".types.ts"),
		Barrel:    filepath.Join(fragments, "index.ts"),
	}
}

// Write persists the artifact set. Each file is written only when absent;
// existing files are left untouched even if the schema has changed since they
// were generated. The barrel file is append-only and gains the export line
// only when it is not already present verbatim.
func (e *Emitter) Write(names naming.Names, a Artifacts) error {
	p := e.Paths(names)

	for _, dir := range []string{filepath.Dir(p.Fragment), filepath.Dir(p.Component)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return oops.Code("FS_WRITE_FAILED").With("path", dir).Wrap(err)
		}
	}

	for _, f := range []struct {
		path, body string
	}{
		{p.Fragment, a.Fragment},
		{p.Component, a.Component},
		{p.Types, a.Types},
	} {
		written, err := writeIfAbsent(f.path, f.body)
		if err != nil {
			return err
		}
		if written {
			e.log.Info("wrote file", "path", f.path)
		} else {
			e.log.Debug("file exists, skipping", "path", f.path)
		}
	}

	return e.appendBarrelLine(p.Barrel, a.BarrelLine)
}

func writeIfAbsent(path, body string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, oops.Code("FS_WRITE_FAILED").With("path", path).Wrap(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return false, oops.Code("FS_WRITE_FAILED").With("path", path).Wrap(err)
	}
	return true, nil
}

func (e *Emitter) appendBarrelLine(path, line string) error {
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return oops.Code("FS_WRITE_FAILED").With("path", path).Wrap(err)
	}

	want := strings.TrimSuffix(line, "\n")
	for _, l := range strings.Split(string(existing), "\n") {
		if l == want {
			e.log.Debug("barrel line exists, skipping", "path", path)
			return nil
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return oops.Code("FS_WRITE_FAILED").With("path", path).Wrap(err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return oops.Code("FS_WRITE_FAILED").With("path", path).Wrap(err)
	}
	e.log.Info("appended barrel export", "path", path)
	return nil
}
