package template

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formwizard/pkg/form"
	"github.com/goliatone/go-formwizard/pkg/report"
	"github.com/goliatone/go-formwizard/pkg/schema"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	templates fs.FS
	extension string
	filters   map[string]func(input any, param any) (any, error)
	globals   pongo2.Context
}

// WithFS lets RenderTemplate load named templates from files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the default template extension.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithFilter registers a filter when the engine is built.
func WithFilter(name string, fn func(input any, param any) (any, error)) Option {
	return func(cfg *config) {
		if cfg.filters == nil {
			cfg.filters = make(map[string]func(any, any) (any, error))
		}
		cfg.filters[strings.TrimSpace(name)] = fn
	}
}

// WithGlobals seeds values visible to every template.
func WithGlobals(data map[string]any) Option {
	return func(cfg *config) {
		for key, value := range data {
			cfg.globals[strings.TrimSpace(key)] = value
		}
	}
}

// Engine renders user supplied report templates with pongo2. Output is plain
// text, so autoescaping is disabled for every template it compiles.
type Engine struct {
	mu sync.RWMutex

	set       *pongo2.TemplateSet
	files     fs.FS
	templates map[string]*pongo2.Template
	ext       string
}

// New constructs an Engine.
func New(options ...Option) (*Engine, error) {
	cfg := &config{extension: ".tpl", globals: pongo2.Context{}}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	var loaders []pongo2.TemplateLoader
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}

	engine := &Engine{
		set:       pongo2.NewSet("formwizard-report", loaders...),
		files:     cfg.templates,
		templates: make(map[string]*pongo2.Template),
		ext:       cfg.extension,
	}
	engine.set.Globals = cfg.globals
	registerDefaultFilters()

	for name, fn := range cfg.filters {
		if err := engine.RegisterFilter(name, fn); err != nil {
			return nil, fmt.Errorf("template: register filter %q: %w", name, err)
		}
	}
	return engine, nil
}

// Render compiles tpl and executes it with data.
func (e *Engine) Render(tpl string, data pongo2.Context, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("template: engine is nil")
	}
	tmpl, err := e.set.FromString(plain(tpl))
	if err != nil {
		return "", fmt.Errorf("template: parse template string: %w", err)
	}
	return execute(tmpl, data, out)
}

// RenderTemplate loads name from the configured filesystem, caching the
// compiled template, and executes it with data.
func (e *Engine) RenderTemplate(name string, data pongo2.Context, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("template: engine is nil")
	}
	if e.files == nil {
		return "", errors.New("template: no template filesystem configured")
	}
	path := name
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}
	tmpl, err := e.load(path)
	if err != nil {
		return "", err
	}
	return execute(tmpl, data, out)
}

// RegisterFilter registers a filter globally. Registering a name that already
// exists is an error.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("template: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("template: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var paramVal any
		if param != nil {
			paramVal = param.Interface()
		}
		result, err := fn(in.Interface(), paramVal)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

func (e *Engine) load(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.templates[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}

	raw, err := fs.ReadFile(e.files, path)
	if err != nil {
		return nil, fmt.Errorf("template: load template %q: %w", path, err)
	}
	tmpl, err = e.set.FromString(plain(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("template: parse template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}

func execute(tmpl *pongo2.Template, data pongo2.Context, out []io.Writer) (string, error) {
	if data == nil {
		data = pongo2.Context{}
	}
	rendered, err := tmpl.Execute(data)
	if err != nil {
		return "", fmt.Errorf("template: execute: %w", err)
	}
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func plain(tpl string) string {
	return "{% autoescape off %}" + tpl + "{% endautoescape %}"
}

// Context builds the template data for a submission: "answers" with sensitive
// values redacted, "sections" in ordinal order with their fields and display
// values, "title", "footer" and "submitted_at".
func Context(s *schema.Schema, answers form.AnswerMap, submittedAt time.Time) pongo2.Context {
	redacted := answers.Redacted(report.Redacted, report.Sensitive(s)...)

	sections := make([]map[string]any, 0, len(s.Sections))
	for _, section := range s.Sections {
		fields := make([]map[string]any, 0, len(section.Fields))
		for _, field := range section.Fields {
			value := redacted.Get(field.ID)
			if value == "" {
				value = report.Placeholder
				if field.Kind == schema.KindCheckbox {
					value = form.YesNo(false)
				}
			}
			fields = append(fields, map[string]any{
				"id":    field.ID,
				"label": field.DisplayLabel(),
				"kind":  string(field.Kind),
				"value": value,
			})
		}
		sections = append(sections, map[string]any{
			"ordinal": section.Ordinal,
			"title":   section.Title,
			"heading": section.Heading(),
			"fields":  fields,
		})
	}

	return pongo2.Context{
		"title":        s.Report.Title,
		"footer":       s.Report.Footer,
		"answers":      redacted.Payload(),
		"sections":     sections,
		"submitted_at": submittedAt.Format(report.DateLayout),
	}
}

func registerDefaultFilters() {
	if !pongo2.FilterExists("indent") {
		_ = pongo2.RegisterFilter("indent", filterIndent)
	}
	if !pongo2.FilterExists("rule") {
		_ = pongo2.RegisterFilter("rule", filterRule)
	}
}

// filterIndent prefixes the input with two spaces per level.
func filterIndent(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	level := 1
	if param != nil && param.IsInteger() {
		level = param.Integer()
	}
	if level < 0 {
		level = 0
	}
	return pongo2.AsValue(strings.Repeat("  ", level) + in.String()), nil
}

// filterRule repeats the input character param times: {{ "="|rule:80 }}.
func filterRule(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	width := 80
	if param != nil && param.IsInteger() {
		width = param.Integer()
	}
	if width < 0 {
		width = 0
	}
	return pongo2.AsValue(strings.Repeat(in.String(), width)), nil
}
