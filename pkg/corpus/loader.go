package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/txtar"

	"github.com/dkoosis/conform/internal/detect"
)

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	exclude map[string]bool
}

// WithExclude skips files whose stem (name without .json) matches one of
// stems. Skipped files are listed in Corpus.Skipped and never parsed.
func WithExclude(stems ...string) Option {
	return func(o *loadOptions) {
		for _, s := range stems {
			s = strings.TrimSuffix(strings.TrimSpace(s), ".json")
			if s != "" {
				o.exclude[s] = true
			}
		}
	}
}

// Load reads the corpus at path. A directory contributes every *.json file
// directly inside it; a .json file contributes itself; a txtar archive
// contributes each *.json member. Anything else, and any malformed file, is a
// *Error.
func Load(path string, opts ...Option) (*Corpus, error) {
	o := loadOptions{exclude: make(map[string]bool)}
	for _, opt := range opts {
		opt(&o)
	}

	kind, err := detect.Path(path)
	if err != nil {
		return nil, &Error{Path: path, Err: fmt.Errorf("%w: %v", ErrInvalidPath, err)}
	}

	c := &Corpus{Root: path}
	switch kind {
	case detect.Directory:
		err = c.loadDir(path, o)
	case detect.JSON:
		err = c.loadFile(path, o)
	case detect.Archive:
		err = c.loadArchive(path, o)
	default:
		err = &Error{Path: path, Err: ErrInvalidPath}
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Corpus) loadDir(dir string, o loadOptions) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return &Error{Path: dir, Err: err}
	}
	sort.Strings(matches)
	for _, p := range matches {
		info, err := os.Stat(p)
		if err != nil {
			return &Error{Path: p, Err: err}
		}
		if info.IsDir() {
			continue
		}
		if err := c.loadFile(p, o); err != nil {
			return err
		}
	}
	return nil
}

func (c *Corpus) loadFile(path string, o loadOptions) error {
	name := filepath.Base(path)
	if o.excluded(name) {
		c.Skipped = append(c.Skipped, name)
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return &Error{Path: path, Err: err}
	}
	f, err := Parse(name, data)
	if err != nil {
		return &Error{Path: path, Err: err}
	}
	f.Path = path
	c.Files = append(c.Files, *f)
	return nil
}

func (c *Corpus) loadArchive(path string, o loadOptions) error {
	ar, err := txtar.ParseFile(path)
	if err != nil {
		return &Error{Path: path, Err: err}
	}
	members := make([]txtar.File, 0, len(ar.Files))
	for _, m := range ar.Files {
		if strings.HasSuffix(m.Name, ".json") && !strings.Contains(m.Name, "/") {
			members = append(members, m)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })

	for _, m := range members {
		if o.excluded(m.Name) {
			c.Skipped = append(c.Skipped, m.Name)
			continue
		}
		member := path + "#" + m.Name
		f, err := Parse(m.Name, m.Data)
		if err != nil {
			return &Error{Path: member, Err: err}
		}
		f.Path = member
		c.Files = append(c.Files, *f)
	}
	return nil
}

func (o loadOptions) excluded(name string) bool {
	return o.exclude[strings.TrimSuffix(name, filepath.Ext(name))]
}

// Parse decodes one corpus document. The top level must be an array of cases.
func Parse(name string, data []byte) (*File, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		return nil, fmt.Errorf("parsing %s: top level must be an array of test cases", name)
	}
	var cases []Case
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	for i := range cases {
		if cases[i].Schema == nil {
			return nil, fmt.Errorf("parsing %s: case %d (%q): missing \"schema\"", name, i+1, cases[i].Description)
		}
	}
	return &File{Name: name, Cases: cases}, nil
}
