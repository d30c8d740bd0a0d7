package profile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/roach88/hiot/internal/digest"
	"github.com/roach88/hiot/internal/workload"
)

//go:embed schema.cue
var schemaCUE string

// DefaultSource names the profile used when no file is given.
const DefaultSource = "<defaults>"

// Profile is a validated set of overrides and the configuration they produce.
type Profile struct {
	Source    string
	Overrides map[string]any
	Config    workload.Config

	// Digest fingerprints Overrides. It is empty for the default profile.
	Digest string
}

// Error is a profile field that failed to parse or validate.
type Error struct {
	Source  string
	Field   string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Pos.IsValid() {
		fmt.Fprintf(&b, "%s:%d:%d: ", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column())
	} else if e.Source != "" {
		fmt.Fprintf(&b, "%s: ", e.Source)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, "%s: ", e.Field)
	}
	b.WriteString(e.Message)
	return b.String()
}

// Default returns the profile with no overrides.
func Default() *Profile {
	return &Profile{
		Source:    DefaultSource,
		Overrides: map[string]any{},
		Config:    workload.DefaultConfig(),
	}
}

// LoadFile reads a .yaml, .yml or .cue profile.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return Load(path, data)
}

// Load parses data according to the extension of name.
func Load(name string, data []byte) (*Profile, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".yaml", ".yml":
		overrides, err := decodeYAML(data)
		if err != nil {
			return nil, &Error{Source: name, Message: err.Error()}
		}
		return FromOverrides(name, overrides)
	case ".cue":
		ctx := cuecontext.New()
		v := ctx.CompileBytes(data, cue.Filename(name))
		if err := v.Err(); err != nil {
			return nil, convertErrors(name, err)
		}
		return build(name, v)
	default:
		return nil, fmt.Errorf("profile %s: unsupported extension %q (want .yaml, .yml or .cue)", name, ext)
	}
}

// FromOverrides validates an in-memory override tree, such as the profile
// block of a harness scenario.
func FromOverrides(source string, overrides map[string]any) (*Profile, error) {
	if len(overrides) == 0 {
		p := Default()
		p.Source = source
		return p, nil
	}
	ctx := cuecontext.New()
	v := ctx.Encode(overrides)
	if err := v.Err(); err != nil {
		return nil, convertErrors(source, err)
	}
	return build(source, v)
}

func decodeYAML(data []byte) (map[string]any, error) {
	var overrides map[string]any
	err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&overrides)
	if errors.Is(err, io.EOF) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}
	if overrides == nil {
		overrides = map[string]any{}
	}
	return overrides, nil
}

func build(source string, v cue.Value) (*Profile, error) {
	ctx := v.Context()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile profile schema: %w", err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Profile")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, convertErrors(source, err)
	}

	raw, err := unified.MarshalJSON()
	if err != nil {
		return nil, convertErrors(source, err)
	}

	cfg := workload.DefaultConfig()
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, &Error{Source: source, Message: err.Error()}
	}

	overrides := map[string]any{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&overrides); err != nil {
		return nil, &Error{Source: source, Message: err.Error()}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("profile %s: %w", source, err)
	}

	p := &Profile{Source: source, Overrides: overrides, Config: cfg}
	if len(overrides) > 0 {
		p.Digest, err = digest.Profile(overrides)
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", source, err)
		}
	}
	return p, nil
}

// convertErrors turns every CUE error into an *Error. Positions inside the
// embedded schema are dropped; only positions in source are kept.
func convertErrors(source string, err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &Error{Source: source, Message: err.Error()}
	}

	var result *multierror.Error
	for _, e := range errs {
		format, args := e.Msg()
		pe := &Error{
			Source:  source,
			Field:   fieldPath(e.Path()),
			Message: fmt.Sprintf(format, args...),
		}
		for _, pos := range cueerrors.Positions(e) {
			if pos.Filename() == source {
				pe.Pos = pos
				break
			}
		}
		result = multierror.Append(result, pe)
	}
	if len(result.Errors) == 1 {
		return result.Errors[0]
	}
	return result
}

func fieldPath(path []string) string {
	if len(path) > 0 && path[0] == "#Profile" {
		path = path[1:]
	}
	return strings.Join(path, ".")
}
