package screen

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"onborder/internal/jsonutil"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindInt
	kindBool
	kindStrings
)

func (k fieldKind) String() string {
	switch k {
	case kindString:
		return "string"
	case kindInt:
		return "integer"
	case kindBool:
		return "bool"
	case kindStrings:
		return "array of strings"
	default:
		return "unknown"
	}
}

type field struct {
	name string
	kind fieldKind
}

// present reports whether m holds a value of the field's kind under its name.
func (f field) present(m map[string]interface{}) bool {
	switch f.kind {
	case kindString:
		_, ok := jsonutil.LookupString(m, f.name)
		return ok
	case kindInt:
		_, ok := jsonutil.LookupInt(m, f.name)
		return ok
	case kindBool:
		_, ok := jsonutil.LookupBool(m, f.name)
		return ok
	case kindStrings:
		_, ok := jsonutil.LookupStrings(m, f.name)
		return ok
	}
	return false
}

// candidate pairs the required fields of one shape with its constructor.
// build is only called once every required field is present.
type candidate struct {
	kind     BlockType
	required []field
	build    func(m map[string]interface{}) Data
}

// candidates is evaluated top to bottom and the first full match wins.
// Extra fields never disqualify a shape, so header ({text, level}) and button
// ({link, text}) must come before paragraph ({text}).
var candidates = []candidate{
	{
		kind: BlockImage,
		required: []field{
			{"url", kindString},
			{"caption", kindString},
			{"withBorder", kindBool},
			{"withBackground", kindBool},
			{"stretched", kindBool},
		},
		build: func(m map[string]interface{}) Data {
			border, _ := jsonutil.LookupBool(m, "withBorder")
			background, _ := jsonutil.LookupBool(m, "withBackground")
			stretched, _ := jsonutil.LookupBool(m, "stretched")
			return Image{
				URL:            jsonutil.GetString(m, "url"),
				Caption:        jsonutil.GetString(m, "caption"),
				WithBorder:     border,
				WithBackground: background,
				Stretched:      stretched,
			}
		},
	},
	{
		kind:     BlockHeader,
		required: []field{{"text", kindString}, {"level", kindInt}},
		build: func(m map[string]interface{}) Data {
			level, _ := jsonutil.LookupInt(m, "level")
			return Header{Text: jsonutil.GetString(m, "text"), Level: level}
		},
	},
	{
		kind:     BlockButton,
		required: []field{{"link", kindString}, {"text", kindString}},
		build: func(m map[string]interface{}) Data {
			return Button{Link: jsonutil.GetString(m, "link"), Text: jsonutil.GetString(m, "text")}
		},
	},
	{
		kind:     BlockParagraph,
		required: []field{{"text", kindString}},
		build: func(m map[string]interface{}) Data {
			return Paragraph{Text: jsonutil.GetString(m, "text")}
		},
	},
	{
		kind:     BlockList,
		required: []field{{"style", kindString}, {"items", kindStrings}},
		build: func(m map[string]interface{}) Data {
			items, _ := jsonutil.LookupStrings(m, "items")
			return List{Style: jsonutil.GetString(m, "style"), Items: items}
		},
	},
}

// match returns nil when every required field is present, otherwise an error
// naming each missing or mistyped field.
func (c candidate) match(m map[string]interface{}) error {
	var errs *multierror.Error
	for _, f := range c.required {
		if f.present(m) {
			continue
		}
		if _, ok := m[f.name]; !ok {
			errs = multierror.Append(errs, fmt.Errorf("missing %q", f.name))
			continue
		}
		errs = multierror.Append(errs, fmt.Errorf("%q is %T, want %s", f.name, m[f.name], f.kind))
	}
	if errs != nil {
		errs.ErrorFormat = inlineFormat
	}
	return errs.ErrorOrNil()
}

func inlineFormat(errs []error) string {
	parts := make([]string, len(errs))
	for i, err := range errs {
		parts[i] = err.Error()
	}
	return strings.Join(parts, ", ")
}

// Priority returns the order in which block shapes are tried.
func Priority() []BlockType {
	out := make([]BlockType, len(candidates))
	for i, c := range candidates {
		out[i] = c.kind
	}
	return out
}

// DecodeData resolves an untyped block payload into exactly one Data variant.
// The block's declared type is not consulted. It is safe for concurrent use.
func DecodeData(m map[string]interface{}) (Data, error) {
	var reasons *multierror.Error
	for _, c := range candidates {
		if err := c.match(m); err != nil {
			reasons = multierror.Append(reasons, fmt.Errorf("%s: %w", c.kind, err))
			continue
		}
		return c.build(m), nil
	}
	return nil, &DecodeError{Reasons: reasons}
}

// DecodeDataJSON is DecodeData over a serialized payload. A payload that is not
// a JSON object matches no shape.
func DecodeDataJSON(data []byte) (Data, error) {
	m, err := jsonutil.DecodeObject(data)
	if err != nil {
		reasons := multierror.Append(nil, fmt.Errorf("data is not an object: %w", err))
		return nil, &DecodeError{Reasons: reasons}
	}
	return DecodeData(m)
}
