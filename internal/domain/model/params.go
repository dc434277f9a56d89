package model

import (
	"maps"
	"strconv"
)

// ParamKind identifies one of the parameter record kinds.
type ParamKind uint8

// Parameter record kinds.
const (
	KindServerParam ParamKind = iota
	KindPlayerParam
	KindPlayerType
)

// Keyword returns the text record keyword of the kind.
func (k ParamKind) Keyword() string {
	switch k {
	case KindServerParam:
		return "server_param"
	case KindPlayerParam:
		return "player_param"
	case KindPlayerType:
		return "player_type"
	}
	return ""
}

// ParamType is the value type of a named parameter.
type ParamType uint8

// Parameter value types.
const (
	ParamInt ParamType = iota
	ParamFloat
	ParamBool
	ParamString
)

// ParamSpec declares one named parameter and its default.
type ParamSpec struct {
	Name    string
	Type    ParamType
	Default any // int, float64, bool or string matching Type
}

// Schema is the ordered list of parameters of one record kind.
type Schema struct {
	kind  ParamKind
	specs []ParamSpec
	index map[string]int
}

func newSchema(kind ParamKind, specs []ParamSpec) *Schema {
	s := &Schema{
		kind:  kind,
		specs: specs,
		index: make(map[string]int, len(specs)),
	}
	for i, sp := range specs {
		s.index[sp.Name] = i
	}
	return s
}

// Kind returns the record kind the schema describes.
func (s *Schema) Kind() ParamKind { return s.kind }

// Specs returns the parameters in wire order. The slice must not be modified.
func (s *Schema) Specs() []ParamSpec { return s.specs }

// Lookup finds a parameter by name.
func (s *Schema) Lookup(name string) (ParamSpec, bool) {
	i, ok := s.index[name]
	if !ok {
		return ParamSpec{}, false
	}
	return s.specs[i], true
}

// SchemaFor returns the schema of a record kind.
func SchemaFor(kind ParamKind) *Schema {
	switch kind {
	case KindPlayerParam:
		return playerParamSchema
	case KindPlayerType:
		return playerTypeSchema
	}
	return serverParamSchema
}

// ParamSet holds the values of one parameter record. Every parameter of the
// schema always has a value: sets start from the schema defaults.
type ParamSet struct {
	schema  *Schema
	ints    map[string]int
	floats  map[string]float64
	bools   map[string]bool
	strings map[string]string
}

// NewParamSet returns a set of the given kind filled with defaults.
func NewParamSet(kind ParamKind) *ParamSet {
	s := SchemaFor(kind)
	p := &ParamSet{
		schema:  s,
		ints:    make(map[string]int),
		floats:  make(map[string]float64),
		bools:   make(map[string]bool),
		strings: make(map[string]string),
	}
	for _, sp := range s.specs {
		switch sp.Type {
		case ParamInt:
			p.ints[sp.Name], _ = sp.Default.(int)
		case ParamFloat:
			p.floats[sp.Name], _ = sp.Default.(float64)
		case ParamBool:
			p.bools[sp.Name], _ = sp.Default.(bool)
		case ParamString:
			p.strings[sp.Name], _ = sp.Default.(string)
		}
	}
	return p
}

// NewServerParam returns a server parameter set with defaults.
func NewServerParam() *ParamSet { return NewParamSet(KindServerParam) }

// NewPlayerParam returns a player parameter set with defaults.
func NewPlayerParam() *ParamSet { return NewParamSet(KindPlayerParam) }

// NewPlayerType returns a player type set with defaults.
func NewPlayerType() *ParamSet { return NewParamSet(KindPlayerType) }

// Kind returns the record kind.
func (p *ParamSet) Kind() ParamKind { return p.schema.kind }

// Schema returns the schema the set follows.
func (p *ParamSet) Schema() *Schema { return p.schema }

// Int returns an integer parameter.
func (p *ParamSet) Int(name string) (int, bool) {
	v, ok := p.ints[name]
	return v, ok
}

// Float returns a floating-point parameter.
func (p *ParamSet) Float(name string) (float64, bool) {
	v, ok := p.floats[name]
	return v, ok
}

// Bool returns a boolean parameter.
func (p *ParamSet) Bool(name string) (bool, bool) {
	v, ok := p.bools[name]
	return v, ok
}

// Str returns a string parameter.
func (p *ParamSet) Str(name string) (string, bool) {
	v, ok := p.strings[name]
	return v, ok
}

// SetInt sets an integer parameter. It reports false when the schema has no
// integer parameter of that name.
func (p *ParamSet) SetInt(name string, v int) bool {
	if !p.is(name, ParamInt) {
		return false
	}
	p.ints[name] = v
	return true
}

// SetFloat sets a floating-point parameter.
func (p *ParamSet) SetFloat(name string, v float64) bool {
	if !p.is(name, ParamFloat) {
		return false
	}
	p.floats[name] = v
	return true
}

// SetBool sets a boolean parameter.
func (p *ParamSet) SetBool(name string, v bool) bool {
	if !p.is(name, ParamBool) {
		return false
	}
	p.bools[name] = v
	return true
}

// SetStr sets a string parameter.
func (p *ParamSet) SetStr(name, v string) bool {
	if !p.is(name, ParamString) {
		return false
	}
	p.strings[name] = v
	return true
}

func (p *ParamSet) is(name string, t ParamType) bool {
	sp, ok := p.schema.Lookup(name)
	return ok && sp.Type == t
}

// Format renders the value of a parameter the way the text revisions write
// it. Strings are returned unquoted.
func (p *ParamSet) Format(sp ParamSpec) string {
	switch sp.Type {
	case ParamInt:
		return strconv.Itoa(p.ints[sp.Name])
	case ParamFloat:
		return FormatFloat(p.floats[sp.Name])
	case ParamBool:
		if p.bools[sp.Name] {
			return "1"
		}
		return "0"
	}
	return p.strings[sp.Name]
}

// Clone returns a deep copy.
func (p *ParamSet) Clone() *ParamSet {
	return &ParamSet{
		schema:  p.schema,
		ints:    maps.Clone(p.ints),
		floats:  maps.Clone(p.floats),
		bools:   maps.Clone(p.bools),
		strings: maps.Clone(p.strings),
	}
}

// Equal reports whether both sets are of the same kind and hold the same
// values.
func (p *ParamSet) Equal(o *ParamSet) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.schema == o.schema &&
		maps.Equal(p.ints, o.ints) &&
		maps.Equal(p.floats, o.floats) &&
		maps.Equal(p.bools, o.bools) &&
		maps.Equal(p.strings, o.strings)
}

// FormatFloat writes f in the shortest decimal form that parses back to the
// same value.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
