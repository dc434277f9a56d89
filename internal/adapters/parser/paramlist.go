package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/rcg/internal/domain/model"
	"github.com/okian/rcg/pkg/logger"
)

var unescapeQuotes = strings.NewReplacer(`\'`, `'`, `\"`, `"`)

// parseParams decodes (keyword (name value) ...) into a fresh set of
// defaults for kind and hands it to handle. Unknown names and unconvertible
// values are skipped with a warning. A malformed pair is skipped through its
// closing parenthesis and reading resumes with the next pair. Only an
// unterminated quoted value ends the list early; the fields read before it
// are kept and the record is still delivered.
func (s *session) parseParams(sc *scanner, kind model.ParamKind, handle func(*model.ParamSet) error) error {
	ps := model.NewParamSet(kind)
	if err := s.parseParamList(sc, ps); err != nil {
		return err
	}
	return handle(ps)
}

func (s *session) parseParamList(sc *scanner, ps *model.ParamSet) error {
	kind := ps.Kind().Keyword()
	for {
		if sc.char(')') || sc.eof() {
			return nil
		}
		if !sc.char('(') {
			s.warn("malformed parameter list", nil, logger.String("record", kind), logger.Int("column", sc.pos+1))
			sc.skipUntilParen()
			continue
		}
		name, ok := sc.token()
		if !ok {
			s.warn("missing parameter name", nil, logger.String("record", kind), logger.Int("column", sc.pos+1))
			sc.skipGroup()
			continue
		}

		value, ok := paramValue(sc)
		if !ok {
			s.warn("unterminated parameter value", nil, logger.String("record", kind), logger.String("param", name))
			return nil
		}
		if !sc.char(')') {
			s.warn("malformed parameter", nil, logger.String("record", kind), logger.String("param", name))
			sc.skipGroup()
			continue
		}

		if err := setParam(ps, name, value); err != nil {
			if s.parser.strictParams {
				return fmt.Errorf("line %d: %s %s: %w", s.line, kind, name, err)
			}
			s.warn("parameter skipped", err, logger.String("record", kind), logger.String("param", name))
		}
	}
}

// paramValue reads a bare or quoted value. Quoted values have their escaped
// quotes restored.
func paramValue(sc *scanner) (string, bool) {
	switch q := sc.peek(); q {
	case '"', '\'':
		v, ok := sc.quoted(q)
		if !ok {
			return "", false
		}
		return unescapeQuotes.Replace(v), true
	}
	v, _ := sc.token()
	return v, true
}

var (
	errUnknownParam = errors.New("unknown parameter")
	errParamValue   = errors.New("invalid parameter value")
)

// setParam stores value under name, converting it to the declared type.
func setParam(ps *model.ParamSet, name, value string) error {
	spec, ok := ps.Schema().Lookup(name)
	if !ok {
		return errUnknownParam
	}
	switch spec.Type {
	case model.ParamInt:
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %q", errParamValue, value)
		}
		ps.SetInt(name, v)
	case model.ParamFloat:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %q", errParamValue, value)
		}
		ps.SetFloat(name, v)
	case model.ParamBool:
		ps.SetBool(name, ParseBool(value))
	case model.ParamString:
		ps.SetStr(name, value)
	}
	return nil
}

// ParseBool reports false only for "0", "false" and "off". Every other
// token, including unexpected ones, is true.
func ParseBool(tok string) bool {
	switch tok {
	case "0", "false", "off":
		return false
	}
	return true
}
