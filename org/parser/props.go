package parser

import (
	"reflect"
	"strings"
	"unicode"
)

// Properties is the per-kind attribute set of a node. Each kind that carries
// attributes has exactly one concrete type; kinds without attributes have nil
// Props.
type Properties interface {
	properties()
}

type HeadlineProps struct {
	Level           int
	TodoKeyword     string
	TodoType        string // "todo", "done" or empty
	Priority        rune   // 0 when absent
	Commented       bool
	Tags            []string
	TagsAligned     bool
	Archived        bool
	FootnoteSection bool
	RawValue        string
}

type PlainListProps struct {
	Type   string // "ordered", "unordered" or "descriptive"
	Indent int
}

type ItemProps struct {
	Bullet   string
	Counter  string
	Checkbox string // "on", "off", "trans" or empty
	Tag      string
	Indent   int
}

type DrawerProps struct {
	Name         string
	Unterminated bool
}

// BlockProps describes every #+begin_ block. Language, Switches and
// Arguments are only set for src blocks, Switches also for example blocks,
// Backend for export blocks.
type BlockProps struct {
	Type         string
	Parameters   string
	Language     string
	Switches     string
	Arguments    string
	Backend      string
	Unterminated bool
}

type FootnoteDefinitionProps struct {
	Label string
}

type TableProps struct {
	Tblfm []string
}

type TableRowProps struct {
	Rule bool
}

type KeywordProps struct {
	Key    string
	Option string
	Value  string
}

type BabelCallProps struct {
	Call string
}

type NodePropertyProps struct {
	Key    string
	Value  string
	Append bool
}

type PlanningProps struct {
	Closed    string
	Deadline  string
	Scheduled string
}

type ClockProps struct {
	Value    string
	Duration string
	Status   string // "running" or "closed"
}

type DiarySexpProps struct {
	Value string
}

type LatexEnvironmentProps struct {
	Name         string
	Unterminated bool
}

type ValueProps struct {
	Value string
}

type LinkProps struct {
	Format  string // "bracket", "angle" or "plain"
	Type    string
	Path    string
	RawLink string
}

type FootnoteReferenceProps struct {
	Label string
	Type  string // "standard" or "inline"
}

// TimePoint is one end of a timestamp.
type TimePoint struct {
	Year, Month, Day int
	Hour, Minute     int
	HasTime          bool
}

type TimestampProps struct {
	Type     string // active, inactive, active-range, inactive-range, diary
	RawValue string
	Start    TimePoint
	End      TimePoint
	Repeater string
	Warning  string
}

type EntityProps struct {
	Name     string
	Latex    string
	UTF8     string
	Brackets bool
}

type MacroProps struct {
	Key  string
	Args []string
}

type ScriptProps struct {
	Brackets bool
}

type InlineSrcProps struct {
	Language   string
	Parameters string
	Value      string
}

type InlineBabelCallProps struct {
	Call         string
	InsideHeader string
	Arguments    string
	EndHeader    string
}

type ExportSnippetProps struct {
	Backend string
	Value   string
}

func (*HeadlineProps) properties()           {}
func (*PlainListProps) properties()          {}
func (*ItemProps) properties()               {}
func (*DrawerProps) properties()             {}
func (*BlockProps) properties()              {}
func (*FootnoteDefinitionProps) properties() {}
func (*TableProps) properties()              {}
func (*TableRowProps) properties()           {}
func (*KeywordProps) properties()            {}
func (*BabelCallProps) properties()          {}
func (*NodePropertyProps) properties()       {}
func (*PlanningProps) properties()           {}
func (*ClockProps) properties()              {}
func (*DiarySexpProps) properties()          {}
func (*LatexEnvironmentProps) properties()   {}
func (*ValueProps) properties()              {}
func (*LinkProps) properties()               {}
func (*FootnoteReferenceProps) properties()  {}
func (*TimestampProps) properties()          {}
func (*EntityProps) properties()             {}
func (*MacroProps) properties()              {}
func (*ScriptProps) properties()             {}
func (*InlineSrcProps) properties()          {}
func (*InlineBabelCallProps) properties()    {}
func (*ExportSnippetProps) properties()      {}

// Fields flattens the node's properties into a map keyed by kebab-case
// attribute name. Zero values are omitted.
func (n *Node) Fields() map[string]any {
	if n.Props == nil {
		return nil
	}
	v := reflect.ValueOf(n.Props)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	fields := make(map[string]any)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := v.Field(i)
		if f.IsZero() {
			continue
		}
		name := kebab(t.Field(i).Name)
		switch val := f.Interface().(type) {
		case rune:
			fields[name] = string(val)
		case TimePoint:
			fields[name] = timePointFields(val)
		default:
			fields[name] = val
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func timePointFields(tp TimePoint) map[string]int {
	m := map[string]int{"year": tp.Year, "month": tp.Month, "day": tp.Day}
	if tp.HasTime {
		m["hour"] = tp.Hour
		m["minute"] = tp.Minute
	}
	return m
}

func kebab(name string) string {
	if name == "UTF8" {
		return "utf-8"
	}
	var sb strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
