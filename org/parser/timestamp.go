package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// timestampPattern matches one timestamp: date, optional day name, optional
// time or time range, and up to two repeater or warning cookies.
var timestampPattern = regexp.MustCompile(
	`^([<\[])(\d{4})-(\d{2})-(\d{2})` +
		`(?:[ \t]+[^\s\d+\-.\]>][^\s\]>]*)?` +
		`(?:[ \t]+(\d{1,2}):(\d{2})(?:-(\d{1,2}):(\d{2}))?)?` +
		`((?:[ \t]+(?:\+\+|\.\+|\+|--|-)\d+[hdwmy](?:/\d+[hdwmy])?){0,2})` +
		`[ \t]*([>\]])`)

type stamp struct {
	end      int
	active   bool
	start    TimePoint
	stop     TimePoint
	ranged   bool
	repeater string
	warning  string
}

func (p *parser) parseStamp(i, end int) (stamp, bool) {
	m := timestampPattern.FindSubmatchIndex(p.src[i:end])
	if m == nil {
		return stamp{}, false
	}
	group := func(k int) string {
		if m[2*k] < 0 {
			return ""
		}
		return string(p.src[i+m[2*k] : i+m[2*k+1]])
	}
	open, close := group(1), group(10)
	if (open == "<") != (close == ">") {
		return stamp{}, false
	}
	s := stamp{end: i + m[1], active: open == "<"}
	s.start = TimePoint{Year: atoi(group(2)), Month: atoi(group(3)), Day: atoi(group(4))}
	if h := group(5); h != "" {
		s.start.Hour, s.start.Minute, s.start.HasTime = atoi(h), atoi(group(6)), true
	}
	if h := group(7); h != "" {
		s.stop = s.start
		s.stop.Hour, s.stop.Minute = atoi(h), atoi(group(8))
		s.ranged = true
	}
	for _, c := range strings.Fields(group(9)) {
		if c[0] == '-' {
			s.warning = c
		} else {
			s.repeater = c
		}
	}
	return s, true
}

// timestamp matches active and inactive timestamps, ranges written as
// STAMP--STAMP or with a time range inside one stamp, and diary timestamps
// <%%(SEXP)>.
func (p *parser) timestamp(r objRange, i int) *Node {
	if hasPrefixAt(p.src, i, r.end, "<%%(") {
		e := balanced(p.src, i+3, r.end, '(', ')', false)
		if e < 0 || e >= r.end || p.src[e] != '>' {
			return nil
		}
		raw := string(p.src[i : e+1])
		return atom(KindTimestamp, i, e+1, &TimestampProps{Type: "diary", RawValue: raw})
	}
	s, ok := p.parseStamp(i, r.end)
	if !ok {
		return nil
	}
	props := &TimestampProps{Start: s.start, Repeater: s.repeater, Warning: s.warning}
	end := s.end
	kind := "inactive"
	if s.active {
		kind = "active"
	}
	props.Type = kind
	if s.ranged {
		props.Type = kind + "-range"
		props.End = s.stop
	} else if hasPrefixAt(p.src, end, r.end, "--") {
		if t, ok := p.parseStamp(end+2, r.end); ok && t.active == s.active && !t.ranged {
			props.Type = kind + "-range"
			props.End = t.start
			end = t.end
		}
	}
	props.RawValue = string(p.src[i:end])
	return atom(KindTimestamp, i, end, props)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
