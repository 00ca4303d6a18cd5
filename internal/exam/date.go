package exam

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the canonical rendering of a Moment: zero-padded, seconds always 00.
const TimestampLayout = "2006-01-02 15:04:05"

// months maps Norwegian month names to month numbers. Lookups go through MonthNumber.
var months = map[string]time.Month{
	"januar":    time.January,
	"februar":   time.February,
	"mars":      time.March,
	"april":     time.April,
	"mai":       time.May,
	"juni":      time.June,
	"juli":      time.July,
	"august":    time.August,
	"september": time.September,
	"oktober":   time.October,
	"november":  time.November,
	"desember":  time.December,
}

// MonthNumber resolves a Norwegian month name (any letter case) to its month.
func MonthNumber(name string) (time.Month, bool) {
	m, ok := months[strings.ToLower(name)]
	return m, ok
}

// Moment is a resolved calendar date-time. Time of day is 00:00 when the source
// text did not name one.
type Moment struct {
	t     time.Time
	valid bool
}

// NewMoment builds a Moment from calendar components. It reports false when the
// combination is not a real date-time (Feb 30, hour 24, year 0, ...).
func NewMoment(year int, month time.Month, day, hour, minute int) (Moment, bool) {
	if year < 1 || year > 9999 || month < time.January || month > time.December {
		return Moment{}, false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Moment{}, false
	}
	t := time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
	// time.Date normalizes overflow (Feb 30 -> Mar 2), so compare back
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Moment{}, false
	}
	return Moment{t: t, valid: true}, true
}

// ParseMoment reads a canonical timestamp string back into a Moment.
func ParseMoment(s string) (Moment, bool) {
	t, err := time.Parse(TimestampLayout, strings.TrimSpace(s))
	if err != nil {
		return Moment{}, false
	}
	return Moment{t: t, valid: true}, true
}

// Time returns the moment as a UTC wall-clock time.
func (m Moment) Time() time.Time {
	return m.t
}

// IsZero reports whether m is the zero Moment. 0001-01-01 00:00:00 is a real
// moment and is not zero.
func (m Moment) IsZero() bool {
	return !m.valid
}

// String renders m as YYYY-MM-DD HH:MM:SS.
func (m Moment) String() string {
	if !m.valid {
		return ""
	}
	return m.t.Format(TimestampLayout)
}

// MarshalText implements encoding.TextMarshaler using the canonical layout.
func (m Moment) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// RuleKind names the line shape that classified a line.
type RuleKind string

const (
	RuleNone    RuleKind = ""
	RuleRange   RuleKind = "range"
	RuleLabeled RuleKind = "labeled"
	RuleGeneral RuleKind = "general"
)

// Line is one trimmed, non-empty line of a date field and how it was read.
type Line struct {
	Text    string   `json:"text"`
	Rule    RuleKind `json:"rule,omitempty"`
	Moments int      `json:"moments"`
}

// Sequence is the ordered result of parsing one date field.
type Sequence struct {
	Moments []Moment `json:"moments"`
	Lines   []Line   `json:"lines"`
}

// Ranged reports whether any line was read as a "Fra ... til ..." range. It tells a
// true range apart from two independent dates, which render identically in merged mode.
func (s Sequence) Ranged() bool {
	for _, l := range s.Lines {
		if l.Rule == RuleRange {
			return true
		}
	}
	return false
}

// Texts returns the source lines in order.
func (s Sequence) Texts() []string {
	texts := make([]string, len(s.Lines))
	for i, l := range s.Lines {
		texts[i] = l.Text
	}
	return texts
}

// Strings returns the canonical rendering of every moment.
func (s Sequence) Strings() []string {
	out := make([]string, len(s.Moments))
	for i, m := range s.Moments {
		out[i] = m.String()
	}
	return out
}

// Month tokens may carry Norwegian letters; whitespace includes non-breaking
// spaces that survive HTML text extraction.
const (
	ws    = `[\s\p{Zs}]`
	word  = `[\p{L}\p{N}_]+`
	clock = `(?:kl\.` + ws + `*(?P<hour>\d{1,2}):(?P<minute>\d{2}))?`
)

var (
	rangePattern = regexp.MustCompile(`Fra` + ws + `+(?P<start_day>\d{1,2})\.` + ws + `*(?P<start_month>` + word + `)` + ws +
		`*(?:til` + ws + `+(?P<end_day>\d{1,2})\.` + ws + `*(?P<end_month>` + word + `))?` + ws + `+(?P<year>\d{4})`)

	labeledPattern = regexp.MustCompile(`Dato:` + ws + `*(?P<day>\d{1,2})\.` + ws + `*(?P<month>` + word + `)` + ws +
		`+(?P<year>\d{4})` + ws + `*` + clock)

	generalPattern = regexp.MustCompile(`(?P<day>\d{1,2})\.` + ws + `*(?P<month>` + word + `)` + ws +
		`+(?P<year>\d{4})` + ws + `*` + clock)
)

// rule pairs a line matcher with the extractor that turns its groups into moments.
type rule struct {
	kind    RuleKind
	pattern *regexp.Regexp
	extract func(groups map[string]string) []Moment
}

// rules are tried in order; the first pattern that matches a line owns it, even
// when its extractor then yields nothing.
var rules = []rule{
	{kind: RuleRange, pattern: rangePattern, extract: extractRange},
	{kind: RuleLabeled, pattern: labeledPattern, extract: extractSingle},
	{kind: RuleGeneral, pattern: generalPattern, extract: extractSingle},
}

// ParseField parses a multi-line date description into moments, in line order.
// Unreadable lines, unknown month names and impossible dates contribute nothing.
func ParseField(raw string) Sequence {
	seq := Sequence{
		Moments: make([]Moment, 0),
		Lines:   make([]Line, 0),
	}

	for _, text := range splitLines(raw) {
		line := Line{Text: text}
		for _, r := range rules {
			match := r.pattern.FindStringSubmatch(text)
			if match == nil {
				continue
			}
			moments := r.extract(groups(r.pattern, match))
			line.Rule = r.kind
			line.Moments = len(moments)
			seq.Moments = append(seq.Moments, moments...)
			break
		}
		seq.Lines = append(seq.Lines, line)
	}

	return seq
}

// splitLines splits on line breaks, trims each line and drops empty ones.
func splitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	lines := make([]string, 0)
	for _, l := range strings.Split(raw, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func groups(re *regexp.Regexp, match []string) map[string]string {
	g := make(map[string]string, len(match))
	for i, name := range re.SubexpNames() {
		if name != "" {
			g[name] = match[i]
		}
	}
	return g
}

func extractRange(g map[string]string) []Moment {
	endMonth := g["end_month"]
	if endMonth == "" {
		endMonth = g["start_month"]
	}

	moments := make([]Moment, 0, 2)
	if m, ok := resolve(g["start_day"], g["start_month"], g["year"], "", ""); ok {
		moments = append(moments, m)
	}
	if g["end_day"] != "" {
		if m, ok := resolve(g["end_day"], endMonth, g["year"], "", ""); ok {
			moments = append(moments, m)
		}
	}
	return moments
}

func extractSingle(g map[string]string) []Moment {
	m, ok := resolve(g["day"], g["month"], g["year"], g["hour"], g["minute"])
	if !ok {
		return nil
	}
	return []Moment{m}
}

// resolve combines matched text into a Moment. Missing hour and minute mean midnight.
func resolve(day, month, year, hour, minute string) (Moment, bool) {
	mon, ok := MonthNumber(month)
	if !ok {
		return Moment{}, false
	}
	if hour == "" {
		hour = "0"
	}
	if minute == "" {
		minute = "0"
	}

	nums := make([]int, 0, 4)
	for _, s := range []string{year, day, hour, minute} {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Moment{}, false
		}
		nums = append(nums, n)
	}

	return NewMoment(nums[0], mon, nums[1], nums[2], nums[3])
}
