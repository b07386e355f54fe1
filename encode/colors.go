package encode

import (
	"strings"

	"github.com/fatih/color"
)

type ColorAttr int

const (
	HeaderColor ColorAttr = iota
	CellColor
	BorderColor
	OriginColor
	SpanColor
	ProblemColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[ColorAttr]func(string, ...any) string{},
	}
	colors.Map[HeaderColor] = color.New(color.FgCyan, color.Bold).SprintfFunc()
	colors.Map[CellColor] = colorDefault
	colors.Map[BorderColor] = color.RGB(96, 96, 96).SprintfFunc()
	colors.Map[OriginColor] = color.RGB(128, 216, 236).SprintfFunc()
	colors.Map[SpanColor] = color.RGB(128, 168, 196).SprintfFunc()
	colors.Map[ProblemColor] = color.New(color.FgRed).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(a ColorAttr, s string) string {
	return c.Get(a)(s)
}

func (c *Colors) Get(a ColorAttr) func(string, ...any) string {
	f := c.Map[a]
	if f == nil {
		return c.Default
	}
	return f
}
