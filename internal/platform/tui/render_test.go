package tui

import (
	"regexp"
	"testing"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawText(0, 0, "plain")
	s.DrawTextColor(6, 0, "red", core.ColorRed)
	s.SetColor(2, 1, '■', core.ColorBrightBlue)
	s.AddAttr(2, 1, core.AttrReverse|core.AttrBold)
	s.DrawTextColor(0, 2, "gray", core.ColorGray)

	out := ansiPattern.ReplaceAllString(RenderScreen(s), "")
	if out != s.String() {
		t.Errorf("RenderScreen() text =\n%q\nexpected\n%q", out, s.String())
	}
}

func TestCellStyle(t *testing.T) {
	st := cellStyle(core.ColorGreen, core.AttrBold|core.AttrReverse)
	if !st.GetBold() || !st.GetReverse() {
		t.Error("attributes should map to bold and reverse")
	}
	if cellStyle(core.Color(200), core.AttrNone).GetBold() {
		t.Error("unknown colors fall back to the plain style")
	}
}
