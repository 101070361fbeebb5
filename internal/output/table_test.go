package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_String(t *testing.T) {
	tbl := NewTable("A", "B").Row("one", "two").Row("three", "four")
	assert.Equal(t, 2, tbl.Len())

	out := stripAnsi(tbl.String())
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "B")
	assert.Contains(t, out, "one")
	assert.Contains(t, out, "four")
	assert.Less(t, strings.Index(out, "one"), strings.Index(out, "three"), "rows keep insertion order")
}

func TestRenderLessonTable(t *testing.T) {
	out := stripAnsi(RenderLessonTable([]LessonRow{
		{Group: "useState", Name: "01_useState", Link: "/topic/useState/01_useState"},
		{Group: "useRef", Name: "01_useRef", Link: "/topic/useRef/01_useRef"},
	}))

	assert.Contains(t, out, "GROUP")
	assert.Contains(t, out, "LESSON")
	assert.Contains(t, out, "/topic/useState/01_useState")
	assert.Less(t, strings.Index(out, "useState"), strings.Index(out, "useRef"))
}
