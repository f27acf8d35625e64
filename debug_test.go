package bloom

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestCountDrawCalls(t *testing.T) {
	plain := newLabel("hi", 12)
	glowing := newLabel("hi", 12)
	glowing.Glow = Color{1, 1, 0, 0.4}
	cmds := []RenderCommand{
		{Type: CommandMesh},
		{Type: CommandParticle},
		{Type: CommandText, label: plain},
		{Type: CommandText, label: glowing},
	}
	if got := countDrawCalls(cmds); got != 8 {
		t.Errorf("countDrawCalls = %d, want 8", got)
	}
}

func TestDebugCheckDisposedPanics(t *testing.T) {
	n := NewContainer("gone")
	n.Dispose()
	defer func() {
		r := recover()
		if r == nil || !strings.Contains(r.(string), `"gone"`) {
			t.Errorf("recover = %v", r)
		}
	}()
	debugCheckDisposed(n, "test")
}

func TestDebugCheckTreeWarnsOnDepth(t *testing.T) {
	var buf bytes.Buffer
	s := NewScene()
	s.SetLogger(log.New(&buf))
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	top := NewContainer("top")
	p := top
	for i := 0; i < debugMaxTreeDepth+2; i++ {
		c := NewContainer("deep")
		p.AddChild(c)
		p = c
	}
	s.Root().AddChild(top)
	s.debugCheckTree(top)

	if !strings.Contains(buf.String(), "tree too deep") {
		t.Errorf("log = %q", buf.String())
	}
}

func TestDebugCheckTreeQuietWhenOff(t *testing.T) {
	var buf bytes.Buffer
	s := NewScene()
	s.SetLogger(log.New(&buf))

	top := NewContainer("top")
	p := top
	for i := 0; i < debugMaxTreeDepth+2; i++ {
		c := NewContainer("deep")
		p.AddChild(c)
		p = c
	}
	s.debugCheckTree(top)
	if buf.Len() != 0 {
		t.Errorf("logged without debug mode: %q", buf.String())
	}
}
