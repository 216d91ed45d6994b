package render

import (
	"fmt"
	"strings"
)

// EscapeText escapes the characters ffmpeg's filter syntax reserves:
// backslash, colon, and single quote. It is applied at every point where
// user-supplied text or a file path enters the graph, so a title like
// "can't stop: won't stop" cannot corrupt or inject filter clauses.
// Total over its input domain.
func EscapeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\', ':', '\'':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// filterNode is one filter in the chain: a name plus ordered key=value
// arguments. Values are inserted pre-escaped by the builder methods.
type filterNode struct {
	name string
	args []string
}

func (n filterNode) render() string {
	if len(n.args) == 0 {
		return n.name
	}
	return n.name + "=" + strings.Join(n.args, ":")
}

// Graph accumulates filter nodes and renders them as a comma-joined ffmpeg
// filter chain. Text and path arguments pass through EscapeText before they
// are stored, which keeps the escaping contract testable in one place.
type Graph struct {
	nodes []filterNode
}

func (g *Graph) add(name string, args ...string) *Graph {
	g.nodes = append(g.nodes, filterNode{name: name, args: args})
	return g
}

// Scale resizes the stream to w x h.
func (g *Graph) Scale(w, h int) *Graph {
	return g.add("scale", fmt.Sprintf("%d", w), fmt.Sprintf("%d", h))
}

// Format normalizes the pixel format.
func (g *Graph) Format(pixFmt string) *Graph {
	return g.add("format", pixFmt)
}

// DrawBox draws a filled box, typically the semi-transparent title backing.
func (g *Graph) DrawBox(x, y, w, h, color string) *Graph {
	return g.add("drawbox",
		"x="+x, "y="+y, "w="+w, "h="+h, "color="+color, "t=fill")
}

// DrawText draws text with an explicit font file. The text and font path are
// escaped; positions are caller-controlled expressions, not user input.
func (g *Graph) DrawText(text, fontFile string, fontSize int, fontColor, x, y string) *Graph {
	return g.add("drawtext",
		"fontfile="+EscapeText(fontFile),
		"text='"+EscapeText(text)+"'",
		fmt.Sprintf("fontsize=%d", fontSize),
		"fontcolor="+fontColor,
		"x="+x, "y="+y)
}

// BurnSubtitles burns a subtitle file into the frames.
func (g *Graph) BurnSubtitles(path string) *Graph {
	return g.add("subtitles", EscapeText(path))
}

// String renders the assembled chain.
func (g *Graph) String() string {
	parts := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		parts[i] = n.render()
	}
	return strings.Join(parts, ",")
}
