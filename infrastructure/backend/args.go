package backend

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/helixml/markerrange/domain/render"
)

// Args is a renderer command line under construction.
type Args []string

// Background opens file without a UI.
func (a Args) Background(file string) Args {
	return append(a, "-b", file)
}

// Scene selects a scene inside the file. An empty name keeps the default.
func (a Args) Scene(name string) Args {
	if name == "" {
		return a
	}
	return append(a, "-S", name)
}

// Extra appends arbitrary arguments.
func (a Args) Extra(args ...string) Args {
	return append(a, args...)
}

// FrameRange sets the first and last frame.
func (a Args) FrameRange(start, end int) Args {
	return append(a, "-s", strconv.Itoa(start), "-e", strconv.Itoa(end))
}

// Output sets the output path.
func (a Args) Output(path string) Args {
	return append(a, "-o", path)
}

// Animation renders the configured frame range.
func (a Args) Animation() Args {
	return append(a, "-a")
}

// PythonExpr runs a script inside the renderer.
func (a Args) PythonExpr(script string) Args {
	return append(a, "--python-expr", script)
}

// String joins the arguments for logging.
func (a Args) String() string {
	return strings.Join(a, " ")
}

// offscreenScript returns the script that renders the animation through the
// viewport renderer using the given settings. Viewport shading and overlay
// state are applied to every 3D view saved in the file.
func offscreenScript(s render.Settings) string {
	var b strings.Builder
	b.WriteString("import bpy\n")
	b.WriteString("scene = bpy.context.scene\n")
	fmt.Fprintf(&b, "scene.frame_start = %d\n", s.FrameStart())
	fmt.Fprintf(&b, "scene.frame_end = %d\n", s.FrameEnd())
	fmt.Fprintf(&b, "scene.render.filepath = %s\n", strconv.Quote(s.OutputPath()))
	if s.DisplayShading() != "" {
		fmt.Fprintf(&b, "scene.display.shading.type = %s\n", strconv.Quote(string(s.DisplayShading())))
	}
	b.WriteString("for screen in bpy.data.screens:\n")
	b.WriteString("    for area in screen.areas:\n")
	b.WriteString("        for space in area.spaces:\n")
	b.WriteString("            if space.type != \"VIEW_3D\":\n")
	b.WriteString("                continue\n")
	if s.ViewportShading() != "" {
		fmt.Fprintf(&b, "            space.shading.type = %s\n", strconv.Quote(string(s.ViewportShading())))
	}
	fmt.Fprintf(&b, "            space.overlay.show_overlays = %s\n", pythonBool(s.Overlays()))
	b.WriteString("bpy.ops.render.opengl(animation=True, view_context=False)\n")
	return b.String()
}

func pythonBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
