package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input string
		want  Mode
	}{
		{"viewport_render", ModeViewportRender},
		{"viewport_solid", ModeViewportSolid},
		{"full_render", ModeFullRender},
		{" FULL_RENDER ", ModeFullRender},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMode_Unknown(t *testing.T) {
	_, err := ParseMode("cycles")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownMode)

	_, err = ParseMode("")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestMode_Shading(t *testing.T) {
	s, ok := ModeViewportRender.Shading()
	assert.True(t, ok)
	assert.Equal(t, ShadingRendered, s)

	s, ok = ModeViewportSolid.Shading()
	assert.True(t, ok)
	assert.Equal(t, ShadingSolid, s)

	_, ok = ModeFullRender.Shading()
	assert.False(t, ok)
}

func TestMode_Offscreen(t *testing.T) {
	assert.True(t, ModeViewportRender.Offscreen())
	assert.True(t, ModeViewportSolid.Offscreen())
	assert.False(t, ModeFullRender.Offscreen())
	assert.False(t, Mode("bogus").Offscreen())
}

func TestModes(t *testing.T) {
	for _, m := range Modes() {
		assert.True(t, m.IsValid(), m.String())
		assert.NotEmpty(t, m.Description())
	}
	assert.False(t, Mode("bogus").IsValid())
}

func TestSettings(t *testing.T) {
	s := NewSettings("//out/shot_", 1, 250, PerspectivePersp, ShadingSolid, true, ShadingMaterial)

	assert.Equal(t, "//out/shot_", s.OutputPath())
	assert.Equal(t, 1, s.FrameStart())
	assert.Equal(t, 250, s.FrameEnd())
	assert.Equal(t, PerspectivePersp, s.Perspective())
	assert.Equal(t, ShadingSolid, s.ViewportShading())
	assert.True(t, s.Overlays())
	assert.Equal(t, ShadingMaterial, s.DisplayShading())
	assert.Contains(t, s.String(), "frames=1-250")
}

func TestShadingAndPerspective_IsValid(t *testing.T) {
	assert.True(t, ShadingRendered.IsValid())
	assert.False(t, Shading("rendered").IsValid())
	assert.True(t, PerspectiveCamera.IsValid())
	assert.False(t, Perspective("FISHEYE").IsValid())
}
