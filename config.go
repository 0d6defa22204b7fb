package splitview

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/colornames"
)

// Config is the externally set configuration surface of a session. It is
// read once per frame; values are only clamped, never rejected.
type Config struct {
	// LineColor is the color of the dividing line between viewpoints.
	LineColor Color `toml:"-"`
	// LineColorName is LineColor in text form, "#rrggbb", "#rrggbbaa" or a
	// CSS color name. Only used when loading from TOML.
	LineColorName string `toml:"line_color"`
	// FXAA enables the anti-aliasing pass.
	FXAA bool `toml:"fxaa"`
	// Merging enables merging into one shared view when players are close.
	Merging bool `toml:"merging"`
	// PlayerCount is the number of players to show (0, 1 or 2). Clamped to
	// the number of tracked players and to MaxViewpoints.
	PlayerCount int `toml:"player_count"`
	// OrthoSize is the orthographic half-height of every viewpoint.
	OrthoSize float64 `toml:"ortho_size"`
	// TransitionEase names the easing curve applied to camera placement in
	// the transition band. Empty means linear.
	TransitionEase string `toml:"transition_ease"`
	// Debug enables per-frame pass timing at debug log level.
	Debug bool `toml:"debug"`
}

// DefaultConfig returns the stock configuration:
// black line, FXAA and merging on, two players.
func DefaultConfig() Config {
	return Config{
		LineColor:     ColorBlack,
		LineColorName: "black",
		FXAA:          true,
		Merging:       true,
		PlayerCount:   MaxViewpoints,
		OrthoSize:     5,
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("splitview: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes TOML data on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("splitview: parse config: %w", err)
	}
	c, err := ParseColor(cfg.LineColorName)
	if err != nil {
		return Config{}, err
	}
	cfg.LineColor = c
	if _, err := EaseByName(cfg.TransitionEase); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Ease returns the configured transition easing, nil for linear or unknown
// names.
func (c Config) Ease() ease.TweenFunc {
	fn, _ := EaseByName(c.TransitionEase)
	return fn
}

// ParseColor parses "#rgb", "#rrggbb", "#rrggbbaa" or a CSS color name.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return ColorBlack, nil
	}
	if !strings.HasPrefix(s, "#") {
		rgba, ok := colornames.Map[s]
		if !ok {
			return Color{}, fmt.Errorf("splitview: unknown color name %q", s)
		}
		return Color{
			R: float64(rgba.R) / 255,
			G: float64(rgba.G) / 255,
			B: float64(rgba.B) / 255,
			A: float64(rgba.A) / 255,
		}, nil
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("splitview: bad color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("splitview: bad color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"inquad":       ease.InQuad,
	"outquad":      ease.OutQuad,
	"inoutquad":    ease.InOutQuad,
	"incubic":      ease.InCubic,
	"outcubic":     ease.OutCubic,
	"inoutcubic":   ease.InOutCubic,
	"insine":       ease.InSine,
	"outsine":      ease.OutSine,
	"inoutsine":    ease.InOutSine,
	"inexpo":       ease.InExpo,
	"outexpo":      ease.OutExpo,
	"inoutexpo":    ease.InOutExpo,
	"outbounce":    ease.OutBounce,
	"inoutcirc":    ease.InOutCirc,
	"outcirc":      ease.OutCirc,
	"incirc":       ease.InCirc,
	"outback":      ease.OutBack,
	"inoutback":    ease.InOutBack,
	"outelastic":   ease.OutElastic,
	"inoutelastic": ease.InOutElastic,
}

// EaseByName looks up a gween easing function. Names are case-insensitive
// and may contain '-' or '_' separators ("in-out-quad"). The empty string
// returns nil, meaning linear.
func EaseByName(name string) (ease.TweenFunc, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(name))
	if key == "" {
		return nil, nil
	}
	fn, ok := easings[key]
	if !ok {
		return nil, fmt.Errorf("splitview: unknown transition ease %q", name)
	}
	return fn, nil
}
