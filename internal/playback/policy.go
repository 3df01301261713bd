// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playback

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/taibuivan/cinetrend/internal/core/movie"
)

// # Presets

// Preset fixes how long a fade lasts and how often it steps.
type Preset struct {
	Duration time.Duration `yaml:"duration" json:"duration"`
	Interval time.Duration `yaml:"interval" json:"interval"`
}

// Steps is Duration/Interval, never less than one. Loaded presets always
// divide evenly, so the last step lands exactly on Duration.
func (p Preset) Steps() int {
	if p.Interval <= 0 {
		return 1
	}
	return max(int(p.Duration/p.Interval), 1)
}

var (
	// AwardPreset fades award winners.
	AwardPreset = Preset{Duration: 6500 * time.Millisecond, Interval: 100 * time.Millisecond}

	// DefaultPreset fades every other movie.
	DefaultPreset = Preset{Duration: 6000 * time.Millisecond, Interval: 200 * time.Millisecond}

	// SharedPreset fades two simultaneous streams together.
	SharedPreset = Preset{Duration: 7500 * time.Millisecond, Interval: 100 * time.Millisecond}
)

// # Plans

// Cue is one stream to start for a selection.
type Cue struct {
	Role   Role
	URI    string
	Volume float64
}

// Plan is everything the sequencer needs to run one selection.
type Plan struct {
	Cues   []Cue
	Preset Preset

	// Synchronized applies one shared decrement to every cue.
	Synchronized bool
}

// Policy resolves the plan for a selected record. Implementations must be deterministic.
type Policy interface {
	Plan(record movie.Record) Plan
}

// # Policy Configuration

// Mode names a policy variant.
type Mode string

const (
	ModeAward Mode = "award"
	ModeDual  Mode = "dual"
)

// PolicyConfig holds the overridable inputs of both policy variants.
type PolicyConfig struct {
	AwardClip         string  `yaml:"award_clip"`
	DefaultClip       string  `yaml:"default_clip"`
	SoundtrackPattern string  `yaml:"soundtrack_pattern"`
	Volume            float64 `yaml:"volume"`
	SoundtrackVolume  float64 `yaml:"soundtrack_volume"`

	AwardPreset   Preset `yaml:"award_preset"`
	DefaultPreset Preset `yaml:"default_preset"`
	SharedPreset  Preset `yaml:"shared_preset"`
}

// titlePlaceholder is replaced by the movie title in SoundtrackPattern.
const titlePlaceholder = "{title}"

// DefaultPolicyConfig returns the reference clips and presets.
func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		AwardClip:         "sound1.mp3",
		DefaultClip:       "sound2.mp3",
		SoundtrackPattern: "soundtracks/" + titlePlaceholder + ".mp3",
		Volume:            1,
		SoundtrackVolume:  1,
		AwardPreset:       AwardPreset,
		DefaultPreset:     DefaultPreset,
		SharedPreset:      SharedPreset,
	}
}

// LoadPolicyConfig overlays the YAML file at path onto the defaults; an empty path yields the defaults.
func LoadPolicyConfig(path string) (PolicyConfig, error) {
	cfg := DefaultPolicyConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("playback: read policy %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("playback: decode policy %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("playback: policy %s: %w", path, err)
	}
	return cfg, nil
}

func (cfg PolicyConfig) validate() error {
	var errs []error
	if strings.TrimSpace(cfg.AwardClip) == "" || strings.TrimSpace(cfg.DefaultClip) == "" {
		errs = append(errs, errors.New("award_clip and default_clip are required"))
	}
	if !strings.Contains(cfg.SoundtrackPattern, titlePlaceholder) {
		errs = append(errs, fmt.Errorf("soundtrack_pattern must contain %s", titlePlaceholder))
	}
	for name, preset := range map[string]Preset{
		"award_preset":   cfg.AwardPreset,
		"default_preset": cfg.DefaultPreset,
		"shared_preset":  cfg.SharedPreset,
	} {
		switch {
		case preset.Interval <= 0 || preset.Duration < preset.Interval:
			errs = append(errs, fmt.Errorf("%s needs 0 < interval <= duration", name))
		case preset.Duration%preset.Interval != 0:
			errs = append(errs, fmt.Errorf("%s duration must be a whole number of intervals", name))
		}
	}
	return errors.Join(errs...)
}

// NewPolicy builds the policy variant for mode.
func NewPolicy(mode Mode, cfg PolicyConfig) (Policy, error) {
	switch mode {
	case ModeAward:
		return awardPolicy{cfg: cfg}, nil
	case ModeDual:
		return dualPolicy{awardPolicy: awardPolicy{cfg: cfg}}, nil
	default:
		return nil, fmt.Errorf("playback: unknown mode %q", mode)
	}
}

// # Variants

// awardPolicy plays one clip chosen by the award flag.
type awardPolicy struct {
	cfg PolicyConfig
}

func (p awardPolicy) clip(record movie.Record) string {
	if record.WonAward {
		return p.cfg.AwardClip
	}
	return p.cfg.DefaultClip
}

func (p awardPolicy) Plan(record movie.Record) Plan {
	preset := p.cfg.DefaultPreset
	if record.WonAward {
		preset = p.cfg.AwardPreset
	}
	return Plan{
		Cues:   []Cue{{Role: RoleMain, URI: p.clip(record), Volume: clampVolume(p.cfg.Volume)}},
		Preset: preset,
	}
}

// dualPolicy plays the award clip underneath the movie's own soundtrack.
type dualPolicy struct {
	awardPolicy
}

func (p dualPolicy) Plan(record movie.Record) Plan {
	soundtrack := strings.ReplaceAll(p.cfg.SoundtrackPattern, titlePlaceholder, norm.NFC.String(record.Title))
	return Plan{
		Cues: []Cue{
			{Role: RoleBackground, URI: p.clip(record), Volume: clampVolume(p.cfg.Volume)},
			{Role: RoleSoundtrack, URI: soundtrack, Volume: clampVolume(p.cfg.SoundtrackVolume)},
		},
		Preset:       p.cfg.SharedPreset,
		Synchronized: true,
	}
}

func clampVolume(volume float64) float64 {
	return min(max(volume, 0), 1)
}
