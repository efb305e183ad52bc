// internal/simconfig/config.go

// Package simconfig holds the simulator profile: which ID to provision, the
// EEPROM image to run against, timings, and a scripted operator.
package simconfig

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Profile struct {
	Name    string        `yaml:"name"`
	BoardID string        `yaml:"board_id"` // "0x81", "65"; empty keeps the plan default
	EEPROM  EEPROMConfig  `yaml:"eeprom"`
	Timing  TimingConfig  `yaml:"timing"`
	Console ConsoleConfig `yaml:"console"`
	Switch  SwitchConfig  `yaml:"switch"`
	Report  ReportConfig  `yaml:"report"`
}

// ---- EEPROM ----

type EEPROMConfig struct {
	Image string `yaml:"image"` // file backing the part; empty = memory only
	Size  int    `yaml:"size"`
	Base  int    `yaml:"base"`
	Fault bool   `yaml:"fault"` // every transfer NAKs
}

// ---- TIMING ----

type TimingConfig struct {
	PollMs       int `yaml:"poll_ms"`
	SettleMs     int `yaml:"settle_ms"`
	ReportDarkMs int `yaml:"report_dark_ms"`
	ReportLitMs  int `yaml:"report_lit_ms"`
}

// ---- OPERATOR ----

type ConsoleConfig struct {
	// Connected opens the serial link at boot.
	Connected bool `yaml:"connected"`
}

type SwitchConfig struct {
	Initial string       `yaml:"initial"` // bottom | middle | top
	Script  []ScriptStep `yaml:"script"`
}

// ScriptStep acts AfterMs after the run starts. Position moves the switch;
// Connect opens the serial link.
type ScriptStep struct {
	AfterMs  int    `yaml:"after_ms"`
	Position string `yaml:"position"`
	Connect  bool   `yaml:"connect"`
}

// ---- REPORT ----

type ReportConfig struct {
	// Cycles of the status loop to run after setup; 0 runs until interrupted.
	Cycles int `yaml:"cycles"`
}

// Load reads a YAML profile. Unknown keys are rejected.
func Load(path string) (*Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse decodes a YAML profile.
func Parse(b []byte) (*Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("simconfig: %w", err)
	}
	return &p, nil
}
