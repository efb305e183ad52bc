// internal/simconfig/normalize.go
package simconfig

import "boardid-go/x/strx"

const (
	DefaultEEPROMSize = 4096
	DefaultName       = "sim"
)

// Normalize fills defaults. It must be called only after Validate.
// Zero timings are left alone; the provisioner applies its own defaults.
func Normalize(p *Profile) {
	if p == nil {
		return
	}
	p.Name = strx.Coalesce(p.Name, DefaultName)
	p.Switch.Initial = strx.Coalesce(p.Switch.Initial, "middle")
	if p.EEPROM.Size == 0 {
		p.EEPROM.Size = DefaultEEPROMSize
	}
}

// Default returns a normalized profile for runs without a file.
func Default() *Profile {
	p := &Profile{}
	Normalize(p)
	return p
}
