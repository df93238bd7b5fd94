// SPDX-License-Identifier: EPL-2.0

package config

const (
	defaultConfigPath  = "~/.config/chanfix/config.toml"
	defaultLedgerPath  = "~/.local/share/chanfix/ledger.db"
	defaultHiddenFiles = HiddenSkip
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// DefaultExtensions are the read-write formats scanned when none are configured.
func DefaultExtensions() []string {
	return []string{".wav", ".aif", ".aiff"}
}

// DefaultCategories are the reorder folders used when none are configured.
func DefaultCategories() []Category {
	return []Category{
		{Name: "01- DRUMS", Keywords: []string{"drum", "kick", "kik", "snare", "snr", "hat", "hihat", "hh", "tom", "overhead", "oh", "room", "ride", "crash", "cymbal"}},
		{Name: "02- PERCUSSION", Keywords: []string{"perc", "conga", "bongo", "shaker", "tamb", "cowbell", "clap", "cajon"}},
		{Name: "03- BASS", Keywords: []string{"bass", "sub", "bs"}},
		{Name: "04- GUITARS", Keywords: []string{"gtr", "guitar", "gt", "acoustic", "ac"}},
		{Name: "05- KEYS, SYNTHS, FX, ETC", Keywords: []string{"keys", "key", "piano", "pno", "synth", "organ", "pad", "fx", "rhodes", "strings"}},
		{Name: "06- VOCALS", Keywords: []string{"vox", "vocal", "voc", "bv", "bgv", "choir", "lead"}},
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Scan: Scan{
			HiddenFiles: defaultHiddenFiles,
		},
		Ledger: Ledger{
			Enabled: true,
			Path:    defaultLedgerPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
