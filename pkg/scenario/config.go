// Package scenario runs step-by-step Sybil attack simulations.
//
// A scenario grows a network in stages: a random honest base network, then
// an attacker-controlled subnetwork of sock identities appended next to it,
// then one reciprocal signature at a time between a sock identity and an
// honest peer. After every step the network is analysed: strongly connected
// components, the strong set, its average mean shortest distance, the MSD
// ranking and the articulation points of the watched peers.
//
// # Usage
//
// Load a scenario from TOML and run it:
//
//	cfg, err := scenario.Load("attack.toml")
//	if err != nil {
//	    return err
//	}
//	result, err := scenario.NewRunner(logger).Run(ctx, cfg)
//
// The TOML layout mirrors [Config]:
//
//	seed = 42
//
//	[base]
//	peers = 10
//	sig_min = 1
//	sig_max = 3
//
//	[attacker]
//	peers = 20
//	sig_min = 5
//	sig_max = 10
//
//	[[links]]
//	attacker = 17
//	legit = 2
//
// Labels in links are global: honest peers come first, so with the layout
// above the sock identities are labelled 10 through 29.
//
// Set watch_strong_set = true to report every strong-set member after each
// step instead of the watch list.
package scenario

import (
	"bytes"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/wotscan/pkg/errors"
	"github.com/matzehuels/wotscan/pkg/wot/scc"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultBasePeers is the size of the honest base network.
	DefaultBasePeers = 10

	// DefaultBaseSigMin and DefaultBaseSigMax bound the signatures drawn per
	// honest peer.
	DefaultBaseSigMin = 1
	DefaultBaseSigMax = 3

	// DefaultAttackerPeers is the number of sock identities.
	DefaultAttackerPeers = 20

	// DefaultAttackerSigMin and DefaultAttackerSigMax bound the signatures
	// drawn per sock identity. Sock identities sign each other generously.
	DefaultAttackerSigMin = 5
	DefaultAttackerSigMax = 10

	// DefaultSelector is the strong-set selector name.
	DefaultSelector = "anchored"
)

// =============================================================================
// Config
// =============================================================================

// Network describes one randomly generated part of the scenario.
type Network struct {
	Peers  int `toml:"peers"`
	SigMin int `toml:"sig_min"`
	SigMax int `toml:"sig_max"`
}

// Link is a reciprocal signature between a sock identity and an honest peer,
// both given as global labels.
type Link struct {
	Attacker int `toml:"attacker"`
	Legit    int `toml:"legit"`
}

// Config is a complete scenario description.
type Config struct {
	// Seed drives every random choice of the run.
	Seed uint64 `toml:"seed"`

	Base     Network `toml:"base"`
	Attacker Network `toml:"attacker"`
	Links    []Link  `toml:"links"`

	// Selector names the strong-set selector: anchored (on the honest
	// peers), largest, first or containing (the first honest peer).
	Selector string `toml:"selector,omitempty"`

	// Watch lists the peers whose articulation points are reported after
	// every step. Empty means the attacker end of every link.
	Watch []int `toml:"watch,omitempty"`

	// WatchStrongSet reports every strong-set member after every step, in
	// MSD order, instead of Watch.
	WatchStrongSet bool `toml:"watch_strong_set,omitempty"`
}

// Default returns the classic two-link attack: ten honest peers, twenty
// sock identities, and links 17 <-> 2 then 29 <-> 4.
func Default() Config {
	return Config{
		Seed:     DefaultSeed,
		Base:     Network{Peers: DefaultBasePeers, SigMin: DefaultBaseSigMin, SigMax: DefaultBaseSigMax},
		Attacker: Network{Peers: DefaultAttackerPeers, SigMin: DefaultAttackerSigMin, SigMax: DefaultAttackerSigMax},
		Links: []Link{
			{Attacker: 17, Legit: 2},
			{Attacker: 29, Legit: 4},
		},
		Selector: DefaultSelector,
	}
}

// Load reads and decodes a scenario file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read scenario %s", path)
	}
	cfg, err := Decode(data)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "scenario %s", path)
	}
	return cfg, nil
}

// Decode parses TOML scenario data. Keys missing from data keep their
// [Default] values, except that a document with its own links replaces the
// default links entirely. Unknown keys are rejected.
func Decode(data []byte) (Config, error) {
	cfg := Default()
	cfg.Links = nil
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode scenario")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown scenario keys: %s", strings.Join(keys, ", "))
	}
	if !md.IsDefined("links") {
		cfg.Links = Default().Links
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode scenario")
	}
	return nil
}

// String returns cfg as TOML.
func (c Config) String() string {
	var buf bytes.Buffer
	_ = c.Encode(&buf)
	return buf.String()
}

// =============================================================================
// Validation
// =============================================================================

// Validate checks sizes, signature ranges, link endpoints and the selector.
// All failures carry ErrCodeInvalidConfig.
func (c Config) Validate() error {
	if c.Base.Peers < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "base network needs at least one peer (got %d)", c.Base.Peers)
	}
	if err := errors.ValidateSigRange(c.Base.Peers, c.Base.SigMin, c.Base.SigMax); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "base network")
	}
	if err := errors.ValidateSigRange(c.Attacker.Peers, c.Attacker.SigMin, c.Attacker.SigMax); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "attacker network")
	}

	total := c.Base.Peers + c.Attacker.Peers
	for i, l := range c.Links {
		if l.Attacker < c.Base.Peers || l.Attacker >= total {
			return errors.New(errors.ErrCodeInvalidConfig,
				"link %d: attacker %d is not a sock identity [%d, %d)", i+1, l.Attacker, c.Base.Peers, total)
		}
		if l.Legit < 0 || l.Legit >= c.Base.Peers {
			return errors.New(errors.ErrCodeInvalidConfig,
				"link %d: legit %d is not an honest peer [0, %d)", i+1, l.Legit, c.Base.Peers)
		}
	}
	for _, w := range c.Watch {
		if err := errors.ValidateLabel(w, total); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "watch")
		}
	}
	if _, err := c.selector(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "selector")
	}
	return nil
}

// HonestLabels returns the labels of the base network.
func (c Config) HonestLabels() []int {
	labels := make([]int, c.Base.Peers)
	for i := range labels {
		labels[i] = i
	}
	return labels
}

// Watched returns the peers reported after every step: Watch if set,
// otherwise the distinct attacker ends of the links in link order.
func (c Config) Watched() []int {
	if len(c.Watch) > 0 {
		return slices.Clone(c.Watch)
	}
	var watched []int
	for _, l := range c.Links {
		if !slices.Contains(watched, l.Attacker) {
			watched = append(watched, l.Attacker)
		}
	}
	return watched
}

func (c Config) selector() (scc.Selector, error) {
	name := c.Selector
	if name == "" {
		name = DefaultSelector
	}
	return scc.ParseSelector(name, c.HonestLabels()...)
}
