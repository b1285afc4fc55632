package services

import (
	"bytes"
	"math"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/fr0stylo/proxitrace/internal/app/domain"
	"github.com/fr0stylo/proxitrace/internal/app/ports"
	"github.com/fr0stylo/proxitrace/internal/epoch"
)

const calibrationPrefixLen = 4

// ContactMatchingConfig holds the aggregation policy knobs.
type ContactMatchingConfig struct {
	DefaultTxPowerLevel         float64
	ContactAttenuationThreshold float64
	WindowDuration              time.Duration
	EpochDuration               time.Duration
	BatchLength                 time.Duration
	// Calibration attaches diagnostics to every produced contact.
	Calibration bool
}

// DefaultContactMatchingConfig returns the production matching parameters.
func DefaultContactMatchingConfig() ContactMatchingConfig {
	return ContactMatchingConfig{
		DefaultTxPowerLevel:         12.0,
		ContactAttenuationThreshold: 73.0,
		WindowDuration:              time.Minute,
		EpochDuration:               epoch.DefaultLength,
		BatchLength:                 2 * time.Hour,
	}
}

// ContactAggregator turns raw handshakes into contact candidates.
// It holds no mutable state and is safe for concurrent use.
type ContactAggregator struct {
	cfg    ContactMatchingConfig
	oracle ports.EpochOracle
}

type attenuationSample struct {
	at          time.Time
	attenuation float64
}

// NewContactAggregator constructs an aggregator.
func NewContactAggregator(cfg ContactMatchingConfig, oracle ports.EpochOracle) *ContactAggregator {
	if oracle == nil {
		oracle = epoch.NewFixed(cfg.EpochDuration)
	}
	return &ContactAggregator{cfg: cfg, oracle: oracle}
}

// Contacts groups handshakes by ephemeral id and returns one contact per group that has
// at least one window with a mean attenuation below the threshold. Output is ordered by
// date, then ephemeral id.
func (a *ContactAggregator) Contacts(handshakes []domain.Handshake) []domain.Contact {
	groups := make(map[string][]attenuationSample)
	for _, handshake := range handshakes {
		if handshake.RSSI == nil {
			continue
		}
		txPower := a.cfg.DefaultTxPowerLevel
		if handshake.TxPowerLevel != nil {
			txPower = *handshake.TxPowerLevel
		}
		key := string(handshake.EphID)
		groups[key] = append(groups[key], attenuationSample{
			at:          handshake.Timestamp,
			attenuation: txPower - *handshake.RSSI,
		})
	}

	contacts := make([]domain.Contact, 0, len(groups))
	for key, samples := range groups {
		contact, ok := a.contact(domain.EphID(key), samples)
		if ok {
			contacts = append(contacts, contact)
		}
	}

	sort.Slice(contacts, func(i, j int) bool {
		if !contacts[i].Date.Equal(contacts[j].Date) {
			return contacts[i].Date.Before(contacts[j].Date)
		}
		return bytes.Compare(contacts[i].EphID, contacts[j].EphID) < 0
	})
	return contacts
}

func (a *ContactAggregator) contact(ephID domain.EphID, samples []attenuationSample) (domain.Contact, bool) {
	if len(samples) == 0 || a.cfg.WindowDuration <= 0 {
		return domain.Contact{}, false
	}

	first := samples[0].at
	for _, sample := range samples[1:] {
		if sample.at.Before(first) {
			first = sample.at
		}
	}

	epochStart := a.oracle.EpochStart(first)
	windows := int(a.cfg.EpochDuration / a.cfg.WindowDuration)

	matching := 0
	var calibration calibrationAccumulator
	for i := 0; i < windows; i++ {
		start := epochStart.Add(time.Duration(i) * a.cfg.WindowDuration)
		end := start.Add(a.cfg.WindowDuration)

		mean, ok := windowMean(samples, start, end)
		if !ok {
			continue
		}
		if mean < a.cfg.ContactAttenuationThreshold {
			matching++
			calibration.observe(start, end, mean)
		}
	}
	if matching == 0 {
		return domain.Contact{}, false
	}

	contact := domain.Contact{
		EphID:       append(domain.EphID(nil), ephID...),
		Date:        epoch.FloorUnix(first, a.cfg.BatchLength),
		WindowCount: matching,
	}
	if a.cfg.Calibration {
		contact.Calibration = calibration.result(ephID, matching, a.cfg.WindowDuration)
	}
	return contact, true
}

// windowMean averages samples in the (start, end] interval.
func windowMean(samples []attenuationSample, start, end time.Time) (float64, bool) {
	sum := 0.0
	count := 0
	for _, sample := range samples {
		if sample.at.After(start) && !sample.at.After(end) {
			sum += sample.attenuation
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

type calibrationAccumulator struct {
	start time.Time
	end   time.Time
	means []float64
}

func (c *calibrationAccumulator) observe(start, end time.Time, mean float64) {
	if len(c.means) == 0 {
		c.start = start
	}
	c.end = end
	c.means = append(c.means, mean)
}

func (c *calibrationAccumulator) result(ephID domain.EphID, matching int, window time.Duration) *domain.Calibration {
	sum := 0.0
	for _, mean := range c.means {
		sum += mean
	}
	meanAttenuation := 0.0
	if len(c.means) > 0 {
		meanAttenuation = sum / float64(len(c.means))
	}

	prefix := ""
	if len(ephID) >= calibrationPrefixLen && utf8.Valid(ephID[:calibrationPrefixLen]) {
		prefix = string(ephID[:calibrationPrefixLen])
	}

	return &domain.Calibration{
		UserPrefix:      prefix,
		StartDate:       c.start,
		EndDate:         c.end,
		Minutes:         matching * int(window/time.Second) / 60,
		MeanAttenuation: meanAttenuation,
		MeanDistance:    math.Pow(10, meanAttenuation/20) / 1000,
	}
}
