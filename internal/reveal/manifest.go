package reveal

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	platformerrors "github.com/daily-aivey/soundchain-landing-page-new/internal/platform/errors"
)

// Manifest declares the revealable sections of a page in document order.
// It is the server-side equivalent of scanning the DOM at mount time.
type Manifest struct {
	Sections []ManifestSection `yaml:"sections"`
}

// ManifestSection is one declared section.
type ManifestSection struct {
	ID       string  `yaml:"id"`
	Sequence int     `yaml:"sequence"`
	DelayMs  int     `yaml:"delay_ms"`
	Variant  Variant `yaml:"variant"`
	Progress bool    `yaml:"progress"`
}

// LoadManifest parses and validates a YAML page manifest, yielding the
// element set in document order. A section with no variant gets the
// standard one.
func LoadManifest(data []byte) ([]Element, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if len(m.Sections) == 0 {
		return nil, platformerrors.New(platformerrors.CodeManifestEmpty, "manifest declares no sections")
	}

	elements := make([]Element, 0, len(m.Sections))
	seen := make(map[string]bool, len(m.Sections))
	for i, s := range m.Sections {
		if s.ID == "" {
			return nil, platformerrors.New(platformerrors.CodeManifestEmpty, fmt.Sprintf("section %d has no id", i))
		}
		if seen[s.ID] {
			return nil, platformerrors.WithMetadata(
				platformerrors.CodeManifestDuplicateElement,
				fmt.Sprintf("duplicate section id %q", s.ID),
				map[string]string{"id": s.ID},
			)
		}
		seen[s.ID] = true
		variant := s.Variant
		if variant == "" {
			variant = VariantStandard
		}
		if !variant.Valid() {
			return nil, platformerrors.WithMetadata(
				platformerrors.CodeManifestInvalidVariant,
				fmt.Sprintf("section %q has unknown variant %q", s.ID, s.Variant),
				map[string]string{"id": s.ID, "variant": string(s.Variant)},
			)
		}
		if s.Sequence < 0 {
			return nil, platformerrors.WithMetadata(
				platformerrors.CodeManifestInvalidGroup,
				fmt.Sprintf("section %q has negative sequence group", s.ID),
				map[string]string{"id": s.ID},
			)
		}
		if s.DelayMs < 0 {
			return nil, fmt.Errorf("section %q has negative delay", s.ID)
		}
		elements = append(elements, Element{
			ID:            s.ID,
			Index:         i,
			SequenceGroup: s.Sequence,
			BaseDelay:     time.Duration(s.DelayMs) * time.Millisecond,
			Variant:       variant,
			Progress:      s.Progress,
		})
	}
	return elements, nil
}
