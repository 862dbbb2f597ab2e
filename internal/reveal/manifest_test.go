package reveal

import (
	stderrors "errors"
	"testing"
	"time"

	platformerrors "github.com/daily-aivey/soundchain-landing-page-new/internal/platform/errors"
)

const validManifest = `
sections:
  - id: logo
    sequence: 1
  - id: hero-title
    variant: headline
    delay_ms: 150
  - id: signup
    progress: true
    delay_ms: 200
  - id: page-footer
    variant: footer
`

func TestLoadManifest(t *testing.T) {
	elements, err := LoadManifest([]byte(validManifest))
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if len(elements) != 4 {
		t.Fatalf("expected 4 elements, got %d", len(elements))
	}

	logo := elements[0]
	if logo.ID != "logo" || logo.SequenceGroup != 1 || logo.Index != 0 {
		t.Fatalf("unexpected logo element: %+v", logo)
	}
	if logo.Variant != VariantStandard {
		t.Fatalf("expected default variant, got %q", logo.Variant)
	}

	hero := elements[1]
	if hero.Variant != VariantHeadline || hero.BaseDelay != 150*time.Millisecond {
		t.Fatalf("unexpected hero element: %+v", hero)
	}

	if !elements[2].Progress {
		t.Fatal("expected signup section to be the progress section")
	}
	if elements[3].Variant != VariantFooter || elements[3].Index != 3 {
		t.Fatalf("unexpected footer element: %+v", elements[3])
	}
}

func TestLoadManifestRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code platformerrors.Code
	}{
		{"no sections", "sections: []", platformerrors.CodeManifestEmpty},
		{
			"duplicate id",
			"sections:\n  - id: a\n  - id: a",
			platformerrors.CodeManifestDuplicateElement,
		},
		{
			"unknown variant",
			"sections:\n  - id: a\n    variant: sidebar",
			platformerrors.CodeManifestInvalidVariant,
		},
		{
			"negative group",
			"sections:\n  - id: a\n    sequence: -1",
			platformerrors.CodeManifestInvalidGroup,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadManifest([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			var domainErr *platformerrors.Error
			if !stderrors.As(err, &domainErr) {
				t.Fatalf("expected domain error, got %T: %v", err, err)
			}
			if domainErr.Code != tt.code {
				t.Fatalf("expected code %s, got %s", tt.code, domainErr.Code)
			}
		})
	}
}

func TestLoadManifestRejectsMalformedYAML(t *testing.T) {
	if _, err := LoadManifest([]byte("sections: [")); err == nil {
		t.Fatal("expected parse error")
	}
}
