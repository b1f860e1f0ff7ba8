package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// buildBody renders headings sections, each followed by parasPer paragraphs,
// then trailing extra paragraphs. Paragraph text is numbered from 1.
func buildBody(headings, parasPer, extra int) string {
	var lines []string
	n := 0
	para := func() {
		n++
		lines = append(lines, fmt.Sprintf("<p>para %d</p>", n))
	}
	for h := 1; h <= headings; h++ {
		lines = append(lines, fmt.Sprintf("<h2>Section %d</h2>", h))
		for i := 0; i < parasPer; i++ {
			para()
		}
	}
	for i := 0; i < extra; i++ {
		para()
	}
	return strings.Join(lines, "\n")
}

func TestAdInjector_Inject(t *testing.T) {
	t.Parallel()

	const frag = "<aside class=\"ad\"></aside>"
	inj, err := NewAdInjector(frag, DefaultAdPolicy())
	if err != nil {
		t.Fatalf("NewAdInjector() error = %v", err)
	}

	tests := []struct {
		name      string
		body      string
		wantCount int
		wantAfter []string
	}{
		{
			name:      "five headings get ads after second and fourth",
			body:      buildBody(5, 2, 0),
			wantCount: 2,
			wantAfter: []string{"<h2>Section 2</h2>", "<h2>Section 4</h2>"},
		},
		{
			name:      "one heading gets none",
			body:      buildBody(1, 3, 0),
			wantCount: 0,
		},
		{
			name:      "three headings get one",
			body:      buildBody(3, 1, 0),
			wantCount: 1,
			wantAfter: []string{"<h2>Section 2</h2>"},
		},
		{
			name:      "no headings and 24 paragraphs",
			body:      buildBody(0, 0, 24),
			wantCount: 3,
			wantAfter: []string{"<p>para 8</p>", "<p>para 16</p>", "<p>para 24</p>"},
		},
		{
			name:      "exactly 15 paragraphs stays below threshold",
			body:      buildBody(0, 0, 15),
			wantCount: 0,
		},
		{
			name:      "16 paragraphs triggers paragraph pass",
			body:      buildBody(0, 0, 16),
			wantCount: 2,
			wantAfter: []string{"<p>para 8</p>", "<p>para 16</p>"},
		},
		{
			name:      "two headings and many paragraphs use both passes",
			body:      buildBody(2, 8, 0),
			wantCount: 3,
			wantAfter: []string{"<h2>Section 2</h2>", "<p>para 8</p>", "<p>para 16</p>"},
		},
		{
			name:      "three headings disable paragraph pass",
			body:      buildBody(3, 10, 0),
			wantCount: 1,
			wantAfter: []string{"<h2>Section 2</h2>"},
		},
		{
			name:      "empty body",
			body:      "",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := inj.Inject(tt.body)

			if n := strings.Count(got, frag); n != tt.wantCount {
				t.Errorf("ad count = %d, want %d\n%s", n, tt.wantCount, got)
			}
			for _, anchor := range tt.wantAfter {
				if !strings.Contains(got, anchor+"\n"+frag+"\n") {
					t.Errorf("expected ad right after %q\n%s", anchor, got)
				}
			}
			if stripped := strings.ReplaceAll(got, "\n"+frag+"\n", ""); stripped != tt.body {
				t.Errorf("removing ads does not restore input:\n got %q\nwant %q", stripped, tt.body)
			}
		})
	}
}

func TestAdInjector_Idempotent(t *testing.T) {
	t.Parallel()

	inj := DefaultAdInjector()

	bodies := map[string]string{
		"headings":   buildBody(5, 2, 0),
		"paragraphs": buildBody(0, 0, 24),
		"mixed":      buildBody(2, 9, 3),
		"none":       buildBody(1, 1, 0),
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			once := inj.Inject(body)
			twice := inj.Inject(once)
			if once != twice {
				t.Errorf("second Inject changed output:\nonce:  %q\ntwice: %q", once, twice)
			}
		})
	}
}

func TestAdInjector_CustomPolicy(t *testing.T) {
	t.Parallel()

	const frag = "<div>ad</div>"
	inj, err := NewAdInjector(frag, AdPolicy{
		AfterHeadings:     []int{1},
		MinParagraphs:     2,
		MaxHeadings:       2,
		ParagraphInterval: 2,
	})
	if err != nil {
		t.Fatalf("NewAdInjector() error = %v", err)
	}

	got := inj.Inject(buildBody(1, 4, 0))
	want := strings.Join([]string{
		"<h2>Section 1</h2>\n" + frag + "\n",
		"<p>para 1</p>",
		"<p>para 2</p>\n" + frag + "\n",
		"<p>para 3</p>",
		"<p>para 4</p>\n" + frag + "\n",
	}, "\n")
	if got != want {
		t.Errorf("Inject() =\n%q\nwant\n%q", got, want)
	}
}

func TestAdInjector_HeadingWithAttributesNotCounted(t *testing.T) {
	t.Parallel()

	inj := DefaultAdInjector()
	body := `<h2 id="a">A</h2>` + "\n" + `<h2 id="b">B</h2>`
	if got := inj.Inject(body); got != body {
		t.Errorf("Inject() = %q, want unchanged", got)
	}
}

func TestNewAdInjector_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fragment string
		policy   AdPolicy
		wantErr  error
	}{
		{
			name:     "fragment with paragraph",
			fragment: "<div><p>ad</p></div>",
			policy:   DefaultAdPolicy(),
			wantErr:  ErrInvalidAdFragment,
		},
		{
			name:     "fragment with section heading",
			fragment: "<h2>Sponsored</h2>",
			policy:   DefaultAdPolicy(),
			wantErr:  ErrInvalidAdFragment,
		},
		{
			name:     "blank fragment",
			fragment: "  \n",
			policy:   DefaultAdPolicy(),
			wantErr:  ErrInvalidAdFragment,
		},
		{
			name:     "zero interval",
			fragment: "<div></div>",
			policy:   AdPolicy{ParagraphInterval: 0},
		},
		{
			name:     "heading position below one",
			fragment: "<div></div>",
			policy:   AdPolicy{AfterHeadings: []int{0}, ParagraphInterval: 8},
		},
		{
			name:     "negative min paragraphs",
			fragment: "<div></div>",
			policy:   AdPolicy{MinParagraphs: -1, ParagraphInterval: 8},
		},
		{
			name:     "negative max headings",
			fragment: "<div></div>",
			policy:   AdPolicy{MaxHeadings: -1, ParagraphInterval: 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewAdInjector(tt.fragment, tt.policy)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultAdFragment_Valid(t *testing.T) {
	t.Parallel()

	if err := ValidateAdFragment(DefaultAdFragment); err != nil {
		t.Errorf("ValidateAdFragment(DefaultAdFragment) = %v", err)
	}
	if err := DefaultAdPolicy().Validate(); err != nil {
		t.Errorf("DefaultAdPolicy().Validate() = %v", err)
	}
}
