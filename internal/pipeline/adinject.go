package pipeline

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// ErrInvalidAdFragment indicates an ad fragment that would itself be counted
// as a heading or paragraph, or is empty.
var ErrInvalidAdFragment = errors.New("invalid ad fragment")

// DefaultAdFragment is the in-article ad unit spliced into post bodies.
const DefaultAdFragment = `<div class="ad-container" style="margin: 30px 0; text-align: center;">
    <ins class="adsbygoogle"
         style="display:block; text-align:center;"
         data-ad-layout="in-article"
         data-ad-format="fluid"
         data-ad-client="ca-pub-6705222517983610"
         data-ad-slot="1879717900"></ins>
    <script>
         (adsbygoogle = window.adsbygoogle || []).push({});
    </script>
</div>`

var (
	sectionHeadingPattern = regexp.MustCompile(`<h2>.*?</h2>`)
	paragraphPattern      = regexp.MustCompile(`<p>.*?</p>`)
)

// AdPolicy decides where ads go.
type AdPolicy struct {
	// AfterHeadings lists the 1-based <h2> occurrences followed by an ad.
	AfterHeadings []int
	// MinParagraphs is the paragraph count the body must exceed before
	// paragraph-based placement is considered.
	MinParagraphs int
	// MaxHeadings is the <h2> count below which paragraph-based placement applies.
	MaxHeadings int
	// ParagraphInterval places an ad after every n-th paragraph.
	ParagraphInterval int
}

// DefaultAdPolicy returns ads after the 2nd and 4th section heading, or every
// 8th paragraph for long posts with fewer than 3 sections.
func DefaultAdPolicy() AdPolicy {
	return AdPolicy{
		AfterHeadings:     []int{2, 4},
		MinParagraphs:     15,
		MaxHeadings:       3,
		ParagraphInterval: 8,
	}
}

// Validate checks that the policy values are usable.
func (p AdPolicy) Validate() error {
	for _, n := range p.AfterHeadings {
		if n < 1 {
			return fmt.Errorf("afterHeadings: must be >= 1, got %d", n)
		}
	}
	if p.MinParagraphs < 0 {
		return fmt.Errorf("minParagraphs: must be >= 0, got %d", p.MinParagraphs)
	}
	if p.MaxHeadings < 0 {
		return fmt.Errorf("maxHeadings: must be >= 0, got %d", p.MaxHeadings)
	}
	if p.ParagraphInterval < 1 {
		return fmt.Errorf("paragraphInterval: must be >= 1, got %d", p.ParagraphInterval)
	}
	return nil
}

// ValidateAdFragment rejects fragments that contain <h2> or <p> markup, since
// those would be counted on a later pass.
func ValidateAdFragment(fragment string) error {
	if strings.TrimSpace(fragment) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidAdFragment)
	}
	for _, tag := range []string{"<h2>", "<p>"} {
		if strings.Contains(fragment, tag) {
			return fmt.Errorf("%w: contains %s", ErrInvalidAdFragment, tag)
		}
	}
	return nil
}

// blockKind types a piece of the segmented body.
type blockKind int

const (
	blockOther blockKind = iota
	blockHeading
	blockParagraph
	blockAd
)

// block is a typed slice of the body. Serializing concatenates Text in order.
type block struct {
	kind blockKind
	text string
}

// AdInjector splices ad fragments into rendered post bodies.
type AdInjector struct {
	fragment  string
	policy    AdPolicy
	adPattern *regexp.Regexp
}

// NewAdInjector validates the fragment and policy and returns an injector.
func NewAdInjector(fragment string, policy AdPolicy) (*AdInjector, error) {
	if err := ValidateAdFragment(fragment); err != nil {
		return nil, err
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("ad policy: %w", err)
	}
	return &AdInjector{
		fragment:  fragment,
		policy:    policy,
		adPattern: regexp.MustCompile(`\n?` + regexp.QuoteMeta(fragment) + `\n?`),
	}, nil
}

// DefaultAdInjector returns an injector with DefaultAdFragment and DefaultAdPolicy.
func DefaultAdInjector() *AdInjector {
	inj, err := NewAdInjector(DefaultAdFragment, DefaultAdPolicy())
	if err != nil {
		panic("pipeline: default ad injector: " + err.Error())
	}
	return inj
}

// Inject returns body with ad fragments inserted.
//
// Ads go after the configured <h2> occurrences. When the body has more than
// MinParagraphs paragraphs and fewer than MaxHeadings section headings, ads are
// additionally placed after every ParagraphInterval-th paragraph. A position
// already followed by the ad fragment is left alone, so Inject is idempotent.
func (a *AdInjector) Inject(body string) string {
	blocks := a.segment(body)

	blocks, headings := a.placeAfterHeadings(blocks)

	if countParagraphTags(blocks) > a.policy.MinParagraphs && headings < a.policy.MaxHeadings {
		blocks = a.placeAfterParagraphs(splitParagraphs(blocks))
	}

	return serialize(blocks)
}

// segment splits the body into ad, <h2> and other blocks.
func (a *AdInjector) segment(body string) []block {
	var blocks []block
	for _, piece := range splitByPattern(body, a.adPattern, blockAd) {
		if piece.kind != blockOther {
			blocks = append(blocks, piece)
			continue
		}
		blocks = append(blocks, splitByPattern(piece.text, sectionHeadingPattern, blockHeading)...)
	}
	return blocks
}

// placeAfterHeadings inserts ads after the configured <h2> occurrences and
// returns the total number of <h2> blocks seen.
func (a *AdInjector) placeAfterHeadings(blocks []block) ([]block, int) {
	out := make([]block, 0, len(blocks)+len(a.policy.AfterHeadings))
	count := 0
	for i, b := range blocks {
		out = append(out, b)
		if b.kind != blockHeading {
			continue
		}
		count++
		if slices.Contains(a.policy.AfterHeadings, count) && !followedByAd(blocks, i) {
			out = append(out, a.adBlock())
		}
	}
	return out, count
}

// placeAfterParagraphs inserts an ad after every ParagraphInterval-th paragraph.
func (a *AdInjector) placeAfterParagraphs(blocks []block) []block {
	out := make([]block, 0, len(blocks)+len(blocks)/a.policy.ParagraphInterval)
	count := 0
	for i, b := range blocks {
		out = append(out, b)
		if b.kind != blockParagraph {
			continue
		}
		count++
		if count%a.policy.ParagraphInterval == 0 && !followedByAd(blocks, i) {
			out = append(out, a.adBlock())
		}
	}
	return out
}

func (a *AdInjector) adBlock() block {
	return block{kind: blockAd, text: "\n" + a.fragment + "\n"}
}

// followedByAd reports whether the block after index i is an ad.
func followedByAd(blocks []block, i int) bool {
	return i+1 < len(blocks) && blocks[i+1].kind == blockAd
}

// splitParagraphs refines other blocks into paragraph and other blocks.
func splitParagraphs(blocks []block) []block {
	out := make([]block, 0, len(blocks))
	for _, b := range blocks {
		if b.kind != blockOther {
			out = append(out, b)
			continue
		}
		out = append(out, splitByPattern(b.text, paragraphPattern, blockParagraph)...)
	}
	return out
}

// countParagraphTags counts <p> openings outside ad blocks.
func countParagraphTags(blocks []block) int {
	n := 0
	for _, b := range blocks {
		if b.kind != blockAd {
			n += strings.Count(b.text, "<p>")
		}
	}
	return n
}

// splitByPattern cuts text into matches of kind and the other text between them.
// Empty other pieces are dropped; they serialize to nothing.
func splitByPattern(text string, pattern *regexp.Regexp, kind blockKind) []block {
	var out []block
	last := 0
	for _, loc := range pattern.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			out = append(out, block{kind: blockOther, text: text[last:loc[0]]})
		}
		out = append(out, block{kind: kind, text: text[loc[0]:loc[1]]})
		last = loc[1]
	}
	if last < len(text) {
		out = append(out, block{kind: blockOther, text: text[last:]})
	}
	return out
}

func serialize(blocks []block) string {
	var b strings.Builder
	for _, blk := range blocks {
		b.WriteString(blk.text)
	}
	return b.String()
}
