package content

import (
	"strings"
	"testing"
)

func TestStripMarkup_RemovesTags(t *testing.T) {
	got := StripMarkup("<p>Hello <strong>world</strong></p>")

	if got != "Hello world" {
		t.Errorf("Expected 'Hello world', got '%s'", got)
	}
}

func TestStripMarkup_RemovesScriptsAndStyles(t *testing.T) {
	got := StripMarkup(`<p>Visible</p><script>var hidden = 1;</script><style>p { color: red; }</style>`)

	if got != "Visible" {
		t.Errorf("Expected 'Visible', got '%s'", got)
	}
}

func TestStripMarkup_RemovesShortcodes(t *testing.T) {
	got := StripMarkup(`Before [gallery id="3" size="large"] after`)

	if got != "Before after" {
		t.Errorf("Expected 'Before after', got '%s'", got)
	}
}

func TestStripMarkup_CollapsesWhitespace(t *testing.T) {
	got := StripMarkup("a\n\n  b\t c")

	if got != "a b c" {
		t.Errorf("Expected 'a b c', got '%s'", got)
	}
}

func TestTrimWords(t *testing.T) {
	if got := TrimWords("one two three four", 2); got != "one two…" {
		t.Errorf("Expected 'one two…', got '%s'", got)
	}
	if got := TrimWords("one two", 5); got != "one two" {
		t.Errorf("Expected unchanged text, got '%s'", got)
	}
}

func TestWordCount(t *testing.T) {
	if got := WordCount("one  two\nthree"); got != 3 {
		t.Errorf("Expected 3, got %d", got)
	}
	if got := WordCount(""); got != 0 {
		t.Errorf("Expected 0, got %d", got)
	}
}

func TestSentences(t *testing.T) {
	got := Sentences("First one. Second one! Third one?")

	if len(got) != 3 {
		t.Fatalf("Expected 3 sentences, got %d: %v", len(got), got)
	}
	if got[0] != "First one" {
		t.Errorf("Expected 'First one', got '%s'", got[0])
	}
}

func TestSentences_DropsEmptySegments(t *testing.T) {
	got := Sentences("Really?! Yes...")

	if len(got) != 2 {
		t.Errorf("Expected 2 sentences, got %d: %v", len(got), got)
	}
}

func TestInternalLinks(t *testing.T) {
	html := `<p>
		<a href="/products/grinder">Grinder</a>
		<a href="https://shop.example.com/products/beans">Beans</a>
		<a href="https://other.example.org/page">External</a>
		<a href="mailto:info@example.com">Mail</a>
	</p>`

	links := InternalLinks(html, "https://shop.example.com")

	if len(links) != 2 {
		t.Fatalf("Expected 2 internal links, got %d: %v", len(links), links)
	}
	if links[0].Href != "/products/grinder" || links[0].Anchor != "Grinder" {
		t.Errorf("Unexpected first link: %+v", links[0])
	}
	if links[1].Href != "https://shop.example.com/products/beans" {
		t.Errorf("Unexpected second link: %+v", links[1])
	}
}

func TestIsInternalLink(t *testing.T) {
	if !IsInternalLink("/about", "") {
		t.Error("Expected relative path to be internal")
	}
	if IsInternalLink("https://external.example.org/x", "https://shop.example.com") {
		t.Error("Expected foreign absolute URL to be external")
	}
	if IsInternalLink("#", "") {
		t.Error("Expected bare fragment to be external")
	}
}

func TestLinkPathSlug(t *testing.T) {
	cases := map[string]string{
		"/products/espresso-machine":                        "espresso-machine",
		"/products/espresso-machine/":                       "espresso-machine",
		"https://shop.example.com/products/beans?ref=1#top": "beans",
		"/": "",
	}

	for href, expected := range cases {
		if got := LinkPathSlug(href); got != expected {
			t.Errorf("LinkPathSlug(%q): expected %q, got %q", href, expected, got)
		}
	}
}

func TestExtractMainText_FallsBackToStripMarkup(t *testing.T) {
	got := ExtractMainText("<p>Short fragment</p>")

	if !strings.Contains(got, "Short fragment") {
		t.Errorf("Expected extracted text to contain the fragment, got '%s'", got)
	}
}
