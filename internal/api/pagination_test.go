package api

import (
	"strings"
	"testing"
)

func TestPageBody_PaginationLinks(t *testing.T) {
	p := PageBody[int]{Total: 250, Offset: 100, Limit: 100}
	links := p.PaginationLinks("/api/v1/viz/x/render")

	joined := strings.Join(links, "\n")
	for _, want := range []string{
		`</api/v1/viz/x/render?offset=0&limit=100>; rel="first"`,
		`</api/v1/viz/x/render?offset=0&limit=100>; rel="prev"`,
		`</api/v1/viz/x/render?offset=200&limit=100>; rel="next"`,
		`</api/v1/viz/x/render?offset=200&limit=100>; rel="last"`,
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing %q in:\n%s", want, joined)
		}
	}
}

func TestPageBody_FirstPageHasNoPrev(t *testing.T) {
	p := PageBody[int]{Total: 50, Offset: 0, Limit: 100}
	for _, link := range p.PaginationLinks("/x") {
		if strings.Contains(link, `rel="prev"`) {
			t.Fatalf("unexpected prev link: %s", link)
		}
		if strings.Contains(link, `rel="next"`) {
			t.Fatalf("unexpected next link on a complete page: %s", link)
		}
	}
}

func TestPageBody_ZeroLimit(t *testing.T) {
	p := PageBody[int]{Total: 10}
	if links := p.PaginationLinks("/x"); links != nil {
		t.Fatalf("zero limit produced links: %v", links)
	}
}
