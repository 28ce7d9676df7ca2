package pdfops

import (
	"strconv"
	"strings"
)

// ParsePageRanges converts a spec like "1,2,5-7" into an ordered, deduped
// list of 1-based page numbers bounded by maxPages. Malformed parts are
// skipped rather than rejected; an empty or fully malformed spec yields
// nil, so callers decide whether "nothing parsed" means all pages (keep
// lists) or no pages (delete lists).
func ParsePageRanges(spec string, maxPages int) []int {
	var pages []int
	spec = strings.ReplaceAll(spec, " ", "")
	if spec != "" {
		for _, part := range strings.Split(spec, ",") {
			if lo, hi, ok := strings.Cut(part, "-"); ok {
				start, err1 := strconv.Atoi(lo)
				end, err2 := strconv.Atoi(hi)
				if err1 != nil || err2 != nil {
					continue
				}
				if start < 1 {
					start = 1
				}
				if end > maxPages {
					end = maxPages
				}
				for p := start; p <= end; p++ {
					pages = append(pages, p)
				}
			} else {
				p, err := strconv.Atoi(part)
				if err != nil || p < 1 || p > maxPages {
					continue
				}
				pages = append(pages, p)
			}
		}
	}

	seen := make(map[int]bool, len(pages))
	out := pages[:0]
	for _, p := range pages {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// allPages lists every 1-based page of an n-page document.
func allPages(n int) []int {
	pages := make([]int, n)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// selection formats 1-based pages as a pdfcpu page selection.
func selection(pages []int) []string {
	sel := make([]string, len(pages))
	for i, p := range pages {
		sel[i] = strconv.Itoa(p)
	}
	return sel
}
