package cmd

import (
	"fmt"
	"strconv"
	"strings"
)

// pageToPages parses a page selection such as "1,3-5" or "4-" into 1-based page numbers.
// An empty selection means every page.
func pageToPages(page string, total int) ([]int, error) {
	if strings.TrimSpace(page) == "" {
		pages := make([]int, total)
		for i := range total {
			pages[i] = i + 1
		}
		return pages, nil
	}

	var result []int
	for part := range strings.SplitSeq(page, ",") {
		part = strings.TrimSpace(part)
		start, end, isRange := strings.Cut(part, "-")
		if !isRange {
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid page number: %s", part)
			}
			if n < 1 || n > total {
				return nil, fmt.Errorf("page number out of range: %d (total pages: %d)", n, total)
			}
			result = append(result, n)
			continue
		}

		// "-5" starts at the first page, "3-" ends at the last page
		startPage, endPage := 1, total
		var err error
		if start != "" {
			if startPage, err = strconv.Atoi(start); err != nil {
				return nil, fmt.Errorf("invalid page number: %s", start)
			}
		}
		if end != "" {
			if endPage, err = strconv.Atoi(end); err != nil {
				return nil, fmt.Errorf("invalid page number: %s", end)
			}
		}
		if startPage < 1 || endPage > total || startPage > endPage {
			return nil, fmt.Errorf("invalid page range: %s (total pages: %d)", part, total)
		}
		for i := startPage; i <= endPage; i++ {
			result = append(result, i)
		}
	}
	return result, nil
}

// pagesToIndices converts 1-based page numbers to slide indices.
func pagesToIndices(pages []int) []int {
	indices := make([]int, len(pages))
	for i, p := range pages {
		indices[i] = p - 1
	}
	return indices
}
