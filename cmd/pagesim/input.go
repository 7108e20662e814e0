package main

import (
	"strconv"
	"strings"

	"github.com/sibexico/pagesim/paging"
)

// parsePage parses a single page number
func parsePage(s string) (paging.Page, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, paging.ErrParse("parsePage", s, err)
	}
	return paging.Page(n), nil
}

// parsePages parses a comma separated page list, rejecting any bad entry
func parsePages(s string) ([]paging.Page, error) {
	var pages []paging.Page
	for _, field := range strings.Split(s, ",") {
		if strings.TrimSpace(field) == "" {
			continue
		}
		page, err := parsePage(field)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// parsePagesLenient parses a comma separated page list and skips entries
// that are not numbers
func parsePagesLenient(s string) []paging.Page {
	var pages []paging.Page
	for _, field := range strings.Split(s, ",") {
		if page, err := parsePage(field); err == nil {
			pages = append(pages, page)
		}
	}
	return pages
}

// parseAddress parses "segment offset" or "segment:offset"
func parseAddress(s string) (int, int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ':' || r == ' ' || r == '\t'
	})
	if len(fields) != 2 {
		return 0, 0, paging.NewSimError(paging.ErrCodeInputParse, "parseAddress",
			"expected segment and offset", nil)
	}
	segment, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, paging.ErrParse("parseAddress", fields[0], err)
	}
	offset, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, paging.ErrParse("parseAddress", fields[1], err)
	}
	return segment, offset, nil
}
