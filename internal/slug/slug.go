// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strings"
)

var (
	// whitespaceRun matches one or more consecutive whitespace characters.
	whitespaceRun = regexp.MustCompile(`\s+`)
	// nonWordOrHyphen matches anything that isn't a word character or hyphen.
	nonWordOrHyphen = regexp.MustCompile(`[^\w-]+`)
)

// Generate creates a URL-friendly slug from the given string: lowercase,
// runs of whitespace collapsed to a single hyphen, everything that is not
// a word character or hyphen stripped.
// Example: "Tech News!! 2026" → "tech-news-2026"
//
// Slugs are generated once, at creation time. A later rename of the
// source name must NOT regenerate the slug — stored URLs depend on it.
func Generate(s string) string {
	result := strings.ToLower(s)
	result = whitespaceRun.ReplaceAllString(result, "-")
	result = nonWordOrHyphen.ReplaceAllString(result, "")
	return result
}
