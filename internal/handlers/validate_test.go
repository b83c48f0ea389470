package handlers

import (
	"strings"
	"testing"
)

func TestValidatePost(t *testing.T) {
	tests := []struct {
		name   string
		in     postInput
		wantOK bool
	}{
		{"valid", postInput{Name: "A Story", Description: "body"}, true},
		{"empty title", postInput{Name: ""}, false},
		{"whitespace title", postInput{Name: "   "}, false},
		{"title too long", postInput{Name: strings.Repeat("x", 301)}, false},
		{"body too long", postInput{Name: "ok", Description: strings.Repeat("x", 200_001)}, false},
		{"author too long", postInput{Name: "ok", Author: strings.Repeat("x", 121)}, false},
		{"too many keywords", postInput{Name: "ok", Keywords: make([]string, 21)}, false},
		{"keyword too long", postInput{Name: "ok", Keywords: []string{strings.Repeat("x", 81)}}, false},
		{"nepali title", postInput{Name: "नेपालको ताजा समाचार"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validatePost(&tt.in)
			if (msg == "") != tt.wantOK {
				t.Errorf("validatePost() = %q, wantOK = %v", msg, tt.wantOK)
			}
		})
	}
}

func TestValidateCategoryName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOK bool
	}{
		{"valid", "Politics", true},
		{"minimum length", "Ok", true},
		{"too short", "X", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"too long", strings.Repeat("x", 81), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateCategoryName(tt.input)
			if (msg == "") != tt.wantOK {
				t.Errorf("validateCategoryName(%q) = %q, wantOK = %v", tt.input, msg, tt.wantOK)
			}
		})
	}
}
