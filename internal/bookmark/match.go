package bookmark

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Dish is a menu item annotated with its bookmark state
type Dish struct {
	Name       string `json:"name"`
	Bookmarked bool   `json:"bookmarked"`
}

// Normalize folds s for matching: NFC, lowercase, no whitespace
func Normalize(s string) string {
	s = strings.ToLower(norm.NFC.String(s))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// IsBookmarked reports whether item and any bookmark contain one another
// after normalization. Empty strings never match.
func IsBookmarked(item string, bookmarks []string) bool {
	target := Normalize(item)
	if target == "" {
		return false
	}
	for _, b := range bookmarks {
		keyword := Normalize(b)
		if keyword == "" {
			continue
		}
		if strings.Contains(target, keyword) || strings.Contains(keyword, target) {
			return true
		}
	}
	return false
}

// Annotate marks every dish against bookmarks, keeping order
func Annotate(dishes []string, bookmarks []string) []Dish {
	out := make([]Dish, 0, len(dishes))
	for _, name := range dishes {
		out = append(out, Dish{Name: name, Bookmarked: IsBookmarked(name, bookmarks)})
	}
	return out
}

/*
This project is the backend API for MealGo, a school meal and timetable companion built on open education data.
API Copyright (C) 2025 MealGo
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
