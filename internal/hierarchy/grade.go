// Package hierarchy holds the fixed grade enumeration and the role-sensitive
// filtering applied along the region → grade → class drill-down.
package hierarchy

import (
	"errors"
	"strings"
)

// Category groups grade codes by prefix.
type Category string

const (
	CategoryTK  Category = "TK"
	CategorySD  Category = "SD"
	CategorySMP Category = "SMP"
)

// Categories in display order.
var Categories = []Category{CategoryTK, CategorySD, CategorySMP}

// GradeCodes is the fixed enumeration every class name must start with.
var GradeCodes = []string{
	"TKA", "TKB",
	"SD1", "SD2", "SD3", "SD4", "SD5", "SD6",
	"SMP1", "SMP2", "SMP3",
}

// MaxClassNameLength bounds a class name including its grade code.
const MaxClassNameLength = 50

var (
	ErrClassNameEmpty   = errors.New("class name is required")
	ErrClassNameTooLong = errors.New("class name is too long")
	ErrClassNamePrefix  = errors.New("class name must start with a grade code")
)

// ParseCategory returns the category named by s, ignoring case.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// CategoryOf returns the category grade code belongs to.
func CategoryOf(code string) (Category, bool) {
	if !IsGradeCode(code) {
		return "", false
	}
	code = strings.ToUpper(code)
	for _, c := range Categories {
		if strings.HasPrefix(code, string(c)) {
			return c, true
		}
	}
	return "", false
}

// IsGradeCode reports whether code is one of GradeCodes, ignoring case.
func IsGradeCode(code string) bool {
	for _, g := range GradeCodes {
		if strings.EqualFold(g, code) {
			return true
		}
	}
	return false
}

// GradesIn lists the grade codes of category c in enumeration order.
func GradesIn(c Category) []string {
	var grades []string
	for _, g := range GradeCodes {
		if strings.HasPrefix(g, string(c)) {
			grades = append(grades, g)
		}
	}
	return grades
}

// MatchGradeCode returns the grade code name starts with, ignoring case.
func MatchGradeCode(name string) (string, bool) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for _, g := range GradeCodes {
		if strings.HasPrefix(upper, g) {
			return g, true
		}
	}
	return "", false
}

// HasGradePrefix reports whether name starts with code, ignoring case.
func HasGradePrefix(name, code string) bool {
	name = strings.TrimSpace(name)
	return len(name) >= len(code) && strings.EqualFold(name[:len(code)], code)
}

// ValidateClassName accepts a grade code followed by any free-text suffix.
func ValidateClassName(name string) error {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return ErrClassNameEmpty
	case len(name) > MaxClassNameLength:
		return ErrClassNameTooLong
	}
	if _, ok := MatchGradeCode(name); !ok {
		return ErrClassNamePrefix
	}
	return nil
}
