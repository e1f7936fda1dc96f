package hierarchy

import (
	"strings"

	"github.com/stemsi/sekolah-console/internal/model"
)

// GradeGroup is one category with the grades visible to the current user.
type GradeGroup struct {
	Category Category `json:"category"`
	Grades   []string `json:"grades"`
}

// GradeClasses is one visible grade with the classes listed under it.
type GradeClasses struct {
	Grade   string        `json:"grade"`
	Classes []model.Class `json:"classes"`
}

func isStudent(u *model.User) bool {
	return u != nil && u.Role == model.RoleStudent
}

// VisibleGrades lists the grades of c shown to u. Students see only their
// own grade; everyone else sees the whole category.
func VisibleGrades(c Category, u *model.User) []string {
	grades := GradesIn(c)
	if !isStudent(u) {
		return grades
	}
	for _, g := range grades {
		if strings.EqualFold(g, strings.TrimSpace(u.Grade)) {
			return []string{g}
		}
	}
	return nil
}

// VisibleClasses lists the classes shown to u under grade. Students see only
// their own class; everyone else sees every class named with the grade code.
func VisibleClasses(classes []model.Class, grade string, u *model.User) []model.Class {
	visible := []model.Class{}
	for _, cl := range classes {
		if isStudent(u) {
			if u.ClassID != nil && cl.ID == *u.ClassID {
				visible = append(visible, cl)
			}
			continue
		}
		if HasGradePrefix(cl.Name, grade) {
			visible = append(visible, cl)
		}
	}
	return visible
}

// Tree returns every category with its grades visible to u. Categories left
// with no visible grade are omitted.
func Tree(u *model.User) []GradeGroup {
	groups := []GradeGroup{}
	for _, c := range Categories {
		grades := VisibleGrades(c, u)
		if len(grades) == 0 {
			continue
		}
		groups = append(groups, GradeGroup{Category: c, Grades: grades})
	}
	return groups
}

// GroupClasses lays out category c for u: each visible grade with its
// visible classes.
func GroupClasses(c Category, classes []model.Class, u *model.User) []GradeClasses {
	var out []GradeClasses
	for _, g := range VisibleGrades(c, u) {
		out = append(out, GradeClasses{Grade: g, Classes: VisibleClasses(classes, g, u)})
	}
	return out
}

// CanViewClass reports whether u may open class cl directly.
func CanViewClass(cl model.Class, u *model.User) bool {
	if !isStudent(u) {
		return true
	}
	return u.ClassID != nil && *u.ClassID == cl.ID
}
