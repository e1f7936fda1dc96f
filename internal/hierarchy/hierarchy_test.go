package hierarchy

import (
	"testing"

	"github.com/stemsi/sekolah-console/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

var sampleClasses = []model.Class{
	{ID: 1, Name: "SD1-A", RegionID: 7},
	{ID: 2, Name: "sd1-b", RegionID: 7},
	{ID: 3, Name: "SD2-A", RegionID: 7},
	{ID: 4, Name: "SMP1 Unggulan", RegionID: 7},
	{ID: 5, Name: "TKA", RegionID: 7},
}

func TestValidateClassName(t *testing.T) {
	valid := []string{"SD1-A", "sd1-a", "TKB", "SMP3 Bilingual", "  SD6  "}
	for _, name := range valid {
		assert.NoError(t, ValidateClassName(name), name)
	}

	assert.ErrorIs(t, ValidateClassName(""), ErrClassNameEmpty)
	assert.ErrorIs(t, ValidateClassName("   "), ErrClassNameEmpty)
	assert.ErrorIs(t, ValidateClassName("XY1"), ErrClassNamePrefix)
	assert.ErrorIs(t, ValidateClassName("TK"), ErrClassNamePrefix)
	assert.ErrorIs(t, ValidateClassName("SD7"), ErrClassNamePrefix)

	long := "SD1-"
	for len(long) <= MaxClassNameLength {
		long += "x"
	}
	assert.ErrorIs(t, ValidateClassName(long), ErrClassNameTooLong)
	assert.NoError(t, ValidateClassName(long[:MaxClassNameLength]))
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"TKA", "TKB"}, GradesIn(CategoryTK))
	assert.Equal(t, []string{"SD1", "SD2", "SD3", "SD4", "SD5", "SD6"}, GradesIn(CategorySD))
	assert.Equal(t, []string{"SMP1", "SMP2", "SMP3"}, GradesIn(CategorySMP))

	cat, ok := CategoryOf("smp2")
	require.True(t, ok)
	assert.Equal(t, CategorySMP, cat)

	_, ok = CategoryOf("SMA1")
	assert.False(t, ok)

	cat, ok = ParseCategory("sd")
	require.True(t, ok)
	assert.Equal(t, CategorySD, cat)
}

func TestVisibleGrades(t *testing.T) {
	admin := &model.User{Role: model.RoleAdmin}
	student := &model.User{Role: model.RoleStudent, Grade: "SD2", ClassID: intPtr(3)}

	assert.Equal(t, GradesIn(CategorySD), VisibleGrades(CategorySD, admin))
	assert.Equal(t, GradesIn(CategorySD), VisibleGrades(CategorySD, nil))
	assert.Equal(t, []string{"SD2"}, VisibleGrades(CategorySD, student))
	assert.Empty(t, VisibleGrades(CategorySMP, student))

	lower := &model.User{Role: model.RoleStudent, Grade: "sd2"}
	assert.Equal(t, []string{"SD2"}, VisibleGrades(CategorySD, lower))
}

func TestVisibleClasses(t *testing.T) {
	teacher := &model.User{Role: model.RoleTeacher}
	got := VisibleClasses(sampleClasses, "SD1", teacher)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 2, got[1].ID)

	student := &model.User{Role: model.RoleStudent, Grade: "SD2", ClassID: intPtr(3)}
	got = VisibleClasses(sampleClasses, "SD2", student)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)

	noClass := &model.User{Role: model.RoleStudent, Grade: "SD2"}
	assert.Empty(t, VisibleClasses(sampleClasses, "SD2", noClass))
}

func TestTree(t *testing.T) {
	all := Tree(&model.User{Role: model.RoleParent})
	require.Len(t, all, 3)
	assert.Equal(t, CategoryTK, all[0].Category)
	assert.Equal(t, CategorySMP, all[2].Category)

	student := Tree(&model.User{Role: model.RoleStudent, Grade: "SD2", ClassID: intPtr(3)})
	require.Len(t, student, 1)
	assert.Equal(t, GradeGroup{Category: CategorySD, Grades: []string{"SD2"}}, student[0])
}

func TestGroupClasses(t *testing.T) {
	student := &model.User{Role: model.RoleStudent, Grade: "SD2", ClassID: intPtr(3)}
	groups := GroupClasses(CategorySD, sampleClasses, student)
	require.Len(t, groups, 1)
	assert.Equal(t, "SD2", groups[0].Grade)
	require.Len(t, groups[0].Classes, 1)
	assert.Equal(t, "SD2-A", groups[0].Classes[0].Name)

	admin := &model.User{Role: model.RoleAdmin}
	groups = GroupClasses(CategorySD, sampleClasses, admin)
	require.Len(t, groups, 6)
	assert.Len(t, groups[0].Classes, 2)
	assert.Empty(t, groups[5].Classes)
}

func TestCanViewClass(t *testing.T) {
	student := &model.User{Role: model.RoleStudent, ClassID: intPtr(3)}
	assert.True(t, CanViewClass(sampleClasses[2], student))
	assert.False(t, CanViewClass(sampleClasses[0], student))
	assert.True(t, CanViewClass(sampleClasses[0], &model.User{Role: model.RoleTeacher}))
}
