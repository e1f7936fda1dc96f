package service

import (
	"context"
	"errors"

	"github.com/stemsi/sekolah-console/internal/hierarchy"
	"github.com/stemsi/sekolah-console/internal/model"
	"golang.org/x/sync/errgroup"
)

// ErrClassHidden is returned when the user may not open a class directly.
var ErrClassHidden = errors.New("class is not visible to this user")

// RegionView is a region with the grade categories visible to the user.
type RegionView struct {
	Region     *model.Region          `json:"region"`
	Categories []hierarchy.GradeGroup `json:"categories"`
	ClassCount int                    `json:"class_count"`
}

// CategoryView is one grade category of a region.
type CategoryView struct {
	Region   *model.Region            `json:"region"`
	Category hierarchy.Category       `json:"category"`
	Grades   []hierarchy.GradeClasses `json:"grades"`
}

// ClassView is one class with its subjects.
type ClassView struct {
	Region   *model.Region   `json:"region"`
	Class    *model.Class    `json:"class"`
	Grade    string          `json:"grade"`
	Subjects []model.Subject `json:"subjects"`
}

// NavigationService builds the region → grade → class → subject drill-down.
type NavigationService struct {
	regions  *RegionService
	classes  *ClassService
	subjects *SubjectService
}

// NewNavigationService creates a new NavigationService.
func NewNavigationService(regions *RegionService, classes *ClassService, subjects *SubjectService) *NavigationService {
	return &NavigationService{regions: regions, classes: classes, subjects: subjects}
}

// regionWithClasses fetches a region and its classes in parallel and waits
// for both.
func (s *NavigationService) regionWithClasses(ctx context.Context, regionID int) (*model.Region, []model.Class, error) {
	var (
		region  *model.Region
		classes []model.Class
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.regions.Get(gctx, regionID)
		region = r
		return err
	})
	g.Go(func() error {
		cl, err := s.classes.ListByRegion(gctx, regionID)
		classes = cl
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return region, classes, nil
}

// Region lists the grade categories of a region visible to u.
func (s *NavigationService) Region(ctx context.Context, regionID int, u *model.User) (*RegionView, error) {
	region, classes, err := s.regionWithClasses(ctx, regionID)
	if err != nil {
		return nil, err
	}
	tree := hierarchy.Tree(u)
	visible := 0
	for _, grp := range tree {
		for _, g := range grp.Grades {
			visible += len(hierarchy.VisibleClasses(classes, g, u))
		}
	}
	return &RegionView{Region: region, Categories: tree, ClassCount: visible}, nil
}

// Category lays out one grade category of a region for u.
func (s *NavigationService) Category(ctx context.Context, regionID int, cat hierarchy.Category, u *model.User) (*CategoryView, error) {
	region, classes, err := s.regionWithClasses(ctx, regionID)
	if err != nil {
		return nil, err
	}
	return &CategoryView{
		Region:   region,
		Category: cat,
		Grades:   hierarchy.GroupClasses(cat, classes, u),
	}, nil
}

// Class opens one class of a region with its subjects.
func (s *NavigationService) Class(ctx context.Context, regionID, classID int, u *model.User) (*ClassView, error) {
	var (
		region   *model.Region
		class    *model.Class
		subjects []model.Subject
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.regions.Get(gctx, regionID)
		region = r
		return err
	})
	g.Go(func() error {
		cl, err := s.classes.Get(gctx, classID)
		class = cl
		return err
	})
	g.Go(func() error {
		subs, err := s.subjects.ListByClass(gctx, classID)
		subjects = subs
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !hierarchy.CanViewClass(*class, u) {
		return nil, ErrClassHidden
	}
	grade, _ := hierarchy.MatchGradeCode(class.Name)
	return &ClassView{Region: region, Class: class, Grade: grade, Subjects: subjects}, nil
}
