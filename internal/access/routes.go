package access

import (
	"net/http"

	"github.com/stemsi/sekolah-console/internal/model"
)

// Route binds one console endpoint to the handler named Handler and the
// roles allowed to reach it.
type Route struct {
	Method  string
	Path    string
	Handler string
	// Public routes skip the guard entirely.
	Public bool
	// Roles is the allow-list; empty admits any authenticated user.
	Roles []model.Role
}

var (
	anyUser   []model.Role
	adminOnly = []model.Role{model.RoleAdmin}
	staff     = []model.Role{model.RoleAdmin, model.RoleTeacher}
	academic  = []model.Role{model.RoleAdmin, model.RoleTeacher, model.RoleStudent}
)

// Routes is the console's complete authorization matrix.
var Routes = []Route{
	// Authentication
	{Method: http.MethodGet, Path: "/login", Handler: "auth.login_page", Public: true},
	{Method: http.MethodGet, Path: "/login/:role", Handler: "auth.login_page", Public: true},
	{Method: http.MethodPost, Path: "/login", Handler: "auth.login", Public: true},
	{Method: http.MethodPost, Path: "/login/:role", Handler: "auth.login", Public: true},
	{Method: http.MethodGet, Path: "/register", Handler: "auth.register_page", Public: true},
	{Method: http.MethodPost, Path: "/register", Handler: "auth.register", Public: true},
	{Method: http.MethodPost, Path: "/logout", Handler: "auth.logout", Public: true},
	{Method: http.MethodGet, Path: "/me", Handler: "auth.me", Roles: anyUser},

	// Dashboard
	{Method: http.MethodGet, Path: "/dashboard", Handler: "dashboard.show", Roles: anyUser},

	// User administration
	{Method: http.MethodGet, Path: "/users", Handler: "users.list", Roles: adminOnly},
	{Method: http.MethodPost, Path: "/users", Handler: "users.create", Roles: adminOnly},
	{Method: http.MethodPut, Path: "/users/:id", Handler: "users.update", Roles: adminOnly},
	{Method: http.MethodDelete, Path: "/users/:id", Handler: "users.delete", Roles: adminOnly},

	// Students and teachers
	{Method: http.MethodGet, Path: "/students", Handler: "students.list", Roles: staff},
	{Method: http.MethodPost, Path: "/students", Handler: "students.create", Roles: adminOnly},
	{Method: http.MethodPut, Path: "/students/:id", Handler: "students.update", Roles: adminOnly},
	{Method: http.MethodDelete, Path: "/students/:id", Handler: "students.delete", Roles: adminOnly},
	{Method: http.MethodGet, Path: "/teachers", Handler: "teachers.list", Roles: adminOnly},
	{Method: http.MethodPost, Path: "/teachers", Handler: "teachers.create", Roles: adminOnly},
	{Method: http.MethodPut, Path: "/teachers/:id", Handler: "teachers.update", Roles: adminOnly},
	{Method: http.MethodDelete, Path: "/teachers/:id", Handler: "teachers.delete", Roles: adminOnly},

	// Notifications and banners
	{Method: http.MethodGet, Path: "/notifications", Handler: "notifications.list", Roles: anyUser},
	{Method: http.MethodPost, Path: "/notifications", Handler: "notifications.create", Roles: staff},
	{Method: http.MethodPut, Path: "/notifications/:id", Handler: "notifications.update", Roles: staff},
	{Method: http.MethodDelete, Path: "/notifications/:id", Handler: "notifications.delete", Roles: staff},
	{Method: http.MethodGet, Path: "/ws/notifications", Handler: "notifications.feed", Roles: anyUser},
	{Method: http.MethodGet, Path: "/banners", Handler: "banners.list", Roles: anyUser},
	{Method: http.MethodPost, Path: "/banners", Handler: "banners.create", Roles: adminOnly},
	{Method: http.MethodPut, Path: "/banners/:id", Handler: "banners.update", Roles: adminOnly},
	{Method: http.MethodDelete, Path: "/banners/:id", Handler: "banners.delete", Roles: adminOnly},
	{Method: http.MethodPost, Path: "/banners/:id/image", Handler: "banners.upload_image", Roles: adminOnly},

	// Region → grade → class drill-down
	{Method: http.MethodGet, Path: "/classes", Handler: "classes.regions", Roles: academic},
	{Method: http.MethodPost, Path: "/classes", Handler: "classes.create_region", Roles: adminOnly},
	{Method: http.MethodGet, Path: "/classes/:regionId", Handler: "classes.region", Roles: academic},
	{Method: http.MethodPut, Path: "/classes/:regionId", Handler: "classes.update_region", Roles: adminOnly},
	{Method: http.MethodDelete, Path: "/classes/:regionId", Handler: "classes.delete_region", Roles: adminOnly},
	{Method: http.MethodGet, Path: "/classes/:regionId/grade/:category", Handler: "classes.category", Roles: academic},
	{Method: http.MethodPost, Path: "/classes/:regionId/class", Handler: "classes.create_class", Roles: adminOnly},
	{Method: http.MethodGet, Path: "/classes/:regionId/class/:classId", Handler: "classes.class", Roles: academic},
	{Method: http.MethodPut, Path: "/classes/:regionId/class/:classId", Handler: "classes.update_class", Roles: adminOnly},
	{Method: http.MethodDelete, Path: "/classes/:regionId/class/:classId", Handler: "classes.delete_class", Roles: adminOnly},
	{Method: http.MethodPost, Path: "/classes/:regionId/class/:classId/subjects", Handler: "subjects.create", Roles: staff},

	// Audit trail
	{Method: http.MethodGet, Path: "/audit", Handler: "audit.list", Roles: adminOnly},

	// Subject → session
	{Method: http.MethodPut, Path: "/subjects/:subjectId", Handler: "subjects.update", Roles: staff},
	{Method: http.MethodDelete, Path: "/subjects/:subjectId", Handler: "subjects.delete", Roles: staff},
	{Method: http.MethodGet, Path: "/subjects/:subjectId/sessions", Handler: "sessions.list", Roles: academic},
	{Method: http.MethodPost, Path: "/subjects/:subjectId/sessions", Handler: "sessions.create", Roles: staff},
	{Method: http.MethodGet, Path: "/subjects/:subjectId/sessions/:sessionId", Handler: "sessions.show", Roles: academic},
	{Method: http.MethodPut, Path: "/subjects/:subjectId/sessions/:sessionId", Handler: "sessions.update", Roles: staff},
	{Method: http.MethodDelete, Path: "/subjects/:subjectId/sessions/:sessionId", Handler: "sessions.delete", Roles: staff},
}

// Find returns the route registered for method and path pattern.
func Find(method, path string) (Route, bool) {
	for _, r := range Routes {
		if r.Method == method && r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}
