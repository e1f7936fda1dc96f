package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/sekolah-console/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindBody(t *testing.T, body string, dst interface{}) map[string]string {
	t.Helper()
	Setup()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	res := Bind(c, dst)
	if res == nil {
		return nil
	}
	return res.FieldErrors
}

func TestBindClassName(t *testing.T) {
	var ok model.ClassRequest
	assert.Nil(t, bindBody(t, `{"name":"SD3 Melati"}`, &ok))
	assert.Equal(t, "SD3 Melati", ok.Name)

	var bad model.ClassRequest
	errs := bindBody(t, `{"name":"XY1"}`, &bad)
	require.Contains(t, errs, "name")
	assert.Contains(t, errs["name"], "grade code")

	var missing model.ClassRequest
	errs = bindBody(t, `{}`, &missing)
	require.Contains(t, errs, "name")
	assert.Equal(t, "name is a required field", errs["name"])
}

func TestBindGradeCode(t *testing.T) {
	var req model.UserRequest
	errs := bindBody(t, `{"name":"Rina","email":"rina@sekolah.id","role":"student","grade":"SD7"}`, &req)
	require.Contains(t, errs, "grade")
	assert.Contains(t, errs["grade"], "TKA, TKB")

	req = model.UserRequest{}
	assert.Nil(t, bindBody(t, `{"name":"Rina","email":"rina@sekolah.id","role":"student","grade":"SMP2"}`, &req))
}

func TestBindReportsEveryField(t *testing.T) {
	var req model.RegisterRequest
	errs := bindBody(t, `{"name":"R","email":"not-an-email","password":"123","role":"admin"}`, &req)
	assert.Len(t, errs, 4)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
	assert.Contains(t, errs, "role")
}

func TestBindMalformedJSON(t *testing.T) {
	Setup()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req model.ClassRequest
	res := Bind(c, &req)
	require.NotNil(t, res)
	assert.Empty(t, res.FieldErrors)
	assert.NotEmpty(t, res.GeneralError)
}
