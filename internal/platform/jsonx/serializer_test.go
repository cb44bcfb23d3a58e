package jsonx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string  `json:"name"`
	Rent float64 `json:"rent"`
}

func TestSerializer_RoundTrip(t *testing.T) {
	e := echo.New()
	e.JSONSerializer = Serializer{}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Unit 4B","rent":1500.5}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var p payload
	require.NoError(t, c.Bind(&p))
	assert.Equal(t, "Unit 4B", p.Name)
	assert.Equal(t, 1500.5, p.Rent)

	require.NoError(t, c.JSON(http.StatusOK, p))
	assert.JSONEq(t, `{"name":"Unit 4B","rent":1500.5}`, rec.Body.String())
}

func TestSerializer_SyntaxError(t *testing.T) {
	e := echo.New()
	e.JSONSerializer = Serializer{}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	var p payload
	err := c.Bind(&p)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestMarshal(t *testing.T) {
	b, err := Marshal(payload{Name: "a", Rent: 1}, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"a","rent":1}`, string(b))
}
