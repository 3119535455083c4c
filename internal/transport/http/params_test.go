package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/trades?"+rawQuery, nil)
	return c
}

func TestParseTime_BareDateUsesLocation(t *testing.T) {
	tokyo := time.FixedZone("UTC+9", 9*3600)

	start, err := parseTime("2024-08-01", false, tokyo)
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2024, 8, 1, 0, 0, 0, 0, tokyo)))
	assert.Equal(t, time.Date(2024, 7, 31, 15, 0, 0, 0, time.UTC), start.UTC())

	end, err := parseTime("2024-08-01", true, tokyo)
	require.NoError(t, err)
	assert.True(t, end.Equal(time.Date(2024, 8, 1, 23, 59, 59, int(time.Second-time.Nanosecond), tokyo)))

	rfc, err := parseTime("2024-08-01T10:00:00Z", true, tokyo)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 8, 1, 10, 0, 0, 0, time.UTC), rfc.UTC())

	_, err = parseTime("01/08/2024", false, tokyo)
	assert.Error(t, err)
}

func TestParseFilters_DateRangeInLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}

	f, err := parseFilters(queryContext("from=2024-08-01&to=2024-08-02"), ny)
	require.NoError(t, err)
	require.NotNil(t, f)
	require.NotNil(t, f.DateRange)
	assert.Equal(t, time.Date(2024, 8, 1, 4, 0, 0, 0, time.UTC), f.DateRange.Start.UTC())
	assert.Equal(t, time.Date(2024, 8, 3, 3, 59, 59, int(time.Second-time.Nanosecond), time.UTC), f.DateRange.End.UTC())

	none, err := parseFilters(queryContext("page=2"), ny)
	require.NoError(t, err)
	assert.Nil(t, none)
}
