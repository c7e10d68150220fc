package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"builders-panel/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(h gin.HandlerFunc) (*httptest.ResponseRecorder, Resp) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/notifications?format=text", nil)
	h(c)

	var resp Resp
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestOK(t *testing.T) {
	w, resp := serve(func(c *gin.Context) { OK(c, map[string]int{"count": 2}) })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, MessageSuccess, resp.Message)
	assert.Equal(t, map[string]any{"count": float64(2)}, resp.Data)
}

func TestErrorWithMap(t *testing.T) {
	sentinel := fmt.Errorf("sentinel")
	eMap := ErrorMapping{
		sentinel: errors.NewHTTPError(errors.CodeSourceUnavailable, "source unavailable", http.StatusServiceUnavailable),
	}

	w, resp := serve(func(c *gin.Context) {
		ErrorWithMap(c, fmt.Errorf("wrapped: %w", sentinel), eMap, nil)
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, errors.CodeSourceUnavailable, resp.ErrorCode)

	w, resp = serve(func(c *gin.Context) {
		ErrorWithMap(c, fmt.Errorf("other"), eMap, nil)
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, DefaultErrorMessage, resp.Message)
}

func TestError_Validation(t *testing.T) {
	collector := errors.NewValidationErrorCollector().
		Add(errors.NewValidationError(errors.CodeBadRequest, "format", "must be text or html"))

	w, resp := serve(func(c *gin.Context) { Error(c, collector, nil) })
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ValidationErrorMsg, resp.Message)
	assert.NotNil(t, resp.Errors)
}

func TestPanicError_NonError(t *testing.T) {
	w, resp := serve(func(c *gin.Context) { PanicError(c, "boom", nil) })
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, InternalServerErrorCode, resp.ErrorCode)
}

func TestSplitMessageForDiscord(t *testing.T) {
	long := strings.Repeat("a", DiscordMaxMessageLen+10)
	chunks := splitMessageForDiscord("head\n" + long + "\ntail")

	require.Len(t, chunks, 3)
	assert.Equal(t, "head", chunks[0])
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), DiscordMaxMessageLen)
	}
	assert.True(t, strings.HasSuffix(chunks[2], "tail"))
}

func TestBuildReport(t *testing.T) {
	_, _ = serve(func(c *gin.Context) {
		report := buildInternalServerErrorDataForReportBug(c, "boom", []string{"main.go:1 main"})
		assert.Contains(t, report, "Route   : /api/v1/notifications")
		assert.Contains(t, report, "Params  : format=text")
		assert.Contains(t, report, "[0]: main.go:1 main")
	})
}
