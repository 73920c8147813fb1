package httpapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/monegros/internal/adapters/normalizer"
	"github.com/baditaflorin/monegros/internal/core/club"
	"github.com/baditaflorin/monegros/internal/ports"
)

func do(t *testing.T, method, path, body string) *fasthttp.RequestCtx {
	t.Helper()
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	ctx.Request.SetBodyString(body)

	s := NewServer(club.NewNormalizer(normalizer.NewDefaultNormalizer()), ports.NopLogger{})
	s.Handle(&ctx)
	return &ctx
}

func TestNormalizeEndpoint(t *testing.T) {
	ctx := do(t, fasthttp.MethodPost, "/normalize", `{"clubs":["C.C. Huesca",null,"",42,"Club Ciclista Oscense"]}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp NormalizeResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, []string{"HUESCA", "INDEPENDIENTE", "INDEPENDIENTE", "INDEPENDIENTE", "OSCENSE"}, resp.Canonical)
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))
}

func TestBucketEndpoint(t *testing.T) {
	ctx := do(t, fasthttp.MethodPost, "/bucket", `{"times":["06:19:40","06:29:40","23:59:59"]}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp BucketResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, []string{"06:00", "06:20", "23:40"}, resp.Groups)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"unknown path", fasthttp.MethodGet, "/nope", "", fasthttp.StatusNotFound},
		{"normalize get", fasthttp.MethodGet, "/normalize", "", fasthttp.StatusMethodNotAllowed},
		{"normalize bad json", fasthttp.MethodPost, "/normalize", "{", fasthttp.StatusBadRequest},
		{"bucket invalid time", fasthttp.MethodPost, "/bucket", `{"times":["25:00:00"]}`, fasthttp.StatusBadRequest},
		{"bucket get", fasthttp.MethodGet, "/bucket", "", fasthttp.StatusMethodNotAllowed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := do(t, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, ctx.Response.StatusCode())

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHealth(t *testing.T) {
	ctx := do(t, fasthttp.MethodGet, "/health", "")
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), `"status":"ok"`)
}
