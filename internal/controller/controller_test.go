package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"notemark-be/internal/dto"
	"notemark-be/internal/pkg/logger"
	"notemark-be/internal/pkg/serverutils"
	"notemark-be/internal/service"
	"notemark-be/pkg/converter"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type stubMentionService struct {
	service.IMentionService
	upserted *dto.UpsertMentionRequest
	userId   string
}

func (s *stubMentionService) Upsert(_ context.Context, userId string, req *dto.UpsertMentionRequest) (*dto.MentionTargetResponse, error) {
	s.upserted = req
	s.userId = userId
	return &dto.MentionTargetResponse{Id: uuid.New(), Kind: req.Kind, Name: req.Name, ExternalId: req.ExternalId}, nil
}

func (s *stubMentionService) Show(_ context.Context, kind, id string) (*dto.MentionTargetResponse, error) {
	return nil, service.ErrMentionNotFound
}

func newTestApp(mentions service.IMentionService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")

	convertService := service.NewConvertService(converter.New(), nil, logger.NewNopLogger())
	NewConvertController(convertService, service.NewStatsService(nil, "test")).RegisterRoutes(api)
	NewMentionController(mentions, testSecret).RegisterRoutes(api)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body, token string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func signToken(t *testing.T, userId string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userId,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestConvertController_MarkdownToBlocks(t *testing.T) {
	app := newTestApp(&stubMentionService{})

	code, body := doJSON(t, app, "POST", "/api/convert/v1/markdown-to-blocks", `{"markdown": "# Hi\n\ntext"}`, "")
	require.Equal(t, 200, code)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["block_count"])
	assert.Len(t, data["blocks"], 2)
}

func TestConvertController_Errors(t *testing.T) {
	app := newTestApp(&stubMentionService{})

	tests := []struct {
		name string
		path string
		body string
		code int
	}{
		{"missing markdown", "/api/convert/v1/markdown-to-blocks", `{}`, 400},
		{"malformed body", "/api/convert/v1/markdown-to-blocks", `{`, 400},
		{"bad columns", "/api/convert/v1/markdown-to-blocks", `{"markdown": "::: columns\n::: column 0.7\na\n:::\n::: column 0.7\nb\n:::\n:::"}`, 422},
		{"bad blocks", "/api/convert/v1/blocks-to-markdown", `{"blocks": {"type": "paragraph"}}`, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := doJSON(t, app, "POST", tt.path, tt.body, "")
			assert.Equal(t, tt.code, code)
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestConvertController_BlocksToMarkdown(t *testing.T) {
	app := newTestApp(&stubMentionService{})

	code, body := doJSON(t, app, "POST", "/api/convert/v1/blocks-to-markdown",
		`{"blocks": [{"type": "divider", "divider": {}}, {"type": "paragraph", "paragraph": {"rich_text": [{"type": "text", "text": {"content": "end"}}]}}]}`, "")
	require.Equal(t, 200, code)
	assert.Equal(t, "---\n\nend", body["data"].(map[string]interface{})["markdown"])
}

func TestConvertController_SyntaxAndStats(t *testing.T) {
	app := newTestApp(&stubMentionService{})

	code, body := doJSON(t, app, "GET", "/api/convert/v1/syntax", "", "")
	require.Equal(t, 200, code)
	assert.NotEmpty(t, body["data"].(map[string]interface{})["cheatsheet"])

	code, _ = doJSON(t, app, "GET", "/api/convert/v1/stats", "", "")
	assert.Equal(t, 200, code)
}

func TestMentionController(t *testing.T) {
	stub := &stubMentionService{}
	app := newTestApp(stub)
	token := signToken(t, "user-7")

	code, _ := doJSON(t, app, "POST", "/api/mention/v1", `{"kind": "page", "name": "Roadmap", "external_id": "abc"}`, "")
	assert.Equal(t, 401, code)

	code, body := doJSON(t, app, "POST", "/api/mention/v1", `{"kind": "team", "name": "Roadmap", "external_id": "abc"}`, token)
	assert.Equal(t, 400, code)
	assert.Equal(t, "oneof=page database data_source user", body["errors"].(map[string]interface{})["kind"])

	code, _ = doJSON(t, app, "POST", "/api/mention/v1", `{"kind": "page", "name": "Roadmap", "external_id": "abc"}`, token)
	assert.Equal(t, 200, code)
	assert.Equal(t, "user-7", stub.userId)
	assert.Equal(t, "Roadmap", stub.upserted.Name)

	code, _ = doJSON(t, app, "GET", "/api/mention/v1/page/abc", "", token)
	assert.Equal(t, 404, code)
}
