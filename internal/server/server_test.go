package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr7Gabriel/clone-x-app/internal/server"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, seed bool) *httptest.Server {
	t.Helper()
	srv, err := server.New(server.Config{
		Port:      0,
		DBPath:    ":memory:",
		JWTSecret: "test-secret-at-least-16-chars",
		UploadDir: t.TempDir(),
		SeedData:  seed,
	}, testLogger())
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

// doJSON performs a request with an optional bearer token and JSON body,
// returning the status and the decoded response body.
func doJSON(t *testing.T, ts *httptest.Server, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&decoded))
	return res.StatusCode, decoded
}

// registerUser creates an account and returns its token and user id.
func registerUser(t *testing.T, ts *httptest.Server, username string) (string, int64) {
	t.Helper()
	status, body := doJSON(t, ts, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
		"name":     "Test " + username,
	})
	require.Equal(t, http.StatusCreated, status, "register %s: %v", username, body)
	token := body["token"].(string)
	user := body["user"].(map[string]any)
	return token, int64(user["id"].(float64))
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t, false)

	status, body := doJSON(t, ts, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "password123",
		"name":     "Alice",
	})
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	assert.NotContains(t, user, "password_hash")

	// Duplicate registration conflicts.
	status, body = doJSON(t, ts, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "other@example.com",
		"password": "password123",
		"name":     "Alice Two",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Username or email already exists", body["error"])

	status, body = doJSON(t, ts, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"])

	status, body = doJSON(t, ts, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", body["error"])
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t, false)

	status, body := doJSON(t, ts, http.MethodPost, "/api/posts", "", map[string]string{"content": "hi"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Access token required", body["error"])

	status, body = doJSON(t, ts, http.MethodPost, "/api/posts", "not-a-token", map[string]string{"content": "hi"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Invalid token", body["error"])
}

func TestPostEngagementFlow(t *testing.T) {
	ts := newTestServer(t, false)

	aliceToken, aliceID := registerUser(t, ts, "alice")
	bobToken, _ := registerUser(t, ts, "bob")

	status, body := doJSON(t, ts, http.MethodPost, "/api/posts", aliceToken, map[string]string{
		"content": "hello world",
	})
	require.Equal(t, http.StatusCreated, status)
	post := body["post"].(map[string]any)
	postID := int64(post["id"].(float64))
	assert.Equal(t, "alice", post["username"])

	// Bob likes it; the toggle reports the new state.
	likePath := fmt.Sprintf("/api/posts/%d/like", postID)
	status, body = doJSON(t, ts, http.MethodPost, likePath, bobToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["liked"])

	// Alice sees a single like notification.
	status, body = doJSON(t, ts, http.MethodGet, fmt.Sprintf("/api/users/%d/notifications", aliceID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, status)
	notifications := body["notifications"].([]any)
	require.Len(t, notifications, 1)
	assert.Equal(t, "like", notifications[0].(map[string]any)["type"])

	// Second toggle unlikes and adds nothing.
	status, body = doJSON(t, ts, http.MethodPost, likePath, bobToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["liked"])

	status, body = doJSON(t, ts, http.MethodGet, fmt.Sprintf("/api/users/%d/notifications", aliceID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["notifications"].([]any), 1)

	// Bookmarks are private to Bob.
	status, body = doJSON(t, ts, http.MethodPost, fmt.Sprintf("/api/posts/%d/bookmark", postID), bobToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["bookmarked"])

	status, body = doJSON(t, ts, http.MethodGet, fmt.Sprintf("/api/posts/%d/is-bookmarked", postID), bobToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["bookmarked"])

	// Bob replies; the post's reply list and count reflect it.
	status, body = doJSON(t, ts, http.MethodPost, fmt.Sprintf("/api/posts/%d/replies", postID), bobToken, map[string]string{
		"content": "nice one",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "nice one", body["reply"].(map[string]any)["content"])

	status, body = doJSON(t, ts, http.MethodGet, fmt.Sprintf("/api/posts/%d/replies", postID), "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["replies"].([]any), 1)

	// The feed shows the post with its updated reply count.
	status, body = doJSON(t, ts, http.MethodGet, "/api/posts", "", nil)
	assert.Equal(t, http.StatusOK, status)
	posts := body["posts"].([]any)
	require.Len(t, posts, 1)
	assert.Equal(t, float64(1), posts[0].(map[string]any)["reply_count"])
}

func TestFollowFlow(t *testing.T) {
	ts := newTestServer(t, false)

	aliceToken, aliceID := registerUser(t, ts, "alice")
	_, bobID := registerUser(t, ts, "bob")

	followPath := fmt.Sprintf("/api/users/%d/follow", bobID)
	status, body := doJSON(t, ts, http.MethodPost, followPath, aliceToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["following"])

	status, body = doJSON(t, ts, http.MethodGet, fmt.Sprintf("/api/users/%d/is-following", bobID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["following"])

	status, body = doJSON(t, ts, http.MethodGet, fmt.Sprintf("/api/users/%d/followers", bobID), "", nil)
	assert.Equal(t, http.StatusOK, status)
	followers := body["followers"].([]any)
	require.Len(t, followers, 1)
	assert.Equal(t, "alice", followers[0].(map[string]any)["username"])

	// Counters are visible on the profiles.
	status, body = doJSON(t, ts, http.MethodGet, fmt.Sprintf("/api/users/%d", bobID), "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["user"].(map[string]any)["follower_count"])

	// Self-follow is rejected.
	status, body = doJSON(t, ts, http.MethodPost, fmt.Sprintf("/api/users/%d/follow", aliceID), aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Cannot follow yourself", body["error"])
}

func TestProfileOwnership(t *testing.T) {
	ts := newTestServer(t, false)

	aliceToken, _ := registerUser(t, ts, "alice")
	_, bobID := registerUser(t, ts, "bob")

	status, body := doJSON(t, ts, http.MethodPut, fmt.Sprintf("/api/users/%d", bobID), aliceToken, map[string]string{
		"name": "Hacked",
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Cannot update another user's profile", body["error"])

	status, _ = doJSON(t, ts, http.MethodDelete, fmt.Sprintf("/api/users/%d", bobID), aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestMessagesFlow(t *testing.T) {
	ts := newTestServer(t, false)

	aliceToken, aliceID := registerUser(t, ts, "alice")
	bobToken, bobID := registerUser(t, ts, "bob")

	status, body := doJSON(t, ts, http.MethodPost, "/api/messages", aliceToken, map[string]any{
		"receiver_id": bobID,
		"content":     "hey bob",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "alice", body["message"].(map[string]any)["sender_username"])

	status, body = doJSON(t, ts, http.MethodPost, "/api/messages", aliceToken, map[string]any{
		"receiver_id": bobID,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Receiver ID and content are required", body["error"])

	status, body = doJSON(t, ts, http.MethodGet, fmt.Sprintf("/api/users/%d/messages", bobID), bobToken, nil)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, body["messages"].([]any), 1)

	status, body = doJSON(t, ts, http.MethodGet, fmt.Sprintf("/api/users/%d/messages/%d", bobID, aliceID), bobToken, nil)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, body["messages"].([]any), 1)
	assert.Equal(t, "hey bob", body["messages"].([]any)[0].(map[string]any)["content"])
}

func TestUtilityEndpoints(t *testing.T) {
	ts := newTestServer(t, false)

	status, body := doJSON(t, ts, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "X Clone API Server is running", body["message"])
	assert.NotEmpty(t, body["timestamp"])

	status, body = doJSON(t, ts, http.MethodGet, "/api/trending", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["trends"].([]any), 10)

	status, body = doJSON(t, ts, http.MethodGet, "/api/stats", "", nil)
	assert.Equal(t, http.StatusOK, status)
	stats := body["stats"].(map[string]any)
	assert.Equal(t, float64(0), stats["users"])

	status, body = doJSON(t, ts, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Endpoint not found", body["error"])
}

func TestSearchAndSuggestions(t *testing.T) {
	ts := newTestServer(t, false)

	aliceToken, aliceID := registerUser(t, ts, "alice")
	registerUser(t, ts, "alicia")
	registerUser(t, ts, "bob")

	status, body := doJSON(t, ts, http.MethodGet, "/api/users/search?q=ali", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["users"].([]any), 2)

	status, body = doJSON(t, ts, http.MethodGet, "/api/users/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Query parameter required", body["error"])

	status, body = doJSON(t, ts, http.MethodGet, fmt.Sprintf("/api/users/%d/suggestions", aliceID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, status)
	suggestions := body["suggestions"].([]any)
	assert.Len(t, suggestions, 2)
	for _, s := range suggestions {
		assert.NotEqual(t, "alice", s.(map[string]any)["username"])
	}
}

func TestUploadProfileImage(t *testing.T) {
	ts := newTestServer(t, false)
	token, userID := registerUser(t, ts, "alice")

	res := uploadFile(t, ts, token, "profileImage", "avatar.png", "image/png", []byte("png-bytes"))
	defer res.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.Equal(t, http.StatusOK, res.StatusCode, "%v", body)
	imageURL := body["image_url"].(string)
	assert.True(t, strings.HasPrefix(imageURL, fmt.Sprintf("uploads/users/%d/", userID)), imageURL)

	// The stored path lands on the profile.
	status, profile := doJSON(t, ts, http.MethodGet, fmt.Sprintf("/api/users/%d", userID), "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, imageURL, profile["user"].(map[string]any)["profile_image"])

	// The file is served back over /uploads/.
	fileRes, err := http.Get(ts.URL + "/" + imageURL)
	require.NoError(t, err)
	defer fileRes.Body.Close()
	content, err := io.ReadAll(fileRes.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, fileRes.StatusCode)
	assert.Equal(t, "png-bytes", string(content))

	// Non-image content types are rejected.
	res = uploadFile(t, ts, token, "profileImage", "notes.txt", "text/plain", []byte("hello"))
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestUploadMissingFile(t *testing.T) {
	ts := newTestServer(t, false)
	token, _ := registerUser(t, ts, "alice")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/upload/profile-image", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "No file uploaded", body["error"])
}

func TestSeedData(t *testing.T) {
	ts := newTestServer(t, true)

	status, body := doJSON(t, ts, http.MethodGet, "/api/posts", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["posts"].([]any), 7)

	status, body = doJSON(t, ts, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "xoxo900",
		"password": "lightborn90@",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"])
}

func uploadFile(t *testing.T, ts *httptest.Server, token, field, filename, contentType string, content []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/upload/"+kindPath(field), &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return res
}

func kindPath(field string) string {
	switch field {
	case "bannerImage":
		return "banner-image"
	case "postImage":
		return "post-image"
	default:
		return "profile-image"
	}
}
