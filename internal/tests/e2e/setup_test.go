package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/you/classhub/domain"
	"github.com/you/classhub/internal/app"
	"github.com/you/classhub/internal/config"
	"github.com/you/classhub/internal/mocks"
)

// TestSuite runs the fully wired application against SQLite, miniredis and
// an in-memory mailer.
type TestSuite struct {
	Server    *httptest.Server
	Container *app.Container
	Mailer    *mocks.MockMailer
	Redis     *miniredis.Miniredis
	Client    *http.Client
}

// Response is a decoded JSON reply
type Response struct {
	Status int
	Body   map[string]any
	List   []map[string]any
	Raw    []byte
}

func (r *Response) Message() string {
	msg, _ := r.Body["message"].(string)
	return msg
}

func setupSuite(t *testing.T) *TestSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := config.Default()
	cfg.JWT.Secret = "e2e-secret"
	cfg.App.UploadDir = filepath.Join(t.TempDir(), "uploads")
	cfg.Casbin.PolicyPath = filepath.Join(t.TempDir(), "none.yml")

	mailer := mocks.NewMockMailer()
	container, err := app.NewContainerWith(cfg, db, rdb, mailer)
	require.NoError(t, err)

	srv := httptest.NewServer(container.Router())
	t.Cleanup(func() {
		srv.Close()
		_ = container.Close()
	})

	return &TestSuite{
		Server:    srv,
		Container: container,
		Mailer:    mailer,
		Redis:     mr,
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *TestSuite) Do(t *testing.T, req *http.Request, token string) *Response {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := &Response{Status: resp.StatusCode, Raw: raw}
	if !strings.Contains(resp.Header.Get("Content-Type"), "json") {
		return out
	}
	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		require.NoError(t, json.Unmarshal(raw, &out.List), string(raw))
	} else {
		require.NoError(t, json.Unmarshal(raw, &out.Body), string(raw))
	}
	return out
}

func (s *TestSuite) JSON(t *testing.T, method, path, token string, body any) *Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, s.Server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return s.Do(t, req, token)
}

// Identity is a registered user and its token
type Identity struct {
	ID    uint
	Email string
	Token string
}

func (s *TestSuite) Register(t *testing.T, name, email, role, classID string) Identity {
	t.Helper()
	resp := s.JSON(t, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "password123",
		"role":     role,
		"classId":  classID,
	})
	require.Equal(t, http.StatusCreated, resp.Status, string(resp.Raw))

	user := resp.Body["user"].(map[string]any)
	return Identity{
		ID:    uint(user["id"].(float64)),
		Email: email,
		Token: resp.Body["token"].(string),
	}
}

// Dial opens the realtime channel, with a token when one is given
func (s *TestSuite) Dial(t *testing.T, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(s.Server.URL, "http") + "/ws"
	if token != "" {
		url += "?token=" + token
	}
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var f frame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

// expectSilence fails if a frame arrives within d. The connection cannot be
// read from afterwards.
func expectSilence(t *testing.T, conn *websocket.Conn, d time.Duration) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(d)))
	var f frame
	err := conn.ReadJSON(&f)
	require.Error(t, err, "unexpected frame %q", f.Event)
}

func joinClass(t *testing.T, conn *websocket.Conn, classID string) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]any{"event": domain.EventJoinClass, "data": classID}))
	f := readFrame(t, conn)
	require.Equal(t, domain.EventJoinedClass, f.Event)
}
