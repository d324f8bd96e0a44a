package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
)

type BaseHTTPSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseHTTPSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)

	if s.Config.ServerAddr == "" {
		s.T().Skip("SERVER_ADDR not set, skipping end to end suite")
	}
}

// Step prints a colorized header for a scenario step in logs
func (s *BaseHTTPSuite) Step(t *testing.T, name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)
}

// PostJSON issues a POST with an optional bearer token and decodes the reply into out
func (s *BaseHTTPSuite) PostJSON(path, token string, body, out any) *http.Response {
	return s.DoJSON(http.MethodPost, path, token, body, out)
}

// DoJSON issues a JSON request with an optional bearer token, logs the
// exchange and decodes the reply into out when provided
func (s *BaseHTTPSuite) DoJSON(method, path, token string, body, out any) *http.Response {
	payload, err := json.Marshal(body)
	s.Require().NoError(err)

	req, err := http.NewRequest(method, fmt.Sprintf("http://%s%s", s.Config.ServerAddr, path), bytes.NewReader(payload))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	logBuilder := strings.Builder{}
	fmt.Fprintf(&logBuilder, "HTTP %s %s [%d] in %v", method, path, resp.StatusCode, time.Since(start))
	if s.Config.DebugJSON {
		fmt.Fprintln(&logBuilder, "\nRESPONSE:")
		fmt.Fprintln(&logBuilder, string(raw))
	}
	s.T().Log(logBuilder.String())

	if out != nil {
		s.Require().NoError(json.Unmarshal(raw, out), "Failed to decode response from "+path)
	}
	return resp
}

// DialRoom opens the websocket for a project using the session token
func (s *BaseHTTPSuite) DialRoom(projectID, token string) *websocket.Conn {
	wsURL := url.URL{
		Scheme:   "ws",
		Host:     s.Config.ServerAddr,
		Path:     "/ws",
		RawQuery: url.Values{"projectId": {projectID}, "token": {token}}.Encode(),
	}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	s.Require().NoError(err, "Failed to open websocket for project "+projectID)
	return conn
}
