// Package api provides the typed HTTP client for the Ask Buddy backend.
//
// Every operation takes the session token explicitly; nothing is carried in
// headers. Mutating calls follow a confirm-then-reconcile policy at the call
// site: callers only update local state after the server acknowledges.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"
)

// Configuration constants for the backend API.
const (
	// DefaultBaseURL is the base URL of a local development server.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 60 * time.Second

	// maxResponseSize is the maximum allowed response body size.
	maxResponseSize = 10 * 1024 * 1024 // 10MB limit
)

// ErrEmptyToken indicates an operation was attempted without a session token.
var ErrEmptyToken = errors.New("session token is empty")

// Error represents an error response from the backend.
type Error struct {
	Status int
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server error (HTTP %d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("server error (HTTP %d)", e.Status)
}

// Client communicates with the Ask Buddy backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new client for the given base URL.
// An empty base URL falls back to DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// WithHTTPClient sets a custom HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// WithTimeout sets the request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login authenticates the user and returns a fresh session token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp loginResponse
	if err := c.postJSON(ctx, "/login", credentials{Username: username, Password: password}, &resp); err != nil {
		return "", err
	}
	if resp.SessionToken == "" {
		return "", errors.New("login response missing session token")
	}
	return resp.SessionToken, nil
}

// Register creates a new account. The user still has to log in afterwards.
func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.postJSON(ctx, "/register", credentials{Username: username, Password: password}, nil)
}

// ListFiles returns the uploaded documents visible to the session.
func (c *Client) ListFiles(ctx context.Context, sessionToken string) ([]FileItem, error) {
	var files []FileItem
	if err := c.getJSON(ctx, "/files", sessionToken, &files); err != nil {
		return nil, err
	}
	return files, nil
}

// ChatHistory returns the messages of the current session.
func (c *Client) ChatHistory(ctx context.Context, sessionToken string) ([]Message, error) {
	var msgs []Message
	if err := c.getJSON(ctx, "/chat-history", sessionToken, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// ChatHistoryBySession returns the messages of an arbitrary session.
func (c *Client) ChatHistoryBySession(ctx context.Context, targetToken string) ([]Message, error) {
	var msgs []Message
	if err := c.getJSON(ctx, "/chat-history-by-session", targetToken, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// ListSessions returns the past conversations of the user.
func (c *Client) ListSessions(ctx context.Context, sessionToken string) ([]ChatSession, error) {
	var sessions []ChatSession
	if err := c.getJSON(ctx, "/sessions", sessionToken, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// SendQuery asks the agent a question and returns the answer text.
// fileID scopes the question to one document; pass "" for no scope, in
// which case the request body carries no file_id key at all.
func (c *Client) SendQuery(ctx context.Context, sessionToken, question, fileID string) (string, error) {
	if sessionToken == "" {
		return "", ErrEmptyToken
	}
	req := queryRequest{
		Question:     question,
		SessionToken: sessionToken,
		FileID:       fileID,
	}
	var resp queryResponse
	if err := c.postJSON(ctx, "/query", req, &resp); err != nil {
		return "", err
	}
	return resp.Answer, nil
}

// NewSession starts a fresh conversation and returns its token.
func (c *Client) NewSession(ctx context.Context, sessionToken string) (string, error) {
	if sessionToken == "" {
		return "", ErrEmptyToken
	}
	var resp newSessionResponse
	if err := c.postJSON(ctx, "/new-session", newSessionRequest{SessionToken: sessionToken}, &resp); err != nil {
		return "", err
	}
	if resp.SessionToken == "" {
		return "", errors.New("new-session response missing session token")
	}
	return resp.SessionToken, nil
}

// DeleteMessage removes one message from the session history.
func (c *Client) DeleteMessage(ctx context.Context, sessionToken, messageID string) error {
	return c.delete(ctx, "/chat-history/"+url.PathEscape(messageID), sessionToken)
}

// DeleteFile removes an uploaded document.
func (c *Client) DeleteFile(ctx context.Context, sessionToken, fileID string) error {
	return c.delete(ctx, "/file/"+url.PathEscape(fileID), sessionToken)
}

// DeleteSession removes a past conversation.
func (c *Client) DeleteSession(ctx context.Context, sessionToken, targetToken string) error {
	return c.delete(ctx, "/sessions/"+url.PathEscape(targetToken), sessionToken)
}

// supportedDocumentExts lists the file kinds the backend can embed.
var supportedDocumentExts = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".ppt":  true,
	".pptx": true,
}

// IsSupportedDocument reports whether the file name has an accepted
// document extension.
func IsSupportedDocument(fileName string) bool {
	return supportedDocumentExts[strings.ToLower(filepath.Ext(fileName))]
}

// UploadFile sends a document to the backend for embedding and returns the
// server's status message. The caller should refresh the file list on
// success.
func (c *Client) UploadFile(ctx context.Context, sessionToken, fileName string, content io.Reader) (string, error) {
	if sessionToken == "" {
		return "", ErrEmptyToken
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("session_token", sessionToken); err != nil {
		return "", fmt.Errorf("writing session token field: %w", err)
	}
	part, err := mw.CreateFormFile("file", filepath.Base(fileName))
	if err != nil {
		return "", fmt.Errorf("creating file part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("copying file content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("finalizing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload-and-embed", &buf)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := readResponse(resp)
	if err != nil {
		return "", err
	}

	var ur uploadResponse
	if resp.StatusCode != http.StatusOK {
		if err := json.Unmarshal(body, &ur); err == nil && ur.Message != "" {
			return "", &Error{Status: resp.StatusCode, Detail: ur.Message}
		}
		return "", decodeError(resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, &ur); err != nil {
		return "", fmt.Errorf("parsing upload response: %w", err)
	}
	return ur.Message, nil
}

// getJSON performs a GET with the token in the query string and decodes the
// response into v.
func (c *Client) getJSON(ctx context.Context, path, sessionToken string, v any) error {
	if sessionToken == "" {
		return ErrEmptyToken
	}

	u := c.baseURL + path + "?session_token=" + url.QueryEscape(sessionToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	return c.do(req, v)
}

// postJSON performs a POST with a JSON body and decodes the response into v
// when v is non-nil.
func (c *Client) postJSON(ctx context.Context, path string, body, v any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, v)
}

// delete performs a DELETE with the token in the query string and treats any
// 2xx status as acknowledgement.
func (c *Client) delete(ctx context.Context, path, sessionToken string) error {
	if sessionToken == "" {
		return ErrEmptyToken
	}

	u := c.baseURL + path + "?session_token=" + url.QueryEscape(sessionToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, v any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := readResponse(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, body)
	}

	if v == nil {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// readResponse reads the response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, maxResponseSize)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if int64(len(body)) == maxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", int64(maxResponseSize))
	}
	return body, nil
}

// decodeError converts a non-success response into an *Error, surfacing the
// server's detail message when one is present.
func decodeError(status int, body []byte) error {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil {
		detail := er.Detail
		if detail == "" {
			detail = er.Message
		}
		if detail != "" {
			return &Error{Status: status, Detail: detail}
		}
	}
	return &Error{Status: status}
}
