package corpus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"voice_courier/internal/domain"
)

const (
	resourceScripted = "scripted"
	maxErrorBody     = 64 << 10
)

// Config holds corpus service connection settings.
type Config struct {
	BaseURL           string
	ClientID          string
	ClientSecret      string
	Timeout           time.Duration
	TokenExpiryBuffer time.Duration
	TokenLifetime     time.Duration
	UserAgent         string
}

// Client talks to the corpus service. All calls share one http.Client with a
// bounded timeout; Close releases its idle connections.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	userAgent    string
	tokens       *TokenCache
	logger       *slog.Logger
}

// New creates a corpus service client.
func New(cfg Config, logger *slog.Logger) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		userAgent:    cfg.UserAgent,
		logger:       logger.With("component", "corpus"),
	}
	c.tokens = NewTokenCache(cfg.TokenExpiryBuffer, cfg.TokenLifetime, c.exchangeToken)
	return c
}

// Close releases pooled connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// EnsureToken returns a valid bearer token, refreshing it when needed.
func (c *Client) EnsureToken(ctx context.Context) (string, error) {
	return c.tokens.Token(ctx)
}

// RefreshToken performs a credential exchange unconditionally.
func (c *Client) RefreshToken(ctx context.Context) error {
	_, err := c.tokens.Refresh(ctx)
	return err
}

// ValidateCredentials reports whether the configured client credentials are accepted.
func (c *Client) ValidateCredentials(ctx context.Context) bool {
	if err := c.RefreshToken(ctx); err != nil {
		c.logger.Warn("credential validation failed", "error", err)
		return false
	}
	return true
}

func (c *Client) exchangeToken(ctx context.Context) (string, time.Duration, error) {
	body, err := json.Marshal(tokenRequest{ClientID: c.clientID, ClientSecret: c.clientSecret})
	if err != nil {
		return "", 0, fmt.Errorf("marshal token request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/token", nil, bytes.NewReader(body))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	status, respBody, err := c.send(req)
	if err != nil {
		return "", 0, err
	}
	if status != http.StatusOK {
		return "", 0, &domain.AuthError{StatusCode: status, Detail: parseDetail(respBody)}
	}

	var tr tokenResponse
	if err := json.Unmarshal(respBody, &tr); err != nil {
		return "", 0, fmt.Errorf("decode token response: %w", err)
	}
	if tr.Token == "" {
		return "", 0, &domain.AuthError{StatusCode: status, Detail: "no token in response"}
	}

	c.logger.Debug("refreshed bearer token")

	return tr.Token, time.Duration(tr.ExpiresIn) * time.Second, nil
}

// CreateOrClaimAccount registers a user and returns its external id. An
// existing user (409) is claimed instead of failing.
func (c *Client) CreateOrClaimAccount(ctx context.Context, email, username string) (string, error) {
	const op = "create user"

	body, err := json.Marshal(createUserRequest{Email: email, Username: username})
	if err != nil {
		return "", fmt.Errorf("marshal user request: %w", err)
	}

	req, err := c.newAuthedRequest(ctx, http.MethodPost, "/auth/users", nil, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	status, respBody, err := c.send(req)
	if err != nil {
		return "", err
	}

	var userID string
	switch status {
	case http.StatusOK, http.StatusCreated:
		var resp createUserResponse
		if err := json.Unmarshal(respBody, &resp); err != nil {
			return "", fmt.Errorf("decode user response: %w", err)
		}
		userID = resp.Data.UserID
	case http.StatusConflict:
		var resp conflictResponse
		if err := json.Unmarshal(respBody, &resp); err != nil {
			return "", fmt.Errorf("decode conflict response: %w", err)
		}
		userID = resp.User.UserID
		c.logger.Info("claimed existing corpus account", "account_id", userID)
	default:
		return "", c.apiError(op, status, respBody)
	}

	if userID == "" {
		return "", &domain.APIError{Op: op, StatusCode: status, Detail: "no userId returned"}
	}
	return userID, nil
}

// FetchSentences requests up to limit sentences for language that are not in
// exclude. An empty result is not an error.
func (c *Client) FetchSentences(ctx context.Context, language string, limit int, exclude []string) ([]domain.SentenceCandidate, error) {
	query := url.Values{}
	query.Set("datasetCode", language)
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", "0")
	if len(exclude) > 0 {
		query.Set("excludeTextIds", strings.Join(exclude, ","))
	}

	req, err := c.newAuthedRequest(ctx, http.MethodGet, "/text/sentences", query, nil)
	if err != nil {
		return nil, err
	}

	status, respBody, err := c.send(req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, c.apiError("fetch sentences", status, respBody)
	}

	var resp sentencesResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decode sentences response: %w", err)
	}

	candidates := make([]domain.SentenceCandidate, 0, len(resp.Data))
	for _, s := range resp.Data {
		candidates = append(candidates, domain.SentenceCandidate{
			SourceTextID: s.TextID,
			Text:         s.Text,
			ContentHash:  s.Hash,
		})
	}

	c.logger.Debug("fetched sentences",
		"language", language,
		"requested", limit,
		"excluded", len(exclude),
		"returned", len(candidates),
	)

	return candidates, nil
}

// UploadAudio submits one scripted recording as multipart form data.
func (c *Client) UploadAudio(ctx context.Context, upload domain.UploadRequest) (*domain.UploadReceipt, error) {
	body, contentType, err := buildUploadBody(upload)
	if err != nil {
		return nil, err
	}

	req, err := c.newAuthedRequest(ctx, http.MethodPost, "/audio", nil, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	status, respBody, err := c.send(req)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
	default:
		return nil, c.apiError("upload audio", status, respBody)
	}

	receipt := &domain.UploadReceipt{}
	if len(bytes.TrimSpace(respBody)) == 0 {
		return receipt, nil
	}

	var resp uploadResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		// The clip was accepted; an unreadable receipt does not undo that.
		c.logger.Warn("undecodable upload receipt", "status", status, "error", err)
		return receipt, nil
	}
	receipt.AudioID = firstNonEmpty(resp.ID, resp.AudioID)
	receipt.Status = resp.Status
	if resp.Data != nil {
		receipt.AudioID = firstNonEmpty(receipt.AudioID, resp.Data.ID, resp.Data.AudioID)
		receipt.Status = firstNonEmpty(receipt.Status, resp.Data.Status)
	}

	return receipt, nil
}

// GetAudioStatus reports the processing state of an uploaded clip.
func (c *Client) GetAudioStatus(ctx context.Context, audioID string) (*domain.AudioStatus, error) {
	req, err := c.newAuthedRequest(ctx, http.MethodGet, "/audio/"+url.PathEscape(audioID), nil, nil)
	if err != nil {
		return nil, err
	}

	status, respBody, err := c.send(req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, c.apiError("get audio status", status, respBody)
	}

	var resp domain.AudioStatus
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decode audio status: %w", err)
	}
	if resp.AudioID == "" {
		resp.AudioID = audioID
	}
	return &resp, nil
}

// SupportedLanguages lists dataset codes that accept scripted audio.
func (c *Client) SupportedLanguages(ctx context.Context) ([]domain.Language, error) {
	query := url.Values{}
	query.Set("service", "audio")
	query.Set("resource", resourceScripted)

	req, err := c.newAuthedRequest(ctx, http.MethodGet, "/audio/datasets/codes", query, nil)
	if err != nil {
		return nil, err
	}

	status, respBody, err := c.send(req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, c.apiError("list languages", status, respBody)
	}

	return decodeLanguages(respBody)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	return req, nil
}

func (c *Client) newAuthedRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	return req, nil
}

// send executes req and always closes the response body.
func (c *Client) send(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response body: %w", err)
	}

	return resp.StatusCode, body, nil
}

func (c *Client) apiError(op string, status int, body []byte) error {
	if status == http.StatusUnauthorized {
		// The server rejected our token; the next call starts with a fresh one.
		c.tokens.Invalidate()
	}
	return &domain.APIError{Op: op, StatusCode: status, Detail: parseDetail(body)}
}

func buildUploadBody(upload domain.UploadRequest) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="recording.ogg"`)
	header.Set("Content-Type", "audio/ogg")
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(upload.Audio); err != nil {
		return nil, "", fmt.Errorf("write audio data: %w", err)
	}

	fields := [][2]string{
		{"resource", resourceScripted},
		{"datasetCode", upload.Language},
		{"textId", upload.SourceTextID},
		{"text", upload.Text},
		{"hash", upload.ContentHash},
		{"userId", upload.AccountID},
	}
	if upload.Demographics.Age != "" {
		fields = append(fields, [2]string{"age", upload.Demographics.Age})
	}
	if upload.Demographics.Gender != "" {
		fields = append(fields, [2]string{"gender", upload.Demographics.Gender})
	}

	for _, f := range fields {
		if err := writer.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f[0], err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}

// parseDetail extracts the server-provided error text, if any.
func parseDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}

	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}
	if resp.Detail != "" {
		return resp.Detail
	}
	if resp.Message != "" {
		return resp.Message
	}
	if len(resp.Errors) > 0 && string(resp.Errors) != "null" {
		var text string
		if err := json.Unmarshal(resp.Errors, &text); err == nil {
			return text
		}
		return string(resp.Errors)
	}
	return ""
}

// decodeLanguages accepts either a bare array or a {"data": [...]} envelope,
// with entries as objects or plain codes.
func decodeLanguages(body []byte) ([]domain.Language, error) {
	var envelope languagesResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Data != nil {
		return toLanguages(envelope.Data), nil
	}

	var objects []languageDTO
	if err := json.Unmarshal(body, &objects); err == nil {
		return toLanguages(objects), nil
	}

	var codes []string
	if err := json.Unmarshal(body, &codes); err == nil {
		langs := make([]domain.Language, 0, len(codes))
		for _, code := range codes {
			langs = append(langs, domain.Language{Code: code, Name: code})
		}
		return langs, nil
	}

	return nil, fmt.Errorf("decode languages response: unexpected shape")
}

func toLanguages(dtos []languageDTO) []domain.Language {
	langs := make([]domain.Language, 0, len(dtos))
	for _, d := range dtos {
		name := d.Name
		if name == "" {
			name = d.Code
		}
		langs = append(langs, domain.Language{Code: d.Code, Name: name})
	}
	return langs
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
