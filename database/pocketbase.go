package database

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"ginpocketbase/models"
)

// Collection is the PocketBase collection holding all cubephoto records.
const Collection = "cubephotos"

const perPage = 500

// APIError is a failure reported by the backend itself. Handlers propagate
// Status and Message unchanged instead of translating them.
type APIError struct {
	Status  int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pocketbase: %d %s", e.Status, e.Message)
}

// Client holds the single admin session to the PocketBase server. It is
// authenticated once in New and read-only afterwards.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type authResponse struct {
	Token string `json:"token"`
}

type listResponse struct {
	Page       int                `json:"page"`
	PerPage    int                `json:"perPage"`
	TotalItems int                `json:"totalItems"`
	TotalPages int                `json:"totalPages"`
	Items      []models.CubePhoto `json:"items"`
}

// Connect reads the PocketBase settings from the environment and opens the
// admin session. Any failure here must abort startup.
func Connect(ctx context.Context) (*Client, error) {
	baseURL := os.Getenv("POCKETBASE_SERVER")
	email := os.Getenv("POCKETBASE_ADMIN_EMAIL")
	password := os.Getenv("POCKETBASE_ADMIN_PASSWORD")

	if baseURL == "" {
		return nil, errors.New("POCKETBASE_SERVER is not set")
	}
	if email == "" || password == "" {
		return nil, errors.New("POCKETBASE_ADMIN_EMAIL and POCKETBASE_ADMIN_PASSWORD are required")
	}

	return New(ctx, baseURL, email, password)
}

// New authenticates against the PocketBase admin API and returns the session
// client. The returned token is a JWT signed by the backend; the signature
// cannot be checked here, but the claims are parsed to reject a malformed
// token early and to log when the session expires.
func New(ctx context.Context, baseURL, email, password string) (*Client, error) {
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}

	body, err := json.Marshal(map[string]string{
		"identity": email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		client.baseURL+"/api/admins/auth-with-password", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("admin auth request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var auth authResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return nil, fmt.Errorf("decoding auth response: %w", err)
	}
	if auth.Token == "" {
		return nil, errors.New("admin auth returned an empty token")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(auth.Token, claims); err != nil {
		return nil, fmt.Errorf("admin token is not a valid JWT: %w", err)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		log.Println("PocketBase admin session authenticated, token expires", exp.Time.Format(time.RFC3339))
	} else {
		log.Println("PocketBase admin session authenticated")
	}

	client.token = auth.Token
	return client, nil
}

// CreateRecord forwards a multipart create to the collection. fields are the
// record's form values, file is stored under the pic field as fileName.
func (c *Client) CreateRecord(ctx context.Context, fields map[string]string, fileName string, file io.Reader) (models.CubePhoto, error) {
	var record models.CubePhoto

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return record, err
		}
	}
	part, err := writer.CreateFormFile("pic", fileName)
	if err != nil {
		return record, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return record, err
	}
	if err := writer.Close(); err != nil {
		return record, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.recordsURL(""), &buf)
	if err != nil {
		return record, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	err = c.do(req, &record)
	return record, err
}

// ListRecords fetches every record in the collection, walking the backend's
// result pages. sort uses PocketBase syntax, e.g. "-updated" for newest
// first.
func (c *Client) ListRecords(ctx context.Context, sort string) ([]models.CubePhoto, error) {
	var records []models.CubePhoto

	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("perPage", strconv.Itoa(perPage))
		if sort != "" {
			query.Set("sort", sort)
		}

		req, err := c.newRequest(ctx, http.MethodGet, c.recordsURL("")+"?"+query.Encode(), nil)
		if err != nil {
			return nil, err
		}

		var result listResponse
		if err := c.do(req, &result); err != nil {
			return nil, err
		}
		records = append(records, result.Items...)

		if page >= result.TotalPages {
			return records, nil
		}
	}
}

// GetRecord fetches one record by id.
func (c *Client) GetRecord(ctx context.Context, id string) (models.CubePhoto, error) {
	var record models.CubePhoto

	req, err := c.newRequest(ctx, http.MethodGet, c.recordsURL(id), nil)
	if err != nil {
		return record, err
	}

	err = c.do(req, &record)
	return record, err
}

// DeleteRecord removes one record by id. The backend answers 204 on success.
func (c *Client) DeleteRecord(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, c.recordsURL(id), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// FileURL builds the public URL of a record's stored file.
func (c *Client) FileURL(id, fileName string) string {
	return fmt.Sprintf("%s/api/files/%s/%s/%s", c.baseURL, Collection, id, fileName)
}

func (c *Client) recordsURL(id string) string {
	u := fmt.Sprintf("%s/api/collections/%s/records", c.baseURL, Collection)
	if id != "" {
		u += "/" + url.PathEscape(id)
	}
	return u
}

func (c *Client) newRequest(ctx context.Context, method, reqURL string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.token)
	return req, nil
}

// do runs the request and decodes a 2xx JSON body into out when out is
// non-nil. Non-2xx responses come back as *APIError.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", req.URL.Path, err)
	}
	return nil
}

// decodeError turns a PocketBase error body into an APIError. The body is
// {"code": ..., "message": ..., "data": {...}}; when it cannot be parsed the
// HTTP status and a generic message are used so the caller still gets a
// meaningful status to propagate.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		_ = json.Unmarshal(body, apiErr)
	}
	if apiErr.Status == 0 {
		apiErr.Status = resp.StatusCode
	}
	if apiErr.Message == "" {
		apiErr.Message = "Something went wrong while processing your request."
	}
	return apiErr
}
