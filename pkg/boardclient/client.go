// Package boardclient 提供访问公告记录服务的HTTP网关，实现board.Gateway。
// 网络故障、非2xx响应、响应格式错误一律映射为board.ErrUnavailable。
package boardclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"noticeboard/internal/model"
	"noticeboard/internal/types"
	"noticeboard/pkg/board"
)

// Client 公告记录服务客户端
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient 创建公告记录服务客户端
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetToken 设置管理请求携带的Token
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// listResponse 公告列表响应
type listResponse struct {
	Code int                      `json:"code"`
	Msg  string                   `json:"msg"`
	Data []types.AnnouncementWire `json:"data"`
}

// createResponse 创建公告响应
type createResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	ID   int64  `json:"id"`
}

// loginResponse 管理员登录响应
type loginResponse struct {
	Code  int    `json:"code"`
	Msg   string `json:"msg"`
	Token string `json:"token"`
}

// List 拉取全部公告
func (c *Client) List(ctx context.Context) ([]model.Announcement, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/announcements", nil)
	if err != nil {
		return nil, err
	}

	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: 解析响应失败: %v", board.ErrUnavailable, err)
	}
	if resp.Code != 200 {
		return nil, fmt.Errorf("%w: %s", board.ErrUnavailable, resp.Msg)
	}

	announcements := make([]model.Announcement, 0, len(resp.Data))
	for _, wire := range resp.Data {
		a, err := types.FromWire(wire)
		if err != nil {
			return nil, fmt.Errorf("%w: 公告记录格式错误: %v", board.ErrUnavailable, err)
		}
		announcements = append(announcements, a)
	}
	return announcements, nil
}

// Create 创建公告，返回远端分配的ID
func (c *Client) Create(ctx context.Context, draft model.Draft) (int64, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/v1/admin/announcements", types.DraftToRequest(draft))
	if err != nil {
		return 0, err
	}

	var resp createResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("%w: 解析响应失败: %v", board.ErrUnavailable, err)
	}
	if resp.Code != 200 {
		return 0, fmt.Errorf("%w: %s", board.ErrUnavailable, resp.Msg)
	}
	return resp.ID, nil
}

// Update 更新公告，目标不存在时返回board.ErrNotFound
func (c *Client) Update(ctx context.Context, id int64, draft model.Draft) error {
	body, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/admin/announcements/%d", id), types.DraftToRequest(draft))
	if err != nil {
		return err
	}
	return c.decodeMutation(body)
}

// Delete 删除公告，目标不存在时返回board.ErrNotFound
func (c *Client) Delete(ctx context.Context, id int64) error {
	body, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/admin/announcements/%d", id), nil)
	if err != nil {
		return err
	}
	return c.decodeMutation(body)
}

// Authenticate 校验管理员口令，成功时保存并返回Token
func (c *Client) Authenticate(ctx context.Context, secret string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/v1/admin/login", types.LoginRequest{Password: secret})
	if err != nil {
		return "", err
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: 解析响应失败: %v", board.ErrUnavailable, err)
	}
	switch resp.Code {
	case 200:
		c.SetToken(resp.Token)
		return resp.Token, nil
	case 401:
		return "", fmt.Errorf("%w: %s", board.ErrInvalidCredential, resp.Msg)
	default:
		return "", fmt.Errorf("%w: %s", board.ErrUnavailable, resp.Msg)
	}
}

// decodeMutation 解析更新/删除操作的响应信封
func (c *Client) decodeMutation(body []byte) error {
	var resp types.Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("%w: 解析响应失败: %v", board.ErrUnavailable, err)
	}
	switch resp.Code {
	case 200:
		return nil
	case 404:
		return fmt.Errorf("%w: %s", board.ErrNotFound, resp.Msg)
	default:
		return fmt.Errorf("%w: %s", board.ErrUnavailable, resp.Msg)
	}
}

// do 发送请求并读取响应体。
// 登录接口的401和管理接口的404携带在响应信封里，由各调用方解析；
// 其余非2xx状态在这里直接映射为ErrUnavailable。
func (c *Client) do(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: 序列化请求失败: %v", board.ErrUnavailable, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", board.ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", board.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: 读取响应失败: %v", board.ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK &&
		resp.StatusCode != http.StatusNotFound &&
		resp.StatusCode != http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: 响应状态码 %d", board.ErrUnavailable, resp.StatusCode)
	}
	return body, nil
}
