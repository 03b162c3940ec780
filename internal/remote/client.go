package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vega2004/modulo-hora-espacio/config"
	"github.com/vega2004/modulo-hora-espacio/internal/session"
	pkgerrors "github.com/vega2004/modulo-hora-espacio/pkg/errors"
)

// maxBodyBytes 远端响应体读取上限
const maxBodyBytes = 8 << 20

// APIError 远端返回的非 2xx 响应
// Unwrap 返回 pkg/errors 中的分类哨兵，调用方用 errors.Is 判断
type APIError struct {
	Status  int
	Message string
	kind    error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%v (HTTP %d)", e.kind, e.Status)
	}
	return fmt.Sprintf("%v (HTTP %d): %s", e.kind, e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.kind }

// classify 远端状态码 → 错误分类
func classify(status int) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return pkgerrors.ErrUnauthorized
	case http.StatusNotFound:
		return pkgerrors.ErrNotFound
	case http.StatusConflict:
		return pkgerrors.ErrConflict
	default:
		return pkgerrors.ErrUpstream
	}
}

// Client 远端排课 API 客户端
// 每次调用显式接收 session.Session，不保存任何登录状态
type Client struct {
	baseURL  string
	http     *http.Client
	validate *validator.Validate
	logger   *zap.Logger
}

// NewClient 创建远端客户端
func NewClient(cfg *config.UpstreamConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// send 发送请求并返回 2xx 响应体
// endpoint 为不含路径参数的路由模板，仅用于指标与日志
func (c *Client) send(ctx context.Context, sess *session.Session, method, endpoint, path string, in any) ([]byte, error) {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("编码请求体失败: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer := sess.Bearer(); bearer != "" {
		req.Header.Set("Authorization", bearer)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observeUpstream(endpoint, "error", start)
		c.logger.Warn("远端请求失败", zap.String("endpoint", endpoint), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrUpstream, err)
	}
	defer resp.Body.Close()
	observeUpstream(endpoint, strconv.Itoa(resp.StatusCode), start)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: 读取响应失败: %v", pkgerrors.ErrUpstream, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode, Message: errorMessage(raw), kind: classify(resp.StatusCode)}
		c.logger.Info("远端返回错误状态",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return nil, apiErr
	}

	return raw, nil
}

// errorMessage 从错误响应体提取 message / error 字段，非 JSON 时返回截断后的原文
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Mensaje string `json:"mensaje"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, m := range []string{body.Message, body.Error, body.Mensaje} {
			if m != "" {
				return m
			}
		}
		return ""
	}
	text := strings.TrimSpace(string(raw))
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}

// decodeList 拆分列表响应为逐条原始记录，兼容裸数组与 {"resultado": [...]} 两种形态
// 单条记录的字段错误不影响其他记录，由 fetchList 逐条解码
func decodeList(raw []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var out []json.RawMessage
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, fmt.Errorf("%w: 解析列表失败: %v", pkgerrors.ErrUpstream, err)
		}
		return out, nil
	}
	var wrapped struct {
		Resultado []json.RawMessage `json:"resultado"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, fmt.Errorf("%w: 解析列表失败: %v", pkgerrors.ErrUpstream, err)
	}
	return wrapped.Resultado, nil
}

// fetchList GET/POST 列表并逐条解码、做边界校验，不合法记录丢弃并记日志
func fetchList[T any](ctx context.Context, c *Client, sess *session.Session, method, endpoint, path string, in any) ([]T, error) {
	raw, err := c.send(ctx, sess, method, endpoint, path, in)
	if err != nil {
		return nil, err
	}
	items, err := decodeList(raw)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(items))
	for i, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			c.logger.Warn("丢弃无法解析的远端记录",
				zap.String("endpoint", endpoint),
				zap.Int("index", i),
				zap.Error(err),
			)
			continue
		}
		if n, ok := any(&v).(normalizer); ok {
			n.normalize()
		}
		if err := c.validate.Struct(v); err != nil {
			c.logger.Warn("丢弃不合法的远端记录",
				zap.String("endpoint", endpoint),
				zap.Int("index", i),
				zap.Error(err),
			)
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// searchPath 带可选名称参数的路径
func searchPath(base, term string) string {
	term = strings.TrimSpace(term)
	if term == "" {
		return base
	}
	return base + "/" + url.PathEscape(term)
}
