package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	pkgerrors "github.com/vega2004/modulo-hora-espacio/pkg/errors"
)

// Login POST /api/Usuarios/login
func (c *Client) Login(ctx context.Context, cred Credentials) (*LoginResult, error) {
	const ep = "POST /api/Usuarios/login"
	raw, err := c.send(ctx, nil, http.MethodPost, ep, "/api/Usuarios/login", cred)
	if err != nil {
		return nil, err
	}

	var res LoginResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("%w: 解析登录响应失败: %v", pkgerrors.ErrUpstream, err)
	}
	res.Token = strings.TrimSpace(res.Token)
	if res.Token == "" {
		return nil, fmt.Errorf("%w: 登录响应缺少 token", pkgerrors.ErrUpstream)
	}
	return &res, nil
}

// Register POST /api/Usuarios/registro，409 表示邮箱已注册
func (c *Client) Register(ctx context.Context, reg Registration) error {
	_, err := c.send(ctx, nil, http.MethodPost, "POST /api/Usuarios/registro", "/api/Usuarios/registro", reg)
	return err
}
