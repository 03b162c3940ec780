package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vega2004/modulo-hora-espacio/internal/session"
)

// FilterClasses POST /api/Clases/filtrar，空过滤条件返回全部
func (c *Client) FilterClasses(ctx context.Context, sess *session.Session, f ClassFilter) ([]ClassRecord, error) {
	return fetchList[ClassRecord](ctx, c, sess, http.MethodPost, "POST /api/Clases/filtrar", "/api/Clases/filtrar", f)
}

// QueryClasses POST /api/Clases/consultar/general（报表查询）
func (c *Client) QueryClasses(ctx context.Context, sess *session.Session, f ClassFilter) ([]ClassRecord, error) {
	return fetchList[ClassRecord](ctx, c, sess, http.MethodPost, "POST /api/Clases/consultar/general", "/api/Clases/consultar/general", f)
}

func (c *Client) CreateClass(ctx context.Context, sess *session.Session, in ClassInput) error {
	_, err := c.send(ctx, sess, http.MethodPost, "POST /api/Clases/crear/clases", "/api/Clases/crear/clases", in)
	return err
}

func (c *Client) UpdateClass(ctx context.Context, sess *session.Session, id int, in ClassInput) error {
	_, err := c.send(ctx, sess, http.MethodPatch, "PATCH /api/Clases/actualizar/{id}", fmt.Sprintf("/api/Clases/actualizar/%d", id), in)
	return err
}

func (c *Client) DeleteClass(ctx context.Context, sess *session.Session, id int) error {
	_, err := c.send(ctx, sess, http.MethodDelete, "DELETE /api/Clases/eliminar/{id}", fmt.Sprintf("/api/Clases/eliminar/%d", id), nil)
	return err
}
