package service

import (
	"context"
	"net/url"
	"strconv"

	"github.com/stemsi/sekolah-console/internal/apiclient"
)

// resource is one conventional REST collection on the backend: the
// collection lives at path ("/regions/") and items at path+id.
type resource struct {
	client *apiclient.Client
	path   string
}

func (r resource) item(id int) string {
	return r.path + strconv.Itoa(id)
}

func (r resource) list(ctx context.Context, query url.Values, out interface{}) error {
	return r.client.Get(ctx, r.path, query, out)
}

func (r resource) get(ctx context.Context, id int, out interface{}) error {
	return r.client.Get(ctx, r.item(id), nil, out)
}

func (r resource) create(ctx context.Context, in, out interface{}) error {
	return r.client.Post(ctx, r.path, in, out)
}

func (r resource) update(ctx context.Context, id int, in, out interface{}) error {
	return r.client.Put(ctx, r.item(id), in, out)
}

func (r resource) remove(ctx context.Context, id int) error {
	return r.client.Delete(ctx, r.item(id))
}

func byID(key string, id int) url.Values {
	return url.Values{key: []string{strconv.Itoa(id)}}
}
