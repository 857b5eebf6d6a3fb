package resthttp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"llamalend/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/go-resty/resty/v2"
)

const (
	// HeaderKeyRequestID request id header key
	HeaderKeyRequestID = "X-Request-Id"
)

// Error non 2xx response
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("http status %d: %s", e.Status, e.Body)
}

// New resty client for endpoint
func New(endpoint string, timeout time.Duration) *resty.Client {
	return resty.New().
		SetBaseURL(strings.TrimSuffix(endpoint, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Charset", "utf-8").
		SetTimeout(timeout)
}

// Request new resty request, the request id derives from the one in ctx
func Request(ctx context.Context, client *resty.Client, name string) *resty.Request {
	return client.R().
		SetContext(ctx).
		SetHeader(HeaderKeyRequestID, id.Derive(id.RequestIDFrom(ctx), name))
}

// Execute do network request and decode the response into resp
func Execute(request *resty.Request, method, url string, body interface{}, resp interface{}) (int, error) {
	log := logger.FromContext(request.Context()).WithField("url", url)

	if body != nil {
		request = request.SetBody(body)
	}

	r, err := request.Execute(strings.ToUpper(method), url)
	if err != nil {
		log.WithError(err).Errorln("request.Execute")
		return 0, err
	}

	log.Debugln("resp.status", r.Status())
	return r.StatusCode(), ParseResponse(r, resp)
}

// ParseResponse parse response
func ParseResponse(r *resty.Response, obj interface{}) error {
	if !r.IsSuccess() {
		return &Error{Status: r.StatusCode(), Body: string(r.Body())}
	}

	if obj == nil {
		return nil
	}

	return json.Unmarshal(r.Body(), obj)
}
