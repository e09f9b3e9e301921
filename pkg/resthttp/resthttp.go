package resthttp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/go-resty/resty/v2"
)

const (
	// HeaderKeyRequestID request id header key
	headerKeyRequestID = "X-Request-Id"
)

var runOnce sync.Once
var restyClient *resty.Client

// Client resty client
func Client() *resty.Client {
	runOnce.Do(func() {
		restyClient = resty.New().
			SetHeader("Content-Type", "application/json").
			SetHeader("Charset", "utf-8").
			SetTimeout(10 * time.Second)
	})

	return restyClient
}

// Request new resty request
func Request(ctx context.Context) *resty.Request {
	return Client().R().SetContext(ctx)
}

// WithRequestID resty request with request id
func WithRequestID(ctx context.Context, requestID string) *resty.Request {
	return Request(ctx).SetHeader(headerKeyRequestID, requestID)
}

// PostJSON posts body as json, any non 2xx status is an error
func PostJSON(request *resty.Request, url string, body interface{}) error {
	log := logger.FromContext(request.Context()).WithField("url", url)

	r, err := request.SetBody(body).Post(url)
	if err != nil {
		log.WithError(err).Errorln("post")
		return err
	}

	log.Debugln("resp.status:", r.Status())

	if !r.IsSuccess() {
		return fmt.Errorf("post %s: %s: %s", url, r.Status(), r.String())
	}

	return nil
}
