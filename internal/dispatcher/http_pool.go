package dispatcher

import (
	"crypto/tls"
	"sync/atomic"
	"time"

	"github.com/valyala/fasthttp"
)

// HTTPPool round-robins a set of warmed fasthttp clients so punitive calls
// never wait on a cold TLS handshake.
type HTTPPool struct {
	clients []*fasthttp.Client
	index   uint32
}

func NewHTTPPool(size int) *HTTPPool {
	if size < 1 {
		size = 1
	}

	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		MaxVersion:         tls.VersionTLS13,
		ClientSessionCache: tls.NewLRUClientSessionCache(64),
	}

	clients := make([]*fasthttp.Client, size)
	for i := range clients {
		clients[i] = &fasthttp.Client{
			MaxConnsPerHost:     256,
			MaxIdleConnDuration: 180 * time.Second,
			ReadTimeout:         2 * time.Second,
			WriteTimeout:        2 * time.Second,
			ReadBufferSize:      16384,
			WriteBufferSize:     16384,
			MaxResponseBodySize: 1 << 20,
			DialDualStack:       true,
			TLSConfig:           tlsConfig,
		}
	}

	return &HTTPPool{clients: clients}
}

func (p *HTTPPool) GetClient() *fasthttp.Client {
	idx := atomic.AddUint32(&p.index, 1)
	return p.clients[idx%uint32(len(p.clients))]
}

// Warmup primes connections against the API host so the first punitive call
// skips connection setup.
func (p *HTTPPool) Warmup(baseURL string) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(baseURL + "/gateway")
	req.Header.SetMethod(fasthttp.MethodGet)

	for _, client := range p.clients {
		client.DoTimeout(req, resp, 2*time.Second)
	}
}
