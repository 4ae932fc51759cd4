package ollama

import (
	"net/http"
	"net/url"
	"sync"

	"github.com/aerugo/ancestral-vision/pkg/ai"

	"github.com/ollama/ollama/api"
)

// OracleOllamaClient implements the ai.OracleClient interface against a
// locally-hosted or remote Ollama server.
type OracleOllamaClient struct {
	chatModel      string
	embeddingModel string

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	baseURL *url.URL

	Client *api.Client
}

// NewOracleOllamaClientParams contains configuration options for creating
// a new OracleOllamaClient. ApiKey may be empty for unauthenticated
// local servers.
type NewOracleOllamaClientParams struct {
	ChatModel      string
	EmbeddingModel string

	BaseURL string
	ApiKey  string
}

type headerTransport struct {
	headers map[string]string
	rt      http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so original request isn't modified
	r := req.Clone(req.Context())
	for k, v := range t.headers {
		// don't overwrite if already set
		if r.Header.Get(k) == "" {
			r.Header.Set(k, v)
		}
	}
	return t.rt.RoundTrip(r)
}

// NewOracleOllamaClient creates a new Ollama-backed client connected to
// the server at BaseURL (or the default if empty).
func NewOracleOllamaClient(
	params NewOracleOllamaClientParams,
) (*OracleOllamaClient, error) {
	var (
		u   *url.URL
		err error
	)

	if params.BaseURL != "" {
		u, err = url.Parse(params.BaseURL)
		if err != nil {
			return nil, err
		}
	}

	httpClient := http.DefaultClient
	if params.ApiKey != "" {
		httpClient = &http.Client{
			Transport: &headerTransport{
				headers: map[string]string{
					"Authorization": "Bearer " + params.ApiKey,
				},
				rt: http.DefaultTransport,
			},
		}
	}

	cli := api.NewClient(u, httpClient)

	return &OracleOllamaClient{
		chatModel:      params.ChatModel,
		embeddingModel: params.EmbeddingModel,

		metricsLock: sync.Mutex{},
		metrics:     ai.ModelMetrics{},

		baseURL: u,

		Client: cli,
	}, nil
}
