package local

// Config contains local inference server configuration. The server is any
// OpenAI-compatible endpoint (LM Studio, Ollama, llama.cpp server).
type Config struct {
	BaseURL string `env:"LOCAL_BASE_URL"      envDefault:"http://127.0.0.1:1234"`
	Model   string `env:"LOCAL_MODEL_NAME"    envDefault:"gpt-oss-20b"`
	// Timeout is generous because local models can be slow.
	Timeout      int `env:"LOCAL_TIMEOUT"       envDefault:"120"`
	ProbeTimeout int `env:"LOCAL_PROBE_TIMEOUT" envDefault:"5"`
}
