package classify

// Classifier classifies tournaments for one division using a popularity
// table tuned through options.
type Classifier struct {
	popularity        map[string]float64
	defaultPopularity float64
	enrichConcurrency int
}

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithDivisionPopularity replaces the division popularity table.
func WithDivisionPopularity(popularity map[string]float64, fallback float64) Option {
	return func(c *Classifier) {
		c.popularity = make(map[string]float64)
		for name, share := range popularity {
			if share > 0 {
				c.popularity[name] = share
			}
		}
		if fallback > 0 {
			c.defaultPopularity = fallback
		}
	}
}

// WithEnrichConcurrency bounds the parallel entrant-lookup fan-out.
func WithEnrichConcurrency(n int) Option {
	return func(c *Classifier) {
		if n > 0 {
			c.enrichConcurrency = n
		}
	}
}

// NewClassifier creates a Classifier with configuration options.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		popularity:        defaultDivisionPopularity,
		defaultPopularity: defaultPopularity,
		enrichConcurrency: defaultEnrichConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
