package recorder

// RenderRecord holds the metadata of one completed chart render. Only run
// metadata is persisted; price history itself is never stored.
type RenderRecord struct {
	Symbol      string
	Period      string
	BarCount    int
	CandleCount int
	Elided      int
	PriceMin    float64
	PriceMax    float64
	OutputPath  string
	DurationMs  int64
}

// Recorder persists render history for later inspection.
type Recorder interface {
	RecordRender(rec *RenderRecord) error
	Close() error
}
