package wheels

// FrameStats counts the work done between one BeginRender and its EndRender.
type FrameStats struct {
	VerticesUploaded int
	IndicesUploaded  int
	DrawCalls        int
	Triangles        int
	Reallocations    int // geometry buffers re-created to grow
}

// keyvals returns the stats as alternating keys and values for structured
// logging.
func (s FrameStats) keyvals() []any {
	return []any{
		"vertices", s.VerticesUploaded,
		"indices", s.IndicesUploaded,
		"draws", s.DrawCalls,
		"triangles", s.Triangles,
		"reallocs", s.Reallocations,
	}
}
