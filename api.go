package mandel

// Progress receives the diagnostics of a render. Rows are reported in raster order.
type Progress interface {
	// Diagnostic reports a named numeric value such as "overflow" or "mindist".
	Diagnostic(name string, value float64)
	RowDone(row, total int)
	Done()
}

// RenderRequest is what a client sends the render server.
type RenderRequest struct {
	View     ViewConfig `json:"view"`
	Format   string     `json:"format,omitempty"`
	Compress string     `json:"compress,omitempty"`
}

// RowProgress is the message the render server streams back while rendering.
type RowProgress struct {
	Row   int `json:"row"`
	Total int `json:"total"`
}
