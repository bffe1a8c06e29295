package sdk

// AnalyzeRequest is the body of POST /api/analyze
type AnalyzeRequest struct {
	Content string `json:"content"`
}

// AnalyzeResponse is the success body of POST /api/analyze
type AnalyzeResponse struct {
	Success  bool   `json:"success"`
	Analysis string `json:"analysis"`
}

// DiaryRecord is one stored diary entry with its AI analysis
type DiaryRecord struct {
	Content   string `json:"content"`
	AIMessage string `json:"aiMessage"`
	CreatedAt string `json:"createdAt"`
}

// HistoryResponse is the success body of GET /api/history. History is always
// present, possibly empty, never null
type HistoryResponse struct {
	History []DiaryRecord `json:"history"`
}

// ErrorResponse is the error body shared by every endpoint
type ErrorResponse struct {
	Error string `json:"error"`
}
