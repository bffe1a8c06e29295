package diary

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ethanbaker/diary/internal/api/requestid"
	diarysvc "github.com/ethanbaker/diary/internal/diary"
	"github.com/ethanbaker/diary/pkg/sdk"
)

// User-facing messages. Internal error detail (including anything the AI
// service said) stays in the server logs and never reaches the client
const (
	msgContentRequired = "일기 내용을 입력해주세요."
	msgMissingAPIKey   = "API 키가 서버에 설정되지 않았습니다."
	msgAnalyzeFailed   = "AI 분석 중 오류가 발생했습니다. 잠시 후 다시 시도해 주세요."
	msgHistoryFailed   = "일기 히스토리를 불러오는 중 오류가 발생했습니다."
)

// postAnalyze handles POST requests to analyze and store a diary entry
func postAnalyze(svc *diarysvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Parse request body; an unreadable body is the same as a missing entry
		var req sdk.AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, sdk.ErrorResponse{Error: msgContentRequired})
			return
		}

		result, err := svc.Ingest(c.Request.Context(), req.Content)
		if err != nil {
			log.Printf("[DIARY]: analyze request %s failed: %v", requestid.Get(c), err)
			status, msg := analyzeFailure(err)
			c.JSON(status, sdk.ErrorResponse{Error: msg})
			return
		}

		c.JSON(http.StatusOK, sdk.AnalyzeResponse{
			Success:  true,
			Analysis: result.Analysis,
		})
	}
}

// getHistory handles GET requests to list all stored diary entries
func getHistory(svc *diarysvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		history, err := svc.History(c.Request.Context())
		if err != nil {
			log.Printf("[DIARY]: history request %s failed: %v", requestid.Get(c), err)
			c.JSON(http.StatusInternalServerError, sdk.ErrorResponse{Error: msgHistoryFailed})
			return
		}

		resp := sdk.HistoryResponse{History: make([]sdk.DiaryRecord, 0, len(history))}
		for _, record := range history {
			resp.History = append(resp.History, sdk.DiaryRecord(record))
		}

		c.JSON(http.StatusOK, resp)
	}
}

// analyzeFailure maps a service error to a status code and client message
func analyzeFailure(err error) (int, string) {
	var validationErr *diarysvc.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, msgContentRequired
	}

	var configErr *diarysvc.ConfigurationError
	if errors.As(err, &configErr) {
		return http.StatusInternalServerError, msgMissingAPIKey
	}

	return http.StatusInternalServerError, msgAnalyzeFailed
}
