package transport

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rpggio/taskpad/internal/classify"
	"github.com/rpggio/taskpad/internal/domain/task"
	"github.com/tidwall/gjson"
)

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if !gjson.ValidBytes(body) {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if gjson.GetBytes(body, "description").String() == "" {
		writeFailure(w, http.StatusBadRequest, "Description is required")
		return
	}

	action := AnalyzeAction(gjson.GetBytes(body, "action").String())
	switch action {
	case ActionFormat:
		var req FormatRequest
		if err := json.Unmarshal(body, &req); err != nil {
			writeFailure(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		writeJSON(w, http.StatusOK, FormatResponse{
			Success:              true,
			FormattedDescription: classify.FormatDescription(req.Description),
		})
	default:
		if action != "" && action != ActionSuggest {
			s.logger.Debug("unknown analyze action, suggesting", "action", action)
		}
		var req SuggestRequest
		if err := json.Unmarshal(body, &req); err != nil {
			writeFailure(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		writeJSON(w, http.StatusOK, SuggestResponse{Success: true, Suggestions: suggest(req, s.now)})
	}
}

func suggest(req SuggestRequest, now func() time.Time) Suggestions {
	a := classify.Analyze(req.Title, req.Description, now())
	return Suggestions{
		SuggestedPriority: task.Priority(a.SuggestedPriority),
		EstimatedTime:     a.EstimatedTime,
		SuggestedTags:     a.Tags,
		SuggestedDeadline: a.Deadline,
		Reasoning:         a.Reasoning,
	}
}
