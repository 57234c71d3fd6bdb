package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/tidwall/gjson"
)

// toolArgs lists the arguments logged for each tool. Free-form text such as
// descriptions is never logged.
var toolArgs = map[string][]string{
	"analyze_task":    {"title"},
	"search_tasks":    {"query"},
	"list_tasks":      {"status", "priority"},
	"generate_report": {"start", "end"},
}

// trafficLoggingMiddleware logs one debug line per call and one per result.
// Tool calls are logged by name with their filter arguments, and tool
// results by how many tasks they covered.
func trafficLoggingMiddleware(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if logger == nil || !logger.Enabled(ctx, slog.LevelDebug) {
				return next(ctx, method, req)
			}

			attrs := []any{"direction", direction, "method", method}
			if id := sessionID(req); id != "" {
				attrs = append(attrs, "session_id", id)
			}
			if userID := getUserID(ctx); userID != "" {
				attrs = append(attrs, "user_id", userID)
			}
			if req != nil {
				attrs = append(attrs, callAttrs(req.GetParams())...)
			}
			logger.Debug("mcp call", attrs...)

			result, err := next(ctx, method, req)
			if err != nil {
				logger.Debug("mcp call failed", append(attrs, "error", err)...)
				return result, err
			}
			if res, ok := result.(*sdkmcp.CallToolResult); ok && res != nil {
				logger.Debug("mcp tool result", append(attrs, resultAttrs(res)...)...)
			}
			return result, nil
		}
	}
}

func sessionID(req sdkmcp.Request) (id string) {
	if req == nil {
		return ""
	}
	// A request built outside a live session has no connection behind it.
	defer func() { _ = recover() }()
	if s := req.GetSession(); s != nil {
		id = s.ID()
	}
	return id
}

// callAttrs returns the tool name and logged arguments of a tools/call.
func callAttrs(params sdkmcp.Params) []any {
	p, ok := params.(*sdkmcp.CallToolParamsRaw)
	if !ok || p == nil {
		return nil
	}
	attrs := []any{"tool", p.Name}
	for _, name := range toolArgs[p.Name] {
		if v := gjson.GetBytes(p.Arguments, name); v.Exists() && v.String() != "" {
			attrs = append(attrs, name, v.String())
		}
	}
	return attrs
}

// resultAttrs reports tool failures and the task count of a result.
func resultAttrs(res *sdkmcp.CallToolResult) []any {
	if res.IsError {
		return []any{"tool_error", true}
	}
	if res.StructuredContent == nil {
		return nil
	}
	data, err := json.Marshal(res.StructuredContent)
	if err != nil {
		return nil
	}
	out := gjson.GetManyBytes(data, "count", "total", "period")
	var attrs []any
	switch {
	case out[0].Exists():
		attrs = append(attrs, "tasks", out[0].Int())
	case out[1].Exists():
		attrs = append(attrs, "tasks", out[1].Int())
	}
	if out[2].Exists() {
		attrs = append(attrs, "period", out[2].String())
	}
	return attrs
}
