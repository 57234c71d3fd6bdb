package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/taskpad/internal/classify"
	"github.com/rpggio/taskpad/internal/domain/task"
	"github.com/rpggio/taskpad/internal/report"
)

// tools holds the dependencies shared by tool handlers.
type tools struct {
	tasks  task.Repository
	now    func() time.Time
	logger *slog.Logger
}

func registerTools(server *sdkmcp.Server, t *tools) {
	// Analysis
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "analyze_task",
		Description: "Suggest priority, time estimate, tags and deadline for a draft task using keyword analysis",
	}, t.analyzeTask)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "format_description",
		Description: "Restructure a free-form description into a formatted task description",
	}, t.formatDescription)

	// Tasks
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "task_stats",
		Description: "Count tasks by status and priority, including overdue tasks and completion rate",
	}, t.taskStats)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "search_tasks",
		Description: "Search tasks by text in title, description and tags",
	}, t.searchTasks)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks, optionally filtered by status and priority",
	}, t.listTasks)

	// Reports
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "generate_report",
		Description: "Generate the markdown insights report for tasks created within an optional date range",
	}, t.generateReport)
}

func (t *tools) analyzeTask(_ context.Context, _ *sdkmcp.CallToolRequest, in AnalyzeTaskParams) (*sdkmcp.CallToolResult, AnalyzeTaskResponse, error) {
	if strings.TrimSpace(in.Title) == "" && strings.TrimSpace(in.Description) == "" {
		return nil, AnalyzeTaskResponse{}, MapError(fmt.Errorf("%w: title or description is required", task.ErrInvalidInput))
	}
	s := classify.Analyze(in.Title, in.Description, t.now())
	return nil, AnalyzeTaskResponse{
		SuggestedPriority: task.Priority(s.SuggestedPriority),
		EstimatedTime:     s.EstimatedTime,
		Tags:              s.Tags,
		Deadline:          s.Deadline,
		Reasoning:         s.Reasoning,
	}, nil
}

func (t *tools) formatDescription(_ context.Context, _ *sdkmcp.CallToolRequest, in FormatDescriptionParams) (*sdkmcp.CallToolResult, FormatDescriptionResponse, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, FormatDescriptionResponse{}, MapError(fmt.Errorf("%w: description is required", task.ErrInvalidInput))
	}
	return nil, FormatDescriptionResponse{Description: classify.FormatDescription(in.Description)}, nil
}

func (t *tools) taskStats(ctx context.Context, _ *sdkmcp.CallToolRequest, _ TaskStatsParams) (*sdkmcp.CallToolResult, TaskStatsResponse, error) {
	m := report.Summarize(t.tasks.GetAll(ctx), t.now())
	return nil, TaskStatsResponse{
		Total:          m.Total,
		Todo:           m.Todo,
		InProgress:     m.InProgress,
		Completed:      m.Completed,
		Overdue:        m.Overdue,
		High:           m.High,
		Medium:         m.Medium,
		Low:            m.Low,
		CompletionRate: m.CompletionRate,
	}, nil
}

func (t *tools) searchTasks(ctx context.Context, _ *sdkmcp.CallToolRequest, in SearchTasksParams) (*sdkmcp.CallToolResult, TaskListResponse, error) {
	return nil, t.summarize(t.tasks.Search(ctx, in.Query)), nil
}

func (t *tools) listTasks(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListTasksParams) (*sdkmcp.CallToolResult, TaskListResponse, error) {
	var f task.Filter
	if in.Status != "" {
		status := task.Status(in.Status)
		if !status.Valid() {
			return nil, TaskListResponse{}, MapError(fmt.Errorf("%w: unknown status %q", task.ErrInvalidInput, in.Status))
		}
		f.Status = status
	}
	if in.Priority != "" {
		priority := task.Priority(in.Priority)
		if !priority.Valid() {
			return nil, TaskListResponse{}, MapError(fmt.Errorf("%w: unknown priority %q", task.ErrInvalidInput, in.Priority))
		}
		f.Priority = priority
	}
	return nil, t.summarize(t.tasks.List(ctx, f)), nil
}

func (t *tools) generateReport(ctx context.Context, _ *sdkmcp.CallToolRequest, in GenerateReportParams) (*sdkmcp.CallToolResult, GenerateReportResponse, error) {
	r, err := task.ParseDateRange(in.Start, in.End)
	if err != nil {
		return nil, GenerateReportResponse{}, MapError(err)
	}
	text := report.Generate(t.tasks.GetAll(ctx), r, t.now())
	t.logger.Debug("report generated", "start", in.Start, "end", in.End, "bytes", len(text))
	return nil, GenerateReportResponse{Period: report.DescribeRange(r), Report: text}, nil
}

func (t *tools) summarize(tasks []task.Task) TaskListResponse {
	now := t.now()
	resp := TaskListResponse{Tasks: make([]TaskSummary, 0, len(tasks)), Count: len(tasks)}
	for _, tk := range tasks {
		s := TaskSummary{
			ID:          tk.ID,
			Title:       tk.Title,
			Description: tk.Description,
			Priority:    tk.Priority,
			Status:      tk.Status,
			Tags:        tk.Tags,
			Overdue:     tk.Overdue(now),
			CreatedAt:   tk.CreatedAt.UTC().Format(time.RFC3339),
			UpdatedAt:   tk.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if tk.DueDate != nil {
			s.DueDate = *tk.DueDate
		}
		if s.Tags == nil {
			s.Tags = []string{}
		}
		resp.Tasks = append(resp.Tasks, s)
	}
	return resp
}
