package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `taskpad tracks tasks with a priority (low, medium, high), a status (todo, in-progress, completed), an optional due date and tags.

Tools:
- task_stats: counts by status and priority, overdue tasks, completion rate.
- list_tasks / search_tasks: browse tasks. Overdue is computed at call time.
- analyze_task: keyword analysis of a draft title and description.
- format_description: restructure free text into a task description.
- generate_report: markdown insights report, optionally limited to tasks created between start and end (YYYY-MM-DD, both inclusive).

Docs:
- taskpad://docs/classification
- taskpad://docs/report
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "taskpad://docs/classification",
		Name:        "docs_classification",
		Title:       "Task classification rules",
		Description: "How analyze_task derives priority, estimate, tags and deadline.",
		Content: `# Classification

Title and description are joined and lowercased, then matched by substring.

## Priority
- high: urgent, critical, asap, emergency, important, deadline
- low: optional, nice to have, whenever, eventually
- otherwise medium. High keywords win over low ones.

## Estimate (word count)
- under 20 words: 1-2 hours
- under 50: 3-5 hours
- under 100: 1-2 days
- otherwise 3-5 days

## Tags
At most three, in this order: development, design, documentation, bug, feature, meeting, review.

## Deadline
- urgent or asap: tomorrow
- quick or simple: in 3 days
- otherwise in 7 days
`,
	},
	{
		URI:         "taskpad://docs/report",
		Name:        "docs_report",
		Title:       "Insights report",
		Description: "Sections of the generate_report output and how they are chosen.",
		Content: `# Insights report

The report covers tasks created within the requested period.

Sections:
1. Executive summary: totals with percentages and a completion rate band.
2. Workload analysis: open work, in-progress load and overdue alert.
3. Priority analysis: distribution and focus.
4. Recommendations: numbered, only those whose condition holds.
5. Reclassification candidates: tasks rated above their stored priority.
6. Conclusion.

Percentages are omitted when the period has no tasks.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
