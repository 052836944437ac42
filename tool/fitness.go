package tool

import (
	"context"
	"encoding/json"
	"time"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
	serverproto "github.com/viant/mcp-protocol/server"

	"github.com/viant/fitness-mcp/fitness"
)

const defaultActivityLimit = 10

// DailySummaryInput selects a calendar date, defaulting to today (UTC).
type DailySummaryInput struct {
	Date string `json:"date,omitempty" description:"calendar date as YYYY-MM-DD"`
}

// ListActivitiesInput bounds how many recent activities to return.
type ListActivitiesInput struct {
	Limit int `json:"limit,omitempty" description:"number of most recent activities"`
}

// SleepInput selects a calendar date, defaulting to today (UTC).
type SleepInput struct {
	Date string `json:"date,omitempty" description:"calendar date as YYYY-MM-DD"`
}

// RegisterFitness registers the fitness account lookup tools backed by api.
func RegisterFitness(implementer *serverproto.DefaultImplementer, api fitness.API) error {
	if err := serverproto.RegisterTool[*DailySummaryInput](implementer, "get_daily_summary",
		"Get the daily wellness summary for a calendar date", dailySummary(api)); err != nil {
		return err
	}
	if err := serverproto.RegisterTool[*ListActivitiesInput](implementer, "list_activities",
		"List the most recent recorded activities", listActivities(api)); err != nil {
		return err
	}
	return serverproto.RegisterTool[*SleepInput](implementer, "get_sleep",
		"Get sleep data for a calendar date", sleep(api))
}

func dailySummary(api fitness.API) func(ctx context.Context, input *DailySummaryInput) (*schema.CallToolResult, *jsonrpc.Error) {
	return func(ctx context.Context, input *DailySummaryInput) (*schema.CallToolResult, *jsonrpc.Error) {
		summary, err := api.DailySummary(ctx, orToday(input.Date))
		if err != nil {
			return nil, jsonrpc.NewInternalError(err.Error(), nil)
		}
		return jsonResult(summary)
	}
}

func listActivities(api fitness.API) func(ctx context.Context, input *ListActivitiesInput) (*schema.CallToolResult, *jsonrpc.Error) {
	return func(ctx context.Context, input *ListActivitiesInput) (*schema.CallToolResult, *jsonrpc.Error) {
		limit := input.Limit
		if limit <= 0 {
			limit = defaultActivityLimit
		}
		activities, err := api.Activities(ctx, limit)
		if err != nil {
			return nil, jsonrpc.NewInternalError(err.Error(), nil)
		}
		return jsonResult(activities)
	}
}

func sleep(api fitness.API) func(ctx context.Context, input *SleepInput) (*schema.CallToolResult, *jsonrpc.Error) {
	return func(ctx context.Context, input *SleepInput) (*schema.CallToolResult, *jsonrpc.Error) {
		data, err := api.Sleep(ctx, orToday(input.Date))
		if err != nil {
			return nil, jsonrpc.NewInternalError(err.Error(), nil)
		}
		return jsonResult(data)
	}
}

func orToday(date string) string {
	if date != "" {
		return date
	}
	return time.Now().UTC().Format("2006-01-02")
}

func jsonResult(payload interface{}) (*schema.CallToolResult, *jsonrpc.Error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, jsonrpc.NewInternalError(err.Error(), nil)
	}
	return textResult(string(data)), nil
}
