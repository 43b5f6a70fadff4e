package tools

import (
	"context"
	"time"
)

// FuncTool adapts a plain Go function into a Tool. It is the local
// equivalent of a function tool: the handler receives the parsed arguments
// and returns the string the model sees.
type FuncTool struct {
	info    ToolInfo
	handler func(ctx context.Context, args map[string]any) (string, error)
}

// NewFuncTool wraps handler with the given metadata.
func NewFuncTool(info ToolInfo, handler func(ctx context.Context, args map[string]any) (string, error)) *FuncTool {
	return &FuncTool{
		info:    info,
		handler: handler,
	}
}

func (t *FuncTool) GetInfo() ToolInfo {
	return t.info
}

func (t *FuncTool) GetName() string {
	return t.info.Name
}

func (t *FuncTool) GetDescription() string {
	return t.info.Description
}

func (t *FuncTool) Execute(ctx context.Context, args map[string]any) (ToolResult, error) {
	start := time.Now()

	content, err := t.handler(ctx, args)
	if err != nil {
		return ToolResult{
			Success:       false,
			Error:         err.Error(),
			ToolName:      t.info.Name,
			ExecutionTime: time.Since(start),
		}, err
	}

	return ToolResult{
		Success:       true,
		Content:       content,
		ToolName:      t.info.Name,
		ExecutionTime: time.Since(start),
	}, nil
}

// StringArg extracts a string argument, returning "" when absent or not a
// string.
func StringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}
