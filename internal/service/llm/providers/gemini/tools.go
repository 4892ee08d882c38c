package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
)

// Tool names as declared to the model.
const (
	toolCreateCalendarEvent = "create_calendar_event"
	toolOpenLocalApp        = "open_local_app"
)

// toolDeclarations builds the function declarations for the configured
// tools. A tool whose integration is not wired up is simply not declared,
// so the model never tries to call it.
func (p *Provider) toolDeclarations() []*genai.Tool {
	var decls []*genai.FunctionDeclaration

	if p.calendar != nil {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        toolCreateCalendarEvent,
			Description: "Create a new appointment or event in the user's Google Calendar.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"summary":     {Type: genai.TypeString, Description: "Title of the event"},
					"startTime":   {Type: genai.TypeString, Description: "ISO format timestamp"},
					"endTime":     {Type: genai.TypeString, Description: "ISO format timestamp"},
					"description": {Type: genai.TypeString, Description: "Optional notes"},
				},
				Required: []string{"summary", "startTime", "endTime"},
			},
		})
	}

	if p.agent != nil {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        toolOpenLocalApp,
			Description: "Open a program on the user's PC",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"app_name": {Type: genai.TypeString},
				},
				Required: []string{"app_name"},
			},
		})
	}

	if len(decls) == 0 {
		return nil
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

// dispatchTool executes a function call and returns the confirmation text
// relayed to the caller in place of model output. Tool failures become
// readable text rather than stream errors: the exchange itself succeeded,
// the side effect did not.
func (p *Provider) dispatchTool(ctx context.Context, call genai.FunctionCall) string {
	p.logger.Info("tool call", "name", call.Name)

	switch call.Name {
	case toolCreateCalendarEvent:
		if p.calendar == nil {
			return "Calendar integration is not configured."
		}
		link, err := p.calendar.CreateEvent(ctx,
			stringArg(call.Args, "summary"),
			stringArg(call.Args, "startTime"),
			stringArg(call.Args, "endTime"),
			stringArg(call.Args, "description"),
		)
		if err != nil {
			p.logger.Error("calendar tool failed", "error", err)
			return fmt.Sprintf("📅 **Calendar:** Could not create the event (%v).", err)
		}
		return fmt.Sprintf("📅 **Calendar:** Event created!\n[Link](%s)", link)

	case toolOpenLocalApp:
		if p.agent == nil {
			return "PC agent integration is not configured."
		}
		app := stringArg(call.Args, "app_name")
		status, err := p.agent.OpenApp(ctx, app)
		if err != nil {
			p.logger.Error("pc agent tool failed", "error", err)
			status = "error"
		}
		return fmt.Sprintf("🚀 **PC Agent:** Opening `%s`. Status: %s", app, status)

	default:
		return fmt.Sprintf("Unsupported tool call: %s", call.Name)
	}
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}
