package tools

import (
	"context"
	"fmt"
	"log/slog"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// eventTimeZone is the calendar's local timezone; event start/end arrive as
// naive ISO timestamps from the model.
const eventTimeZone = "Europe/Stockholm"

// CalendarService creates events in the user's primary Google Calendar
// using a service account.
type CalendarService struct {
	events *calendar.EventsService
	logger *slog.Logger
}

// NewCalendarService authenticates against the Calendar API with the given
// service-account credentials file.
func NewCalendarService(ctx context.Context, credentialsFile string, logger *slog.Logger) (*CalendarService, error) {
	svc, err := calendar.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(calendar.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	return &CalendarService{
		events: svc.Events,
		logger: logger,
	}, nil
}

// CreateEvent inserts an event into the primary calendar and returns its
// web link.
func (s *CalendarService) CreateEvent(ctx context.Context, summary, startTime, endTime, description string) (string, error) {
	event := &calendar.Event{
		Summary:     summary,
		Description: description,
		Start:       &calendar.EventDateTime{DateTime: startTime, TimeZone: eventTimeZone},
		End:         &calendar.EventDateTime{DateTime: endTime, TimeZone: eventTimeZone},
	}

	created, err := s.events.Insert("primary", event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert calendar event: %w", err)
	}

	s.logger.Info("calendar event created", "summary", summary, "start", startTime)

	return created.HtmlLink, nil
}
