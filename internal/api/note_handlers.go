package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lectioapp/lectio-server/internal/domain"
	"github.com/lectioapp/lectio-server/internal/service"
)

// ProcessInput is the request body for synthesizing notes from a video.
type ProcessInput struct {
	Body struct {
		YoutubeURL string `json:"youtube_url" doc:"YouTube video URL or bare video ID" example:"https://www.youtube.com/watch?v=dQw4w9WgXcQ"`
		Language   string `json:"language,omitempty" enum:"english,hinglish" doc:"Output language (default english)"`
		Style      string `json:"style,omitempty" enum:"simple,exam" doc:"Output style (default simple)"`
	}
}

// NoteOutput wraps a full synthesized note.
type NoteOutput struct {
	Body domain.Note
}

// GetNoteInput identifies a persisted note.
type GetNoteInput struct {
	NoteID string `path:"noteID" doc:"Note ID returned by the process endpoint"`
}

// ListNotesOutput wraps the persisted note list.
type ListNotesOutput struct {
	Body struct {
		Notes []*domain.Note `json:"notes"`
	}
}

func (s *Server) registerNoteRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "processVideo",
		Method:      http.MethodPost,
		Path:        "/api/v1/process",
		Summary:     "Process a lecture video",
		Description: "Fetches the transcript and on-screen text, segments the lecture into topics, and returns structured study notes with export links.",
		Tags:        []string{"Notes"},
	}, s.handleProcess)

	huma.Register(s.api, huma.Operation{
		OperationID: "getNote",
		Method:      http.MethodGet,
		Path:        "/api/v1/notes/{noteID}",
		Summary:     "Get a processed note",
		Tags:        []string{"Notes"},
	}, s.handleGetNote)

	huma.Register(s.api, huma.Operation{
		OperationID: "listNotes",
		Method:      http.MethodGet,
		Path:        "/api/v1/notes",
		Summary:     "List processed notes",
		Tags:        []string{"Notes"},
	}, s.handleListNotes)
}

func (s *Server) handleProcess(ctx context.Context, input *ProcessInput) (*NoteOutput, error) {
	note, err := s.notes.Process(ctx, service.ProcessRequest{
		YoutubeURL: input.Body.YoutubeURL,
		Language:   input.Body.Language,
		Style:      input.Body.Style,
	})
	if err != nil {
		return nil, err
	}
	return &NoteOutput{Body: *note}, nil
}

func (s *Server) handleGetNote(ctx context.Context, input *GetNoteInput) (*NoteOutput, error) {
	note, err := s.notes.Get(ctx, input.NoteID)
	if err != nil {
		return nil, err
	}
	return &NoteOutput{Body: *note}, nil
}

func (s *Server) handleListNotes(ctx context.Context, _ *struct{}) (*ListNotesOutput, error) {
	notes, err := s.notes.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &ListNotesOutput{}
	out.Body.Notes = notes
	if out.Body.Notes == nil {
		out.Body.Notes = []*domain.Note{}
	}
	return out, nil
}
