package service

import (
	"context"
	"time"

	"github.com/apex/log"

	"wefix/analysis"
	"wefix/chat"
	"wefix/location"
	"wefix/metrics"
	"wefix/models"
)

// ChatResponse is one assistant answer plus the session it belongs to.
type ChatResponse struct {
	SessionID string     `json:"session_id"`
	Reply     chat.Reply `json:"reply"`
}

// Chat routes one user message to an intent and produces the reply,
// calling into the pipeline for intents that need live data. An empty
// sessionID starts a new session.
func (s *Service) Chat(ctx context.Context, sessionID, message string, device *location.DeviceCoordinates) (*ChatResponse, error) {
	if sessionID == "" {
		sessionID = chat.NewSessionID()
	}
	epoch := s.sessions.Touch(sessionID)

	intent := chat.Route(message)
	metrics.IntentsTotal.WithLabelValues(string(intent)).Inc()

	var reply chat.Reply
	switch intent {
	case chat.IntentCategoryInfo:
		reply = chat.CategoryReply(analysis.Categories())

	case chat.IntentStatsRequest:
		stats, err := s.store.GetStats(ctx)
		if err != nil {
			log.Errorf("stats lookup for chat failed: %v", err)
			reply = chat.StaticReply(chat.IntentFallback)
		} else {
			reply = chat.StatsReply(*stats)
		}

	case chat.IntentSimilarityRequest:
		reply = chat.StaticReply(intent)

	case chat.IntentIssueDescription:
		result, err := s.AnalyzeIssue(ctx, message, nil, device)
		if err != nil {
			return nil, err
		}
		reply = chat.AnalysisReply(result)

	default:
		reply = chat.StaticReply(intent)
	}

	// A session reset while the pipeline was running makes this turn
	// stale; it is dropped rather than appended to the fresh session.
	kept := s.sessions.AppendIfCurrent(sessionID, epoch, models.ConversationTurn{
		UserMessage: message,
		Intent:      string(intent),
		Reply:       reply.Text,
		Timestamp:   time.Now().UTC(),
	})
	if !kept {
		log.Warnf("session %s was reset mid-turn, dropping stale result", sessionID)
		reply = chat.StaticReply(chat.IntentFallback)
		return &ChatResponse{SessionID: sessionID, Reply: reply}, nil
	}

	if smart := chat.SmartSuggestions(s.sessions.History(sessionID)); len(smart) > 0 {
		reply.Suggestions = smart
	}

	return &ChatResponse{SessionID: sessionID, Reply: reply}, nil
}

// ChatHistory returns the recorded turns for a session.
func (s *Service) ChatHistory(sessionID string) []models.ConversationTurn {
	return s.sessions.History(sessionID)
}

// ClearChat drops a session's history.
func (s *Service) ClearChat(sessionID string) {
	s.sessions.Clear(sessionID)
}
