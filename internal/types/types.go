package types

import (
	"github.com/DoyleJ11/draft-room/internal/controls"
	"github.com/DoyleJ11/draft-room/internal/draft"
	"github.com/DoyleJ11/draft-room/internal/home"
)

type HomeResponse struct {
	Features     []home.Feature     `json:"features"`
	QuickActions []home.QuickAction `json:"quick_actions"`
}

type RoomResponse struct {
	Code string `json:"code"`
}

type ControlsResponse struct {
	View           controls.View   `json:"view"`
	IsCommissioner bool            `json:"is_commissioner"`
	DraftState     *draft.Snapshot `json:"draft_state,omitempty"`
	Version        int             `json:"version"`
}

type IntentResponse struct {
	Intent  string `json:"intent"`
	Version int    `json:"version"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
