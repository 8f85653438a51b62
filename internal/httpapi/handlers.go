package httpapi

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"strconv"
	"strings"

	"github.com/DoyleJ11/draft-room/internal/controls"
	"github.com/DoyleJ11/draft-room/internal/draft"
	"github.com/DoyleJ11/draft-room/internal/home"
	"github.com/DoyleJ11/draft-room/internal/hub"
	"github.com/DoyleJ11/draft-room/internal/room"
	"github.com/DoyleJ11/draft-room/internal/types"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const commissionerHeader = "X-Commissioner"

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

type handlers struct {
	hub *hub.Hub
	log *zap.Logger
}

func (h handlers) createRoom(w http.ResponseWriter, r *http.Request) {
	var code string
	for {
		c, err := GenerateCode()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to generate code")
			return
		}
		existing, err := h.hub.Get(r.Context(), c)
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		if existing == nil {
			code = c
			break
		}
		h.log.Debug("collision on code, regenerating", zap.String("room", c))
	}

	if _, err := h.hub.Ensure(r.Context(), code, draft.NewState()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "failed to create room")
		return
	}

	writeJSON(w, http.StatusCreated, types.RoomResponse{Code: code})
}

func (h handlers) homePage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := home.Render(&buf); err != nil {
		h.log.Error("render home", zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h handlers) homeJSON(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.HomeResponse{
		Features:     home.Features(),
		QuickActions: home.QuickActions(),
	})
}

func (h handlers) controlsJSON(w http.ResponseWriter, r *http.Request) {
	rm, ok := h.lookup(w, r)
	if !ok {
		return
	}
	v, err := rm.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	snap := v.Snapshot()
	commissioner := isCommissioner(r)
	writeJSON(w, http.StatusOK, types.ControlsResponse{
		View:           controls.Resolve(commissioner, &snap),
		IsCommissioner: commissioner,
		DraftState:     &snap,
		Version:        v.Version,
	})
}

func (h handlers) controlsPage(w http.ResponseWriter, r *http.Request) {
	rm, ok := h.lookup(w, r)
	if !ok {
		return
	}
	v, err := rm.Snapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	snap := v.Snapshot()
	panel := controls.NewPanel(isCommissioner(r), &snap, nil)

	var buf bytes.Buffer
	if err := panel.Render(&buf, actionsFor(rm.Code())); err != nil {
		h.log.Error("render controls", zap.String("room", rm.Code()), zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// intent runs one click on the controls panel: the panel decides whether the
// affordance is showing, and its notify hook forwards the intent to the room.
func (h handlers) intent(emit func(*controls.Panel) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rm, ok := h.lookup(w, r)
		if !ok {
			return
		}
		v, err := rm.Snapshot(r.Context())
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}

		var sent controls.Intent
		var dispatchErr error
		snap := v.Snapshot()
		panel := controls.NewPanel(isCommissioner(r), &snap, func(i controls.Intent) {
			sent = i
			cmd, ok := room.IntentCommand(i)
			if !ok {
				dispatchErr = draft.ErrUnsupportedCommand
				return
			}
			dispatchErr = rm.Do(r.Context(), cmd)
		})

		if err := emit(panel); err != nil {
			writeError(w, http.StatusConflict, controls.ErrAffordanceHidden.Error())
			return
		}
		if dispatchErr != nil {
			h.dispatchFailed(w, rm.Code(), dispatchErr)
			return
		}
		h.accepted(w, r, rm, string(sent))
	}
}

func (h handlers) complete(w http.ResponseWriter, r *http.Request) {
	rm, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := rm.Do(r.Context(), draft.Command{Type: draft.CmdComplete}); err != nil {
		h.dispatchFailed(w, rm.Code(), err)
		return
	}
	h.accepted(w, r, rm, "complete")
}

func (h handlers) accepted(w http.ResponseWriter, r *http.Request, rm *room.Room, intent string) {
	if isFormPost(r) {
		http.Redirect(w, r, "/rooms/"+rm.Code()+"/controls?commissioner="+strconv.FormatBool(isCommissioner(r)), http.StatusSeeOther)
		return
	}

	v, err := rm.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, types.IntentResponse{Intent: intent, Version: v.Version})
}

func (h handlers) dispatchFailed(w http.ResponseWriter, code string, err error) {
	switch {
	case errors.Is(err, draft.ErrAlreadyRunning),
		errors.Is(err, draft.ErrAlreadyPaused),
		errors.Is(err, draft.ErrDraftCompleted),
		errors.Is(err, draft.ErrUnsupportedCommand):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.log.Warn("dispatch failed", zap.String("room", code), zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, err.Error())
	}
}

func (h handlers) lookup(w http.ResponseWriter, r *http.Request) (*room.Room, bool) {
	code := chi.URLParam(r, "code")
	rm, err := h.hub.Get(r.Context(), code)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return nil, false
	}
	if rm == nil {
		writeError(w, http.StatusNotFound, "room not found")
		return nil, false
	}
	return rm, true
}

// The commissioner flag is taken at face value.
func isCommissioner(r *http.Request) bool {
	if v := r.Header.Get(commissionerHeader); v != "" {
		ok, _ := strconv.ParseBool(v)
		return ok
	}
	ok, _ := strconv.ParseBool(r.URL.Query().Get("commissioner"))
	return ok
}

func isFormPost(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data")
}

func actionsFor(code string) controls.Actions {
	base := "/rooms/" + code
	return controls.Actions{
		Start: base + "/start?commissioner=true",
		Pause: base + "/pause?commissioner=true",
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg})
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
