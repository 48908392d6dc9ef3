package broadcast

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fittrack/fittrack/internal/auth"
	"github.com/fittrack/fittrack/internal/view"
)

const keepAliveInterval = 25 * time.Second

type Handler struct {
	broadcaster *Broadcaster
}

func NewHandler(broadcaster *Broadcaster) *Handler {
	return &Handler{broadcaster: broadcaster}
}

// HandleEvents is the push channel: a long-lived server-sent events
// stream of zero-payload "changed" messages. Observers re-pull a full
// snapshot on each message; reconnecting after a drop is the observer's
// job, backed by its fallback poll.
func (handler *Handler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	scope, err := eventsScope(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := handler.broadcaster.Subscribe(scope)
	defer handler.broadcaster.Unsubscribe(sub)

	log.Tracef("events: %s observer connected", scope.Kind())

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Tracef("events: %s observer disconnected", scope.Kind())
			return
		case <-sub.Signals():
			if _, err := fmt.Fprint(w, "data: changed\n\n"); err != nil {
				log.Debugf("events: write to %s observer: %s", scope.Kind(), err)
				return
			}
			flusher.Flush()
		case <-keepAlive.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// eventsScope resolves the subscription scope of an events request.
// Anonymous observers get the public scope; a signed-in admin may watch
// another user's ledger via the user query param.
func eventsScope(r *http.Request) (view.Scope, error) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		return view.Public(), nil
	}

	if targetStr := r.URL.Query().Get("user"); targetStr != "" {
		target, err := strconv.Atoi(targetStr)
		if err != nil {
			return view.Scope{}, fmt.Errorf("invalid user param")
		}
		if target != identity.UserID {
			if !identity.IsAdmin() {
				return view.Scope{}, fmt.Errorf("admin capability required")
			}
			return view.AdminReadOnly(target), nil
		}
	}

	return view.Owner(identity.UserID), nil
}
