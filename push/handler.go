package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/anyproto/any-sync/metric"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/fieldops/fieldops-push-server/domain"
)

const userIdHeader = "X-User-Id"

const maxBodySize = 1 << 20

type ctxKey struct{}

type registerTokenRequest struct {
	Token      string `json:"token"`
	DeviceInfo string `json:"deviceInfo"`
}

type eventRequest struct {
	Kind       domain.Kind `json:"kind"`
	ItemId     string      `json:"itemId"`
	Recipients []string    `json:"recipients"`
	ActorId    string      `json:"actorId"`
}

type sendToUserRequest struct {
	UserId string `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type eventResponse struct {
	Id string `json:"id"`
}

type tokenInfo struct {
	UserId      string    `json:"userId"`
	Token       string    `json:"token"`
	DeviceInfo  string    `json:"deviceInfo,omitempty"`
	LastUpdated time.Time `json:"lastUpdated"`
	Valid       bool      `json:"valid"`
}

type tokensResponse struct {
	Total   int         `json:"total"`
	Valid   int         `json:"valid"`
	Invalid int         `json:"invalid"`
	Tokens  []tokenInfo `json:"tokens"`
}

type resultResponse struct {
	Message string                `json:"message"`
	Result  domain.DeliveryResult `json:"result"`
}

func newRouter(h *handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(requireUser)
	tokens := r.PathPrefix("/api/push-tokens").Subrouter()
	tokens.HandleFunc("/register", h.RegisterToken).Methods(http.MethodPost)
	tokens.HandleFunc("/unregister", h.UnregisterToken).Methods(http.MethodDelete)

	notifications := r.PathPrefix("/api/notifications").Subrouter()
	notifications.HandleFunc("/events", h.SubmitEvent).Methods(http.MethodPost)
	notifications.HandleFunc("/tokens", h.ListTokens).Methods(http.MethodGet)
	notifications.HandleFunc("/send-test", h.SendTest).Methods(http.MethodPost)
	notifications.HandleFunc("/send-to-user", h.SendToUser).Methods(http.MethodPost)
	notifications.HandleFunc("/force-check", h.ForceCheck).Methods(http.MethodPost)
	notifications.HandleFunc("/monitor-status", h.MonitorStatus).Methods(http.MethodGet)
	return r
}

// requireUser trusts the user id set by the upstream authenticating proxy.
func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userId := r.Header.Get(userIdHeader)
		if userId == "" {
			writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "missing " + userIdHeader + " header"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, userId)))
	})
}

func ctxUserId(ctx context.Context) string {
	userId, _ := ctx.Value(ctxKey{}).(string)
	return userId
}

type handler struct {
	p *push
}

func (h *handler) requestLog(r *http.Request, rpc string, st time.Time, err error) {
	if h.p.metric == nil {
		log.Debug(rpc, zap.Duration("dur", time.Since(st)), zap.Error(err))
		return
	}
	h.p.metric.RequestLog(r.Context(), rpc,
		metric.TotalDur(time.Since(st)),
		zap.String("addr", r.RemoteAddr),
		zap.String("userId", ctxUserId(r.Context())),
		zap.Error(err),
	)
}

func (h *handler) RegisterToken(w http.ResponseWriter, r *http.Request) {
	var err error
	st := time.Now()
	defer func() {
		h.requestLog(r, "push.registerToken", st, err)
	}()
	var req registerTokenRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err = h.p.RegisterToken(r.Context(), ctxUserId(r.Context()), req.Token, req.DeviceInfo); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "push token registered"})
}

func (h *handler) UnregisterToken(w http.ResponseWriter, r *http.Request) {
	var err error
	st := time.Now()
	defer func() {
		h.requestLog(r, "push.unregisterToken", st, err)
	}()
	if err = h.p.UnregisterToken(r.Context(), ctxUserId(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "push token removed"})
}

func (h *handler) SubmitEvent(w http.ResponseWriter, r *http.Request) {
	var err error
	st := time.Now()
	defer func() {
		h.requestLog(r, "push.submitEvent", st, err)
	}()
	var req eventRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	id, err := h.p.SubmitEvent(r.Context(), ctxUserId(r.Context()), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, eventResponse{Id: id})
}

func (h *handler) ListTokens(w http.ResponseWriter, r *http.Request) {
	var err error
	st := time.Now()
	defer func() {
		h.requestLog(r, "push.listTokens", st, err)
	}()
	resp, err := h.p.ListTokens(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) SendTest(w http.ResponseWriter, r *http.Request) {
	st := time.Now()
	defer func() {
		h.requestLog(r, "push.sendTest", st, nil)
	}()
	res := h.p.SendTest(r.Context(), ctxUserId(r.Context()))
	writeJSON(w, http.StatusOK, resultResponse{Message: "test notification sent", Result: res})
}

func (h *handler) SendToUser(w http.ResponseWriter, r *http.Request) {
	var err error
	st := time.Now()
	defer func() {
		h.requestLog(r, "push.sendToUser", st, err)
	}()
	var req sendToUserRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := h.p.SendToUser(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{Message: "notification sent", Result: res})
}

func (h *handler) ForceCheck(w http.ResponseWriter, r *http.Request) {
	st := time.Now()
	defer func() {
		h.requestLog(r, "push.forceCheck", st, nil)
	}()
	writeJSON(w, http.StatusOK, h.p.monitor.ForceCheck(r.Context()))
}

func (h *handler) MonitorStatus(w http.ResponseWriter, r *http.Request) {
	st := time.Now()
	defer func() {
		h.requestLog(r, "push.monitorStatus", st, nil)
	}()
	writeJSON(w, http.StatusOK, h.p.monitor.Status())
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid json body: %v", domain.ErrValidation, err)
	}
	return nil
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		code = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		code = http.StatusNotFound
	default:
		log.Error("request error", zap.Error(err))
	}
	writeJSON(w, code, messageResponse{Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("write response error", zap.Error(err))
	}
}
